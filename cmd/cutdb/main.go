package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/onflow/cutdb/cutdb"
	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/module/irrecoverable"
	"github.com/onflow/cutdb/module/metrics"
	"github.com/onflow/cutdb/module/util"
	storagebadger "github.com/onflow/cutdb/storage/badger"
)

func main() {

	var (
		flagDataDir     string
		flagCutFile     string
		flagBufferSize  uint
		flagLogLevel    string
		flagMetricsAddr string
	)

	pflag.StringVar(&flagDataDir, "datadir", "data", "directory for the badger header store")
	pflag.StringVar(&flagCutFile, "cut-file", "", "path for the persisted cut; loaded at start if present, written at shutdown")
	pflag.UintVar(&flagBufferSize, "buffer-size", cutdb.DefaultBufferSize, "capacity of the candidate ingestion queue")
	pflag.StringVar(&flagLogLevel, "loglevel", "info", "log verbosity (debug, info, warn, error)")
	pflag.StringVar(&flagMetricsAddr, "metrics-addr", "127.0.0.1:8080", "address to serve prometheus metrics on")
	pflag.Parse()

	log := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("loglevel", flagLogLevel).Msg("invalid log level")
	}
	log = log.Level(level)

	err = run(log, flagDataDir, flagCutFile, flagBufferSize, level, flagMetricsAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("cut store node failed")
	}
}

func run(log zerolog.Logger, dataDir string, cutFile string, bufferSize uint, level zerolog.Level, metricsAddr string) error {

	bdb, err := badger.Open(badger.DefaultOptions(dataDir).WithLogger(nil))
	if err != nil {
		return fmt.Errorf("could not open header database: %w", err)
	}
	defer bdb.Close()

	headers := storagebadger.NewHeaders(bdb)
	graph := braid.PetersenGraph()

	// genesis headers must be resolvable for ancestry walks; storing them is
	// idempotent across restarts
	for _, chain := range graph.Chains() {
		err = headers.Store(braid.GenesisHeader(graph, chain))
		if err != nil {
			return fmt.Errorf("could not bootstrap genesis header for chain %d: %w", chain, err)
		}
	}

	conf := cutdb.DefaultConfig()
	conf.BufferSize = bufferSize
	conf.LogLevel = level
	if cutFile != "" && fileExists(cutFile) {
		conf.InitialCutFile = cutFile
	} else {
		conf.InitialCut = braid.GenesisCut(graph)
	}

	collector := metrics.NewCutDBCollector()

	metricsSrv := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler()}
	go func() {
		err := metricsSrv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Msg("metrics server failed")
		}
	}()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := cutdb.NewCutDB(log, collector, headers, graph, conf)
	if err != nil {
		return fmt.Errorf("could not create cut store: %w", err)
	}

	signalerCtx, errChan := irrecoverable.WithSignaler(ctx)
	db.Start(signalerCtx)

	err = util.WaitClosed(ctx, db.Ready())
	if err != nil {
		return fmt.Errorf("cut store did not start: %w", err)
	}
	log.Info().
		Uint64("weight", db.CurrentCut().Weight()).
		Uint64("height", db.CurrentCut().Height()).
		Msg("cut store started")

	// log frontier progress through the live view
	go func() {
		sub := db.Subscribe()
		for {
			cut, err := sub.Next(ctx)
			if err != nil {
				return
			}
			log.Info().
				Uint64("weight", cut.Weight()).
				Uint64("height", cut.Height()).
				Msg("frontier advanced")
		}
	}()

	// block until a signal arrives or the worker hits an irrecoverable fault
	err = util.WaitError(errChan, ctx.Done())

	cancel()
	<-db.Done()

	if cutFile != "" {
		writeErr := cutdb.WriteCutFile(db.CurrentCut(), cutFile)
		if writeErr != nil {
			log.Err(writeErr).Str("path", cutFile).Msg("could not persist cut")
		} else {
			log.Info().Str("path", cutFile).Msg("persisted current cut")
		}
	}

	if err != nil {
		return fmt.Errorf("cut store failed: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
