package cutdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/module"
	"github.com/onflow/cutdb/module/component"
	"github.com/onflow/cutdb/module/irrecoverable"
	"github.com/onflow/cutdb/module/metrics"
	"github.com/onflow/cutdb/storage"
)

// CutDB is the authority over the current frontier of the multi-chain DAG.
// It continuously improves the published cut as candidates arrive from peers
// or local block production, and serves it through snapshot reads and a
// coalescing live view.
//
// Candidates enter through AddCandidate into a bounded queue and are drained
// by a single worker, which resolves each candidate against the header store,
// joins it with the published cut and installs the result. Processing is
// strictly sequential: one candidate completes its full pipeline before the
// next is dequeued, which is what makes the join/publish step safe without
// locking.
type CutDB struct {
	*component.ComponentManager
	log      zerolog.Logger
	metrics  module.CutDBMetrics
	resolver *resolver
	joiner   Joiner
	queue    chan *braid.CutHashes
	cell     *cell
}

var _ component.Component = (*CutDB)(nil)

type Option func(*CutDB)

// WithJoiner replaces the default join engine. The given engine must be
// idempotent, weight-monotonic and deterministic.
func WithJoiner(joiner Joiner) Option {
	return func(db *CutDB) {
		db.joiner = joiner
	}
}

// NewCutDB creates a cut store over the given topology and header store. The
// initial cut comes from the config, either directly or from a persisted cut
// file. The store must be started before it processes candidates.
func NewCutDB(
	log zerolog.Logger,
	collector module.CutDBMetrics,
	headers storage.Headers,
	graph braid.Graph,
	conf Config,
	opts ...Option,
) (*CutDB, error) {

	initial := conf.InitialCut
	if initial == nil {
		if conf.InitialCutFile == "" {
			return nil, fmt.Errorf("config provides neither an initial cut nor a cut file")
		}
		var err error
		initial, err = LoadCutFile(graph, conf.InitialCutFile)
		if err != nil {
			return nil, fmt.Errorf("could not load initial cut from %s: %w", conf.InitialCutFile, err)
		}
	}

	bufferSize := conf.BufferSize
	if bufferSize == 0 {
		bufferSize = DefaultBufferSize
	}

	if conf.TelemetryLevel == zerolog.Disabled {
		collector = metrics.NewNoopCollector()
	}

	db := &CutDB{
		log:      log.Level(conf.LogLevel).With().Str("component", "cutdb").Logger(),
		metrics:  collector,
		resolver: newResolver(headers),
		joiner:   NewHeaviestJoiner(graph, headers),
		queue:    make(chan *braid.CutHashes, bufferSize),
		cell:     newCell(initial),
	}

	for _, apply := range opts {
		apply(db)
	}

	db.ComponentManager = component.NewComponentManagerBuilder().
		AddWorker(db.processCandidates).
		Build()

	db.metrics.CutPublished(initial)

	return db, nil
}

// AddCandidate queues a candidate frontier for ingestion. It blocks while the
// queue is at capacity; this backpressure is the store's only flow-control
// mechanism, so producers observe saturation as latency, never as a failure.
// The candidate is silently discarded if the given context is cancelled or
// the store shuts down before capacity frees.
func (db *CutDB) AddCandidate(ctx context.Context, candidate *braid.CutHashes) {
	db.metrics.CandidateReceived(candidate.Local())
	select {
	case db.queue <- candidate:
		db.metrics.QueueDepth(len(db.queue))
	case <-ctx.Done():
	case <-db.ComponentManager.ShutdownSignal():
	}
}

// CurrentCut returns the published cut. It never fails and never blocks the
// ingestion worker; the returned value may be superseded at any moment.
func (db *CutDB) CurrentCut() *braid.Cut {
	return db.cell.get()
}

// Reader returns a lock-free read handle over the published cut, for
// composing the read into a caller's larger atomic step. The handle stays
// valid for the lifetime of the store and keeps serving the last published
// cut after shutdown.
func (db *CutDB) Reader() CutReader {
	return cellReader{cell: db.cell}
}

// Subscribe opens a live view over the published cut. Every subscription is
// independent; re-subscribing restarts the sequence from the then-current
// cut.
func (db *CutDB) Subscribe() *CutSubscription {
	return &CutSubscription{cell: db.cell}
}

// CutReader is a snapshot read handle over the published cut.
type CutReader interface {
	// Cut returns the published cut. Lock-free; never fails.
	Cut() *braid.Cut
}

type cellReader struct {
	cell *cell
}

func (r cellReader) Cut() *braid.Cut {
	return r.cell.get()
}

// processCandidates is the ingestion worker: the sole writer of the cut state
// cell. It drains the queue in strict FIFO order and runs each candidate
// through resolve, join and publish before touching the next one. The worker
// terminates on cancellation, or on the first non-NotFound header store fault
// (crash-only: after such a fault the store keeps serving the last published
// cut but never updates again; restarting is a supervisor concern).
func (db *CutDB) processCandidates(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	ready()

	doneSignal := ctx.Done()
	for {
		select {
		case <-doneSignal:
			return
		case candidate := <-db.queue:
			db.metrics.QueueDepth(len(db.queue))
			err := db.processCandidate(candidate)
			if err != nil {
				ctx.Throw(err)
			}
		}
	}
}

// processCandidate runs one candidate through the pipeline. Unresolvable
// candidates are dropped without effect; they will be superseded by later
// candidates once the missing headers have propagated.
// No errors are expected during normal operations.
func (db *CutDB) processCandidate(candidate *braid.CutHashes) error {
	log := db.log.With().Bool("local", candidate.Local()).Logger()
	if candidate.Origin != nil {
		log = log.With().Str("origin_id", candidate.Origin.ID).Logger()
	}

	resolved, err := db.resolver.resolve(candidate)
	var errUnresolved UnresolvedCandidateError
	if errors.As(err, &errUnresolved) {
		db.metrics.CandidateUnresolved(len(errUnresolved.Chains))
		log.Debug().
			Int("missing_chains", len(errUnresolved.Chains)).
			Msg("dropping candidate with unresolved headers")
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not resolve candidate: %w", err)
	}

	current := db.cell.get()
	next, err := db.joiner.Join(current, resolved)
	if err != nil {
		return fmt.Errorf("could not join candidate into current cut: %w", err)
	}

	db.cell.set(next)
	db.metrics.CutPublished(next)

	if next.Equals(current) {
		log.Debug().Msg("candidate did not improve current cut")
		return nil
	}
	log.Info().
		Uint64("weight", next.Weight()).
		Uint64("height", next.Height()).
		Msg("published new cut")
	return nil
}
