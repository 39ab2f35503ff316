package cutdb

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/module"
	"github.com/onflow/cutdb/module/irrecoverable"
	"github.com/onflow/cutdb/module/util"
	"github.com/onflow/cutdb/storage"
)

// WithCutDB creates and starts a cut store, runs the given action against it
// and guarantees the store is stopped on every exit path, including failure
// of the action. Stopping is immediate: in-flight and queued candidates are
// discarded, not drained.
//
// The context passed to the action is cancelled when the store encounters an
// irrecoverable fault or the parent context is cancelled; the action should
// honor it. If the store fails while the action is running, the store's error
// is returned in preference to the action's.
func WithCutDB(
	ctx context.Context,
	log zerolog.Logger,
	collector module.CutDBMetrics,
	headers storage.Headers,
	graph braid.Graph,
	conf Config,
	action func(ctx context.Context, db *CutDB) error,
) error {

	db, err := NewCutDB(log, collector, headers, graph, conf)
	if err != nil {
		return fmt.Errorf("could not create cut store: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	signalerCtx, errChan := irrecoverable.WithSignaler(runCtx)

	db.Start(signalerCtx)
	defer func() {
		cancel()
		<-db.Done()
	}()

	err = util.WaitClosed(runCtx, db.Ready())
	if err != nil {
		return fmt.Errorf("cut store did not start: %w", err)
	}

	actionDone := make(chan error, 1)
	go func() {
		actionDone <- action(runCtx, db)
	}()

	select {
	case err := <-actionDone:
		// surface a store fault that raced with the action finishing
		select {
		case storeErr := <-errChan:
			return fmt.Errorf("cut store failed: %w", storeErr)
		default:
		}
		return err
	case storeErr := <-errChan:
		cancel()
		<-actionDone
		return fmt.Errorf("cut store failed: %w", storeErr)
	}
}
