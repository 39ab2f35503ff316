package util

import (
	"context"
)

// WaitClosed waits for either a signal/close on the channel or for the context
// to be cancelled. Returns nil if the channel was signalled/closed before
// returning, otherwise it returns the context error.
//
// This handles the corner case where the context is cancelled at the same time
// that the channel is closed, and the ctx.Done() case was selected.
func WaitClosed(ctx context.Context, ch <-chan struct{}) error {
	select {
	case <-ctx.Done():
		select {
		case <-ch:
			return nil
		default:
		}
		return ctx.Err()
	case <-ch:
		return nil
	}
}

// WaitError waits for either an error on the error channel or the done channel
// to close. Returns an error if one is received on the error channel,
// otherwise nil.
//
// This handles a race condition where the done channel could have been closed
// as a result of an irrecoverable error being thrown, so that when the
// scheduler yields control back to this goroutine, both channels are available
// to read from. If the done case happens to be chosen at random to proceed
// instead of the error case, we would return without error, which could result
// in unsafe continuation.
func WaitError(errChan <-chan error, done <-chan struct{}) error {
	select {
	case err := <-errChan:
		return err
	case <-done:
		select {
		case err := <-errChan:
			return err
		default:
		}
		return nil
	}
}
