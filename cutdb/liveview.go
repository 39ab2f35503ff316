package cutdb

import (
	"context"

	"github.com/onflow/cutdb/model/braid"
)

// CutSubscription is a pull-based live view over the published cut. The first
// pull yields the cut current at that moment; every later pull blocks until
// the published cut differs (by value) from the last yielded one and then
// returns the latest published cut.
//
// There is no per-subscriber delivery queue: a consumer that pulls slower
// than the worker publishes simply skips the intermediate cuts. A value is
// never yielded twice in a row, and only fully joined, published cuts are
// ever observable.
type CutSubscription struct {
	cell *cell
	last *braid.Cut
}

// Next returns the next cut of the sequence. It blocks until the published
// cut differs from the last returned one, or until the given context is
// cancelled, in which case it returns the context error.
func (s *CutSubscription) Next(ctx context.Context) (*braid.Cut, error) {
	if s.last == nil {
		cut := s.cell.get()
		s.last = cut
		return cut, nil
	}
	for {
		cut, changed := s.cell.observe()
		if !cut.Equals(s.last) {
			s.last = cut
			return cut, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-changed:
		}
	}
}
