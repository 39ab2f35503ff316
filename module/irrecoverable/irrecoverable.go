package irrecoverable

import (
	"context"
	"log"
	"runtime"

	"go.uber.org/atomic"
)

// Signaler sends the error out.
type Signaler struct {
	errChan   chan error
	errThrown *atomic.Bool
}

// NewSignaler returns a new Signaler together with the channel the first
// thrown error is delivered on.
func NewSignaler() (*Signaler, <-chan error) {
	errChan := make(chan error, 1)
	return &Signaler{
		errChan:   errChan,
		errThrown: atomic.NewBool(false),
	}, errChan
}

// Throw is a narrow drop-in replacement for panic, log.Fatal, log.Panic, etc.
// anywhere there's something connected to the error channel. It never returns:
// the calling goroutine is terminated via runtime.Goexit. Only the first
// thrown error is delivered; subsequent errors are logged and discarded.
func (s *Signaler) Throw(err error) {
	defer runtime.Goexit()
	if s.errThrown.CompareAndSwap(false, true) {
		s.errChan <- err
	} else {
		log.Printf("additional irrecoverable error discarded: %v", err)
	}
}

// SignalerContext is a constrained drop-in replacement for context.Context
// that also carries a Signaler for irrecoverable errors.
type SignalerContext interface {
	context.Context
	Throw(err error) // delegates to the signaler
	sealed()         // private, to constrain construction to WithSignaler
}

type signalerCtx struct {
	context.Context
	*Signaler
}

func (sc signalerCtx) sealed() {}

// WithSignaler is the One True Way of getting a SignalerContext.
func WithSignaler(parent context.Context) (SignalerContext, <-chan error) {
	sig, errChan := NewSignaler()
	return &signalerCtx{parent, sig}, errChan
}

// Throw enables throwing an irrecoverable error through any context.Context.
//
// A lot of library methods expect a context.Context, and we want to pass the
// same one down without boilerplate. If the given context was derived from a
// SignalerContext, the error is routed to its signaler; otherwise the node has
// no way to handle the irrecoverable error and exits.
func Throw(ctx context.Context, err error) {
	signalerAbleContext, ok := ctx.(SignalerContext)
	if ok {
		signalerAbleContext.Throw(err)
	}
	// Be spectacular on how this does not -but should- handle irrecoverables:
	log.Fatalf("irrecoverable error signaler not found for context, please implement! Unhandled irrecoverable error: %v", err)
}
