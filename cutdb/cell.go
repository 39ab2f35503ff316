package cutdb

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/onflow/cutdb/model/braid"
)

// cell is the cut state cell: the single shared mutable holder of the
// authoritative cut. It is written by exactly one goroutine (the ingestion
// worker) and read by everyone else. Reads are a plain atomic pointer load
// and never block the writer; the writer holds the mutex only for the pointer
// swap and the broadcast-channel rotation.
type cell struct {
	mu      sync.Mutex
	cut     *atomic.Pointer[braid.Cut]
	changed chan struct{}
}

func newCell(initial *braid.Cut) *cell {
	return &cell{
		cut:     atomic.NewPointer(initial),
		changed: make(chan struct{}),
	}
}

// get returns the current cut. Lock-free; never fails.
func (c *cell) get() *braid.Cut {
	return c.cut.Load()
}

// set installs a new cut and wakes every goroutine blocked in observe.
// Only the ingestion worker may call set.
func (c *cell) set(cut *braid.Cut) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cut.Store(cut)
	close(c.changed)
	c.changed = make(chan struct{})
}

// observe returns the current cut together with a channel that closes on the
// next publish. The pair is consistent: if the value changes after the
// snapshot was taken, the returned channel is already closed or will close.
func (c *cell) observe() (*braid.Cut, <-chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cut.Load(), c.changed
}
