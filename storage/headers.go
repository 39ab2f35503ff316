package storage

import (
	"github.com/onflow/cutdb/model/braid"
)

// Headers represents persistent storage for validated block headers, indexed
// per chain. The cut store consumes this interface; it does not own the data
// behind it. Header validation happens upstream, before Store is called.
type Headers interface {
	// ByHash returns the header with the given hash on the given chain.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if no header is known with the given hash
	ByHash(chain braid.ChainID, hash braid.BlockHash) (*braid.BlockHeader, error)

	// Store stores a header under its own chain and hash. Storing the same
	// header twice is a no-op.
	Store(header *braid.BlockHeader) error
}
