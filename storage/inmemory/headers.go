package inmemory

import (
	"sync"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/storage"
)

type headerKey struct {
	chain braid.ChainID
	hash  braid.BlockHash
}

// Headers implements header storage as a mutex-guarded map. It backs tests
// and deployments that do not need persistence.
type Headers struct {
	mu      sync.RWMutex
	headers map[headerKey]*braid.BlockHeader
}

var _ storage.Headers = (*Headers)(nil)

func NewHeaders() *Headers {
	return &Headers{
		headers: make(map[headerKey]*braid.BlockHeader),
	}
}

func (h *Headers) ByHash(chain braid.ChainID, hash braid.BlockHash) (*braid.BlockHeader, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	header, exists := h.headers[headerKey{chain: chain, hash: hash}]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return header, nil
}

func (h *Headers) Store(header *braid.BlockHeader) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.headers[headerKey{chain: header.ChainID, hash: header.Hash}] = header
	return nil
}
