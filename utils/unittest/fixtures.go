package unittest

import (
	"crypto/rand"
	"time"

	"github.com/onflow/cutdb/model/braid"
)

// BlockHashFixture returns a random block hash.
func BlockHashFixture() braid.BlockHash {
	var hash braid.BlockHash
	_, _ = rand.Read(hash[:])
	return hash
}

// GraphFixture returns the default 10-chain test topology.
func GraphFixture() braid.Graph {
	return braid.PetersenGraph()
}

// ChildHeaderFixture returns a header extending the given parent on the same
// chain, adding the given weight. Cross-chain references are left empty; use
// WithAdjacents to set them.
func ChildHeaderFixture(parent *braid.BlockHeader, weight uint64, opts ...func(*braid.BlockHeader)) *braid.BlockHeader {
	header := &braid.BlockHeader{
		ChainID:    parent.ChainID,
		Height:     parent.Height + 1,
		Hash:       BlockHashFixture(),
		ParentHash: parent.Hash,
		Adjacents:  map[braid.ChainID]braid.BlockHash{},
		Weight:     parent.Weight + weight,
		Timestamp:  time.Now().UTC(),
	}
	for _, apply := range opts {
		apply(header)
	}
	return header
}

// WithAdjacents sets a header fixture's cross-chain references.
func WithAdjacents(adjacents map[braid.ChainID]braid.BlockHash) func(*braid.BlockHeader) {
	return func(header *braid.BlockHeader) {
		header.Adjacents = adjacents
	}
}

// CandidateFixture builds the wire-shape candidate advertising the given
// headers on top of the given base cut: for each header the corresponding
// chain entry is replaced, all other chains keep the base hashes.
func CandidateFixture(base *braid.Cut, headers ...*braid.BlockHeader) *braid.CutHashes {
	candidate := base.Hashes()
	for _, header := range headers {
		candidate.ChainMap[header.ChainID] = header.Hash
	}
	return candidate
}

// PeerInfoFixture returns a remote peer identity.
func PeerInfoFixture() *braid.PeerInfo {
	return &braid.PeerInfo{
		ID:      BlockHashFixture().String()[:16],
		Address: "198.51.100.7:1789",
	}
}
