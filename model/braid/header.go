package braid

import (
	"time"
)

// BlockHeader is the full header record of one block on one chain. Headers
// are owned by the header store; this package only carries them by value.
// A header is immutable once created.
type BlockHeader struct {
	// ChainID is the chain this header belongs to.
	ChainID ChainID `json:"chainId" msgpack:"chain_id"`
	// Height is the number of blocks preceding this one on its own chain.
	Height uint64 `json:"height" msgpack:"height"`
	// Hash is the content digest of this header.
	Hash BlockHash `json:"hash" msgpack:"hash"`
	// ParentHash links to the previous block on the same chain.
	ParentHash BlockHash `json:"parentHash" msgpack:"parent_hash"`
	// Adjacents are the cross-chain references: for each adjacent chain of
	// the chain graph, the hash of the referenced block on that chain.
	Adjacents map[ChainID]BlockHash `json:"adjacents" msgpack:"adjacents"`
	// Weight is the accumulated difficulty of the block and all its
	// ancestors. Used for ranking cuts, never for identity.
	Weight uint64 `json:"weight" msgpack:"weight"`
	// Timestamp is the block creation time claimed by the producer.
	Timestamp time.Time `json:"timestamp" msgpack:"timestamp"`
}

// GenesisTime is the timestamp carried by all genesis headers.
var GenesisTime = time.Date(2019, time.October, 30, 0, 0, 0, 0, time.UTC)

// GenesisHeader returns the deterministic genesis header of the given chain.
// Its hash is derived from the chain ID, its cross-chain references point at
// the genesis headers of the adjacent chains.
func GenesisHeader(graph Graph, chain ChainID) *BlockHeader {
	adjacents := make(map[ChainID]BlockHash)
	for _, neighbour := range graph.Adjacent(chain) {
		adjacents[neighbour] = genesisHash(neighbour)
	}
	return &BlockHeader{
		ChainID:    chain,
		Height:     0,
		Hash:       genesisHash(chain),
		ParentHash: ZeroHash,
		Adjacents:  adjacents,
		Weight:     0,
		Timestamp:  GenesisTime,
	}
}

func genesisHash(chain ChainID) BlockHash {
	return HashFromData([]byte("genesis"), []byte(chain.String()))
}
