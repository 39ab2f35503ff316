package braid

import (
	"fmt"
)

// Cut is a frontier snapshot of the multi-chain DAG: exactly one header per
// chain of the chain graph. A cut is immutable once constructed; the store
// supersedes cuts, it never mutates them in place. The braid-consistency of
// the entries is the join engine's responsibility and is not re-validated
// here.
type Cut struct {
	graph   Graph
	headers map[ChainID]*BlockHeader
	weight  uint64
	height  uint64
}

// NewCut constructs a cut over the given graph. The header map must be total:
// exactly one header per chain, each registered under its own chain.
func NewCut(graph Graph, headers map[ChainID]*BlockHeader) (*Cut, error) {
	if len(headers) != graph.Size() {
		return nil, fmt.Errorf("cut must contain one header per chain (%d != %d)", len(headers), graph.Size())
	}
	cloned := make(map[ChainID]*BlockHeader, len(headers))
	var weight, height uint64
	for chain, header := range headers {
		if !graph.HasChain(chain) {
			return nil, fmt.Errorf("cut contains header for unknown chain %d", chain)
		}
		if header.ChainID != chain {
			return nil, fmt.Errorf("header for chain %d registered under chain %d", header.ChainID, chain)
		}
		cloned[chain] = header
		weight += header.Weight
		height += header.Height
	}
	return &Cut{
		graph:   graph,
		headers: cloned,
		weight:  weight,
		height:  height,
	}, nil
}

// GenesisCut returns the cut consisting of the genesis header of every chain.
func GenesisCut(graph Graph) *Cut {
	headers := make(map[ChainID]*BlockHeader, graph.Size())
	for _, chain := range graph.Chains() {
		headers[chain] = GenesisHeader(graph, chain)
	}
	cut, err := NewCut(graph, headers)
	if err != nil {
		panic(err) // genesis headers are total by construction
	}
	return cut
}

// Graph returns the chain graph the cut is defined over.
func (c *Cut) Graph() Graph {
	return c.graph
}

// Header returns the cut's entry for the given chain.
func (c *Cut) Header(chain ChainID) (*BlockHeader, bool) {
	header, exists := c.headers[chain]
	return header, exists
}

// Headers returns a copy of the per-chain header map.
func (c *Cut) Headers() map[ChainID]*BlockHeader {
	cloned := make(map[ChainID]*BlockHeader, len(c.headers))
	for chain, header := range c.headers {
		cloned[chain] = header
	}
	return cloned
}

// Weight is the sum of the entries' accumulated weights. It ranks cuts and
// plays no role in cut identity.
func (c *Cut) Weight() uint64 {
	return c.weight
}

// Height is the sum of the entries' block heights.
func (c *Cut) Height() uint64 {
	return c.height
}

// Equals compares two cuts by value: same chain set, same block hash per
// chain.
func (c *Cut) Equals(other *Cut) bool {
	if other == nil {
		return false
	}
	if len(c.headers) != len(other.headers) {
		return false
	}
	for chain, header := range c.headers {
		otherHeader, exists := other.headers[chain]
		if !exists || otherHeader.Hash != header.Hash {
			return false
		}
	}
	return true
}

// Hashes projects the cut onto its lightweight wire representation.
func (c *Cut) Hashes() *CutHashes {
	chainMap := make(map[ChainID]BlockHash, len(c.headers))
	for chain, header := range c.headers {
		chainMap[chain] = header.Hash
	}
	return &CutHashes{ChainMap: chainMap}
}

// Extend returns a new cut with the given entries replacing the current ones.
// Entries for chains outside the graph are rejected by NewCut.
func (c *Cut) Extend(replacements map[ChainID]*BlockHeader) (*Cut, error) {
	headers := c.Headers()
	for chain, header := range replacements {
		headers[chain] = header
	}
	return NewCut(c.graph, headers)
}
