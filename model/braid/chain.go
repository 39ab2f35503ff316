package braid

import (
	"fmt"
	"sort"
	"strconv"
)

// ChainID identifies one chain within a fixed chain graph.
type ChainID uint32

func (c ChainID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// Graph is the fixed topology of the multi-chain DAG: the set of chains and,
// for each chain, the chains its headers may cross-reference. The graph is
// decided externally and never changes during the lifetime of a store.
type Graph struct {
	adjacency map[ChainID][]ChainID
}

// NewGraph constructs a chain graph from an adjacency relation. Every
// referenced neighbour must itself be a chain of the graph, and a chain may
// not reference itself.
func NewGraph(adjacency map[ChainID][]ChainID) (Graph, error) {
	cloned := make(map[ChainID][]ChainID, len(adjacency))
	for chain, neighbours := range adjacency {
		for _, neighbour := range neighbours {
			if neighbour == chain {
				return Graph{}, fmt.Errorf("chain %d references itself", chain)
			}
			if _, exists := adjacency[neighbour]; !exists {
				return Graph{}, fmt.Errorf("chain %d references unknown chain %d", chain, neighbour)
			}
		}
		sorted := append([]ChainID(nil), neighbours...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		cloned[chain] = sorted
	}
	return Graph{adjacency: cloned}, nil
}

// Size returns the number of chains in the graph.
func (g Graph) Size() int {
	return len(g.adjacency)
}

// Chains returns all chain IDs of the graph in ascending order.
func (g Graph) Chains() []ChainID {
	chains := make([]ChainID, 0, len(g.adjacency))
	for chain := range g.adjacency {
		chains = append(chains, chain)
	}
	sort.Slice(chains, func(i, j int) bool { return chains[i] < chains[j] })
	return chains
}

// Adjacent returns the chains that headers of the given chain cross-reference.
func (g Graph) Adjacent(chain ChainID) []ChainID {
	return append([]ChainID(nil), g.adjacency[chain]...)
}

// HasChain returns true if the given chain is part of the graph.
func (g Graph) HasChain(chain ChainID) bool {
	_, exists := g.adjacency[chain]
	return exists
}

// PetersenGraph returns the degree-3 10-chain graph used as the default
// topology. Each chain cross-references exactly three others.
func PetersenGraph() Graph {
	graph, err := NewGraph(map[ChainID][]ChainID{
		0: {2, 3, 5},
		1: {3, 4, 6},
		2: {0, 4, 7},
		3: {0, 1, 8},
		4: {1, 2, 9},
		5: {0, 6, 9},
		6: {1, 5, 7},
		7: {2, 6, 8},
		8: {3, 7, 9},
		9: {4, 5, 8},
	})
	if err != nil {
		panic(err) // static topology, cannot fail
	}
	return graph
}
