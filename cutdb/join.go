package cutdb

import (
	"errors"
	"fmt"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/storage"
)

// Joiner computes the heaviest mutually consistent successor of the current
// cut and a fully resolved candidate header map. The store's orchestration
// treats the algorithm as opaque, but depends on three properties:
//   - idempotence: joining a cut with its own headers yields that cut
//   - monotonicity: the result is never lighter than the current cut
//   - determinism: equal inputs produce equal results
type Joiner interface {
	Join(current *braid.Cut, candidate map[braid.ChainID]*braid.BlockHeader) (*braid.Cut, error)
}

// heaviestJoiner is the default join engine. Per chain, the candidate's
// header replaces the current entry only if it is strictly heavier and a
// descendant of the current entry; a braid-consistency pass then reverts any
// replacement whose cross-chain references run ahead of the entries chosen
// for the adjacent chains, until a fixpoint is reached.
type heaviestJoiner struct {
	graph   braid.Graph
	headers storage.Headers
}

var _ Joiner = (*heaviestJoiner)(nil)

// NewHeaviestJoiner returns the default join engine for the given topology.
// It resolves ancestry and cross-chain references through the given header
// store.
func NewHeaviestJoiner(graph braid.Graph, headers storage.Headers) Joiner {
	return &heaviestJoiner{
		graph:   graph,
		headers: headers,
	}
}

func (j *heaviestJoiner) Join(current *braid.Cut, candidate map[braid.ChainID]*braid.BlockHeader) (*braid.Cut, error) {

	chains := j.graph.Chains()

	// select, per chain, the heavier of the current entry and the candidate's
	// header, requiring the candidate header to descend from the current entry
	picked := make(map[braid.ChainID]*braid.BlockHeader, len(chains))
	replaced := make(map[braid.ChainID]bool)
	for _, chain := range chains {
		cur, exists := current.Header(chain)
		if !exists {
			return nil, fmt.Errorf("current cut has no entry for chain %d", chain)
		}
		picked[chain] = cur

		cand, exists := candidate[chain]
		if !exists || cand.Hash == cur.Hash || cand.Weight <= cur.Weight {
			continue
		}
		descends, err := j.descendsFrom(cand, cur)
		if err != nil {
			return nil, fmt.Errorf("could not verify ancestry on chain %d: %w", chain, err)
		}
		if !descends {
			continue
		}
		picked[chain] = cand
		replaced[chain] = true
	}

	if len(replaced) == 0 {
		return current, nil
	}

	// braid-consistency fixpoint: a replaced entry must not reference a block
	// ahead of the entry picked for the adjacent chain. Reverting one chain
	// can invalidate another, so iterate until stable. Each round reverts at
	// least one chain, so the loop terminates.
	for {
		reverted := false
		for _, chain := range chains {
			if !replaced[chain] {
				continue
			}
			consistent, err := j.braidConsistent(picked[chain], picked)
			if err != nil {
				return nil, fmt.Errorf("could not verify braid consistency on chain %d: %w", chain, err)
			}
			if consistent {
				continue
			}
			cur, _ := current.Header(chain)
			picked[chain] = cur
			delete(replaced, chain)
			reverted = true
		}
		if !reverted {
			break
		}
	}

	if len(replaced) == 0 {
		return current, nil
	}

	next, err := braid.NewCut(current.Graph(), picked)
	if err != nil {
		return nil, fmt.Errorf("could not construct joined cut: %w", err)
	}
	return next, nil
}

// descendsFrom walks the candidate header's parent linkage back to the height
// of the current entry and checks that it arrives at the current entry. A
// missing ancestor means the candidate's lineage is not locally known; the
// candidate entry is then not accepted.
func (j *heaviestJoiner) descendsFrom(header *braid.BlockHeader, ancestor *braid.BlockHeader) (bool, error) {
	if header.Height < ancestor.Height {
		return false, nil
	}
	step := header
	for step.Height > ancestor.Height {
		parent, err := j.headers.ByHash(step.ChainID, step.ParentHash)
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("could not look up ancestor (chain: %d, hash: %x): %w", step.ChainID, step.ParentHash, err)
		}
		step = parent
	}
	return step.Hash == ancestor.Hash, nil
}

// braidConsistent checks the header's cross-chain references against the
// picked entries: every referenced block must be at or behind the picked
// entry of the referenced chain. An unknown referenced block counts as
// inconsistent.
func (j *heaviestJoiner) braidConsistent(header *braid.BlockHeader, picked map[braid.ChainID]*braid.BlockHeader) (bool, error) {
	for adjChain, adjHash := range header.Adjacents {
		entry, exists := picked[adjChain]
		if !exists {
			// reference outside the graph, nothing to check against
			continue
		}
		if adjHash == entry.Hash {
			continue
		}
		ref, err := j.headers.ByHash(adjChain, adjHash)
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("could not look up adjacent reference (chain: %d, hash: %x): %w", adjChain, adjHash, err)
		}
		if ref.Height > entry.Height {
			return false, nil
		}
	}
	return true, nil
}
