package cutdb

import (
	"errors"
	"fmt"
	"sort"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/storage"
)

// UnresolvedCandidateError is returned by the resolver when one or more of a
// candidate's headers are not locally available yet. This is an expected
// outcome while headers are still propagating through header sync: the
// candidate is dropped wholesale and a later candidate will succeed once the
// data has arrived. No partial resolution is ever returned.
type UnresolvedCandidateError struct {
	Chains []braid.ChainID
}

func NewUnresolvedCandidateError(chains ...braid.ChainID) error {
	return UnresolvedCandidateError{Chains: chains}
}

func (e UnresolvedCandidateError) Error() string {
	return fmt.Sprintf("candidate headers not locally available for chains %v", e.Chains)
}

// IsUnresolvedCandidateError returns whether the given error is an
// UnresolvedCandidateError.
func IsUnresolvedCandidateError(err error) bool {
	var errUnresolved UnresolvedCandidateError
	return errors.As(err, &errUnresolved)
}

// resolver turns a digest-only candidate into a full per-chain header map by
// looking every hash up in the header store. The store reference is injected
// at construction time.
type resolver struct {
	headers storage.Headers
}

func newResolver(headers storage.Headers) *resolver {
	return &resolver{headers: headers}
}

// resolve looks up every (chain, hash) pair of the candidate. It returns the
// complete header map, or an error:
//   - UnresolvedCandidateError listing every chain whose header is unknown
//   - any other lookup failure, wrapped; such failures are fatal to the
//     ingestion worker
func (r *resolver) resolve(candidate *braid.CutHashes) (map[braid.ChainID]*braid.BlockHeader, error) {
	resolved := make(map[braid.ChainID]*braid.BlockHeader, len(candidate.ChainMap))
	var missing []braid.ChainID
	for chain, hash := range candidate.ChainMap {
		header, err := r.headers.ByHash(chain, hash)
		if errors.Is(err, storage.ErrNotFound) {
			missing = append(missing, chain)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not look up header (chain: %d, hash: %x): %w", chain, hash, err)
		}
		resolved[chain] = header
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, NewUnresolvedCandidateError(missing...)
	}
	return resolved, nil
}
