package braid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/utils/unittest"
)

func TestNewCutRequiresTotality(t *testing.T) {
	graph := braid.PetersenGraph()
	headers := braid.GenesisCut(graph).Headers()

	t.Run("missing chain", func(t *testing.T) {
		partial := make(map[braid.ChainID]*braid.BlockHeader)
		for chain, header := range headers {
			partial[chain] = header
		}
		delete(partial, 5)
		_, err := braid.NewCut(graph, partial)
		require.Error(t, err)
	})

	t.Run("header registered under wrong chain", func(t *testing.T) {
		swapped := make(map[braid.ChainID]*braid.BlockHeader)
		for chain, header := range headers {
			swapped[chain] = header
		}
		swapped[0], swapped[1] = swapped[1], swapped[0]
		_, err := braid.NewCut(graph, swapped)
		require.Error(t, err)
	})

	t.Run("complete map", func(t *testing.T) {
		cut, err := braid.NewCut(graph, headers)
		require.NoError(t, err)
		require.Equal(t, graph.Size(), len(cut.Headers()))
	})
}

func TestCutEquality(t *testing.T) {
	graph := braid.PetersenGraph()
	genesis := braid.GenesisCut(graph)

	require.True(t, genesis.Equals(braid.GenesisCut(graph)), "genesis cuts must be deterministic")
	require.False(t, genesis.Equals(nil))

	parent, _ := genesis.Header(0)
	child := unittest.ChildHeaderFixture(parent, 10)
	extended, err := genesis.Extend(map[braid.ChainID]*braid.BlockHeader{0: child})
	require.NoError(t, err)
	require.False(t, genesis.Equals(extended))
	require.False(t, extended.Equals(genesis))
}

func TestCutWeightAndHeight(t *testing.T) {
	graph := braid.PetersenGraph()
	genesis := braid.GenesisCut(graph)
	require.Equal(t, uint64(0), genesis.Weight())
	require.Equal(t, uint64(0), genesis.Height())

	parent, _ := genesis.Header(3)
	child := unittest.ChildHeaderFixture(parent, 17)
	extended, err := genesis.Extend(map[braid.ChainID]*braid.BlockHeader{3: child})
	require.NoError(t, err)
	require.Equal(t, uint64(17), extended.Weight())
	require.Equal(t, uint64(1), extended.Height())

	// the original cut is unchanged
	require.Equal(t, uint64(0), genesis.Weight())
}

func TestCutHashesProjection(t *testing.T) {
	graph := braid.PetersenGraph()
	genesis := braid.GenesisCut(graph)

	hashes := genesis.Hashes()
	require.Len(t, hashes.ChainMap, graph.Size())
	require.True(t, hashes.Local(), "a projected cut has no origin peer")
	for chain, hash := range hashes.ChainMap {
		header, exists := genesis.Header(chain)
		require.True(t, exists)
		require.Equal(t, header.Hash, hash)
	}

	hashes.Origin = unittest.PeerInfoFixture()
	require.False(t, hashes.Local())
}

func TestGenesisCutBraidConsistency(t *testing.T) {
	graph := braid.PetersenGraph()
	genesis := braid.GenesisCut(graph)

	// every cross-chain reference of every entry resolves to the genesis
	// entry of the referenced chain
	for _, chain := range graph.Chains() {
		header, exists := genesis.Header(chain)
		require.True(t, exists)
		require.Len(t, header.Adjacents, len(graph.Adjacent(chain)))
		for adjChain, adjHash := range header.Adjacents {
			entry, exists := genesis.Header(adjChain)
			require.True(t, exists)
			require.Equal(t, entry.Hash, adjHash)
		}
	}
}
