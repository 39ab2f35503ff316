package cutdb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/utils/unittest"
)

// TestVersionedCutDB checks that stores for heterogeneous versions can live
// in one collection while the wrapped handles stay version-agnostic.
func TestVersionedCutDB(t *testing.T) {
	graph := unittest.GraphFixture()
	headers := bootstrappedHeaders(t, graph)

	conf := DefaultConfig()
	conf.InitialCut = braid.GenesisCut(graph)

	var stores []VersionedCutDB
	for _, version := range []Version{VersionMainnet, VersionTestnet, VersionDevelopment} {
		db, err := NewCutDB(unittest.Logger(), newTestMetrics(), headers, graph, conf)
		require.NoError(t, err)
		stores = append(stores, NewVersionedCutDB(version, db))
	}

	require.Len(t, stores, 3)
	for _, store := range stores {
		require.NotNil(t, store.DB)
		require.True(t, store.DB.CurrentCut().Equals(conf.InitialCut))
	}
	require.Equal(t, VersionMainnet, stores[0].Version)
}
