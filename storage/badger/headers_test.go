package badger_test

import (
	"testing"

	badgerdb "github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/require"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/storage"
	bstorage "github.com/onflow/cutdb/storage/badger"
	"github.com/onflow/cutdb/utils/unittest"
)

func TestHeadersStoreAndRetrieve(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badgerdb.DB) {
		headers := bstorage.NewHeaders(db)
		graph := unittest.GraphFixture()

		genesis := braid.GenesisHeader(graph, 4)
		child := unittest.ChildHeaderFixture(genesis, 12)

		_, err := headers.ByHash(child.ChainID, child.Hash)
		require.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, headers.Store(genesis))
		require.NoError(t, headers.Store(child))

		retrieved, err := headers.ByHash(child.ChainID, child.Hash)
		require.NoError(t, err)
		require.Equal(t, child.Hash, retrieved.Hash)
		require.Equal(t, child.ParentHash, retrieved.ParentHash)
		require.Equal(t, child.Weight, retrieved.Weight)
		require.Equal(t, child.Height, retrieved.Height)
	})
}

func TestHeadersStoreIdempotent(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badgerdb.DB) {
		headers := bstorage.NewHeaders(db)
		graph := unittest.GraphFixture()

		header := braid.GenesisHeader(graph, 0)
		require.NoError(t, headers.Store(header))
		require.NoError(t, headers.Store(header))

		retrieved, err := headers.ByHash(header.ChainID, header.Hash)
		require.NoError(t, err)
		require.Equal(t, header.Hash, retrieved.Hash)
	})
}
