package cutdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/utils/unittest"
)

func TestCutFilePersistence(t *testing.T) {
	graph := unittest.GraphFixture()
	headers := bootstrappedHeaders(t, graph)
	genesis := braid.GenesisCut(graph)

	child := extendChain(t, headers, genesis, 9, 33)
	cut, err := genesis.Extend(map[braid.ChainID]*braid.BlockHeader{9: child})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cut.json")
	require.NoError(t, WriteCutFile(cut, path))

	loaded, err := LoadCutFile(graph, path)
	require.NoError(t, err)
	require.True(t, loaded.Equals(cut))
	require.Equal(t, cut.Weight(), loaded.Weight())
}

func TestLoadCutFileRejectsPartialCut(t *testing.T) {
	graph := unittest.GraphFixture()
	genesis := braid.GenesisCut(graph)

	partial := genesis.Headers()
	delete(partial, 3)
	data, err := json.Marshal(partial)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cut.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = LoadCutFile(graph, path)
	require.Error(t, err)
}

func TestLoadCutFileMissing(t *testing.T) {
	graph := unittest.GraphFixture()
	_, err := LoadCutFile(graph, filepath.Join(t.TempDir(), "nonexistent.json"))
	require.Error(t, err)
}
