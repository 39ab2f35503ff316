package cutdb

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/onflow/cutdb/model/braid"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadCutFile loads a JSON-persisted cut, typically written by WriteCutFile
// during a previous shutdown. The file carries the bare per-chain header map;
// the cut is validated against the given graph on construction.
func LoadCutFile(graph braid.Graph, path string) (*braid.Cut, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read cut file: %w", err)
	}
	var headers map[braid.ChainID]*braid.BlockHeader
	err = json.Unmarshal(data, &headers)
	if err != nil {
		return nil, fmt.Errorf("could not decode cut file: %w", err)
	}
	cut, err := braid.NewCut(graph, headers)
	if err != nil {
		return nil, fmt.Errorf("cut file does not describe a valid cut: %w", err)
	}
	return cut, nil
}

// WriteCutFile persists a cut as JSON so a later start can resume from it.
func WriteCutFile(cut *braid.Cut, path string) error {
	data, err := json.MarshalIndent(cut.Headers(), "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode cut: %w", err)
	}
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("could not write cut file: %w", err)
	}
	return nil
}
