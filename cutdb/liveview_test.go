package cutdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/utils/unittest"
)

func TestLiveViewYieldsCurrentCutFirst(t *testing.T) {
	graph := unittest.GraphFixture()
	headers := bootstrappedHeaders(t, graph)
	genesis := braid.GenesisCut(graph)

	conf := DefaultConfig()
	conf.InitialCut = genesis

	db, err := NewCutDB(unittest.Logger(), newTestMetrics(), headers, graph, conf)
	require.NoError(t, err)

	sub := db.Subscribe()
	cut, err := sub.Next(context.Background())
	require.NoError(t, err)
	require.True(t, cut.Equals(genesis))
}

// TestLiveViewSkipsEqualPublish checks that re-publishing an equal cut does
// not wake the subscription: values are compared by value, not by reference.
func TestLiveViewSkipsEqualPublish(t *testing.T) {
	graph := unittest.GraphFixture()
	headers := bootstrappedHeaders(t, graph)
	genesis := braid.GenesisCut(graph)

	conf := DefaultConfig()
	conf.InitialCut = genesis
	tm := newTestMetrics()
	db := startedCutDB(t, headers, graph, conf, tm)

	sub := db.Subscribe()
	first, err := sub.Next(context.Background())
	require.NoError(t, err)
	require.True(t, first.Equals(genesis))

	<-tm.published // initial publish at construction

	// a candidate identical to the current cut publishes an equal value
	db.AddCandidate(context.Background(), genesis.Hashes())
	select {
	case <-tm.published:
	case <-time.After(time.Second):
		t.Fatal("candidate was not processed in time")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = sub.Next(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestLiveViewNoDuplicateEmission checks that the sequence never yields the
// same cut value twice in direct succession.
func TestLiveViewNoDuplicateEmission(t *testing.T) {
	graph := unittest.GraphFixture()
	headers := bootstrappedHeaders(t, graph)
	genesis := braid.GenesisCut(graph)

	conf := DefaultConfig()
	conf.InitialCut = genesis
	tm := newTestMetrics()
	db := startedCutDB(t, headers, graph, conf, tm)

	sub := db.Subscribe()
	first, err := sub.Next(context.Background())
	require.NoError(t, err)

	child := extendChain(t, headers, genesis, 4, 10)
	expected, err := genesis.Extend(map[braid.ChainID]*braid.BlockHeader{4: child})
	require.NoError(t, err)

	// an equal publish followed by an improving one: the view must emit the
	// improved cut next, never the duplicate
	db.AddCandidate(context.Background(), genesis.Hashes())
	db.AddCandidate(context.Background(), unittest.CandidateFixture(genesis, child))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	second, err := sub.Next(ctx)
	require.NoError(t, err)
	require.False(t, second.Equals(first))
	require.True(t, second.Equals(expected))
}

// TestLiveViewCoalescing replays the slow-consumer scenario: candidates C1
// (weight 10) and C2 (weight 20) advance the frontier, C3 (weight 15) is
// lighter than the published cut and dropped by the join. A subscriber
// pulling once after all three were processed observes only C2's result.
func TestLiveViewCoalescing(t *testing.T) {
	graph := unittest.GraphFixture()
	headers := bootstrappedHeaders(t, graph)
	genesis := braid.GenesisCut(graph)

	conf := DefaultConfig()
	conf.InitialCut = genesis
	tm := newTestMetrics()
	db := startedCutDB(t, headers, graph, conf, tm)

	<-tm.published // initial publish at construction

	// C1: child of genesis on chain 0, weight 10
	headerA := extendChain(t, headers, genesis, 0, 10)
	cutA, err := genesis.Extend(map[braid.ChainID]*braid.BlockHeader{0: headerA})
	require.NoError(t, err)

	// C2: child of C1's header, total weight 20
	headerB := unittest.ChildHeaderFixture(headerA, 10)
	require.NoError(t, headers.Store(headerB))
	cutB, err := genesis.Extend(map[braid.ChainID]*braid.BlockHeader{0: headerB})
	require.NoError(t, err)

	// C3: sibling fork of C1's header, weight 15 — lighter than C2's cut
	headerC := unittest.ChildHeaderFixture(headerA, 5)
	require.NoError(t, headers.Store(headerC))

	db.AddCandidate(context.Background(), unittest.CandidateFixture(genesis, headerA))
	db.AddCandidate(context.Background(), unittest.CandidateFixture(genesis, headerB))
	db.AddCandidate(context.Background(), unittest.CandidateFixture(genesis, headerC))

	for i := 0; i < 3; i++ {
		select {
		case <-tm.published:
		case <-time.After(time.Second):
			t.Fatalf("candidate %d was not processed in time", i+1)
		}
	}

	// exactly one pull after all three candidates were processed
	sub := db.Subscribe()
	cut, err := sub.Next(context.Background())
	require.NoError(t, err)
	require.True(t, cut.Equals(cutB), "subscriber must observe C2's cut")
	require.False(t, cut.Equals(cutA), "C1's intermediate cut must be skipped")
	entry, exists := cut.Header(0)
	require.True(t, exists)
	require.NotEqual(t, headerC.Hash, entry.Hash, "C3 must not be reflected")
}
