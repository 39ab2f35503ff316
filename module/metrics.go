package module

import (
	"github.com/onflow/cutdb/model/braid"
)

// CutDBMetrics exposes the telemetry of the cut store's ingestion pipeline.
type CutDBMetrics interface {
	// CandidateReceived is called for every candidate handed to the store,
	// before it is queued.
	CandidateReceived(local bool)

	// CandidateUnresolved is called when a candidate is dropped because one
	// or more of its headers are not locally available yet.
	CandidateUnresolved(missingChains int)

	// CutPublished is called each time the worker installs a cut, including
	// the initial cut at startup.
	CutPublished(cut *braid.Cut)

	// QueueDepth reports the current number of queued candidates.
	QueueDepth(depth int)
}
