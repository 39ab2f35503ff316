package metrics

import (
	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/module"
)

type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

var _ module.CutDBMetrics = (*NoopCollector)(nil)

func (nc *NoopCollector) CandidateReceived(local bool)          {}
func (nc *NoopCollector) CandidateUnresolved(missingChains int) {}
func (nc *NoopCollector) CutPublished(cut *braid.Cut)           {}
func (nc *NoopCollector) QueueDepth(depth int)                  {}
