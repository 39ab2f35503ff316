package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onflow/cutdb/model/braid"
	"github.com/onflow/cutdb/module"
)

const (
	namespaceCutDB     = "cutdb"
	subsystemIngestion = "ingestion"
)

// CutDBCollector tracks the cut store's ingestion pipeline.
type CutDBCollector struct {
	cutWeight            prometheus.Gauge
	cutHeight            prometheus.Gauge
	queueDepth           prometheus.Gauge
	cutsPublished        prometheus.Counter
	candidatesReceived   *prometheus.CounterVec
	candidatesUnresolved prometheus.Counter
}

var _ module.CutDBMetrics = (*CutDBCollector)(nil)

func NewCutDBCollector() *CutDBCollector {
	cc := &CutDBCollector{

		cutWeight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:      "cut_weight",
			Namespace: namespaceCutDB,
			Subsystem: subsystemIngestion,
			Help:      "the accumulated weight of the current published cut",
		}),

		cutHeight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:      "cut_height",
			Namespace: namespaceCutDB,
			Subsystem: subsystemIngestion,
			Help:      "the accumulated height of the current published cut",
		}),

		queueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name:      "queue_depth",
			Namespace: namespaceCutDB,
			Subsystem: subsystemIngestion,
			Help:      "the number of candidates waiting in the ingestion queue",
		}),

		cutsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name:      "cuts_published_total",
			Namespace: namespaceCutDB,
			Subsystem: subsystemIngestion,
			Help:      "the number of cuts installed in the cut state cell",
		}),

		candidatesReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:      "candidates_received_total",
			Namespace: namespaceCutDB,
			Subsystem: subsystemIngestion,
			Help:      "the number of candidate cuts handed to the store",
		}, []string{LabelOrigin}),

		candidatesUnresolved: promauto.NewCounter(prometheus.CounterOpts{
			Name:      "candidates_unresolved_total",
			Namespace: namespaceCutDB,
			Subsystem: subsystemIngestion,
			Help:      "the number of candidate cuts dropped because their headers were not locally available",
		}),
	}

	return cc
}

func (cc *CutDBCollector) CandidateReceived(local bool) {
	origin := OriginRemote
	if local {
		origin = OriginLocal
	}
	cc.candidatesReceived.With(prometheus.Labels{LabelOrigin: origin}).Inc()
}

func (cc *CutDBCollector) CandidateUnresolved(missingChains int) {
	cc.candidatesUnresolved.Inc()
}

func (cc *CutDBCollector) CutPublished(cut *braid.Cut) {
	cc.cutsPublished.Inc()
	cc.cutWeight.Set(float64(cut.Weight()))
	cc.cutHeight.Set(float64(cut.Height()))
}

func (cc *CutDBCollector) QueueDepth(depth int) {
	cc.queueDepth.Set(float64(depth))
}
