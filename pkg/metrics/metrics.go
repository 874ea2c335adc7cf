package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	RequisitionsGenerated prometheus.Counter
	RequisitionsFailed    *prometheus.CounterVec

	ClassifierMatches prometheus.Counter
	RuleMatches       *prometheus.CounterVec
	OverflowAssigned  prometheus.Counter
	OverflowDropped   prometheus.Counter

	TableFetchDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequisitionsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "requisitions_generated_total",
			Help: "Number of requisition documents generated",
		}),
		RequisitionsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "requisitions_failed_total",
			Help: "Number of requisition requests that failed, by error kind",
		}, []string{"kind"}),
		ClassifierMatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "classifier_matches_total",
			Help: "Number of transcript lines matched to a test field",
		}),
		RuleMatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "classifier_rule_matches_total",
			Help: "Number of matches per classifier rule",
		}, []string{"rule"}),
		OverflowAssigned: factory.NewCounter(prometheus.CounterOpts{
			Name: "classifier_overflow_assigned_total",
			Help: "Number of unmatched lines placed into overflow slots",
		}),
		OverflowDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "classifier_overflow_dropped_total",
			Help: "Number of unmatched lines dropped after overflow exhaustion",
		}),
		TableFetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "table_fetch_duration_seconds",
			Help:    "Latency of upstream table fetches",
			Buckets: prometheus.DefBuckets,
		}, []string{"table"}),
	}
}
