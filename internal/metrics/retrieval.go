package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval fan-out Prometheus metrics.
var (
	AggregateCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragdex",
			Name:      "aggregate_calls_total",
			Help:      "Total multi-collection aggregate calls",
		},
		[]string{"status"}, // "success" / "error"
	)

	AggregateFanout = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ragdex",
			Name:      "aggregate_fanout_collections",
			Help:      "Number of collections queried per aggregate call",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
	)

	CollectionQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragdex",
			Name:      "collection_query_duration_seconds",
			Help:      "Per-collection similarity query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"status"},
	)

	StreamEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragdex",
			Name:      "stream_events_total",
			Help:      "Total streaming query events emitted",
		},
		[]string{"type"},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(AggregateCallsTotal)
	prometheus.MustRegister(AggregateFanout)
	prometheus.MustRegister(CollectionQueryDuration)
	prometheus.MustRegister(StreamEventsTotal)
	retrievalMetricsRegistered = true
}
