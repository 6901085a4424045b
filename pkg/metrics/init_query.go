package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initQueryMetrics() {
	r.QueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "kg_queries_total",
			Help: "Total number of catalog queries executed",
		},
		[]string{"query", "status"},
	)

	r.QueryDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kg_query_duration_seconds",
			Help:    "Catalog query execution duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"query"},
	)

	r.QueryRows = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kg_query_rows",
			Help: "Number of rows returned by the last run of each query",
		},
		[]string{"query"},
	)

	r.SlowQueries = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "kg_slow_queries_total",
			Help: "Total number of slow queries (>1s)",
		},
		[]string{"query"},
	)
}
