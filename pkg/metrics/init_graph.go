package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphTriples = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "kg_graph_triples",
			Help: "Number of triples in the loaded or built graph",
		},
	)

	r.GraphLoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kg_graph_load_duration_seconds",
			Help:    "Time to read and parse a graph file in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.GraphLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "kg_graph_loads_total",
			Help: "Total number of graph file loads",
		},
		[]string{"status"},
	)
}
