package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExportMetrics() {
	r.ExportFilesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "kg_export_files_total",
			Help: "Total number of CSV files written",
		},
		[]string{"status"},
	)

	r.ExportRowsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "kg_export_rows_total",
			Help: "Total number of data rows written to CSV files",
		},
	)
}
