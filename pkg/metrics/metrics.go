package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}

// RecordQuery records a catalog query execution
func (r *Registry) RecordQuery(query, status string, duration time.Duration, rows int) {
	r.QueriesTotal.WithLabelValues(query, status).Inc()
	r.QueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	r.QueryRows.WithLabelValues(query).Set(float64(rows))

	if duration > time.Second {
		r.SlowQueries.WithLabelValues(query).Inc()
	}
}

// ObserveQuery lets the registry act as the query runner's observer
func (r *Registry) ObserveQuery(slug string, elapsed time.Duration, rows int, err error) {
	r.RecordQuery(slug, status(err), elapsed, rows)
}

// RecordGraphLoad records reading a graph file
func (r *Registry) RecordGraphLoad(triples int, duration time.Duration, err error) {
	r.GraphLoadsTotal.WithLabelValues(status(err)).Inc()
	if err != nil {
		return
	}
	r.GraphLoadDuration.Observe(duration.Seconds())
	r.GraphTriples.Set(float64(triples))
}

// SetGraphTriples records the size of a graph that was built rather than loaded
func (r *Registry) SetGraphTriples(triples int) {
	r.GraphTriples.Set(float64(triples))
}

// RecordExportFile records one CSV file written by the exporter
func (r *Registry) RecordExportFile(rows int, err error) {
	r.ExportFilesTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		r.ExportRowsTotal.Add(float64(rows))
	}
}

// WriteToTextfile writes the registry in the Prometheus text format, for the node
// exporter's textfile collector. Concurrent writers are serialized.
func (r *Registry) WriteToTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
