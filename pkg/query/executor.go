package query

import (
	"context"
	"time"

	"github.com/dd0wney/assembly-kg/pkg/logging"
)

// Observer receives one call per executed query
type Observer interface {
	ObserveQuery(slug string, elapsed time.Duration, rows int, err error)
}

// RunnerConfig holds configuration for the Runner
type RunnerConfig struct {
	Logger   logging.Logger
	Observer Observer
	// Timeout bounds each query; it is normalized with ValidateQueryTimeout
	Timeout time.Duration
}

// Runner executes catalog queries against one graph
type Runner struct {
	graph    Graph
	logger   logging.Logger
	observer Observer
	timeout  time.Duration
}

// Outcome pairs a query with its result
type Outcome struct {
	Query  *Query
	Title  string
	Result *ResultSet
}

// NewRunner creates a runner over g
func NewRunner(g Graph, cfg RunnerConfig) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{
		graph:    g,
		logger:   logger.With(logging.Component("query")),
		observer: cfg.Observer,
		timeout:  ValidateQueryTimeout(cfg.Timeout),
	}
}

// Run executes one query with the runner's timeout
func (r *Runner) Run(ctx context.Context, q *Query, p Params) (*ResultSet, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	timer := logging.StartTimer(r.logger, "query executed", logging.QuerySlug(q.Slug))
	result, err := q.Run(ctx, r.graph, p)
	elapsed := timer.Elapsed()

	rows := 0
	if result != nil {
		rows = result.Count()
	}
	if r.observer != nil {
		r.observer.ObserveQuery(q.Slug, elapsed, rows, err)
	}

	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	timer.End(logging.Rows(rows))
	return result, nil
}

// RunAll executes the whole catalog in order and stops at the first failure
func (r *Runner) RunAll(ctx context.Context, p Params) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(catalog))
	for _, q := range catalog {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		result, err := r.Run(ctx, q, p)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, Outcome{Query: q, Title: q.Title(p), Result: result})
	}
	return outcomes, nil
}
