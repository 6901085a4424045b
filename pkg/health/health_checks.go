package health

import (
	"context"
	"time"

	"github.com/dd0wney/assembly-kg/pkg/query"
	"github.com/dd0wney/assembly-kg/pkg/rdf"
	"github.com/dd0wney/assembly-kg/pkg/vocabulary"
)

// Graph is what the graph checks inspect
type Graph interface {
	query.Graph
	Len() int
	InstancesOf(class rdf.Term) []rdf.Term
}

// AliveCheck always reports healthy
func AliveCheck() CheckFunc {
	return func() Check {
		return Check{Name: "process", Status: StatusHealthy}
	}
}

// GraphCheck reports the size of the graph. A graph without parts loads fine but
// answers every query with nothing, so it is degraded.
func GraphCheck(g Graph) CheckFunc {
	return func() Check {
		check := Check{Name: "graph", Details: make(map[string]any)}
		if g == nil {
			check.Status = StatusUnhealthy
			check.Message = "no graph loaded"
			return check
		}

		parts := len(g.InstancesOf(vocabulary.Part))
		check.Details["triples"] = g.Len()
		check.Details["parts"] = parts

		if parts == 0 {
			check.Status = StatusDegraded
			check.Message = "graph has no parts"
		} else {
			check.Status = StatusHealthy
		}
		return check
	}
}

// QueryCheck runs one catalog query against g within timeout
func QueryCheck(g query.Graph, q *query.Query, p query.Params, timeout time.Duration) CheckFunc {
	return func() Check {
		check := Check{Name: "query", Details: map[string]any{"query": q.Slug}}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := q.Run(ctx, g, p)
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		check.Status = StatusHealthy
		check.Details["rows"] = result.Count()
		return check
	}
}
