package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
)

// Request is one GraphQL document with its variables, as posted to /graphql and as
// built by the command line
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Execute runs req against schema without a depth limit
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

// ExecuteQuery runs a document without variables
func ExecuteQuery(ctx context.Context, query string, schema graphql.Schema) *graphql.Result {
	return Execute(ctx, schema, Request{Query: query})
}
