// Package graphql exposes the query catalog and the graph's entities as a GraphQL
// schema.
package graphql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/assembly-kg/pkg/query"
	"github.com/dd0wney/assembly-kg/pkg/rdf"
	"github.com/dd0wney/assembly-kg/pkg/vocabulary"
)

// Store is the read access the schema needs
type Store interface {
	query.Graph
	Object(s, p rdf.Term) (rdf.Term, bool)
	Objects(s, p rdf.Term) []rdf.Term
	InstancesOf(class rdf.Term) []rdf.Term
}

// catalogEntry is the source value of a CatalogQuery
type catalogEntry struct {
	q      *query.Query
	params query.Params
}

// resultView is the source value of a Result
type resultView struct {
	q      *query.Query
	title  string
	result *query.ResultSet
}

// GenerateSchema generates the GraphQL schema over store
func GenerateSchema(store Store) (graphql.Schema, error) {
	// Entity fields read straight from the store
	id := &graphql.Field{
		Type: graphql.NewNonNull(graphql.ID),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			_, id, _ := vocabulary.EntityID(p.Source.(rdf.Term))
			return id, nil
		},
	}
	iri := &graphql.Field{
		Type: graphql.NewNonNull(graphql.String),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(rdf.Term).Value, nil
		},
	}
	property := func(pred rdf.Term) *graphql.Field {
		return &graphql.Field{
			Type:    graphql.String,
			Resolve: objectResolver(store, pred),
		}
	}

	materialType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Material",
		Fields: graphql.Fields{
			"id":    id,
			"iri":   iri,
			"label": property(rdf.Label),
			"grade": property(vocabulary.Grade),
		},
	})

	manufacturerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Manufacturer",
		Fields: graphql.Fields{
			"id":      id,
			"iri":     iri,
			"label":   property(rdf.Label),
			"country": property(vocabulary.Country),
		},
	})

	partType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Part",
		Fields: graphql.Fields{
			"id":       id,
			"iri":      iri,
			"label":    property(rdf.Label),
			"weightKg": property(vocabulary.WeightKg),
			"costUSD":  property(vocabulary.CostUSD),
			"qty": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					o, ok := store.Object(p.Source.(rdf.Term), vocabulary.Qty)
					if !ok {
						return nil, nil
					}
					qty, err := strconv.Atoi(o.Value)
					if err != nil {
						return nil, fmt.Errorf("qty %q is not an integer", o.Value)
					}
					return qty, nil
				},
			},
			"material": &graphql.Field{
				Type:    materialType,
				Resolve: linkResolver(store, vocabulary.UsesMaterial),
			},
			"manufacturer": &graphql.Field{
				Type:    manufacturerType,
				Resolve: linkResolver(store, vocabulary.ManufacturedBy),
			},
		},
	})

	assemblyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Assembly",
		Fields: graphql.Fields{
			"id":    id,
			"iri":   iri,
			"label": property(rdf.Label),
			"parts": &graphql.Field{
				Type: graphql.NewList(partType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return store.Objects(p.Source.(rdf.Term), vocabulary.HasPart), nil
				},
			},
		},
	})

	catalogType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CatalogQuery",
		Fields: graphql.Fields{
			"number": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(catalogEntry).q.Number, nil
				},
			},
			"slug": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(catalogEntry).q.Slug, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					e := p.Source.(catalogEntry)
					return e.q.Title(e.params), nil
				},
			},
			"columns": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(catalogEntry).q.Columns, nil
				},
			},
			"parameterized": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(catalogEntry).q.Parameterized, nil
				},
			},
		},
	})

	resultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Result",
		Fields: graphql.Fields{
			"slug": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(resultView).q.Slug, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(resultView).title, nil
				},
			},
			"columns": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(resultView).result.Columns, nil
				},
			},
			// Unbound cells are empty strings, as in the CSV files
			"rows": &graphql.Field{
				Type: graphql.NewList(graphql.NewList(graphql.String)),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					r := p.Source.(resultView).result
					rows := make([][]string, r.Count())
					for i := range rows {
						rows[i] = r.Strings(i)
					}
					return rows, nil
				},
			},
			"count": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(resultView).result.Count(), nil
				},
			},
		},
	})

	queryFields := graphql.Fields{
		// Always include a health check query
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return "ok", nil
			},
		},
		"queries": &graphql.Field{
			Type: graphql.NewList(catalogType),
			Args: graphql.FieldConfigArgument{
				"assembly": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				params := query.Params{AssemblyID: stringArg(p, "assembly")}
				var entries []catalogEntry
				for _, q := range query.Catalog() {
					entries = append(entries, catalogEntry{q: q, params: params})
				}
				return entries, nil
			},
		},
		"run": &graphql.Field{
			Type: resultType,
			Args: graphql.FieldConfigArgument{
				"query":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"assembly": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: runResolver(store),
		},
		"parts": &graphql.Field{
			Type: graphql.NewList(partType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return store.InstancesOf(vocabulary.Part), nil
			},
		},
		"materials": &graphql.Field{
			Type: graphql.NewList(materialType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return store.InstancesOf(vocabulary.Material), nil
			},
		},
		"manufacturers": &graphql.Field{
			Type: graphql.NewList(manufacturerType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return store.InstancesOf(vocabulary.Manufacturer), nil
			},
		},
		"assembly": &graphql.Field{
			Type: assemblyType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				a := vocabulary.AssemblyIRI(stringArg(p, "id"))
				if _, ok := store.Object(a, rdf.Type); !ok {
					return nil, nil
				}
				return a, nil
			},
		},
	}

	// Create schema
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}

	return schema, nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

// objectResolver returns the single value of pred on the source entity, or null
func objectResolver(store Store, pred rdf.Term) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		o, ok := store.Object(p.Source.(rdf.Term), pred)
		if !ok {
			return nil, nil
		}
		return o.String(), nil
	}
}

// linkResolver follows pred from the source entity to another entity
func linkResolver(store Store, pred rdf.Term) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		o, ok := store.Object(p.Source.(rdf.Term), pred)
		if !ok || !o.IsIRI() {
			return nil, nil
		}
		return o, nil
	}
}

func runResolver(store Store) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		q, err := query.Lookup(stringArg(p, "query"))
		if err != nil {
			return nil, err
		}
		params := query.Params{AssemblyID: stringArg(p, "assembly")}

		ctx := p.Context
		if ctx == nil {
			ctx = context.Background()
		}
		result, err := q.Run(ctx, store, params)
		if err != nil {
			return nil, err
		}
		return resultView{q: q, title: q.Title(params), result: result}, nil
	}
}
