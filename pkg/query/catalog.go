package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
	"github.com/dd0wney/assembly-kg/pkg/vocabulary"
)

// ErrUnknownQuery is returned by Lookup for names outside the catalog
var ErrUnknownQuery = errors.New("unknown query")

// Params binds the parameterized queries
type Params struct {
	AssemblyID string
}

// Assembly maps the id to its entity IRI. The id is placed into a term, never into
// query text, so any string is safe; ids without an entity, the empty id included,
// match nothing.
func (p Params) Assembly() rdf.Term {
	return vocabulary.AssemblyIRI(p.AssemblyID)
}

// Query is one entry of the fixed catalog
type Query struct {
	Number        int
	Slug          string
	Columns       []string
	Parameterized bool

	title  string
	format func(cells []string) string
	eval   func(m *matcher, p Params) ([][]rdf.Term, error)
}

// Title returns the human-readable title; parameterized titles name the assembly
func (q *Query) Title(p Params) string {
	if q.Parameterized {
		return fmt.Sprintf(q.title, p.AssemblyID)
	}
	return q.title
}

// Line formats one result row for the console listing
func (q *Query) Line(cells []string) string {
	return q.format(cells)
}

// Run evaluates the query against g
func (q *Query) Run(ctx context.Context, g Graph, p Params) (*ResultSet, error) {
	rows, err := q.eval(&matcher{ctx: ctx, graph: g}, p)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Slug, err)
	}
	return &ResultSet{Columns: append([]string(nil), q.Columns...), Rows: rows}, nil
}

// Variables shared by the catalog queries
const (
	varA             Var = "a"
	varP             Var = "p"
	varM             Var = "m"
	varW             Var = "w"
	varC             Var = "c"
	varQ             Var = "q"
	varCost          Var = "cost"
	varPartLabel     Var = "partLabel"
	varMaterialLabel Var = "materialLabel"
	varAssemblyLabel Var = "assemblyLabel"
	varQty           Var = "qty"
	varCountry       Var = "country"
	varMinCost       Var = "minCost"
)

var catalog = []*Query{
	{
		Number:  1,
		Slug:    "q1_parts_materials",
		title:   "Parts and their materials",
		Columns: []string{"partLabel", "materialLabel"},
		format: func(c []string) string {
			return fmt.Sprintf("- %s — %s", c[0], c[1])
		},
		eval: partsAndMaterials,
	},
	{
		Number:        2,
		Slug:          "q2_parts_qty",
		title:         "Parts + quantities for assembly %s",
		Columns:       []string{"assemblyLabel", "partLabel", "qty"},
		Parameterized: true,
		format: func(c []string) string {
			return fmt.Sprintf("- %s: qty %s", c[1], c[2])
		},
		eval: partsAndQuantities,
	},
	{
		Number:        3,
		Slug:          "q3_total_weight",
		title:         "Total weight of assembly %s",
		Columns:       []string{"assemblyLabel", "totalWeightKg"},
		Parameterized: true,
		format: func(c []string) string {
			return fmt.Sprintf("- %s: %s kg", c[0], c[1])
		},
		eval: func(m *matcher, p Params) ([][]rdf.Term, error) {
			return assemblyTotal(m, p, vocabulary.WeightKg)
		},
	},
	{
		Number:        4,
		Slug:          "q4_total_cost",
		title:         "Total cost (USD) of assembly %s",
		Columns:       []string{"assemblyLabel", "totalCostUSD"},
		Parameterized: true,
		format: func(c []string) string {
			return fmt.Sprintf("- %s: %s USD", c[0], c[1])
		},
		eval: func(m *matcher, p Params) ([][]rdf.Term, error) {
			return assemblyTotal(m, p, vocabulary.CostUSD)
		},
	},
	{
		Number:        5,
		Slug:          "q5_country_of_origin",
		title:         "Countries of origin for parts in assembly %s",
		Columns:       []string{"country", "numParts"},
		Parameterized: true,
		format: func(c []string) string {
			return fmt.Sprintf("- %s: %s parts", c[0], c[1])
		},
		eval: countriesOfOrigin,
	},
	{
		Number:  6,
		Slug:    "q6_cheapest_by_material",
		title:   "Cheapest part per material",
		Columns: []string{"materialLabel", "partLabel", "minCost"},
		format: func(c []string) string {
			return fmt.Sprintf("- %s: %s at %s USD", c[0], c[1], c[2])
		},
		eval: cheapestByMaterial,
	},
	{
		Number:        7,
		Slug:          "q7_cost_weight_by_material",
		title:         "Cost & weight breakdown by material for assembly %s",
		Columns:       []string{"materialLabel", "totalCostUSD", "totalWeightKg"},
		Parameterized: true,
		format: func(c []string) string {
			return fmt.Sprintf("- %s: $%s USD, %s kg", c[0], c[1], c[2])
		},
		eval: costWeightByMaterial,
	},
}

// Catalog returns the seven queries in order
func Catalog() []*Query {
	return append([]*Query(nil), catalog...)
}

// Lookup finds a query by slug or by number ("3" or "q3_total_weight")
func Lookup(name string) (*Query, error) {
	for _, q := range catalog {
		if q.Slug == name || fmt.Sprint(q.Number) == name || strings.HasPrefix(q.Slug, name+"_") {
			return q, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
}

func seed(p Params) []BindingSet {
	return []BindingSet{{varA: p.Assembly()}}
}

// partsAndMaterials: every part's label with its material's label, by part label
func partsAndMaterials(m *matcher, _ Params) ([][]rdf.Term, error) {
	solutions, err := m.solve(nil,
		tp(v(varP), is(rdf.Type), is(vocabulary.Part)),
		tp(v(varP), is(rdf.Label), v(varPartLabel)),
		tp(v(varP), is(vocabulary.UsesMaterial), v(varM)),
		tp(v(varM), is(rdf.Label), v(varMaterialLabel)),
	)
	if err != nil {
		return nil, err
	}

	rows := project(solutions, []Var{varPartLabel, varMaterialLabel})
	sortRows(rows, asc(0))
	return rows, nil
}

// partsAndQuantities: the assembly's label with each member's label and qty
func partsAndQuantities(m *matcher, p Params) ([][]rdf.Term, error) {
	solutions, err := m.solve(seed(p),
		tp(v(varA), is(rdf.Label), v(varAssemblyLabel)),
		tp(v(varA), is(vocabulary.HasPart), v(varP)),
		tp(v(varP), is(rdf.Label), v(varPartLabel)),
		tp(v(varP), is(vocabulary.Qty), v(varQty)),
	)
	if err != nil {
		return nil, err
	}

	rows := project(solutions, []Var{varAssemblyLabel, varPartLabel, varQty})
	sortRows(rows, asc(1))
	return rows, nil
}

// assemblyTotal: SUM(measure × qty) over the members, grouped by assembly label
func assemblyTotal(m *matcher, p Params, measure rdf.Term) ([][]rdf.Term, error) {
	solutions, err := m.solve(seed(p),
		tp(v(varA), is(rdf.Label), v(varAssemblyLabel)),
		tp(v(varA), is(vocabulary.HasPart), v(varP)),
		tp(v(varP), is(measure), v(varW)),
		tp(v(varP), is(vocabulary.Qty), v(varQ)),
	)
	if err != nil {
		return nil, err
	}

	var rows [][]rdf.Term
	for _, g := range groupBy(solutions, varAssemblyLabel) {
		rows = append(rows, []rdf.Term{g.key[0], sumProduct(g.rows, varW, varQ)})
	}
	sortRows(rows, asc(0))
	return rows, nil
}

// countriesOfOrigin: member parts counted per manufacturer country, most first
func countriesOfOrigin(m *matcher, p Params) ([][]rdf.Term, error) {
	solutions, err := m.solve(seed(p),
		tp(v(varA), is(vocabulary.HasPart), v(varP)),
		tp(v(varP), is(vocabulary.ManufacturedBy), v(varM)),
		tp(v(varM), is(vocabulary.Country), v(varCountry)),
	)
	if err != nil {
		return nil, err
	}

	var rows [][]rdf.Term
	for _, g := range groupBy(solutions, varCountry) {
		rows = append(rows, []rdf.Term{g.key[0], count(g.rows, varP)})
	}
	sortRows(rows, desc(1), asc(0))
	return rows, nil
}

// cheapestByMaterial: per material, the parts whose cost equals the material's
// minimum cost; ties yield one row per part
func cheapestByMaterial(m *matcher, _ Params) ([][]rdf.Term, error) {
	costs, err := m.solve(nil,
		tp(v(varP), is(rdf.Type), is(vocabulary.Part)),
		tp(v(varP), is(vocabulary.UsesMaterial), v(varM)),
		tp(v(varP), is(vocabulary.CostUSD), v(varCost)),
	)
	if err != nil {
		return nil, err
	}

	var minima []BindingSet
	for _, g := range groupBy(costs, varM) {
		low := minimum(g.rows, varCost)
		if low.IsZero() {
			continue
		}
		minima = append(minima, BindingSet{varM: g.key[0], varMinCost: low})
	}
	if len(minima) == 0 {
		return nil, nil
	}

	solutions, err := m.solve(minima,
		tp(v(varM), is(rdf.Label), v(varMaterialLabel)),
		tp(v(varP), is(rdf.Type), is(vocabulary.Part)),
		tp(v(varP), is(vocabulary.UsesMaterial), v(varM)),
		tp(v(varP), is(vocabulary.CostUSD), v(varCost)),
		tp(v(varP), is(rdf.Label), v(varPartLabel)),
	)
	if err != nil {
		return nil, err
	}

	cheapest := solutions[:0]
	for _, b := range solutions {
		if valueEqual(b[varCost], b[varMinCost]) {
			cheapest = append(cheapest, b)
		}
	}

	rows := project(cheapest, []Var{varMaterialLabel, varPartLabel, varMinCost})
	sortRows(rows, asc(0), asc(1))
	return rows, nil
}

// costWeightByMaterial: qty-weighted cost and weight per material label among the
// assembly's members, highest cost first
func costWeightByMaterial(m *matcher, p Params) ([][]rdf.Term, error) {
	solutions, err := m.solve(seed(p),
		tp(v(varA), is(vocabulary.HasPart), v(varP)),
		tp(v(varP), is(vocabulary.UsesMaterial), v(varM)),
		tp(v(varP), is(vocabulary.CostUSD), v(varC)),
		tp(v(varP), is(vocabulary.WeightKg), v(varW)),
		tp(v(varP), is(vocabulary.Qty), v(varQ)),
		tp(v(varM), is(rdf.Label), v(varMaterialLabel)),
	)
	if err != nil {
		return nil, err
	}

	var rows [][]rdf.Term
	for _, g := range groupBy(solutions, varMaterialLabel) {
		rows = append(rows, []rdf.Term{
			g.key[0],
			sumProduct(g.rows, varC, varQ),
			sumProduct(g.rows, varW, varQ),
		})
	}
	sortRows(rows, desc(1), asc(0))
	return rows, nil
}
