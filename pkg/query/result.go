package query

import (
	"sort"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

// ResultSet is the output of one catalog query. A zero Term in a row is an unbound
// value.
type ResultSet struct {
	Columns []string
	Rows    [][]rdf.Term
}

// Count returns the number of rows
func (r *ResultSet) Count() int {
	return len(r.Rows)
}

// Value returns the cell at row for the named column
func (r *ResultSet) Value(row int, column string) rdf.Term {
	for i, c := range r.Columns {
		if c == column {
			return r.Rows[row][i]
		}
	}
	return rdf.Term{}
}

// Strings renders a row the way CSV cells and console lines show it; unbound
// values become empty strings
func (r *ResultSet) Strings(row int) []string {
	cells := make([]string, len(r.Rows[row]))
	for i, term := range r.Rows[row] {
		cells[i] = term.String()
	}
	return cells
}

// project turns solutions into rows in column order
func project(solutions []BindingSet, columns []Var) [][]rdf.Term {
	rows := make([][]rdf.Term, 0, len(solutions))
	for _, b := range solutions {
		row := make([]rdf.Term, len(columns))
		for i, name := range columns {
			row[i] = b[name]
		}
		rows = append(rows, row)
	}
	return rows
}

// orderKey is one ORDER BY condition over a column index
type orderKey struct {
	column int
	desc   bool
}

func asc(column int) orderKey  { return orderKey{column: column} }
func desc(column int) orderKey { return orderKey{column: column, desc: true} }

// sortRows orders rows by the keys, then by every column ascending so ties come
// out the same on every run
func sortRows(rows [][]rdf.Term, keys ...orderKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := rdf.Compare(rows[i][k.column], rows[j][k.column])
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		for col := range rows[i] {
			if c := rdf.Compare(rows[i][col], rows[j][col]); c != 0 {
				return c < 0
			}
		}
		return false
	})
}
