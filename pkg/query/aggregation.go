package query

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

const (
	// nullPlaceholder represents unbound values in group keys
	nullPlaceholder = "<null>"
	// groupKeySeparator separates multiple group-by values in composite keys
	groupKeySeparator = "\x00"
)

var (
	errNotCastable = errors.New("value cannot be cast to xsd:decimal")

	decimalLexical = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
)

// group is the set of solutions sharing the same group-by values
type group struct {
	key  []rdf.Term
	rows []BindingSet
}

// groupBy partitions solutions by the given variables, keeping first-seen order
func groupBy(solutions []BindingSet, vars ...Var) []*group {
	index := make(map[string]*group)
	var groups []*group

	for _, b := range solutions {
		key := buildGroupKey(b, vars)
		g, ok := index[key]
		if !ok {
			g = &group{key: make([]rdf.Term, len(vars))}
			for i, name := range vars {
				g.key[i] = b[name]
			}
			index[key] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, b)
	}

	return groups
}

// buildGroupKey creates a unique key for a group based on the bound terms
func buildGroupKey(b BindingSet, vars []Var) string {
	parts := make([]string, len(vars))
	for i, name := range vars {
		term, ok := b[name]
		if !ok || term.IsZero() {
			parts[i] = nullPlaceholder
			continue
		}
		parts[i] = term.NTriples()
	}
	return strings.Join(parts, groupKeySeparator)
}

// sumProduct computes SUM(xsd:decimal(?a) * xsd:decimal(?b)) over the group. Any
// operand that cannot be cast leaves the aggregate unbound.
func sumProduct(rows []BindingSet, a, b Var) rdf.Term {
	total := decimal.Zero
	for _, row := range rows {
		x, err := castDecimal(row[a])
		if err != nil {
			return rdf.Term{}
		}
		y, err := castDecimal(row[b])
		if err != nil {
			return rdf.Term{}
		}
		total = total.Add(x.Mul(y))
	}
	return rdf.Decimal(total)
}

// count computes COUNT(?v): the number of solutions where v is bound
func count(rows []BindingSet, name Var) rdf.Term {
	var n int64
	for _, row := range rows {
		if term, ok := row[name]; ok && !term.IsZero() {
			n++
		}
	}
	return rdf.Integer(n)
}

// minimum computes MIN(?v) in term order; numeric literals compare by value
func minimum(rows []BindingSet, name Var) rdf.Term {
	var lowest rdf.Term
	for _, row := range rows {
		term, ok := row[name]
		if !ok || term.IsZero() {
			continue
		}
		if lowest.IsZero() || rdf.Compare(term, lowest) < 0 {
			lowest = term
		}
	}
	return lowest
}

// castDecimal applies the xsd:decimal cast: numeric literals convert by value,
// booleans to 1 or 0, and plain strings when their lexical form is a decimal.
func castDecimal(t rdf.Term) (decimal.Decimal, error) {
	if !t.IsLiteral() {
		return decimal.Zero, errNotCastable
	}

	switch {
	case t.IsNumeric():
		return t.Numeric()
	case t.Datatype == rdf.XSDBoolean:
		switch t.Value {
		case "true", "1":
			return decimal.NewFromInt(1), nil
		case "false", "0":
			return decimal.Zero, nil
		}
	case t.Datatype == rdf.XSDString && t.Lang == "":
		lex := strings.TrimSpace(t.Value)
		if decimalLexical.MatchString(lex) {
			lex = strings.TrimPrefix(lex, "+")
			if strings.HasPrefix(lex, ".") {
				lex = "0" + lex
			} else if strings.HasPrefix(lex, "-.") {
				lex = "-0" + lex[1:]
			}
			return decimal.NewFromString(lex)
		}
	}
	return decimal.Zero, errNotCastable
}

// valueEqual implements the = operator: numbers compare by value, other terms by
// identity
func valueEqual(a, b rdf.Term) bool {
	if a.IsNumeric() && b.IsNumeric() {
		x, errA := a.Numeric()
		y, errB := b.Numeric()
		return errA == nil && errB == nil && x.Equal(y)
	}
	return a == b
}
