package query

import (
	"context"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

// Graph is the read access the catalog needs from a triple store
type Graph interface {
	Match(s, p, o rdf.Term) []rdf.Triple
}

// Var names a query variable
type Var string

// BindingSet maps variables to terms for one solution
type BindingSet map[Var]rdf.Term

func (b BindingSet) clone() BindingSet {
	out := make(BindingSet, len(b)+2)
	for k, v := range b {
		out[k] = v
	}
	return out
}

// slot is one position of a triple pattern: a variable or a fixed term
type slot struct {
	variable Var
	term     rdf.Term
}

func v(name Var) slot       { return slot{variable: name} }
func is(term rdf.Term) slot { return slot{term: term} }

// resolve returns the term for the slot under b; a zero Term is a wildcard
func (s slot) resolve(b BindingSet) rdf.Term {
	if s.variable == "" {
		return s.term
	}
	return b[s.variable]
}

// bind unifies the slot with a matched term
func (s slot) bind(b BindingSet, term rdf.Term) bool {
	if s.variable == "" {
		return true
	}
	if bound, ok := b[s.variable]; ok {
		return bound == term
	}
	b[s.variable] = term
	return true
}

type pattern struct {
	s, p, o slot
}

func tp(s, p, o slot) pattern {
	return pattern{s: s, p: p, o: o}
}

// matcher joins triple patterns over a graph with nested loops
type matcher struct {
	ctx   context.Context
	graph Graph
}

// solve extends every seed solution through each pattern in order. A nil seed
// starts from a single empty solution.
func (m *matcher) solve(seed []BindingSet, patterns ...pattern) ([]BindingSet, error) {
	solutions := seed
	if solutions == nil {
		solutions = []BindingSet{{}}
	}

	for _, pat := range patterns {
		if err := m.ctx.Err(); err != nil {
			return nil, err
		}

		next := make([]BindingSet, 0, len(solutions))
		for _, b := range solutions {
			s, p, o := pat.s.resolve(b), pat.p.resolve(b), pat.o.resolve(b)
			for _, t := range m.graph.Match(s, p, o) {
				extended := b.clone()
				if pat.s.bind(extended, t.S) && pat.p.bind(extended, t.P) && pat.o.bind(extended, t.O) {
					next = append(next, extended)
				}
			}
		}
		solutions = next
		if len(solutions) == 0 {
			break
		}
	}

	return solutions, nil
}
