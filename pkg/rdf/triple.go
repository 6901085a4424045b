package rdf

import "sort"

// Triple is one (subject, predicate, object) statement
type Triple struct {
	S Term
	P Term
	O Term
}

// T is shorthand for building a Triple
func T(s, p, o Term) Triple {
	return Triple{S: s, P: p, O: o}
}

// NTriples renders the triple as one N-Triples line without the trailing newline
func (t Triple) NTriples() string {
	return t.S.NTriples() + " " + t.P.NTriples() + " " + t.O.NTriples() + " ."
}

// SortTriples orders triples by subject, predicate, object
func SortTriples(triples []Triple) {
	sort.Slice(triples, func(i, j int) bool {
		if c := Compare(triples[i].S, triples[j].S); c != 0 {
			return c < 0
		}
		if c := Compare(triples[i].P, triples[j].P); c != 0 {
			return c < 0
		}
		return Compare(triples[i].O, triples[j].O) < 0
	})
}

// Common predicates and classes
var (
	Type     = IRI(RDFNamespace + "type")
	Property = IRI(RDFNamespace + "Property")
	Class    = IRI(RDFSNamespace + "Class")
	Label    = IRI(RDFSNamespace + "label")
	First    = IRI(RDFNamespace + "first")
	Rest     = IRI(RDFNamespace + "rest")
	Nil      = IRI(RDFNamespace + "nil")
)
