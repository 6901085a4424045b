package storage

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

// TestStoreInvariants uses property-based testing to check the two indexes agree
func TestStoreInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	buildTriples := func(subjects, predicates []int, labels []string) []rdf.Triple {
		n := min(len(subjects), len(predicates), len(labels))
		out := make([]rdf.Triple, 0, n)
		for i := 0; i < n; i++ {
			s := iri("Part_P" + string(rune('A'+subjects[i]%8)))
			p := iri("prop" + string(rune('a'+predicates[i]%4)))
			out = append(out, rdf.T(s, p, rdf.String(labels[i])))
		}
		return out
	}

	properties.Property("Len equals number of distinct triples", prop.ForAll(
		func(subjects, predicates []int, labels []string) bool {
			triples := buildTriples(subjects, predicates, labels)
			ts := NewTripleStore()
			if err := ts.AddAll(triples); err != nil {
				return false
			}
			distinct := make(map[rdf.Triple]bool)
			for _, tr := range triples {
				distinct[tr] = true
			}
			return ts.Len() == len(distinct) && len(ts.Triples()) == len(distinct)
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("spo and pos indexes agree", prop.ForAll(
		func(subjects, predicates []int, labels []string) bool {
			ts := NewTripleStore()
			if err := ts.AddAll(buildTriples(subjects, predicates, labels)); err != nil {
				return false
			}
			for _, tr := range ts.Triples() {
				found := false
				for _, s := range ts.SubjectsOf(tr.P, tr.O) {
					if s == tr.S {
						found = true
						break
					}
				}
				if !found {
					return false
				}
				if len(ts.Match(tr.S, tr.P, tr.O)) != 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
