package storage

import (
	"testing"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

const testNS = "http://example.org/eng#"

func iri(local string) rdf.Term {
	return rdf.IRI(testNS + local)
}

// testStore creates a store holding the given triples
func testStore(t *testing.T, triples ...rdf.Triple) *TripleStore {
	t.Helper()

	ts := NewTripleStore()
	if err := ts.AddAll(triples); err != nil {
		t.Fatalf("Failed to populate store: %v", err)
	}
	return ts
}

// partTriples returns a small two-part graph
func partTriples() []rdf.Triple {
	return []rdf.Triple{
		rdf.T(iri("Part_P001"), rdf.Type, iri("Part")),
		rdf.T(iri("Part_P001"), rdf.Label, rdf.String("Linear Actuator LA100")),
		rdf.T(iri("Part_P001"), iri("usesMaterial"), iri("Material_M001")),
		rdf.T(iri("Part_P003"), rdf.Type, iri("Part")),
		rdf.T(iri("Part_P003"), rdf.Label, rdf.String("Aluminum Bracket BR25")),
		rdf.T(iri("Part_P003"), iri("usesMaterial"), iri("Material_M001")),
		rdf.T(iri("Material_M001"), rdf.Label, rdf.String("Aluminum")),
	}
}
