package storage

import (
	"sync"
	"testing"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

func TestAddIsSetSemantics(t *testing.T) {
	ts := NewTripleStore()
	triple := rdf.T(iri("Part_P001"), rdf.Label, rdf.String("Linear Actuator LA100"))

	added, err := ts.Add(triple)
	if err != nil || !added {
		t.Fatalf("first Add = (%v, %v), want (true, nil)", added, err)
	}
	added, err = ts.Add(triple)
	if err != nil || added {
		t.Fatalf("second Add = (%v, %v), want (false, nil)", added, err)
	}
	if ts.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ts.Len())
	}
	if !ts.Contains(triple) {
		t.Error("Contains() = false for stored triple")
	}
}

func TestAddRejectsMalformedTriples(t *testing.T) {
	tests := []struct {
		name   string
		triple rdf.Triple
	}{
		{"literal subject", rdf.T(rdf.String("x"), rdf.Label, rdf.String("y"))},
		{"blank predicate", rdf.T(iri("a"), rdf.Blank("p"), rdf.String("y"))},
		{"unbound object", rdf.T(iri("a"), rdf.Label, rdf.Term{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTripleStore()
			if _, err := ts.Add(tt.triple); !IsInvalid(err) {
				t.Errorf("Add() error = %v, want ErrInvalidTriple", err)
			}
			if ts.Len() != 0 {
				t.Errorf("Len() = %d after rejected add", ts.Len())
			}
		})
	}
}

func TestBlankSubjectAccepted(t *testing.T) {
	ts := NewTripleStore()
	if _, err := ts.Add(rdf.T(rdf.Blank("b0"), rdf.Label, rdf.String("anon"))); err != nil {
		t.Fatalf("Add() with blank subject: %v", err)
	}
}

func TestFreeze(t *testing.T) {
	ts := testStore(t, partTriples()...)
	ts.Freeze()

	if !ts.ReadOnly() {
		t.Error("ReadOnly() = false after Freeze")
	}
	_, err := ts.Add(rdf.T(iri("Part_P009"), rdf.Type, iri("Part")))
	if !IsReadOnly(err) {
		t.Errorf("Add() on frozen store error = %v, want ErrReadOnly", err)
	}
	if ts.Len() != len(partTriples()) {
		t.Errorf("frozen store changed size to %d", ts.Len())
	}
}

func TestObjectsAndSubjects(t *testing.T) {
	ts := testStore(t, partTriples()...)

	objs := ts.Objects(iri("Part_P001"), iri("usesMaterial"))
	if len(objs) != 1 || objs[0] != iri("Material_M001") {
		t.Errorf("Objects() = %v", objs)
	}

	users := ts.SubjectsOf(iri("usesMaterial"), iri("Material_M001"))
	if len(users) != 2 || users[0] != iri("Part_P001") || users[1] != iri("Part_P003") {
		t.Errorf("SubjectsOf() = %v, want P001, P003 in order", users)
	}

	parts := ts.InstancesOf(iri("Part"))
	if len(parts) != 2 {
		t.Errorf("InstancesOf(Part) = %d, want 2", len(parts))
	}

	if _, ok := ts.Object(iri("Part_P999"), rdf.Label); ok {
		t.Error("Object() found a label for an absent subject")
	}
	label, ok := ts.Object(iri("Material_M001"), rdf.Label)
	if !ok || label != rdf.String("Aluminum") {
		t.Errorf("Object() = %v, %v", label, ok)
	}
}

func TestMatch(t *testing.T) {
	ts := testStore(t, partTriples()...)

	tests := []struct {
		name    string
		s, p, o rdf.Term
		want    int
	}{
		{"all", rdf.Term{}, rdf.Term{}, rdf.Term{}, 7},
		{"by subject", iri("Part_P001"), rdf.Term{}, rdf.Term{}, 3},
		{"by subject and predicate", iri("Part_P001"), rdf.Label, rdf.Term{}, 1},
		{"by predicate", rdf.Label, rdf.Term{}, rdf.Term{}, 0},
		{"by predicate only", rdf.Term{}, rdf.Label, rdf.Term{}, 3},
		{"by predicate and object", rdf.Term{}, rdf.Type, iri("Part"), 2},
		{"by object only", rdf.Term{}, rdf.Term{}, iri("Material_M001"), 2},
		{"fully bound", iri("Part_P003"), rdf.Type, iri("Part"), 1},
		{"no match", iri("Part_P003"), rdf.Type, iri("Material"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ts.Match(tt.s, tt.p, tt.o); len(got) != tt.want {
				t.Errorf("Match() returned %d triples, want %d: %v", len(got), tt.want, got)
			}
		})
	}
}

func TestTriplesAreSorted(t *testing.T) {
	ts := testStore(t, partTriples()...)
	triples := ts.Triples()

	for i := 1; i < len(triples); i++ {
		prev, cur := triples[i-1], triples[i]
		if rdf.Compare(prev.S, cur.S) > 0 {
			t.Fatalf("triples out of order at %d: %v before %v", i, prev, cur)
		}
	}
}

func TestPrefixes(t *testing.T) {
	ts := NewTripleStore()
	ts.BindPrefix("ex", testNS)

	p := ts.Prefixes()
	p["ex"] = "mutated"
	if ts.Prefixes()["ex"] != testNS {
		t.Error("Prefixes() should return a copy")
	}
}

func TestStatistics(t *testing.T) {
	ts := testStore(t, partTriples()...)
	ts.Objects(iri("Part_P001"), rdf.Label)
	ts.SubjectsOf(rdf.Type, iri("Part"))

	stats := ts.GetStatistics()
	if stats.TripleCount != 7 {
		t.Errorf("TripleCount = %d, want 7", stats.TripleCount)
	}
	if stats.SubjectCount != 3 {
		t.Errorf("SubjectCount = %d, want 3", stats.SubjectCount)
	}
	if stats.PredicateCount != 3 {
		t.Errorf("PredicateCount = %d, want 3", stats.PredicateCount)
	}
	if stats.Lookups != 2 {
		t.Errorf("Lookups = %d, want 2", stats.Lookups)
	}
}

func TestConcurrentReaders(t *testing.T) {
	ts := testStore(t, partTriples()...)
	ts.Freeze()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if len(ts.InstancesOf(iri("Part"))) != 2 {
					t.Error("concurrent read saw wrong instance count")
					return
				}
			}
		}()
	}
	wg.Wait()
}
