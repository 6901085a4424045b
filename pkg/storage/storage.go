package storage

import (
	"maps"
	"slices"
	"sort"
	"sync/atomic"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

// NewTripleStore creates an empty, writable store
func NewTripleStore() *TripleStore {
	return &TripleStore{
		spo:      make(map[rdf.Term]map[rdf.Term]termSet),
		pos:      make(map[rdf.Term]map[rdf.Term]termSet),
		prefixes: make(map[string]string),
	}
}

// Add inserts a triple. It reports whether the triple was new.
func (ts *TripleStore) Add(t rdf.Triple) (bool, error) {
	if err := validateTriple(t); err != nil {
		return false, err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.readOnly {
		return false, NewError("add").Triple(t).Cause(ErrReadOnly).Err()
	}

	preds, ok := ts.spo[t.S]
	if !ok {
		preds = make(map[rdf.Term]termSet)
		ts.spo[t.S] = preds
	}
	objs, ok := preds[t.P]
	if !ok {
		objs = make(termSet)
		preds[t.P] = objs
	}
	if _, exists := objs[t.O]; exists {
		return false, nil
	}
	objs[t.O] = struct{}{}

	byObject, ok := ts.pos[t.P]
	if !ok {
		byObject = make(map[rdf.Term]termSet)
		ts.pos[t.P] = byObject
	}
	subjects, ok := byObject[t.O]
	if !ok {
		subjects = make(termSet)
		byObject[t.O] = subjects
	}
	subjects[t.S] = struct{}{}

	ts.count++
	return true, nil
}

// AddAll inserts every triple, stopping at the first invalid one
func (ts *TripleStore) AddAll(triples []rdf.Triple) error {
	for _, t := range triples {
		if _, err := ts.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// Freeze makes the store read-only. Loaded graphs are frozen before queries run.
func (ts *TripleStore) Freeze() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.readOnly = true
}

// ReadOnly reports whether the store has been frozen
func (ts *TripleStore) ReadOnly() bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.readOnly
}

// Len returns the number of triples
func (ts *TripleStore) Len() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.count
}

// Contains reports whether the exact triple is present
func (ts *TripleStore) Contains(t rdf.Triple) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	atomic.AddUint64(&ts.stats.Lookups, 1)

	_, ok := ts.spo[t.S][t.P][t.O]
	return ok
}

// BindPrefix records a namespace prefix for serializers
func (ts *TripleStore) BindPrefix(prefix, namespace string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.prefixes[prefix] = namespace
}

// Prefixes returns a copy of the bound prefixes
func (ts *TripleStore) Prefixes() map[string]string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return maps.Clone(ts.prefixes)
}

// Triples returns every triple sorted by subject, predicate, object
func (ts *TripleStore) Triples() []rdf.Triple {
	ts.mu.RLock()
	out := make([]rdf.Triple, 0, ts.count)
	for s, preds := range ts.spo {
		for p, objs := range preds {
			for o := range objs {
				out = append(out, rdf.T(s, p, o))
			}
		}
	}
	ts.mu.RUnlock()

	rdf.SortTriples(out)
	return out
}

// Subjects returns every distinct subject, sorted
func (ts *TripleStore) Subjects() []rdf.Term {
	ts.mu.RLock()
	out := slices.Collect(maps.Keys(ts.spo))
	ts.mu.RUnlock()
	return sortTerms(out)
}

func sortTerms(terms []rdf.Term) []rdf.Term {
	sort.Slice(terms, func(i, j int) bool { return rdf.Compare(terms[i], terms[j]) < 0 })
	return terms
}

func validateTriple(t rdf.Triple) error {
	switch {
	case !t.S.IsIRI() && !t.S.IsBlank():
		return NewError("add").Triple(t).Position("subject").Cause(ErrInvalidTriple).Err()
	case !t.P.IsIRI():
		return NewError("add").Triple(t).Position("predicate").Cause(ErrInvalidTriple).Err()
	case t.O.IsZero():
		return NewError("add").Triple(t).Position("object").Cause(ErrInvalidTriple).Err()
	}
	return nil
}
