package storage

import (
	"sync"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

// termSet is a set of terms
type termSet map[rdf.Term]struct{}

// TripleStore is the in-memory triple store. It keeps two multimaps over the same
// set of triples:
//
//	spo: subject -> predicate -> objects
//	pos: predicate -> object -> subjects
//
// A graph is a set, so adding a triple twice is a no-op.
type TripleStore struct {
	spo map[rdf.Term]map[rdf.Term]termSet
	pos map[rdf.Term]map[rdf.Term]termSet

	// prefixes are namespace bindings carried from the source file to serializers
	prefixes map[string]string

	count    int
	readOnly bool

	mu sync.RWMutex

	stats Statistics
}

// Statistics describes the contents of a store and how often it was read
type Statistics struct {
	TripleCount    uint64
	SubjectCount   uint64
	PredicateCount uint64
	Lookups        uint64
}
