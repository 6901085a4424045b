package storage

import (
	"sync/atomic"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

// Objects returns the objects of (s, p, ?), sorted
func (ts *TripleStore) Objects(s, p rdf.Term) []rdf.Term {
	ts.mu.RLock()
	atomic.AddUint64(&ts.stats.Lookups, 1)
	objs := ts.spo[s][p]
	out := make([]rdf.Term, 0, len(objs))
	for o := range objs {
		out = append(out, o)
	}
	ts.mu.RUnlock()
	return sortTerms(out)
}

// Object returns one object of (s, p, ?). With several objects the smallest in term
// order is returned so the choice is stable.
func (ts *TripleStore) Object(s, p rdf.Term) (rdf.Term, bool) {
	objs := ts.Objects(s, p)
	if len(objs) == 0 {
		return rdf.Term{}, false
	}
	return objs[0], true
}

// SubjectsOf returns the subjects of (?, p, o), sorted
func (ts *TripleStore) SubjectsOf(p, o rdf.Term) []rdf.Term {
	ts.mu.RLock()
	atomic.AddUint64(&ts.stats.Lookups, 1)
	subs := ts.pos[p][o]
	out := make([]rdf.Term, 0, len(subs))
	for s := range subs {
		out = append(out, s)
	}
	ts.mu.RUnlock()
	return sortTerms(out)
}

// InstancesOf returns every subject typed with class via rdf:type
func (ts *TripleStore) InstancesOf(class rdf.Term) []rdf.Term {
	return ts.SubjectsOf(rdf.Type, class)
}

// Match returns the triples matching a pattern. A zero Term in any position is a
// wildcard. The cheapest index for the bound positions is used.
func (ts *TripleStore) Match(s, p, o rdf.Term) []rdf.Triple {
	ts.mu.RLock()
	atomic.AddUint64(&ts.stats.Lookups, 1)

	var out []rdf.Triple
	emit := func(s, p, o rdf.Term) { out = append(out, rdf.T(s, p, o)) }

	switch {
	case !s.IsZero():
		for pred, objs := range ts.spo[s] {
			if !p.IsZero() && pred != p {
				continue
			}
			for obj := range objs {
				if o.IsZero() || obj == o {
					emit(s, pred, obj)
				}
			}
		}
	case !p.IsZero():
		for obj, subs := range ts.pos[p] {
			if !o.IsZero() && obj != o {
				continue
			}
			for sub := range subs {
				emit(sub, p, obj)
			}
		}
	default:
		for sub, preds := range ts.spo {
			for pred, objs := range preds {
				for obj := range objs {
					if o.IsZero() || obj == o {
						emit(sub, pred, obj)
					}
				}
			}
		}
	}
	ts.mu.RUnlock()

	rdf.SortTriples(out)
	return out
}
