package storage

import (
	"sync/atomic"
)

// GetStatistics returns current store statistics
func (ts *TripleStore) GetStatistics() Statistics {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return Statistics{
		TripleCount:    uint64(ts.count),
		SubjectCount:   uint64(len(ts.spo)),
		PredicateCount: uint64(len(ts.pos)),
		Lookups:        atomic.LoadUint64(&ts.stats.Lookups),
	}
}
