// Package verify implements the -V verification-mode oracle of spec.md
// section 6: a single-threaded, independently-correct set tracked under
// one mutex, checked against the concurrent table under test at
// quiescence. It is deliberately not the thing being benchmarked, so it
// is built on a plain library set rather than anything lock-free.
package verify

import (
	"sync"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

// Oracle mirrors, serially, every Add/Remove the workload issues so its
// final contents are the ground truth the table under test is diffed
// against.
type Oracle struct {
	mu  sync.Mutex
	set *hashset.Set
}

func NewOracle() *Oracle {
	return &Oracle{set: hashset.New()}
}

// Add mirrors a successful Add: it reports whether the key was newly
// inserted, matching the Set.Add contract so callers can cross-check
// return values, not just final membership.
func (o *Oracle) Add(k keys.Key) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.set.Contains(k) {
		return false
	}
	o.set.Add(k)
	return true
}

func (o *Oracle) Remove(k keys.Key) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.set.Contains(k) {
		return false
	}
	o.set.Remove(k)
	return true
}

func (o *Oracle) Contains(k keys.Key) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.set.Contains(k)
}

// Keys returns every key the oracle currently believes present. Callers
// diff this against the table's Snapshot at quiescence.
func (o *Oracle) Keys() []keys.Key {
	o.mu.Lock()
	defer o.mu.Unlock()
	vals := o.set.Values()
	out := make([]keys.Key, len(vals))
	for i, v := range vals {
		out[i] = v.(keys.Key)
	}
	return out
}
