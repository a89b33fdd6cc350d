package workload

import (
	"sync"

	"github.com/google/btree"

	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

func lessKey(a, b uint64) bool { return a < b }

// Pool is the shared ordered set of keys section 6's verification mode
// has not yet handed to any worker. Claim pulls the next contiguous
// slice of unused keys out of it and removes them in the same step, so
// two workers racing to claim never see the same key: the deletion and
// the read happen under the one mutex guarding the tree, not as two
// separate operations a second caller could interleave with.
//
// An ordered tree is what this needs rather than a plain map: claiming
// is "give me the next N smallest remaining keys," which a btree.BTreeG
// answers by ascending from the start and deleting as it goes, with no
// re-sort and no need to track a separate cursor.
type Pool struct {
	mu   sync.Mutex
	tree *btree.BTreeG[uint64]
}

// NewPool seeds the pool with every key in [start, start+n), minus
// whatever preloaded already claims — the keys never handed to the
// workload generator and therefore safe to assert absent at shutdown.
func NewPool(start keys.Key, n int, preloaded *btree.BTreeG[uint64]) *Pool {
	t := btree.NewG(32, lessKey)
	for k := uint64(start); k < uint64(start)+uint64(n); k++ {
		if preloaded != nil {
			if _, ok := preloaded.Get(k); ok {
				continue
			}
		}
		t.ReplaceOrInsert(k)
	}
	return &Pool{tree: t}
}

// Claim removes and returns up to n of the smallest remaining keys.
func (p *Pool) Claim(n int) []keys.Key {
	p.mu.Lock()
	defer p.mu.Unlock()

	claimed := make([]uint64, 0, n)
	p.tree.Ascend(func(item uint64) bool {
		if len(claimed) >= n {
			return false
		}
		claimed = append(claimed, item)
		return true
	})
	out := make([]keys.Key, len(claimed))
	for i, k := range claimed {
		p.tree.Delete(k)
		out[i] = keys.Key(k)
	}
	return out
}

// AllocateDisjointPools claims workers successive slices of perWorker
// keys each from a shared Pool, guaranteeing no two workers' pools
// overlap and none overlaps whatever the pool excluded at construction.
func AllocateDisjointPools(shared *Pool, workers, perWorker int) [][]keys.Key {
	pools := make([][]keys.Key, workers)
	for w := 0; w < workers; w++ {
		pools[w] = shared.Claim(perWorker)
	}
	return pools
}

// NewPreloaded builds the ordered set of keys already resident in the
// table at verification-mode start, so NewPool can exclude them.
func NewPreloaded(ks []keys.Key) *btree.BTreeG[uint64] {
	t := btree.NewG(32, lessKey)
	for _, k := range ks {
		t.ReplaceOrInsert(uint64(k))
	}
	return t
}
