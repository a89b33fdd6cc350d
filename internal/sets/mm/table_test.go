package mm

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/keys"
	"github.com/g-m-twostay/hashset-lab/internal/reclaim"
)

func TestSequentialInsertRemove(t *testing.T) {
	tb := New(16, 1, 0, reclaim.NewLeaky(1))
	if !tb.Add(7, 0) {
		t.Fatalf("Add(7) should succeed on empty set")
	}
	if tb.Add(7, 0) {
		t.Fatalf("Add(7) twice should return false")
	}
	if !tb.Contains(7, 0) {
		t.Fatalf("Contains(7) should be true after Add")
	}
	if !tb.Remove(7, 0) {
		t.Fatalf("Remove(7) should succeed")
	}
	if tb.Contains(7, 0) {
		t.Fatalf("Contains(7) should be false after Remove")
	}
	if tb.Remove(7, 0) {
		t.Fatalf("Remove(7) twice should return false")
	}
}

// TestSameBucketOrdering is scenario 4 from spec.md section 8: two
// threads add the distinct keys 3 and 5 into the same empty bucket, both
// adds succeed, the list stays sorted, and removing 3 leaves [5]. The
// same-key race is covered by TestDuplicateAddRace.
func TestSameBucketOrdering(t *testing.T) {
	tb := New(2, 2, 0, reclaim.NewLeaky(2))
	tb.seed = identityHasher{}

	var wg sync.WaitGroup
	results := make([]bool, 2)
	wg.Add(2)
	go func() { defer wg.Done(); results[0] = tb.Add(3, 0) }()
	go func() { defer wg.Done(); results[1] = tb.Add(5, 1) }()
	wg.Wait()

	if !results[0] || !results[1] {
		t.Fatalf("both adds of distinct keys should succeed, got %v", results)
	}
	got := tb.Snapshot(nil)
	if len(got) != 2 || got[0] != 3 || got[1] != 5 {
		t.Fatalf("expected sorted [3 5], got %v", got)
	}

	if !tb.Remove(3, 0) {
		t.Fatalf("Remove(3) should succeed")
	}
	got = tb.Snapshot(nil)
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("expected [5] after removing 3, got %v", got)
	}
}

func TestDuplicateAddRace(t *testing.T) {
	const racers = 8
	tb := New(4, racers, 0, reclaim.NewLeaky(racers))
	tb.seed = identityHasher{}

	var wg sync.WaitGroup
	results := make([]bool, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = tb.Add(10, i)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, r := range results {
		if r {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning Add(10), got %d", wins)
	}
	got := tb.Snapshot(nil)
	if len(got) != 1 || got[0] != 10 {
		t.Fatalf("expected exactly one committed 10, got %v", got)
	}
}

type identityHasher struct{}

func (identityHasher) HashWord(v uint64) uint { return uint(v) }

func TestConcurrentAddContainsRemove(t *testing.T) {
	const threads = 8
	tb := New(1<<12, threads, 1, reclaim.NewEpoch(threads, func(p unsafe.Pointer) {}))
	for tid := 0; tid < threads; tid++ {
		tb.ThreadInit(tid)
	}

	var wg sync.WaitGroup
	perThread := 100
	for tid := 0; tid < threads; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			base := keys.Key(tid*perThread + 1)
			for i := 0; i < perThread; i++ {
				k := base + keys.Key(i)
				if !tb.Add(k, tid) {
					t.Errorf("Add(%d) unexpectedly failed", k)
					return
				}
				if !tb.Contains(k, tid) {
					t.Errorf("Contains(%d) false immediately after Add", k)
					return
				}
				if !tb.Remove(k, tid) {
					t.Errorf("Remove(%d) unexpectedly failed", k)
					return
				}
				if tb.Contains(k, tid) {
					t.Errorf("Contains(%d) true immediately after Remove", k)
					return
				}
			}
		}(tid)
	}
	wg.Wait()
}
