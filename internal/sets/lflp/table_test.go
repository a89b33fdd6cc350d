package lflp

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/core"
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

type identityHasher struct{}

func (identityHasher) HashWord(v uint64) uint { return uint(v) }

// TestDuplicateAddRace is scenario 5 from spec.md section 8: three threads
// simultaneously add the same key; exactly one returns true, and at
// quiescence exactly one committed cell with that key remains, with no
// tentatives left over.
func TestDuplicateAddRace(t *testing.T) {
	const racers = 3
	tb := New(16, racers, 0, reclaim.NewLeaky(racers))
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

	committed := 0
	for _, raw := range tb.slots {
		if raw == nil || isTombstone(raw) {
			continue
		}
		if core.PointerTagged(raw) {
			t.Fatalf("tentative cell survived to quiescence at slot value %v", raw)
		}
		committed++
	}
	if committed != 1 {
		t.Fatalf("expected exactly one committed cell, found %d", committed)
	}
}

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
