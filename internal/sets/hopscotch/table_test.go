package hopscotch

import (
	"sync"
	"testing"

	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

func TestSequentialInsertRemove(t *testing.T) {
	tb := New(64, 1, 0)
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

func TestManyKeysShareHome(t *testing.T) {
	tb := New(16, 1, 0)
	tb.seed = identityHasher{}
	// Every key below collides on the same home (mod homeSlots == 16) and
	// must still chain correctly through the overflow scan.
	keysIn := []keys.Key{3, 19, 35, 51, 67}
	for _, k := range keysIn {
		if !tb.Add(k, 0) {
			t.Fatalf("Add(%d) failed", k)
		}
	}
	for _, k := range keysIn {
		if !tb.Contains(k, 0) {
			t.Fatalf("Contains(%d) should be true", k)
		}
	}
	for _, k := range keysIn {
		if !tb.Remove(k, 0) {
			t.Fatalf("Remove(%d) failed", k)
		}
	}
	for _, k := range keysIn {
		if tb.Contains(k, 0) {
			t.Fatalf("Contains(%d) should be false after Remove", k)
		}
	}
}

type identityHasher struct{}

func (identityHasher) HashWord(v uint64) uint { return uint(v) }

func TestConcurrentAddContainsRemove(t *testing.T) {
	const threads = 8
	tb := New(1<<12, threads, 1)
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
