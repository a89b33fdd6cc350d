package kcas

import (
	"sync"
	"testing"

	"github.com/g-m-twostay/hashset-lab/internal/reclaim"
)

func newTestEngine() *Engine {
	return NewEngine(reclaim.NewLeaky(1))
}

func TestSingleSlotCAS(t *testing.T) {
	eng := newTestEngine()
	s := NewSlot(10)

	d := NewDescriptor()
	d.AddValue(s, 10, 20)
	if !eng.CAS(0, d) {
		t.Fatalf("expected CAS to succeed")
	}
	if got := eng.ReadValue(0, s); got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

func TestCASFailsOnStaleExpected(t *testing.T) {
	eng := newTestEngine()
	s := NewSlot(10)

	d := NewDescriptor()
	d.AddValue(s, 999, 20)
	if eng.CAS(0, d) {
		t.Fatalf("expected CAS to fail against stale expected value")
	}
	if got := eng.ReadValue(0, s); got != 10 {
		t.Fatalf("slot must be unchanged after a failed CAS, got %d", got)
	}
}

func TestMultiSlotAtomicity(t *testing.T) {
	eng := newTestEngine()
	a, b, c := NewSlot(1), NewSlot(2), NewSlot(3)

	d := NewDescriptor()
	d.AddValue(a, 1, 10)
	d.AddValue(b, 2, 20)
	d.AddValue(c, 3, 30)

	if !eng.CAS(0, d) {
		t.Fatalf("expected multi-slot CAS to succeed")
	}
	for _, sv := range []struct {
		s    *Slot
		want uint64
	}{{a, 10}, {b, 20}, {c, 30}} {
		if got := eng.ReadValue(0, sv.s); got != sv.want {
			t.Fatalf("got %d, want %d", got, sv.want)
		}
	}
}

func TestConcurrentDescriptorsOnSharedSlot(t *testing.T) {
	eng := newTestEngine()
	s := NewSlot(0)

	const n = 64
	var wg sync.WaitGroup
	successes := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := NewDescriptor()
			d.AddValue(s, 0, uint64(i+1))
			successes[i] = eng.CAS(i, d)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, ok := range successes {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning CAS on the shared slot, got %d", wins)
	}
	if got := eng.ReadValue(0, s); got == 0 {
		t.Fatalf("slot should have been updated by the winner")
	}
}
