package reclaim

import (
	"sync/atomic"
	"testing"
	"unsafe"
)

// TestEpochDrainOrdering is scenario 6 from spec.md section 8: thread 0
// retires p at epoch E; threads 1..T-1 each complete an op and hit Exit;
// after two global epoch advances, the next Enter on thread 0 frees p; p
// must not be freed before then.
func TestEpochDrainOrdering(t *testing.T) {
	const threads = 4
	var freed atomic.Int32
	e := NewEpoch(threads, func(unsafe.Pointer) { freed.Add(1) })
	for i := 0; i < threads; i++ {
		e.ThreadInit(i)
	}

	var p int
	e.Enter(0)
	e.Retire(unsafe.Pointer(&p), 0)
	e.Exit(0)

	if freed.Load() != 0 {
		t.Fatalf("p freed before any peer advanced past retiring epoch")
	}

	// Peers 1..3 complete a trivial op each, advancing the epoch once per
	// CAS race won. Run it enough times to guarantee two advances.
	for round := 0; round < 2; round++ {
		for i := 1; i < threads; i++ {
			e.Enter(i)
			e.Exit(i)
		}
	}

	if freed.Load() != 0 {
		t.Fatalf("p freed before thread 0 re-entered to drain its own list")
	}

	e.Enter(0)

	if freed.Load() != 1 {
		t.Fatalf("expected p freed exactly once after drain, got %d frees", freed.Load())
	}
}

func TestLeakyNeverFrees(t *testing.T) {
	l := NewLeaky(1)
	var p int
	l.Retire(unsafe.Pointer(&p), 0)
	l.Free(unsafe.Pointer(&p))
	// No assertion target beyond "this must not panic or call back into
	// anything" — Leaky has no free callback to invoke.
}
