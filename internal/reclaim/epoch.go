package reclaim

import (
	"sync/atomic"
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/core"
)

// Epoch is a three-epoch rotating-garbage-list reclaimer: a global epoch E,
// per-thread local epochs e_t, and three garbage lists per thread indexed
// by e_t mod 3. A retired pointer becomes safe to free once every thread
// has passed through Exit at a later epoch. A pointer retired at local
// epoch e is filed under list e mod 3 and freed by its owning thread's
// Enter the next time that thread moves to an epoch congruent to e mod 3
// (e+3 at the earliest); by then the global epoch has advanced at least
// twice past e and every peer has moved on.
type Epoch struct {
	global  atomic.Uint64
	local   []core.Padded[atomic.Uint64]
	garbage [][3][]unsafe.Pointer
	handles []Handle
	free    FreeFunc
	threads int
}

func NewEpoch(threads int, free FreeFunc) *Epoch {
	return &Epoch{
		local:   make([]core.Padded[atomic.Uint64], threads),
		garbage: make([][3][]unsafe.Pointer, threads),
		handles: make([]Handle, threads),
		free:    free,
		threads: threads,
	}
}

func (e *Epoch) ThreadInit(tid int) {
	e.local[tid].Val.Store(e.global.Load())
}

// Enter bumps tid's local epoch up to the current global epoch if it has
// fallen behind, and drains the garbage list the new epoch now owns before
// doing anything else — the list at that index holds only pointers retired
// at local epoch g-3 or earlier and is guaranteed quiescent.
func (e *Epoch) Enter(tid int) {
	g := e.global.Load()
	if e.local[tid].Val.Load() < g {
		e.drain(tid, int(g%3))
		e.local[tid].Val.Store(g)
	}
}

func (e *Epoch) drain(tid int, idx int) {
	list := e.garbage[tid][idx]
	for _, p := range list {
		e.free(p)
	}
	e.garbage[tid][idx] = list[:0]
}

// Exit tries to advance the global epoch once tid has caught up to it and
// every other thread has too. Only ever moves the epoch forward by one via
// CAS; a lost race just means another thread advanced it first.
func (e *Epoch) Exit(tid int) {
	g := e.global.Load()
	if e.local[tid].Val.Load() != g {
		return
	}
	for i := 0; i < e.threads; i++ {
		if i != tid && e.local[i].Val.Load() != g {
			return
		}
	}
	e.global.CompareAndSwap(g, g+1)
}

func (e *Epoch) GetRec(tid int) *Handle {
	return &e.handles[tid]
}

// Retire files p under tid's current-epoch garbage list. Each thread's
// three lists are single-producer/single-consumer: tid writes here, and
// only tid ever reads them back, inside its own Enter.
func (e *Epoch) Retire(p unsafe.Pointer, tid int) {
	idx := int(e.local[tid].Val.Load() % 3)
	e.garbage[tid][idx] = append(e.garbage[tid][idx], p)
}

func (e *Epoch) Malloc(n uintptr) unsafe.Pointer {
	return unsafe.Pointer(&make([]byte, n)[0])
}

func (e *Epoch) Free(p unsafe.Pointer) {
	e.free(p)
}
