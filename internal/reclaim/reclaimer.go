// Package reclaim implements the memory-reclamation interface shared by the
// lock-free linear-probing and Maged-Michael chaining sets (spec.md
// section 4.2). Two backends are provided: Leaky, a no-op used by the
// algorithms that never retire anything, and Epoch, a three-epoch rotating
// garbage-list reclaimer.
package reclaim

import "unsafe"

// FreeFunc is invoked, exactly once per retired pointer, once a Reclaimer
// has proven no thread can still observe it. It stands in for the
// original's raw free(p): in Go there is no explicit deallocation, so the
// concrete set supplies the side effect it wants performed at safe-free
// time (accounting in tests, clearing a recycle-link, nothing at all).
type FreeFunc func(unsafe.Pointer)

// Handle is a per-thread, per-reference scratch slot used to re-validate an
// optimistic read against the atomic it came from. It does not by itself
// make a pointer safe to dereference across a call boundary — that
// guarantee comes from remaining inside an Enter/Exit pin — it lets a
// traversal confirm "what I just read is still what's there" without a
// second independent load.
type Handle struct {
	protected unsafe.Pointer
}

// TryProtect re-reads src, applies unmask (to strip any tag bits a caller
// encoded into the pointer) and reports whether the result still equals
// observed. On success it also records observed as the handle's protected
// value; on failure the handle is cleared.
func (h *Handle) TryProtect(observed unsafe.Pointer, src *unsafe.Pointer, unmask func(unsafe.Pointer) unsafe.Pointer) bool {
	cur := unmask(loadPointer(src))
	if cur != observed {
		h.protected = nil
		return false
	}
	h.protected = observed
	return true
}

// Set forcibly installs p as the handle's protected pointer, used when a
// caller already knows p is safe (e.g. it just allocated it itself).
func (h *Handle) Set(p unsafe.Pointer) {
	h.protected = p
}

func (h *Handle) Get() unsafe.Pointer {
	return h.protected
}

// Reclaimer is the interface both lock-free sets program against. tid is a
// stable per-thread identifier in [0, T), assigned by the harness before
// any table operation.
type Reclaimer interface {
	ThreadInit(tid int)
	Enter(tid int)
	Exit(tid int)
	GetRec(tid int) *Handle
	Retire(p unsafe.Pointer, tid int)
	Malloc(n uintptr) unsafe.Pointer
	Free(p unsafe.Pointer)
}

// Pin is the scope guard from spec.md section 4.2: every public set
// operation opens a Pin at entry and releases it on every exit path,
// including panics, so Enter is always matched by Exit.
type Pin struct {
	r   Reclaimer
	tid int
}

// EnterPin opens r's critical section for tid. Callers defer pin.Exit()
// immediately:
//
//	pin := reclaim.EnterPin(r, tid)
//	defer pin.Exit()
func EnterPin(r Reclaimer, tid int) Pin {
	r.Enter(tid)
	return Pin{r: r, tid: tid}
}

func (p Pin) Exit() {
	p.r.Exit(p.tid)
}
