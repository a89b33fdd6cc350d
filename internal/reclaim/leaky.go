package reclaim

import "unsafe"

// Leaky never frees anything it is handed. It exists so the transactional
// and K-CAS Robin-Hood tables, which never retire a pointer, can share the
// same Reclaimer-shaped plumbing as the lock-free sets at zero cost —
// Enter/Exit/Retire all compile down to nothing.
type Leaky struct {
	handles []Handle
}

func NewLeaky(threads int) *Leaky {
	return &Leaky{handles: make([]Handle, threads)}
}

func (l *Leaky) ThreadInit(tid int) {}

func (l *Leaky) Enter(tid int) {}

func (l *Leaky) Exit(tid int) {}

func (l *Leaky) GetRec(tid int) *Handle {
	return &l.handles[tid]
}

func (l *Leaky) Retire(p unsafe.Pointer, tid int) {}

func (l *Leaky) Malloc(n uintptr) unsafe.Pointer {
	return unsafe.Pointer(&make([]byte, n)[0])
}

func (l *Leaky) Free(p unsafe.Pointer) {}
