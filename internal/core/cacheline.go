package core

import "runtime"

// CacheLineSize is the assumed line size used to pad hot per-thread and
// per-region state so independent cores don't false-share a line.
const CacheLineSize = 64

// Padded wraps T with one cache line of trailing padding. Used for the
// Epoch reclaimer's per-thread local epochs, which different threads
// hammer concurrently but independently.
type Padded[T any] struct {
	Val T
	_   [CacheLineSize]byte
}

// Pause yields the current goroutine's time slice to another runnable
// goroutine. It stands in for the original's busy-wait backoff instruction;
// Go has no portable user-mode pause, so cooperating with the scheduler via
// Gosched is the idiomatic substitute used throughout the teacher's own
// spin-lock code.
func Pause() {
	runtime.Gosched()
}
