// Package rhtrans implements the lock-elision Robin-Hood set of spec.md
// section 4.5: a single ElidedLock guarding an ordinary single-threaded
// Robin-Hood table. Hardware transactional memory is a platform concern
// (spec.md section 9's design note); no library in this lab's corpus binds
// real RTM opcodes from Go, which would need architecture-specific
// assembly this repo has no grounded reference implementation for. Per the
// design note's own fallback clause — "If absent, ElidedLock reduces to a
// spin-lock and the transactional Robin-Hood set becomes a
// single-globally-locked set — still correct, much slower" — ElidedLock
// here always takes that fallback. Of the original protocol only the
// retry budget is kept, as an unused constant; Lock and Unlock are the
// whole surface the table code uses, so a build carrying real RTM support
// need only replace this file behind a build tag, never the table code.
package rhtrans

import "github.com/g-m-twostay/hashset-lab/internal/core"

// maxElisionRetries mirrors the original's retry budget before permanently
// falling back to the plain lock; kept even though this build's Lock
// always takes the fallback path, so a future HTM-backed variant slots in
// without changing callers.
const maxElisionRetries = 20

// ElidedLock is the mutual-exclusion-or-elision discipline of spec.md
// section 4.5. Under it, the Robin-Hood table it guards is ordinary
// single-threaded code: linear probe with distance comparisons for lookup,
// swap-down insertion, shift-back deletion. The linearisation point is
// lock acquisition (or, with real elision, transaction commit).
type ElidedLock struct {
	spin core.SpinLock
}

func (l *ElidedLock) Lock() {
	l.spin.Lock()
}

func (l *ElidedLock) Unlock() {
	l.spin.Unlock()
}
