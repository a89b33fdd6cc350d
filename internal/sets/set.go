// Package sets defines the uniform interface every concurrent set
// algorithm in this lab exposes to the harness (spec.md section 4.1). The
// five implementations — rhkcas, rhtrans, hopscotch, lflp, mm — are peers:
// the harness picks one by name at startup and never mixes them.
package sets

import "github.com/g-m-twostay/hashset-lab/internal/keys"

// Set is linearisable per spec.md section 4.1. tid is a stable per-thread
// identifier in [0, T) assigned before any call; every implementation here
// accepts it so its reclaimer and per-thread bookkeeping can key off it.
type Set interface {
	// ThreadInit registers tid with the set's reclaimer and any other
	// per-thread state before tid issues its first operation.
	ThreadInit(tid int) bool

	// Contains reports whether k is linearised as present.
	Contains(k keys.Key, tid int) bool

	// Add inserts k, returning true iff it was not already present.
	Add(k keys.Key, tid int) bool

	// Remove deletes k, returning true iff it was present and this call
	// removed it.
	Remove(k keys.Key, tid int) bool
}

// Verifiable is implemented by sets that can enumerate their own contents
// without further synchronisation, for use only at quiescence (spec.md
// section 6, verification mode) — never on the concurrent path.
type Verifiable interface {
	Set
	// Snapshot appends every resident key to dst and returns it. Callers
	// must guarantee no concurrent Add/Remove/ThreadInit is in flight.
	Snapshot(dst []keys.Key) []keys.Key
}
