// Package hopscotch implements the neighbourhood-based set of spec.md
// section 4.6: segment-locked writers, lock-free optimistic readers, and a
// cacheline-preferring bucket claim on insertion. The delta-offset linked
// list per home slot is grounded on the teacher's Sets/HashSet (dHash and
// dLink fields chaining physically through the same bucket array); unlike
// that sequential implementation, which must keep every list member within
// a byte-sized neighbourhood so it can relocate elements on overflow, this
// set never resizes (a declared non-goal) and widens the offsets to
// int32, so a chain member that can't find a same-cacheline bucket simply
// links to one further away instead of triggering a relocation cascade.
package hopscotch

import "sync/atomic"

// bucket doubles as the head of the home chain for its own index (hash,
// firstDelta) and as a possible list node for some other chain (key,
// nextDelta) — the same dual role the teacher's bkt[i].dHash/dLink play.
// hash == 0 marks the bucket unclaimed; claim is a single CAS on hash.
type bucket struct {
	hash       atomic.Uint64
	key        atomic.Uint64
	firstDelta atomic.Int32
	nextDelta  atomic.Int32
}

// nonZeroHash nudges a zero hash to 1 so the bucket's hash word can double
// as its own "claimed" flag without a separate bit.
func nonZeroHash(h uint) uint64 {
	if h == 0 {
		return 1
	}
	return uint64(h)
}
