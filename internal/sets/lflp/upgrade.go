package lflp

import (
	"sync/atomic"
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/core"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

// upgrade is the commit protocol of spec.md section 4.7. It re-scans from
// home looking for a committed copy of k and the earliest tentative copy;
// it tombstones every redundant later tentative it can still prove stale,
// then either reports the committed copy it found or promotes the
// earliest tentative itself. The caller compares the returned pointer
// against its own candidate's identity to decide add's return value.
func (t *Table) upgrade(home uint, k keys.Key) unsafe.Pointer {
	n := uint(len(t.slots))

	var committed unsafe.Pointer
	var closestIdx uint
	var closestRaw unsafe.Pointer
	haveClosest := false

	for i, steps := home, uint(0); steps < n; i, steps = (i+1)&t.mask, steps+1 {
		slot := &t.slots[i]
		raw := atomic.LoadPointer(slot)

		if raw == nil {
			break // first null slot: commit point
		}
		if isTombstone(raw) {
			continue
		}
		c := (*cell)(core.UntagPointer(raw))
		if c.key != k {
			continue
		}

		if !core.PointerTagged(raw) {
			committed = raw
			continue
		}

		// raw is a tentative cell holding key k.
		switch {
		case committed != nil:
			atomic.CompareAndSwapPointer(slot, raw, tombstonePtr())
		case !haveClosest:
			closestIdx, closestRaw, haveClosest = i, raw, true
		default:
			if atomic.LoadPointer(&t.slots[closestIdx]) == closestRaw {
				atomic.CompareAndSwapPointer(slot, raw, tombstonePtr())
			}
		}
	}

	if committed != nil {
		return committed
	}
	if !haveClosest {
		return nil
	}

	promoted := core.UntagPointer(closestRaw)
	if atomic.CompareAndSwapPointer(&t.slots[closestIdx], closestRaw, promoted) {
		return promoted
	}
	cur := atomic.LoadPointer(&t.slots[closestIdx])
	if !core.PointerTagged(cur) && !isTombstone(cur) {
		return cur
	}
	return promoted
}
