package lflp

import (
	"sync/atomic"
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/core"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
	"github.com/g-m-twostay/hashset-lab/internal/reclaim"
)

// Contains probes from k's home, skipping nulls (stop, not found),
// tombstones and tentatives, returning true on the first committed match.
func (t *Table) Contains(k keys.Key, tid int) bool {
	pin := reclaim.EnterPin(t.rec, tid)
	defer pin.Exit()

	n := uint(len(t.slots))
	for i, steps := t.home(k), uint(0); steps < n; i, steps = (i+1)&t.mask, steps+1 {
		raw := atomic.LoadPointer(&t.slots[i])
		if raw == nil {
			return false
		}
		if isTombstone(raw) || core.PointerTagged(raw) {
			continue
		}
		c := (*cell)(raw)
		if c.key == k {
			return true
		}
	}
	return false
}

// Add is spec.md section 4.7's insertion path: probe for a null or
// tombstone slot to reserve with a tentative cell, then run upgrade to
// decide the winner; or, on finding an existing cell for k, defer to
// upgrade (tentative) or give up immediately (committed) without ever
// installing its own cell.
func (t *Table) Add(k keys.Key, tid int) bool {
	pin := reclaim.EnterPin(t.rec, tid)
	defer pin.Exit()

	c := &cell{key: k}
	home := t.home(k)
	n := uint(len(t.slots))

	for i, steps := home, uint(0); steps < n; steps++ {
		slot := &t.slots[i]

		for {
			raw := atomic.LoadPointer(slot)

			if raw == nil || isTombstone(raw) {
				tentative := core.TagPointer(unsafe.Pointer(c))
				if atomic.CompareAndSwapPointer(slot, raw, tentative) {
					winner := t.upgrade(home, k)
					return winner == unsafe.Pointer(c)
				}
				continue // lost the CAS race for this slot; reread and retry
			}

			existing := (*cell)(core.UntagPointer(raw))
			if existing.key == k {
				if !core.PointerTagged(raw) {
					return false
				}
				t.upgrade(home, k)
				return false
			}

			break // slot holds an unrelated key; advance the probe
		}

		i = (i + 1) & t.mask
	}

	panic("lflp: table full, resize is a non-goal")
}

// Remove probes for a committed match and CASes it to the tombstone
// sentinel; a lost CAS restarts the whole walk from home, per spec.md
// section 4.7.
func (t *Table) Remove(k keys.Key, tid int) bool {
	pin := reclaim.EnterPin(t.rec, tid)
	defer pin.Exit()

	home := t.home(k)
	n := uint(len(t.slots))

restart:
	for i, steps := home, uint(0); steps < n; i, steps = (i+1)&t.mask, steps+1 {
		slot := &t.slots[i]
		raw := atomic.LoadPointer(slot)
		if raw == nil {
			return false
		}
		if isTombstone(raw) || core.PointerTagged(raw) {
			continue
		}
		c := (*cell)(raw)
		if c.key != k {
			continue
		}
		if !atomic.CompareAndSwapPointer(slot, raw, tombstonePtr()) {
			goto restart
		}
		t.rec.Retire(raw, tid)
		return true
	}
	return false
}
