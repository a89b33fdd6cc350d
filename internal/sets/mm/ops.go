package mm

import (
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/core"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
	"github.com/g-m-twostay/hashset-lab/internal/reclaim"
)

// search is the workhorse of spec.md section 4.8: it returns the list
// position at which k would live (prev, curr) and reports whether curr
// holds k. Safety for the pointers it hands back comes from the epoch pin
// the caller holds for the duration of the call, not from per-pointer
// hazard handles — Epoch's reclamation test is purely temporal (every
// thread has exited past the retiring epoch twice), so a handle recording
// "this is the pointer I last observed" has nothing further to add here.
// Whenever search passes a marked node it helps by CAS-unlinking it from
// prev before continuing.
func (t *Table) search(head *node, k keys.Key, tid int) (prev, curr *node, found bool) {
retry:
	prev = head
	prevNext := loadNext(prev)

	for {
		currRaw := core.UntagPointer(prevNext)
		if currRaw == nil {
			return prev, nil, false
		}
		curr = (*node)(currRaw)
		currNext := loadNext(curr)

		if loadNext(prev) != prevNext {
			goto retry
		}

		if core.PointerTagged(currNext) {
			unlinked := core.UntagPointer(currNext)
			if casNext(prev, prevNext, unlinked) {
				retireNode(t.rec, tid, curr)
			}
			goto retry
		}

		if curr.key >= k {
			return prev, curr, curr.key == k
		}

		prev = curr
		prevNext = currNext
	}
}

func (t *Table) Contains(k keys.Key, tid int) bool {
	pin := reclaim.EnterPin(t.rec, tid)
	defer pin.Exit()

	head := &t.buckets[t.home(k)]
	_, _, found := t.search(head, k, tid)
	return found
}

// Add is spec.md section 4.8's insertion path: search for k's position,
// then splice a new node between prev and curr via a single CAS.
func (t *Table) Add(k keys.Key, tid int) bool {
	pin := reclaim.EnterPin(t.rec, tid)
	defer pin.Exit()

	head := &t.buckets[t.home(k)]
	for {
		prev, curr, found := t.search(head, k, tid)
		if found {
			return false
		}
		cell := &node{key: k, next: unsafe.Pointer(curr)}
		if casNext(prev, unsafe.Pointer(curr), unsafe.Pointer(cell)) {
			return true
		}
	}
}

// Remove is spec.md section 4.8's two-step deletion: mark curr's next
// pointer, then try to physically unlink it; a failed unlink is left for
// a later helping search to finish.
func (t *Table) Remove(k keys.Key, tid int) bool {
	pin := reclaim.EnterPin(t.rec, tid)
	defer pin.Exit()

	head := &t.buckets[t.home(k)]
	for {
		prev, curr, found := t.search(head, k, tid)
		if !found {
			return false
		}
		next := loadNext(curr)
		if core.PointerTagged(next) {
			continue
		}
		marked := core.TagPointer(next)
		if !casNext(curr, next, marked) {
			continue
		}
		if casNext(prev, unsafe.Pointer(curr), next) {
			retireNode(t.rec, tid, curr)
		}
		return true
	}
}
