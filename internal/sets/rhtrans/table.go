package rhtrans

import (
	"math/bits"

	"github.com/g-m-twostay/hashset-lab/internal/core"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

// Table is the flat Robin-Hood array of spec.md section 4.5, guarded end
// to end by a single ElidedLock rather than per-region K-CAS descriptors.
// Every method below runs to completion under the lock, so the probe walk,
// the swap-down on insertion and the shift-back on deletion read exactly
// like a sequential table — the concurrency story lives entirely in
// ElidedLock, grounded on the teacher's Sets/HashSet for the displacement
// shape and on Maps/SpinMap for the lock discipline underneath elision.
type Table struct {
	lock  ElidedLock
	slots []keys.Key
	n     uint
	seed  core.HashFunc
}

func New(capN uint, seed uint) *Table {
	n := nearestPow2(capN)
	slots := make([]keys.Key, n)
	return &Table{
		slots: slots,
		n:     n,
		seed:  core.NewHasher(seed),
	}
}

func nearestPow2(x uint) uint {
	if x == 0 {
		return 1
	}
	return 1 << bits.Len(x-1)
}

func (t *Table) home(k keys.Key) uint {
	return uint(t.seed.HashWord(uint64(k))) & (t.n - 1)
}

func probeDist(home, i, n uint) uint {
	return (i + n - home) % n
}

func (t *Table) ThreadInit(tid int) bool {
	return true
}

// Contains runs the ordinary Robin-Hood lookup: walk forward from home,
// stop either at the key, at an empty slot, or at a resident whose own
// probe distance is shorter than the distance already walked (it would
// have displaced our key had it arrived first, so our key isn't present).
func (t *Table) Contains(k keys.Key, tid int) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	home := t.home(k)
	for i, dist := home, uint(0); ; i, dist = (i+1)%t.n, dist+1 {
		cur := t.slots[i]
		if cur == k {
			return true
		}
		if cur == keys.NullKey {
			return false
		}
		if probeDist(t.home(cur), i, t.n) < dist {
			return false
		}
	}
}

// Add inserts k via the classic Robin-Hood swap-down: the walking "active"
// key displaces any resident with a shorter probe distance, taking the
// displaced key's place in the walk.
func (t *Table) Add(k keys.Key, tid int) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	active := k
	home := t.home(k)
	for i, dist := home, uint(0); ; i, dist = (i+1)%t.n, dist+1 {
		cur := t.slots[i]
		if cur == active {
			return false
		}
		if cur == keys.NullKey {
			t.slots[i] = active
			return true
		}
		curDist := probeDist(t.home(cur), i, t.n)
		if curDist < dist {
			t.slots[i] = active
			active = cur
			dist = curDist
			home = t.home(cur)
		}
	}
}

// Remove locates k, then shifts every subsequent resident back one slot for
// as long as doing so would shorten its probe distance, finally vacating
// the last slot touched.
func (t *Table) Remove(k keys.Key, tid int) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	home := t.home(k)
	var at uint
	found := false
	for i, dist := home, uint(0); ; i, dist = (i+1)%t.n, dist+1 {
		cur := t.slots[i]
		if cur == k {
			at = i
			found = true
			break
		}
		if cur == keys.NullKey {
			return false
		}
		if probeDist(t.home(cur), i, t.n) < dist {
			return false
		}
	}
	if !found {
		return false
	}

	for {
		next := (at + 1) % t.n
		cur := t.slots[next]
		if cur == keys.NullKey || probeDist(t.home(cur), next, t.n) == 0 {
			t.slots[at] = keys.NullKey
			return true
		}
		t.slots[at] = cur
		at = next
	}
}

// Snapshot enumerates the table's contents. Only valid at quiescence — see
// sets.Verifiable.
func (t *Table) Snapshot(dst []keys.Key) []keys.Key {
	t.lock.Lock()
	defer t.lock.Unlock()
	for _, k := range t.slots {
		if k != keys.NullKey {
			dst = append(dst, k)
		}
	}
	return dst
}
