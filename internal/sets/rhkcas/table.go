// Package rhkcas implements the K-CAS Robin-Hood set of spec.md section
// 4.4: a lock-free open-addressed Robin-Hood table whose displacement
// shuffles are committed through the kcas engine, with per-region
// timestamps giving lock-free readers a way to detect a concurrent writer
// crossed their path. The open-addressed layout, the linear probe walk
// and the home/distance arithmetic are grounded on the teacher's
// Sets/HashSet (a sequential Hopscotch set using the same "home slot, walk
// forward, compare probe distance" shape); what's new here is making every
// mutation a kcas.Descriptor instead of a direct write.
package rhkcas

import (
	"math/bits"

	"github.com/g-m-twostay/hashset-lab/internal/core"
	"github.com/g-m-twostay/hashset-lab/internal/kcas"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
	"github.com/g-m-twostay/hashset-lab/internal/reclaim"
)

// MaxRegions bounds the per-read timestamp snapshot, per spec.md section
// 4.4 ("Snapshots are bounded by a compile-time cap (2048 regions)").
const MaxRegions = 2048

type Table struct {
	keySlots []*kcas.Slot
	tsSlots  []*kcas.Slot
	n, m     uint
	shift    uint // regionOf(i) = i >> shift
	seed     core.HashFunc
	eng      *kcas.Engine
}

// New builds a table of capN slots (rounded up to a power of two) sized
// for threads concurrent workers. The reclaimer is Leaky per spec.md
// section 4.2: this set never retires anything, so the engine's
// FreeDescriptor path costs nothing.
func New(capN uint, threads int, seed uint) *Table {
	n := nearestPow2(capN)
	m := nearestPow2(uint(threads) * 128)
	if m > MaxRegions {
		m = MaxRegions
	}
	if m > n {
		m = n
	}
	if m == 0 {
		m = 1
	}

	t := &Table{
		n:    n,
		m:    m,
		shift: uint(bits.Len(n) - bits.Len(m)),
		seed: core.NewHasher(seed),
		eng:  kcas.NewEngine(reclaim.NewLeaky(threads)),
	}
	t.keySlots = make([]*kcas.Slot, n)
	for i := range t.keySlots {
		t.keySlots[i] = kcas.NewSlot(uint64(keys.NullKey))
	}
	t.tsSlots = make([]*kcas.Slot, m)
	for i := range t.tsSlots {
		t.tsSlots[i] = kcas.NewSlot(0)
	}
	return t
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

func (t *Table) regionOf(i uint) uint {
	return i >> t.shift
}

// probeDist is (i - home) mod n, the forward distance from home to i.
func probeDist(home, i, n uint) uint {
	return (i + n - home) % n
}

func (t *Table) readKey(tid int, i uint) keys.Key {
	return keys.Key(t.eng.ReadValue(tid, t.keySlots[i]))
}

func (t *Table) readTS(tid int, r uint) uint64 {
	return t.eng.ReadValue(tid, t.tsSlots[r])
}

type regionSnap struct {
	region uint
	ts     uint64
}

// counterCheckStable re-reads every snapshotted region's timestamp and
// reports whether none of them changed — the condition under which a
// negative contains/remove answer is safe despite having raced a writer,
// per spec.md section 4.4's "Counter-check" rationale.
func (t *Table) counterCheckStable(tid int, snap []regionSnap) bool {
	for _, s := range snap {
		if t.readTS(tid, s.region) != s.ts {
			return false
		}
	}
	return true
}

func (t *Table) ThreadInit(tid int) bool {
	return true
}
