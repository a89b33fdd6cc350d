package mm

import (
	"math/bits"
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/core"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
	"github.com/g-m-twostay/hashset-lab/internal/reclaim"
)

// Table is the bucket array of spec.md section 4.8: each bucket is a
// dummy head node whose list holds the bucket's real members in strictly
// ascending key order.
type Table struct {
	buckets []node
	mask    uint
	seed    core.HashFunc
	rec     reclaim.Reclaimer
}

func New(capN uint, threads int, seed uint, rec reclaim.Reclaimer) *Table {
	n := nearestPow2(capN)
	return &Table{
		buckets: make([]node, n),
		mask:    n - 1,
		seed:    core.NewHasher(seed),
		rec:     rec,
	}
}

func nearestPow2(x uint) uint {
	if x == 0 {
		return 1
	}
	return 1 << bits.Len(x-1)
}

func (t *Table) home(k keys.Key) uint {
	return uint(t.seed.HashWord(uint64(k))) & t.mask
}

func (t *Table) ThreadInit(tid int) bool {
	t.rec.ThreadInit(tid)
	return true
}

func retireNode(rec reclaim.Reclaimer, tid int, n *node) {
	rec.Retire(unsafe.Pointer(n), tid)
}
