package hopscotch

import (
	"math/bits"
	"sync/atomic"

	"github.com/g-m-twostay/hashset-lab/internal/core"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

// hopRange is H from spec.md section 4.6.
const hopRange = 4096

// bucketsPerLine approximates how many buckets share a 64-byte cache line;
// claim order in Add prefers this range before scanning the whole table.
const bucketsPerLine = core.CacheLineSize / 24

type segment struct {
	lock core.SpinLock
	ts   atomic.Uint64
}

// Table is the neighbourhood set of spec.md section 4.6. homeSlots is the
// addressable range hashes fall into; the hopRange extra tail buckets give
// the claim walk somewhere to land without wrapping, the same headroom the
// teacher's New reserves (bktLen = 1<<bits.Len(size) + h).
type Table struct {
	buckets  []bucket
	segs     []segment
	segShift uint
	homeMask uint
	seed     core.HashFunc
}

func New(capN uint, threads int, seed uint) *Table {
	homeSlots := nearestPow2(capN)
	buckets := make([]bucket, homeSlots+hopRange)

	numSegs := nearestPow2(uint(threads) * 4)
	if numSegs > homeSlots {
		numSegs = homeSlots
	}
	if numSegs == 0 {
		numSegs = 1
	}

	t := &Table{
		buckets:  buckets,
		segs:     make([]segment, numSegs),
		segShift: uint(bits.Len(homeSlots) - bits.Len(numSegs)),
		homeMask: homeSlots - 1,
		seed:     core.NewHasher(seed),
	}
	return t
}

func nearestPow2(x uint) uint {
	if x == 0 {
		return 1
	}
	return 1 << bits.Len(x-1)
}

func (t *Table) ThreadInit(tid int) bool {
	return true
}

func (t *Table) home(k keys.Key) uint {
	return uint(t.seed.HashWord(uint64(k))) & t.homeMask
}

func (t *Table) segmentFor(home uint) *segment {
	return &t.segs[home>>t.segShift]
}

// Contains is the lock-free optimistic read of spec.md section 4.6:
// snapshot the segment timestamp, walk the chain, and restart if the
// timestamp moved under us.
func (t *Table) Contains(k keys.Key, tid int) bool {
	home := t.home(k)
	seg := t.segmentFor(home)
	h := nonZeroHash(t.seed.HashWord(uint64(k)))

	for {
		ts := seg.ts.Load()

		found := false
		if raw := t.buckets[home].firstDelta.Load(); raw != 0 {
			i := home
			for {
				i = wrapAdd(i, decodeDelta(raw), len(t.buckets))
				b := &t.buckets[i]
				if b.hash.Load() == h && keys.Key(b.key.Load()) == k {
					found = true
					break
				}
				raw = b.nextDelta.Load()
				if raw == 0 {
					break
				}
			}
		}

		if seg.ts.Load() == ts {
			return found
		}
	}
}

func wrapAdd(i uint, delta int32, n int) uint {
	return uint((int(i) + int(delta) + n) % n)
}
