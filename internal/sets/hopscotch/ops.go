package hopscotch

import "github.com/g-m-twostay/hashset-lab/internal/keys"

// Deltas are stored biased by flipping the sign bit, the int32
// generalisation of the teacher's Sets/HashSet byte encoding ("offset by
// min value of signed version"). A real offset of zero — a list member
// that is itself the home bucket — then encodes to a nonzero raw value,
// leaving raw 0 free as the unambiguous "no link" sentinel.
const deltaBias = int32(-1 << 31)

func encodeDelta(d int32) int32 { return d ^ deltaBias }
func decodeDelta(raw int32) int32 { return raw ^ deltaBias }

// Add is spec.md section 4.6's writer path: under the home segment's lock,
// check for a hit by walking the chain, then claim a free bucket —
// starting-cacheline first, then the rest of the table forward, then
// backward — and splice it in.
func (t *Table) Add(k keys.Key, tid int) bool {
	home := t.home(k)
	seg := t.segmentFor(home)
	h := nonZeroHash(t.seed.HashWord(uint64(k)))

	seg.lock.Lock()
	defer seg.lock.Unlock()

	if t.walkChain(home, h, k) {
		return false
	}

	n := len(t.buckets)
	lineStart := int(home) - int(home)%bucketsPerLine
	lineEnd := lineStart + bucketsPerLine
	if lineEnd > n {
		lineEnd = n
	}

	for i := lineStart; i < lineEnd; i++ {
		if t.claim(uint(i), h, k) {
			t.spliceHead(home, uint(i))
			seg.ts.Add(1)
			return true
		}
	}

	for i := lineEnd; i < n; i++ {
		if t.claim(uint(i), h, k) {
			t.spliceTail(home, uint(i))
			seg.ts.Add(1)
			return true
		}
	}

	for i := lineStart - 1; i >= 0; i-- {
		if t.claim(uint(i), h, k) {
			t.spliceTail(home, uint(i))
			seg.ts.Add(1)
			return true
		}
	}

	panic("hopscotch: table full, resize is a non-goal")
}

// walkChain reports whether k is already present in home's chain. Caller
// holds the segment lock.
func (t *Table) walkChain(home uint, h uint64, k keys.Key) bool {
	raw := t.buckets[home].firstDelta.Load()
	if raw == 0 {
		return false
	}
	i := home
	for {
		i = wrapAdd(i, decodeDelta(raw), len(t.buckets))
		b := &t.buckets[i]
		if b.hash.Load() == h && keys.Key(b.key.Load()) == k {
			return true
		}
		raw = b.nextDelta.Load()
		if raw == 0 {
			return false
		}
	}
}

func (t *Table) claim(i uint, h uint64, k keys.Key) bool {
	if !t.buckets[i].hash.CompareAndSwap(0, h) {
		return false
	}
	t.buckets[i].key.Store(uint64(k))
	t.buckets[i].nextDelta.Store(0)
	return true
}

// spliceHead makes the freshly claimed bucket at i the new head of home's
// chain (the starting-cacheline case, where locality is already good).
func (t *Table) spliceHead(home, i uint) {
	oldRaw := t.buckets[home].firstDelta.Load()
	if oldRaw != 0 {
		oldTarget := wrapAdd(home, decodeDelta(oldRaw), len(t.buckets))
		t.buckets[i].nextDelta.Store(encodeDelta(deltaBetween(i, oldTarget, len(t.buckets))))
	}
	t.buckets[home].firstDelta.Store(encodeDelta(deltaBetween(home, i, len(t.buckets))))
}

// spliceTail appends the freshly claimed bucket at the end of home's chain
// (the overflow case, where locality was unavailable).
func (t *Table) spliceTail(home, i uint) {
	firstRaw := t.buckets[home].firstDelta.Load()
	if firstRaw == 0 {
		t.buckets[home].firstDelta.Store(encodeDelta(deltaBetween(home, i, len(t.buckets))))
		return
	}
	cur := wrapAdd(home, decodeDelta(firstRaw), len(t.buckets))
	for {
		nextRaw := t.buckets[cur].nextDelta.Load()
		if nextRaw == 0 {
			t.buckets[cur].nextDelta.Store(encodeDelta(deltaBetween(cur, i, len(t.buckets))))
			return
		}
		cur = wrapAdd(cur, decodeDelta(nextRaw), len(t.buckets))
	}
}

func deltaBetween(from, to uint, n int) int32 {
	d := int(to) - int(from)
	if d > n/2 {
		d -= n
	} else if d < -n/2 {
		d += n
	}
	return int32(d)
}

// Remove is spec.md section 4.6's writer path: walk the chain under the
// segment lock, null the key, relink around the removed node, bump the
// timestamp, then release the hash word — in that order, so an optimistic
// reader mid-walk either fails the key match or catches the timestamp
// change, never both missing.
func (t *Table) Remove(k keys.Key, tid int) bool {
	home := t.home(k)
	seg := t.segmentFor(home)
	h := nonZeroHash(t.seed.HashWord(uint64(k)))

	seg.lock.Lock()
	defer seg.lock.Unlock()

	raw := t.buckets[home].firstDelta.Load()
	if raw == 0 {
		return false
	}

	prevIdx := home
	prevIsHome := true
	i := home
	for {
		i = wrapAdd(i, decodeDelta(raw), len(t.buckets))
		b := &t.buckets[i]
		if b.hash.Load() == h && keys.Key(b.key.Load()) == k {
			b.key.Store(0)
			nextRaw := b.nextDelta.Load()
			var newRaw int32
			if nextRaw == 0 {
				newRaw = 0
			} else {
				nextTarget := wrapAdd(i, decodeDelta(nextRaw), len(t.buckets))
				newRaw = encodeDelta(deltaBetween(prevIdx, nextTarget, len(t.buckets)))
			}
			if prevIsHome {
				t.buckets[prevIdx].firstDelta.Store(newRaw)
			} else {
				t.buckets[prevIdx].nextDelta.Store(newRaw)
			}
			seg.ts.Add(1)
			b.hash.Store(0)
			t.optimizeCacheline(i)
			return true
		}
		raw = b.nextDelta.Load()
		if raw == 0 {
			return false
		}
		prevIdx = i
		prevIsHome = false
	}
}

// optimizeCacheline is the best-effort relocation pass of spec.md section
// 4.6: within the cache line containing the just-vacated slot, look for a
// chain whose home is in that line but whose member lives elsewhere, and
// pull it into the freed slot. The relocated chain's own home segment gets
// its timestamp bumped too, since its home can fall in a different segment
// than the one already bumped by the caller's Remove.
func (t *Table) optimizeCacheline(freed uint) {
	n := uint(len(t.buckets))
	lineStart := freed - freed%bucketsPerLine
	lineEnd := lineStart + bucketsPerLine
	if lineEnd > n {
		lineEnd = n
	}

	for home := lineStart; home < lineEnd; home++ {
		if home == freed {
			continue
		}
		raw := t.buckets[home].firstDelta.Load()
		if raw == 0 {
			continue
		}
		prevIdx := home
		prevIsHome := true
		i := home
		for {
			i = wrapAdd(i, decodeDelta(raw), len(t.buckets))
			if i < lineStart || i >= lineEnd {
				t.relocate(i, freed, prevIdx, prevIsHome)
				t.segmentFor(home).ts.Add(1)
				return
			}
			raw = t.buckets[i].nextDelta.Load()
			if raw == 0 {
				break
			}
			prevIdx = i
			prevIsHome = false
		}
	}
}

// relocate moves the member at from into the free slot at to, relinking
// the predecessor and the member's own successor.
func (t *Table) relocate(from, to, prevIdx uint, prevIsHome bool) {
	n := len(t.buckets)
	b := &t.buckets[from]
	h := b.hash.Load()
	k := b.key.Load()
	nextRaw := b.nextDelta.Load()

	t.buckets[to].hash.Store(h)
	t.buckets[to].key.Store(k)
	if nextRaw == 0 {
		t.buckets[to].nextDelta.Store(0)
	} else {
		nextTarget := wrapAdd(from, decodeDelta(nextRaw), n)
		t.buckets[to].nextDelta.Store(encodeDelta(deltaBetween(to, nextTarget, n)))
	}

	newRaw := encodeDelta(deltaBetween(prevIdx, to, n))
	if prevIsHome {
		t.buckets[prevIdx].firstDelta.Store(newRaw)
	} else {
		t.buckets[prevIdx].nextDelta.Store(newRaw)
	}

	b.key.Store(0)
	b.nextDelta.Store(0)
	b.hash.Store(0)
}
