package rhkcas

import (
	"github.com/g-m-twostay/hashset-lab/internal/kcas"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

// Contains probes from home(k), snapshotting each newly-entered region's
// timestamp. A match returns true immediately; a NullKey or a
// distance-violation ends the probe and falls back to the counter-check:
// if none of the snapshotted regions changed during the traversal, no
// concurrent writer could have moved k into or out of the scanned range,
// so the negative answer is safe. Otherwise the whole probe restarts with
// fresh reads.
func (t *Table) Contains(k keys.Key, tid int) bool {
	home := t.home(k)

retry:
	for {
		var snap []regionSnap
		lastRegion := ^uint(0)
		i := home
		for {
			r := t.regionOf(i)
			if r != lastRegion {
				snap = append(snap, regionSnap{r, t.readTS(tid, r)})
				lastRegion = r
			}

			cur := t.readKey(tid, i)
			if cur == k {
				return true
			}
			if cur == keys.NullKey {
				if t.counterCheckStable(tid, snap) {
					return false
				}
				continue retry
			}

			homeCur := t.home(cur)
			if probeDist(homeCur, i, t.n) < probeDist(home, i, t.n) {
				if t.counterCheckStable(tid, snap) {
					return false
				}
				continue retry
			}

			i = (i + 1) % t.n
		}
	}
}

// Add performs the classical Robin-Hood displacement walk: active starts
// as k, and whenever the resident at the current slot has a smaller probe
// distance than active, the two swap roles and the slot write that
// displacement requires is recorded as one more triple in the descriptor
// being built — this is why the table needs multi-word CAS rather than a
// single atomic write: a single Add can require rewriting several slots
// at once. The descriptor also bumps, once per region, the timestamp of
// each region it writes a slot in, so a concurrent Contains/Remove
// notices the write happened.
func (t *Table) Add(k keys.Key, tid int) bool {
	home := t.home(k)

retry:
	for {
		active := k
		homeActive := home
		i := home
		desc := kcas.NewDescriptor()
		bumped := make(map[uint]bool)

		for {
			r := t.regionOf(i)
			cur := t.readKey(tid, i)

			if cur == k {
				return false
			}

			if cur == keys.NullKey {
				desc.AddValue(t.keySlots[i], uint64(keys.NullKey), uint64(active))
				t.bumpRegion(tid, desc, r, bumped)
				if t.eng.CAS(tid, desc) {
					return true
				}
				t.eng.FreeDescriptor(desc, tid)
				continue retry
			}

			homeCur := t.home(cur)
			distCur := probeDist(homeCur, i, t.n)
			distActive := probeDist(homeActive, i, t.n)
			if distCur < distActive {
				desc.AddValue(t.keySlots[i], uint64(cur), uint64(active))
				t.bumpRegion(tid, desc, r, bumped)
				active, homeActive = cur, homeCur
			}

			i = (i + 1) % t.n
		}
	}
}

// Remove probes identically to Contains, then on a match walks forward
// shuffling every following resident whose probe distance is > 0 one slot
// earlier, finishing by vacating the last slot touched. Per the open
// question in spec.md section 9, a region's timestamp is bumped at most
// once per Remove even if the shuffle-back crosses it more than once.
func (t *Table) Remove(k keys.Key, tid int) bool {
	home := t.home(k)

retry:
	for {
		var snap []regionSnap
		lastRegion := ^uint(0)
		i := home
		for {
			r := t.regionOf(i)
			if r != lastRegion {
				snap = append(snap, regionSnap{r, t.readTS(tid, r)})
				lastRegion = r
			}

			cur := t.readKey(tid, i)
			if cur == k {
				break
			}
			if cur == keys.NullKey {
				if t.counterCheckStable(tid, snap) {
					return false
				}
				continue retry
			}

			homeCur := t.home(cur)
			if probeDist(homeCur, i, t.n) < probeDist(home, i, t.n) {
				if t.counterCheckStable(tid, snap) {
					return false
				}
				continue retry
			}

			i = (i + 1) % t.n
		}

		desc := kcas.NewDescriptor()
		bumped := make(map[uint]bool)
		prev := i
		expectedAtPrev := k
		j := (i + 1) % t.n
		for {
			cur := t.readKey(tid, j)
			if cur == keys.NullKey {
				break
			}
			homeCur := t.home(cur)
			if probeDist(homeCur, j, t.n) == 0 {
				break
			}
			desc.AddValue(t.keySlots[prev], uint64(expectedAtPrev), uint64(cur))
			t.bumpRegion(tid, desc, t.regionOf(prev), bumped)
			prev, expectedAtPrev = j, cur
			j = (j + 1) % t.n
		}
		desc.AddValue(t.keySlots[prev], uint64(expectedAtPrev), uint64(keys.NullKey))
		t.bumpRegion(tid, desc, t.regionOf(prev), bumped)

		if t.eng.CAS(tid, desc) {
			return true
		}
		t.eng.FreeDescriptor(desc, tid)
		continue retry
	}
}

func (t *Table) bumpRegion(tid int, desc *kcas.Descriptor, r uint, bumped map[uint]bool) {
	if bumped[r] {
		return
	}
	bumped[r] = true
	old := t.readTS(tid, r)
	desc.AddValue(t.tsSlots[r], old, old+1)
}
