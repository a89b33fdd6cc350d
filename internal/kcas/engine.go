package kcas

import (
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/reclaim"
)

// Engine commits Descriptors and performs helped reads of Slots. tid is
// accepted on every call (no pin parameter is taken) even though this
// engine does not need it for correctness: descriptors are
// linked and unlinked purely through Slot CAS, with no per-thread state,
// and are reclaimed through a Leaky reclaimer since the K-CAS Robin-Hood
// set never outlives a reference to one past its own call.
type Engine struct {
	reclaimer reclaim.Reclaimer
}

func NewEngine(r reclaim.Reclaimer) *Engine {
	return &Engine{reclaimer: r}
}

// ReadValue returns slot's current linearised value, helping any
// in-progress descriptor it encounters along the way so the result is
// never a half-applied intermediate state.
func (eng *Engine) ReadValue(tid int, slot *Slot) uint64 {
	for {
		cur := slot.cur.Load()
		if cur.desc == nil {
			return cur.value
		}
		eng.help(cur.desc)
	}
}

// CAS commits desc: it is linearised at the successful CAS of desc's
// status word, at which point every one of desc's AddValue entries takes
// effect as a single atomic step. Returns whether the commit succeeded.
func (eng *Engine) CAS(tid int, desc *Descriptor) bool {
	eng.help(desc)
	return status(desc.st.Load()) == succeeded
}

// FreeDescriptor retires desc. Called explicitly on abandoned (failed or
// superseded) descriptors per spec.md section 4.3, rather than just
// dropping the reference, so reclamation cost is accounted uniformly with
// the lock-free sets even though the underlying reclaimer here is Leaky.
func (eng *Engine) FreeDescriptor(desc *Descriptor, tid int) {
	eng.reclaimer.Retire(unsafe.Pointer(desc), tid)
}

// help drives desc to a decided status and then physically unlinks every
// entry that still points at it, installing the entry's "new" value on
// success or reverting to "expected" on failure. Any thread — the
// initiator or a reader/writer that merely crossed desc's path — runs the
// identical routine, which is what makes this helping rather than blocking.
func (eng *Engine) help(desc *Descriptor) {
	if status(desc.st.Load()) == undecided {
		linked := true
	linkLoop:
		for i := range desc.entries {
			t := &desc.entries[i]
			for {
				cur := t.slot.cur.Load()
				if cur.desc == desc {
					break
				}
				if cur.desc != nil {
					eng.help(cur.desc)
					continue
				}
				if cur.value != t.expected {
					linked = false
					break linkLoop
				}
				next := &entry{desc: desc, which: i}
				if t.slot.cur.CompareAndSwap(cur, next) {
					break
				}
			}
		}
		if linked {
			desc.st.CompareAndSwap(int32(undecided), int32(succeeded))
		} else {
			desc.st.CompareAndSwap(int32(undecided), int32(failed))
		}
	}

	final := status(desc.st.Load())
	for i := range desc.entries {
		t := &desc.entries[i]
		value := t.expected
		if final == succeeded {
			value = t.new
		}
		for {
			cur := t.slot.cur.Load()
			if cur.desc != desc {
				break
			}
			if t.slot.cur.CompareAndSwap(cur, &entry{value: value}) {
				break
			}
		}
	}
}
