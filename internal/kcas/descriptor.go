// Package kcas implements the descriptor-based multi-word compare-and-swap
// engine the K-CAS Robin-Hood set (spec.md section 4.4) uses to perform its
// displacement and shuffle-back shuffles as one atomic unit.
//
// A Slot does not store its value directly; it stores a pointer to an
// immutable entry snapshot, the same "tag plus payload behind one pointer
// swap" trick the teacher's ChainMap node uses for its {del, next} state
// (Maps/ChainMap/Node.go) — Go has no portable double-word CAS, so a
// descriptor reference and a plain value are unified behind one
// atomic.Pointer rather than split across two atomics.
package kcas

import (
	"sync/atomic"
)

// MaxEntries bounds a single descriptor's operation count, per spec.md
// section 4.3 ("Operation count per descriptor is bounded (<=3000)").
const MaxEntries = 3000

type status int32

const (
	undecided status = iota
	succeeded
	failed
)

// entry is a Slot's current snapshot: either a plain value, or a reference
// into an in-flight descriptor (desc != nil) naming which of the
// descriptor's triples this slot corresponds to.
type entry struct {
	desc  *Descriptor
	which int
	value uint64
}

// Slot is one K-CAS-managed word. The Robin-Hood table's key array and its
// per-region timestamp array are both []Slot.
type Slot struct {
	cur atomic.Pointer[entry]
}

func NewSlot(initial uint64) *Slot {
	s := &Slot{}
	s.cur.Store(&entry{value: initial})
	return s
}

type triple struct {
	slot     *Slot
	expected uint64
	new      uint64
}

// Descriptor lists the {slot, expected, new} triples of one multi-slot
// update and the status word whose CAS linearises the whole update, per
// spec.md section 4.3.
type Descriptor struct {
	entries []triple
	st      atomic.Int32
}

// NewDescriptor allocates an empty descriptor. Reclaimed through the
// reclaimer the engine was built with; callers that abandon a descriptor on
// a failed path must call Engine.FreeDescriptor explicitly (spec.md
// section 4.3) rather than just dropping the reference, so the reclamation
// cost is accounted the same way it would be for a retired cell.
func NewDescriptor() *Descriptor {
	return &Descriptor{entries: make([]triple, 0, 4)}
}

// AddValue appends one {slot, expected, new} triple. Panics if the
// descriptor is already at MaxEntries — callers never legitimately build a
// descriptor anywhere near that bound; it exists to catch runaway retry
// loops during development, matching the original's hard operation cap.
func (d *Descriptor) AddValue(slot *Slot, expected, new uint64) {
	if len(d.entries) >= MaxEntries {
		panic("kcas: descriptor exceeds MaxEntries")
	}
	d.entries = append(d.entries, triple{slot: slot, expected: expected, new: new})
}

