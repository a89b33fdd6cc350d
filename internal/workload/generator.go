// Package workload generates the operation stream spec.md section 6
// describes: a configurable update percentage split evenly between adds
// and removes, the remainder reads, drawn over a key space sized by the
// -S flag. Per-call randomness uses core.CheapRandN, the teacher's own
// linknamed runtime.cheaprandn, rather than a shared *rand.Rand — the
// same reasoning the teacher applies wherever a hot path needs a random
// index without contending a lock (see Maps/base.go's resizing picks):
// a shared PRNG would be a single point of contention across every
// worker goroutine's tight benchmark loop.
package workload

import (
	"github.com/g-m-twostay/hashset-lab/internal/core"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

type OpKind int

const (
	OpContains OpKind = iota
	OpAdd
	OpRemove
)

type Op struct {
	Kind OpKind
	Key  keys.Key
}

// Generator draws one Op at a time with a key in [1, keyMask], where
// keyMask+1 is keySpace rounded up to a power of two. keys.NullKey (0) is
// never drawn.
type Generator struct {
	updatePct uint32
	keyMask   uint32
}

func NewGenerator(updatePct int, keySpace uint32) *Generator {
	mask := uint32(1)
	for mask < keySpace {
		mask <<= 1
	}
	return &Generator{updatePct: uint32(updatePct), keyMask: mask - 1}
}

func (g *Generator) Next() Op {
	k := keys.Key(core.CheapRandN(g.keyMask)) + 1
	if core.CheapRandN(100) < g.updatePct {
		if core.CheapRandN(2) == 0 {
			return Op{Kind: OpAdd, Key: k}
		}
		return Op{Kind: OpRemove, Key: k}
	}
	return Op{Kind: OpContains, Key: k}
}
