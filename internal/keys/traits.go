// Package keys defines the key-traits abstraction every set in this lab is
// parameterized over: a single machine-word integral type with a reserved
// null sentinel, per spec.md section 3.1.
package keys

// Key is the one integral type every set implementation stores. uint64
// fits in one machine word on every target this lab runs on.
type Key = uint64

// NullKey marks an empty slot in every open-addressed and node-based table.
// It is never a valid key issued by the workload generator.
const NullKey Key = 0

// Hash is a total hash function K -> machine word, shared by every set so
// the harness can swap algorithms without re-seeding per-table.
type Hash func(Key) uint
