// Package lflp implements the lock-free linear-probing set of spec.md
// section 4.7: each slot holds null, a distinguished tombstone sentinel,
// or a tagged pointer to a cell — tagged meaning tentative (reserved but
// not yet linearised), untagged meaning committed. The tag-bit encoding is
// the literal one spec.md section 9's design note names as worth
// preserving rather than migrating to a wide-atomic pair, since Go's
// allocator already guarantees the pointer alignment it needs.
package lflp

import (
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

type cell struct {
	key keys.Key
}

// tombstoneSentinel is spec.md section 4.7's "one fixed non-null address"
// — never dereferenced, only ever compared by identity.
var tombstoneSentinel = &cell{}

func tombstonePtr() unsafe.Pointer {
	return unsafe.Pointer(tombstoneSentinel)
}

func isTombstone(p unsafe.Pointer) bool {
	return p == tombstonePtr()
}
