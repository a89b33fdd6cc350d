// Package mm implements the lock-free separate-chaining set of spec.md
// section 4.8: per-bucket ordered singly-linked lists with a low-bit
// marked flag on each next pointer, and helping-based physical unlink.
// search takes no per-pointer reclaimer handles; the pointers it reads are
// covered by the reclaimer pin each public operation holds.
//
// The bucket list shape — a dummy head node whose next pointer chains
// through ordinary nodes — and the helping-unlink-on-marked-next pattern
// are grounded on the teacher's Maps/ChainMap, adapted from ChainMap's
// state{del, nx} pointer-union (which needs no raw pointer tagging because
// Go's atomic.Pointer[T] can hold a struct) to the literal low-bit mark
// bit spec.md section 9 names as the encoding to preserve, since this set
// hands its retired nodes to the reclaimer as raw unsafe.Pointer values.
package mm

import (
	"sync/atomic"
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

// node is a bucket list cell. next is a tagged pointer: the low bit marks
// the node for logical deletion; the rest, once untagged, is a *node or
// nil at the list tail.
type node struct {
	key  keys.Key
	next unsafe.Pointer
}

func loadNext(n *node) unsafe.Pointer {
	return atomic.LoadPointer(&n.next)
}

func casNext(n *node, old, new unsafe.Pointer) bool {
	return atomic.CompareAndSwapPointer(&n.next, old, new)
}
