package lflp

import (
	"sync/atomic"

	"github.com/g-m-twostay/hashset-lab/internal/core"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

// Snapshot enumerates the table's contents. Only valid at quiescence — see
// sets.Verifiable.
func (t *Table) Snapshot(dst []keys.Key) []keys.Key {
	for i := range t.slots {
		raw := atomic.LoadPointer(&t.slots[i])
		if raw == nil || isTombstone(raw) || core.PointerTagged(raw) {
			continue
		}
		c := (*cell)(raw)
		dst = append(dst, c.key)
	}
	return dst
}
