package mm

import (
	"github.com/g-m-twostay/hashset-lab/internal/core"
	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

// Snapshot enumerates the table's contents. Only valid at quiescence — see
// sets.Verifiable.
func (t *Table) Snapshot(dst []keys.Key) []keys.Key {
	for i := range t.buckets {
		for cur := (*node)(core.UntagPointer(loadNext(&t.buckets[i]))); cur != nil; cur = (*node)(core.UntagPointer(loadNext(cur))) {
			dst = append(dst, cur.key)
		}
	}
	return dst
}
