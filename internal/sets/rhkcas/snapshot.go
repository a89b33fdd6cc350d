package rhkcas

import "github.com/g-m-twostay/hashset-lab/internal/keys"

// Snapshot enumerates the table's contents. Only valid at quiescence — see
// sets.Verifiable.
func (t *Table) Snapshot(dst []keys.Key) []keys.Key {
	for i := range t.keySlots {
		if k := t.readKey(0, uint(i)); k != keys.NullKey {
			dst = append(dst, k)
		}
	}
	return dst
}
