package hopscotch

import "github.com/g-m-twostay/hashset-lab/internal/keys"

// Snapshot enumerates the table's contents. Only valid at quiescence — see
// sets.Verifiable.
func (t *Table) Snapshot(dst []keys.Key) []keys.Key {
	for i := range t.buckets {
		if t.buckets[i].hash.Load() != 0 {
			dst = append(dst, keys.Key(t.buckets[i].key.Load()))
		}
	}
	return dst
}
