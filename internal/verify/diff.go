package verify

import (
	"fmt"
	"sort"

	"github.com/g-m-twostay/hashset-lab/internal/keys"
	"github.com/g-m-twostay/hashset-lab/internal/sets"
)

// Diff reports the two ways a Verifiable table's quiescent contents can
// disagree with the oracle: a key the oracle believes present but the
// table is missing (lost update), and a key the table holds that the
// oracle never recorded (phantom key, spec.md section 8's no-phantom-keys
// property).
type Diff struct {
	Missing  []keys.Key
	Phantoms []keys.Key
}

func (d Diff) Empty() bool {
	return len(d.Missing) == 0 && len(d.Phantoms) == 0
}

func (d Diff) String() string {
	return fmt.Sprintf("missing=%d phantoms=%d", len(d.Missing), len(d.Phantoms))
}

// Check snapshots table and compares it against o's recorded contents.
// Callers must already have quiesced every worker.
func (o *Oracle) Check(table sets.Verifiable) Diff {
	present := make(map[keys.Key]struct{})
	for _, k := range table.Snapshot(nil) {
		present[k] = struct{}{}
	}

	expected := make(map[keys.Key]struct{})
	for _, k := range o.Keys() {
		expected[k] = struct{}{}
	}

	var d Diff
	for k := range expected {
		if _, ok := present[k]; !ok {
			d.Missing = append(d.Missing, k)
		}
	}
	for k := range present {
		if _, ok := expected[k]; !ok {
			d.Phantoms = append(d.Phantoms, k)
		}
	}
	sort.Slice(d.Missing, func(i, j int) bool { return d.Missing[i] < d.Missing[j] })
	sort.Slice(d.Phantoms, func(i, j int) bool { return d.Phantoms[i] < d.Phantoms[j] })
	return d
}

// CheckPoolsAbsent implements the unused-key-pool check of spec.md
// section 6: on shutdown, no key from any worker's disjoint unused pool
// may be present in the table.
func CheckPoolsAbsent(table sets.Set, pools [][]keys.Key, tid int) []keys.Key {
	var violations []keys.Key
	for _, pool := range pools {
		for _, k := range pool {
			if table.Contains(k, tid) {
				violations = append(violations, k)
			}
		}
	}
	return violations
}
