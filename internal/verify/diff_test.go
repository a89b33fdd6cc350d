package verify

import (
	"testing"

	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

type fakeTable struct {
	contents []keys.Key
}

func (f *fakeTable) ThreadInit(tid int) bool { return true }

func (f *fakeTable) Contains(k keys.Key, tid int) bool {
	for _, x := range f.contents {
		if x == k {
			return true
		}
	}
	return false
}

func (f *fakeTable) Add(k keys.Key, tid int) bool {
	f.contents = append(f.contents, k)
	return true
}

func (f *fakeTable) Remove(k keys.Key, tid int) bool { return true }

func (f *fakeTable) Snapshot(dst []keys.Key) []keys.Key {
	return append(dst, f.contents...)
}

func TestDiffDetectsMissingAndPhantom(t *testing.T) {
	o := NewOracle()
	o.Add(1)
	o.Add(2)
	o.Add(3)

	table := &fakeTable{contents: []keys.Key{2, 3, 99}}

	d := o.Check(table)
	if len(d.Missing) != 1 || d.Missing[0] != 1 {
		t.Fatalf("expected missing=[1], got %v", d.Missing)
	}
	if len(d.Phantoms) != 1 || d.Phantoms[0] != 99 {
		t.Fatalf("expected phantoms=[99], got %v", d.Phantoms)
	}
}

func TestCheckPoolsAbsent(t *testing.T) {
	table := &fakeTable{contents: []keys.Key{10}}
	pools := [][]keys.Key{{1, 2}, {10, 20}}

	violations := CheckPoolsAbsent(table, pools, 0)
	if len(violations) != 1 || violations[0] != 10 {
		t.Fatalf("expected violation=[10], got %v", violations)
	}
}
