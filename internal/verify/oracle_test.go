package verify

import "testing"

func TestOracleAddRemoveContains(t *testing.T) {
	o := NewOracle()
	if !o.Add(5) {
		t.Fatalf("first add of 5 should report true")
	}
	if o.Add(5) {
		t.Fatalf("duplicate add of 5 should report false")
	}
	if !o.Contains(5) {
		t.Fatalf("5 should be present")
	}
	if !o.Remove(5) {
		t.Fatalf("remove of present key should report true")
	}
	if o.Remove(5) {
		t.Fatalf("remove of absent key should report false")
	}
	if o.Contains(5) {
		t.Fatalf("5 should be absent after removal")
	}
}
