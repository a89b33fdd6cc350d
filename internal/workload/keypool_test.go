package workload

import (
	"testing"

	"github.com/g-m-twostay/hashset-lab/internal/keys"
)

func TestNewPoolExcludesPreloaded(t *testing.T) {
	preloaded := NewPreloaded([]keys.Key{0, 1, 2, 3, 4})
	pool := NewPool(0, 50, preloaded)

	claimed := pool.Claim(45)
	if len(claimed) != 45 {
		t.Fatalf("expected 45 keys, got %d", len(claimed))
	}
	for _, k := range claimed {
		if k < 5 {
			t.Fatalf("claimed preloaded key %d", k)
		}
	}
}

func TestAllocateDisjointPoolsNeverOverlap(t *testing.T) {
	pool := NewPool(0, 400, nil)
	pools := AllocateDisjointPools(pool, 4, 10)

	seen := make(map[keys.Key]bool)
	for _, p := range pools {
		if len(p) != 10 {
			t.Fatalf("expected 10 keys per pool, got %d", len(p))
		}
		for _, k := range p {
			if seen[k] {
				t.Fatalf("key %d handed out to more than one pool", k)
			}
			seen[k] = true
		}
	}
}

func TestPoolClaimExhaustion(t *testing.T) {
	pool := NewPool(0, 5, nil)
	first := pool.Claim(3)
	second := pool.Claim(3)
	if len(first) != 3 {
		t.Fatalf("expected 3 keys claimed, got %d", len(first))
	}
	if len(second) != 2 {
		t.Fatalf("expected remaining 2 keys, got %d", len(second))
	}
}
