package workload

import "testing"

func TestGeneratorStaysWithinKeySpace(t *testing.T) {
	g := NewGenerator(30, 100)
	for i := 0; i < 10000; i++ {
		op := g.Next()
		if uint32(op.Key) > g.keyMask {
			t.Fatalf("key %d escaped mask %d", op.Key, g.keyMask)
		}
	}
}

func TestGeneratorZeroUpdatesIsAllReads(t *testing.T) {
	g := NewGenerator(0, 64)
	for i := 0; i < 1000; i++ {
		if g.Next().Kind != OpContains {
			t.Fatalf("expected only OpContains at updatePct=0")
		}
	}
}

func TestGeneratorFullUpdatesNeverReads(t *testing.T) {
	g := NewGenerator(100, 64)
	for i := 0; i < 1000; i++ {
		if g.Next().Kind == OpContains {
			t.Fatalf("expected no OpContains at updatePct=100")
		}
	}
}
