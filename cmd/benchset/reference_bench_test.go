package main

// Sanity-checks the lab's own sets against known-good concurrent maps,
// the same comparison shape as the teacher's Maps/comparisons/cmp1_test.go
// (haxmap and cornelk/hashmap benchmarked side by side with the teacher's
// own map types). Here the "own types" side is the lab's mm_set rather
// than a production map.

import (
	"testing"

	"github.com/alphadose/haxmap"
	"github.com/cornelk/hashmap"

	"github.com/g-m-twostay/hashset-lab/internal/sets/mm"
)

const referenceItemCount = 1024

func setupHaxMap(b *testing.B) *haxmap.Map[uintptr, uintptr] {
	b.Helper()
	m := haxmap.New[uintptr, uintptr]()
	for i := uintptr(1); i <= referenceItemCount; i++ {
		m.Set(i, i)
	}
	return m
}

func setupHashMap(b *testing.B) *hashmap.Map[uintptr, uintptr] {
	b.Helper()
	m := hashmap.New[uintptr, uintptr]()
	for i := uintptr(1); i <= referenceItemCount; i++ {
		m.Set(i, i)
	}
	return m
}

func setupMMSet(b *testing.B) *mm.Table {
	b.Helper()
	rec := newReclaimer("epoch", 1)
	t := mm.New(referenceItemCount*2, 1, 0, rec)
	t.ThreadInit(0)
	for i := uint64(1); i <= referenceItemCount; i++ {
		t.Add(i, 0)
	}
	return t
}

func BenchmarkReadHaxMap(b *testing.B) {
	m := setupHaxMap(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for i := uintptr(1); i <= referenceItemCount; i++ {
				if _, ok := m.Get(i); !ok {
					b.Fail()
				}
			}
		}
	})
}

func BenchmarkReadCornelkHashMap(b *testing.B) {
	m := setupHashMap(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for i := uintptr(1); i <= referenceItemCount; i++ {
				if _, ok := m.Get(i); !ok {
					b.Fail()
				}
			}
		}
	})
}

// BenchmarkReadMMSet runs serially rather than under b.RunParallel: tid
// is a per-thread reclaimer identity (spec.md section 4.1), and sharing
// tid 0 across concurrent goroutines the way the haxmap/hashmap
// benchmarks above share their map would race the reclaimer's per-thread
// garbage lists. A real multi-thread comparison assigns each goroutine
// its own tid, which is exactly what cmd/benchset's worker loop does.
func BenchmarkReadMMSet(b *testing.B) {
	t := setupMMSet(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uint64(1); i <= referenceItemCount; i++ {
			if !t.Contains(i, 0) {
				b.Fail()
			}
		}
	}
}
