// Package report buffers per-second throughput samples and writes the
// two CSVs and the .txt summary spec.md section 6 calls for: a per-key
// scheduling/event file, a per-run results file, and a per-run summary
// whose filename encodes the run's configuration.
package report

import (
	"github.com/petar/GoLLRB/llrb"
)

// Sample is one worker-second's worth of completed operations.
type Sample struct {
	Second    int
	ThreadID  int
	Completed int64
}

// sampleItem orders Samples by (Second, ThreadID) so the buffer below
// can emit them already sorted by time without re-sorting a slice —
// the per-key scheduling/event file's ordering requirement.
type sampleItem Sample

func (a sampleItem) Less(b llrb.Item) bool {
	other := b.(sampleItem)
	if a.Second != other.Second {
		return a.Second < other.Second
	}
	return a.ThreadID < other.ThreadID
}

// Buffer accumulates throughput samples from every worker, keyed by
// (second, thread), and replays them in that order. A later sample with
// the same (second, thread) replaces the earlier one.
type Buffer struct {
	tree *llrb.LLRB
}

func NewBuffer() *Buffer {
	return &Buffer{tree: llrb.New()}
}

func (b *Buffer) Record(s Sample) {
	b.tree.ReplaceOrInsert(sampleItem(s))
}

// Ordered returns every recorded sample in (second, thread) order.
func (b *Buffer) Ordered() []Sample {
	out := make([]Sample, 0, b.tree.Len())
	b.tree.AscendGreaterOrEqual(sampleItem{}, func(item llrb.Item) bool {
		out = append(out, Sample(item.(sampleItem)))
		return true
	})
	return out
}
