package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestBufferOrdersBySecondThenThread(t *testing.T) {
	b := NewBuffer()
	b.Record(Sample{Second: 1, ThreadID: 1, Completed: 10})
	b.Record(Sample{Second: 0, ThreadID: 1, Completed: 5})
	b.Record(Sample{Second: 0, ThreadID: 0, Completed: 7})

	got := b.Ordered()
	want := []Sample{
		{Second: 0, ThreadID: 0, Completed: 7},
		{Second: 0, ThreadID: 1, Completed: 5},
		{Second: 1, ThreadID: 1, Completed: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestWriteEventsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	samples := []Sample{{Second: 0, ThreadID: 0, Completed: 100}}
	if err := WriteEvents(&buf, samples); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if !strings.Contains(buf.String(), "100") {
		t.Fatalf("expected completed count in output, got %q", buf.String())
	}
}

func TestSummaryFilenameReplacesSpaces(t *testing.T) {
	r := Result{Table: "mm set", Reclaimer: "epoch", Allocator: "je", Threads: 4, SizeExp: 23, UpdatePct: 10, LoadFactor: 0.4}
	name := SummaryFilename(r)
	if strings.Contains(name, " ") {
		t.Fatalf("expected no spaces in filename, got %q", name)
	}
}

func TestWriteSummaryWithoutCounters(t *testing.T) {
	var buf bytes.Buffer
	r := Result{Table: "mm_set", Reclaimer: "epoch", Allocator: "je", Threads: 1, SizeExp: 10, UpdatePct: 10, LoadFactor: 0.4, DurationSecs: 1, TotalOps: 1000, ThroughputHz: 1000}
	if err := WriteSummary(&buf, r, nil); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "throughput_hz=1000") {
		t.Fatalf("expected throughput in output, got %q", buf.String())
	}
}
