package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteEvents writes the per-key scheduling/event CSV: one row per
// (second, thread) sample, already ordered by the Buffer it came from.
func WriteEvents(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"second", "thread", "completed"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Second),
			strconv.Itoa(s.ThreadID),
			strconv.FormatInt(s.Completed, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Result is one run's aggregate outcome, the row written to the per-run
// results CSV.
type Result struct {
	Table        string
	Reclaimer    string
	Allocator    string
	Threads      int
	SizeExp      int
	UpdatePct    int
	LoadFactor   float64
	DurationSecs float64
	TotalOps     int64
	ThroughputHz float64
}

func WriteResults(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	header := []string{
		"table", "reclaimer", "allocator", "threads", "size_exp",
		"update_pct", "load_factor", "duration_s", "total_ops", "throughput_hz",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Table,
			r.Reclaimer,
			r.Allocator,
			strconv.Itoa(r.Threads),
			strconv.Itoa(r.SizeExp),
			strconv.Itoa(r.UpdatePct),
			strconv.FormatFloat(r.LoadFactor, 'f', -1, 64),
			strconv.FormatFloat(r.DurationSecs, 'f', -1, 64),
			strconv.FormatInt(r.TotalOps, 10),
			strconv.FormatFloat(r.ThroughputHz, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SummaryFilename encodes Table, Reclaimer, A, T, S, U, L per spec.md
// section 6, with spaces replaced by underscores.
func SummaryFilename(r Result) string {
	raw := fmt.Sprintf("%s_%s_%s_T%d_S%d_U%d_L%s.txt",
		r.Table, r.Reclaimer, r.Allocator, r.Threads, r.SizeExp, r.UpdatePct,
		strconv.FormatFloat(r.LoadFactor, 'f', -1, 64))
	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == ' ' {
			out[i] = '_'
		} else {
			out[i] = raw[i]
		}
	}
	return string(out)
}
