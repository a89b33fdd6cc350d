package report

import (
	"fmt"
	"io"

	"github.com/g-m-twostay/hashset-lab/internal/perfcounters"
)

// WriteSummary writes the per-run .txt summary: the run configuration,
// the throughput result, and the -P soft counter deltas when present.
func WriteSummary(w io.Writer, r Result, counters *perfcounters.Sample) error {
	_, err := fmt.Fprintf(w,
		"table=%s reclaimer=%s allocator=%s threads=%d size_exp=%d update_pct=%d load_factor=%s\n"+
			"duration_s=%s total_ops=%d throughput_hz=%s\n",
		r.Table, r.Reclaimer, r.Allocator, r.Threads, r.SizeExp, r.UpdatePct,
		formatFloat(r.LoadFactor), formatFloat(r.DurationSecs), r.TotalOps, formatFloat(r.ThroughputHz))
	if err != nil {
		return err
	}
	if counters == nil {
		return nil
	}
	_, err = fmt.Fprintf(w,
		"voluntary_ctxt_switches=%d involuntary_ctxt_switches=%d minor_faults=%d major_faults=%d\n",
		counters.VoluntaryCtxSwitches, counters.InvoluntaryCtxSwitches,
		counters.MinorFaults, counters.MajorFaults)
	return err
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
