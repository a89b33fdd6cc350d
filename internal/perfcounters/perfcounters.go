// Package perfcounters samples the -P true soft counters of spec.md
// section 1's "hardware performance-counter collection" external
// collaborator. Real PMU access (perf_event_open) is plausible but no
// example repo in the pack imports a binding for it, so this is a
// /proc/self/stat-derived sampler instead — it keeps the -P interface
// the spec names without fabricating a dependency (see DESIGN.md).
package perfcounters

// Sample is the delta of soft counters taken before and after a run.
type Sample struct {
	VoluntaryCtxSwitches   int64
	InvoluntaryCtxSwitches int64
	MinorFaults            int64
	MajorFaults            int64
}

func (s Sample) Sub(base Sample) Sample {
	return Sample{
		VoluntaryCtxSwitches:   s.VoluntaryCtxSwitches - base.VoluntaryCtxSwitches,
		InvoluntaryCtxSwitches: s.InvoluntaryCtxSwitches - base.InvoluntaryCtxSwitches,
		MinorFaults:            s.MinorFaults - base.MinorFaults,
		MajorFaults:            s.MajorFaults - base.MajorFaults,
	}
}
