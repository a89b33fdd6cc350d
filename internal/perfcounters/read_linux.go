//go:build linux

package perfcounters

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// Read samples /proc/self/stat (minor/major fault counts, fields 10 and
// 12) and /proc/self/status (voluntary/nonvoluntary context switches).
// Parse errors yield a zero field rather than propagating — a soft
// counter that fails to read is reported as absent, not fatal; this
// sampler backs an optional diagnostic, not the benchmark itself.
func Read() Sample {
	var s Sample
	if data, err := os.ReadFile("/proc/self/stat"); err == nil {
		fields := strings.Fields(string(data))
		if len(fields) > 11 {
			s.MinorFaults, _ = strconv.ParseInt(fields[9], 10, 64)
			s.MajorFaults, _ = strconv.ParseInt(fields[11], 10, 64)
		}
	}

	f, err := os.Open("/proc/self/status")
	if err != nil {
		return s
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "voluntary_ctxt_switches:"):
			s.VoluntaryCtxSwitches = parseTrailingInt(line)
		case strings.HasPrefix(line, "nonvoluntary_ctxt_switches:"):
			s.InvoluntaryCtxSwitches = parseTrailingInt(line)
		}
	}
	return s
}

func parseTrailingInt(line string) int64 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	v, _ := strconv.ParseInt(fields[len(fields)-1], 10, 64)
	return v
}
