// Package topology builds the CPU pinning plan spec.md section 5 names
// ("pins each to a distinct hardware thread chosen by a topology-aware
// policy") and the start barrier every worker crosses with the controller
// before the first table operation. CPU affinity itself is grounded on
// codewanderer42820's ring24/setaffinity_linux.go and its stub pair —
// same build-tag split (linux-only syscall vs. a silently-inlined no-op
// everywhere else) — generalised here to golang.org/x/sys/unix's
// SchedSetaffinity instead of a raw syscall.RawSyscall, since
// golang.org/x/sys is already part of this lab's dependency stack.
package topology

import (
	"bufio"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// cpu identifies one hardware thread's position in the socket/core/thread
// hierarchy.
type cpu struct {
	id       int
	socket   int
	core     int
	threadNo int // 0 for the first thread on a core, 1+ for hyperthread siblings
}

// discover reads /proc/cpuinfo and groups logical processors by (physical
// id, core id). On any read or parse failure — including every non-Linux
// platform — it falls back to runtime.NumCPU() synthetic single-thread
// cores on one socket, so the policy below always has something to plan
// over.
func discover() []cpu {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return fallback()
	}
	defer f.Close()

	type raw struct {
		processor, physicalID, coreID int
		seen                          bool
	}
	var cur raw
	var entries []raw
	flush := func() {
		if cur.seen {
			entries = append(entries, cur)
		}
		cur = raw{}
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "processor":
			if n, err := strconv.Atoi(val); err == nil {
				cur.processor = n
				cur.seen = true
			}
		case "physical id":
			if n, err := strconv.Atoi(val); err == nil {
				cur.physicalID = n
			}
		case "core id":
			if n, err := strconv.Atoi(val); err == nil {
				cur.coreID = n
			}
		}
	}
	flush()

	if len(entries) == 0 {
		return fallback()
	}

	threadNo := map[[2]int]int{}
	cpus := make([]cpu, 0, len(entries))
	for _, e := range entries {
		key := [2]int{e.physicalID, e.coreID}
		n := threadNo[key]
		threadNo[key] = n + 1
		cpus = append(cpus, cpu{id: e.processor, socket: e.physicalID, core: e.coreID, threadNo: n})
	}
	return cpus
}

func fallback() []cpu {
	n := runtime.NumCPU()
	cpus := make([]cpu, n)
	for i := range cpus {
		cpus[i] = cpu{id: i, socket: 0, core: i, threadNo: 0}
	}
	return cpus
}
