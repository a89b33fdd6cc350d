package topology

import "sort"

// Plan orders hardware threads for the -H policy of spec.md section 6: with
// preferHyperthreads, a socket's hyperthread siblings are exhausted before
// moving to the next socket; without it, one thread per distinct physical
// core is handed out across every socket first, and hyperthread siblings
// are only used once every physical core is already spoken for. Plan
// returns the first threads entries of that order, wrapping around if
// threads exceeds the number of hardware threads discovered.
func Plan(threads int, preferHyperthreads bool) []int {
	cpus := discover()
	sort.Slice(cpus, func(i, j int) bool {
		a, b := cpus[i], cpus[j]
		if a.socket != b.socket {
			return a.socket < b.socket
		}
		if a.core != b.core {
			return a.core < b.core
		}
		return a.threadNo < b.threadNo
	})

	var order []int
	if preferHyperthreads {
		for _, c := range cpus {
			order = append(order, c.id)
		}
	} else {
		for _, c := range cpus {
			if c.threadNo == 0 {
				order = append(order, c.id)
			}
		}
		for _, c := range cpus {
			if c.threadNo != 0 {
				order = append(order, c.id)
			}
		}
	}

	if len(order) == 0 {
		order = []int{0}
	}

	plan := make([]int, threads)
	for i := range plan {
		plan[i] = order[i%len(order)]
	}
	return plan
}
