//go:build !linux

package topology

// Pin is a no-op off Linux: sched_setaffinity has no portable equivalent,
// and spec.md section 5's pinning policy is a performance concern, not a
// correctness one — an unpinned worker still produces correct results.
func Pin(cpu int) error {
	return nil
}
