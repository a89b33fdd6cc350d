//go:build linux

package topology

import "golang.org/x/sys/unix"

// Pin binds the calling OS thread to cpu. Callers must have already called
// runtime.LockOSThread, or the binding follows whichever goroutine the
// scheduler next moves onto this OS thread rather than the caller.
func Pin(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
