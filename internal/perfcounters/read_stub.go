//go:build !linux

package perfcounters

// Read is a zero-sample no-op off Linux: /proc has no portable
// equivalent, and -P is an optional diagnostic, not a correctness
// requirement.
func Read() Sample {
	return Sample{}
}
