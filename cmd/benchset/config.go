package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Config is the parsed form of spec.md section 6's command line.
type Config struct {
	LoadFactor float64
	SizeExp    int
	Duration   int
	Threads    int
	UpdatePct  int
	Table      string
	Reclaimer  string
	Allocator  string
	Counters   bool
	Verify     bool
	PreferHT   bool
}

var validTables = map[string]bool{
	"rh_brown_set":   true,
	"trans_rh_set":   true,
	"hopscotch_set":  true,
	"lf_lp_node_set": true,
	"mm_set":         true,
}

var validReclaimers = map[string]bool{"leaky": true, "epoch": true}
var validAllocators = map[string]bool{"je": true, "glibc": true, "intel": true}

// ParseConfig parses argv per spec.md section 6. Any unknown flag or
// invalid flag value prints help and exits non-zero (§7's configuration
// error class) rather than propagating an error, since configuration
// errors by definition never reach the set code.
func ParseConfig(args []string) Config {
	fs := pflag.NewFlagSet("benchset", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: benchset [flags]\n\n%s", fs.FlagUsages())
	}

	loadFactor := fs.Float64P("load-factor", "L", 0.4, "load factor (0..1)")
	sizeExp := fs.IntP("size-exp", "S", 23, "size as power-of-two exponent")
	duration := fs.IntP("duration", "D", 1, "run duration in seconds")
	threads := fs.IntP("threads", "T", 1, "worker count")
	updatePct := fs.IntP("update-pct", "U", 10, "update percentage 0..100")
	table := fs.StringP("table", "B", "mm_set", "set implementation: rh_brown_set|trans_rh_set|hopscotch_set|lf_lp_node_set|mm_set")
	reclaimer := fs.StringP("reclaimer", "M", "epoch", "reclaimer: leaky|epoch")
	allocator := fs.StringP("allocator", "A", "glibc", "allocator: je|glibc|intel")
	counters := fs.BoolP("counters", "P", false, "enable hardware counters")
	verify := fs.BoolP("verify", "V", false, "verification mode")
	preferHT := fs.BoolP("hyperthreads", "H", false, "prefer hyperthreads before switching socket")

	if err := fs.Parse(args); err != nil {
		fs.Usage()
		os.Exit(2)
	}

	cfg := Config{
		LoadFactor: *loadFactor,
		SizeExp:    *sizeExp,
		Duration:   *duration,
		Threads:    *threads,
		UpdatePct:  *updatePct,
		Table:      *table,
		Reclaimer:  *reclaimer,
		Allocator:  *allocator,
		Counters:   *counters,
		Verify:     *verify,
		PreferHT:   *preferHT,
	}

	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	}
	return cfg
}

func (c Config) validate() error {
	if c.LoadFactor <= 0 || c.LoadFactor > 1 {
		return fmt.Errorf("invalid load factor %g: must be in (0, 1]", c.LoadFactor)
	}
	if c.SizeExp <= 0 {
		return fmt.Errorf("invalid size exponent %d: must be positive", c.SizeExp)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("invalid duration %d: must be positive", c.Duration)
	}
	if c.Threads <= 0 {
		return fmt.Errorf("invalid thread count %d: must be positive", c.Threads)
	}
	if c.UpdatePct < 0 || c.UpdatePct > 100 {
		return fmt.Errorf("invalid update percentage %d: must be in [0, 100]", c.UpdatePct)
	}
	if !validTables[c.Table] {
		return fmt.Errorf("unknown table %q", c.Table)
	}
	if !validReclaimers[c.Reclaimer] {
		return fmt.Errorf("unknown reclaimer %q", c.Reclaimer)
	}
	if !validAllocators[c.Allocator] {
		return fmt.Errorf("unknown allocator %q", c.Allocator)
	}
	return nil
}
