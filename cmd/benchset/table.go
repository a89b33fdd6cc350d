package main

import (
	"fmt"
	"unsafe"

	"github.com/g-m-twostay/hashset-lab/internal/reclaim"
	"github.com/g-m-twostay/hashset-lab/internal/sets"
	"github.com/g-m-twostay/hashset-lab/internal/sets/hopscotch"
	"github.com/g-m-twostay/hashset-lab/internal/sets/lflp"
	"github.com/g-m-twostay/hashset-lab/internal/sets/mm"
	"github.com/g-m-twostay/hashset-lab/internal/sets/rhkcas"
	"github.com/g-m-twostay/hashset-lab/internal/sets/rhtrans"
)

// newReclaimer builds the -M reclaimer. free is a no-op: Go's garbage
// collector owns actual deallocation once a retired pointer is
// unreachable, so the reclaimer's job is purely the temporal one of
// deciding when no thread can still observe it, not manual free.
func newReclaimer(name string, threads int) reclaim.Reclaimer {
	switch name {
	case "leaky":
		return reclaim.NewLeaky(threads)
	case "epoch":
		return reclaim.NewEpoch(threads, func(unsafe.Pointer) {})
	default:
		panic("unreachable: validated by Config.validate")
	}
}

// newTable builds the -B set over capacity capN, seeded with seed. Only
// lflp and mm retire memory and so are the only variants threaded through
// the -M reclaimer. trans_rh_set and hopscotch_set never construct a
// reclaimer; rh_brown_set builds its own Leaky reclaimer internally for
// its K-CAS engine (spec.md section 4.2's Leaky reclaimer), whatever -M
// names.
func newTable(cfg Config, capN uint, seed uint) (sets.Verifiable, error) {
	switch cfg.Table {
	case "rh_brown_set":
		return rhkcas.New(capN, cfg.Threads, seed), nil
	case "trans_rh_set":
		return rhtrans.New(capN, seed), nil
	case "hopscotch_set":
		return hopscotch.New(capN, cfg.Threads, seed), nil
	case "lf_lp_node_set":
		rec := newReclaimer(cfg.Reclaimer, cfg.Threads)
		return lflp.New(capN, cfg.Threads, seed, rec), nil
	case "mm_set":
		rec := newReclaimer(cfg.Reclaimer, cfg.Threads)
		return mm.New(capN, cfg.Threads, seed, rec), nil
	default:
		return nil, fmt.Errorf("unknown table %q", cfg.Table)
	}
}
