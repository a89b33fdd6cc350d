// Command benchset is the concurrent hash-set benchmarking laboratory's
// harness (spec.md section 6): it drives one of five set algorithms with
// a mixed workload across pinned OS threads and reports throughput.
package main

import (
	"log"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/g-m-twostay/hashset-lab/internal/keys"
	"github.com/g-m-twostay/hashset-lab/internal/perfcounters"
	"github.com/g-m-twostay/hashset-lab/internal/report"
	"github.com/g-m-twostay/hashset-lab/internal/topology"
	"github.com/g-m-twostay/hashset-lab/internal/verify"
	"github.com/g-m-twostay/hashset-lab/internal/workload"
)

const (
	stateRunning uint32 = 0
	stateStopped uint32 = 1
)

func main() {
	cfg := ParseConfig(os.Args[1:])

	capN := uint(1) << uint(cfg.SizeExp)
	preloadCount := int(float64(capN) * cfg.LoadFactor)
	seed := uint(time.Now().UnixNano())

	table, err := newTable(cfg, capN, seed)
	if err != nil {
		log.Fatalf("benchset: %v", err)
	}

	for tid := 0; tid < cfg.Threads; tid++ {
		table.ThreadInit(tid)
	}
	for i := 0; i < preloadCount; i++ {
		table.Add(keys.Key(i+1), 0)
	}

	var pools [][]keys.Key
	var oracle *verify.Oracle
	if cfg.Verify {
		preloaded := make([]keys.Key, preloadCount)
		for i := range preloaded {
			preloaded[i] = keys.Key(i + 1)
		}
		reservation := workload.NewPreloaded(preloaded)
		pool := workload.NewPool(keys.Key(preloadCount+1), preloadCount*4+cfg.Threads*1024, reservation)
		pools = workload.AllocateDisjointPools(pool, cfg.Threads, 256)

		oracle = verify.NewOracle()
		for _, k := range preloaded {
			oracle.Add(k)
		}
	}

	plan := topology.Plan(cfg.Threads, cfg.PreferHT)
	barrier := topology.NewBarrier(cfg.Threads)
	var state atomic.Uint32

	var before perfcounters.Sample
	if cfg.Counters {
		before = perfcounters.Read()
	}

	buf := report.NewBuffer()
	var bufMu sync.Mutex
	var totalOps atomic.Int64

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	start := time.Now()
	for tid := 0; tid < cfg.Threads; tid++ {
		tid := tid
		cpu := plan[tid]
		go func() {
			defer wg.Done()
			runtimeLockAndPin(cpu)

			var pool []keys.Key
			var present []bool
			var gen *workload.Generator
			if cfg.Verify {
				pool = pools[tid]
				present = make([]bool, len(pool))
			} else {
				gen = workload.NewGenerator(cfg.UpdatePct, uint32(capN))
			}

			barrier.Arrive()
			barrier.Wait()

			var completed int64
			var lastSecond int
			cursor := 0
			for state.Load() == stateRunning {
				if cfg.Verify {
					if len(pool) > 0 {
						idx := cursor % len(pool)
						k := pool[idx]
						if present[idx] {
							if table.Remove(k, tid) {
								oracle.Remove(k)
							}
							present[idx] = false
						} else {
							if table.Add(k, tid) {
								oracle.Add(k)
							}
							present[idx] = true
						}
						cursor++
					}
				} else {
					op := gen.Next()
					switch op.Kind {
					case workload.OpContains:
						table.Contains(op.Key, tid)
					case workload.OpAdd:
						table.Add(op.Key, tid)
					case workload.OpRemove:
						table.Remove(op.Key, tid)
					}
				}
				completed++

				second := int(time.Since(start) / time.Second)
				if second != lastSecond {
					bufMu.Lock()
					buf.Record(report.Sample{Second: lastSecond, ThreadID: tid, Completed: completed})
					bufMu.Unlock()
					lastSecond = second
				}
			}
			if cfg.Verify {
				for idx, k := range pool {
					if present[idx] {
						if table.Remove(k, tid) {
							oracle.Remove(k)
						}
						present[idx] = false
					}
				}
			}
			bufMu.Lock()
			buf.Record(report.Sample{Second: lastSecond, ThreadID: tid, Completed: completed})
			bufMu.Unlock()
			totalOps.Add(completed)
		}()
	}

	barrier.Wait()
	time.Sleep(time.Duration(cfg.Duration) * time.Second)
	state.Store(stateStopped)
	wg.Wait()
	elapsed := time.Since(start)

	var after perfcounters.Sample
	var counters *perfcounters.Sample
	if cfg.Counters {
		after = perfcounters.Read()
		delta := after.Sub(before)
		counters = &delta
	}

	if cfg.Verify {
		violations := verify.CheckPoolsAbsent(table, pools, 0)
		if len(violations) > 0 {
			log.Fatalf("benchset: verification failed: %d unused-pool keys present in table", len(violations))
		}
		if diff := oracle.Check(table); !diff.Empty() {
			log.Fatalf("benchset: verification failed: %s", diff)
		}
	}

	result := report.Result{
		Table:        cfg.Table,
		Reclaimer:    cfg.Reclaimer,
		Allocator:    cfg.Allocator,
		Threads:      cfg.Threads,
		SizeExp:      cfg.SizeExp,
		UpdatePct:    cfg.UpdatePct,
		LoadFactor:   cfg.LoadFactor,
		DurationSecs: elapsed.Seconds(),
		TotalOps:     totalOps.Load(),
		ThroughputHz: float64(totalOps.Load()) / elapsed.Seconds(),
	}

	if err := writeReport(result, buf, counters); err != nil {
		log.Fatalf("benchset: %v", err)
	}
}

// runtimeLockAndPin locks the calling goroutine to its OS thread and
// pins that thread to cpu, per spec.md section 5's thread-pinning
// policy. Locking must precede Pin or the binding could apply to
// whichever goroutine the scheduler next moves onto this OS thread.
func runtimeLockAndPin(cpu int) {
	runtime.LockOSThread()
	if err := topology.Pin(cpu); err != nil {
		log.Printf("benchset: pin to cpu %d failed: %v", cpu, err)
	}
}
