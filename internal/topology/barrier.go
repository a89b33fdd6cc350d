package topology

import "sync"

// Barrier is the T+1-way start barrier of spec.md section 5: every worker
// calls Arrive once it is ready to run (the harness has already run
// ThreadInit for every tid); the controller's Wait returns only once every
// worker has, so benchmark timing excludes initialisation.
type Barrier struct {
	wg sync.WaitGroup
}

func NewBarrier(workers int) *Barrier {
	b := &Barrier{}
	b.wg.Add(workers)
	return b
}

func (b *Barrier) Arrive() {
	b.wg.Done()
}

func (b *Barrier) Wait() {
	b.wg.Wait()
}
