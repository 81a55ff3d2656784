// Package pool implements a bounded free-list of reusable *vm.Organism
// slots. Organisms are small, high-churn values (spawned by Clone and
// forced split, discarded on death), the same shape of problem the
// teacher's grid2d/food package solves with a sync.Pool — generalized
// here to a capacity-bounded stack, since a sync.Pool offers no control
// over how many slots it holds and may evict between GCs.
package pool

import (
	"sync"

	"github.com/HectorHW/aquarium/internal/vm"
)

// Pool is a capacity-bounded free-list of *vm.Organism. It is purely an
// optimization: Get returning nil just means the caller must allocate.
type Pool struct {
	mu       sync.Mutex
	free     []*vm.Organism
	capacity int
}

// New builds a Pool holding at most capacity recycled organisms. A
// capacity of 0 disables recycling: Put always drops its argument.
func New(capacity int) *Pool {
	return &Pool{capacity: capacity}
}

// Get pops a recycled organism, or returns nil if none are available.
func (p *Pool) Get() *vm.Organism {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.free)
	if n == 0 {
		return nil
	}
	o := p.free[n-1]
	p.free = p.free[:n-1]
	return o
}

// Put returns a dead organism's backing storage to the pool for reuse, if
// there's room. It is the caller's responsibility to not retain any other
// reference to o afterward.
func (p *Pool) Put(o *vm.Organism) {
	if p == nil || p.capacity == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) >= p.capacity {
		return
	}
	p.free = append(p.free, o)
}

// Len reports how many recycled organisms are currently held.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
