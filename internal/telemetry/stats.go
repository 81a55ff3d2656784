package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

// Counter accumulates a running total concurrency-safely, adapted from the
// teacher's stats.Counter.
type Counter struct {
	v int64
}

func (c *Counter) Add(v int64)  { atomic.AddInt64(&c.v, v) }
func (c *Counter) Value() int64 { return atomic.LoadInt64(&c.v) }

// StepRate samples a monotonically increasing step counter (e.g.
// worldgrid.World.MeasureSteps) once per interval and reports the
// resulting throughput, matching spec.md §5's "second task takes
// throughput measurements once per second under the same mutex" — adapted
// from the teacher's stats.MovingAvg, simplified to a single-window rate
// since the spec calls for a plain tick rate, not a smoothed average.
type StepRate struct {
	mu       sync.Mutex
	lastTime time.Time
	lastStep uint64
	rate     float64
	started  bool
}

// Sample records a new (steps-so-far) reading taken at t and updates the
// rate based on the delta since the previous sample.
func (r *StepRate) Sample(t time.Time, steps uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		r.lastTime, r.lastStep, r.started = t, steps, true
		return
	}
	dt := t.Sub(r.lastTime).Seconds()
	if dt > 0 {
		r.rate = float64(steps-r.lastStep) / dt
	}
	r.lastTime, r.lastStep = t, steps
}

// Rate returns the most recently computed steps-per-second.
func (r *StepRate) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rate
}
