package engine

import (
	"sync/atomic"
	"time"

	"github.com/mkaza/fission/status"
)

// System is one fixed-priority stage of the tick. Lower priorities
// run first; the ordering between stages is load-bearing for the
// collision pipeline.
type System interface {
	Name() string
	Priority() int
	Update(dt time.Duration)
}

type scheduledSystem struct {
	sys System
	ms  *status.AtomicFloat
}

// Scheduler runs systems in priority order every tick.
type Scheduler struct {
	systems []scheduledSystem
	ticks   *atomic.Int64
}

func NewScheduler(reg *status.Registry) *Scheduler {
	return &Scheduler{ticks: reg.Ints.Get("engine.ticks")}
}

// Add inserts keeping priority order; equal priorities keep insert
// order.
func (s *Scheduler) Add(reg *status.Registry, sys System) {
	entry := scheduledSystem{
		sys: sys,
		ms:  reg.Floats.Get("system." + sys.Name() + ".ms"),
	}
	i := len(s.systems)
	for i > 0 && s.systems[i-1].sys.Priority() > sys.Priority() {
		i--
	}
	s.systems = append(s.systems, scheduledSystem{})
	copy(s.systems[i+1:], s.systems[i:])
	s.systems[i] = entry
}

// Update runs one tick.
func (s *Scheduler) Update(dt time.Duration) {
	s.ticks.Add(1)
	for _, entry := range s.systems {
		start := time.Now()
		entry.sys.Update(dt)
		entry.ms.Set(float64(time.Since(start).Microseconds()) / 1000.0)
	}
}

// Names lists systems in execution order, for the debug overlay.
func (s *Scheduler) Names() []string {
	out := make([]string, len(s.systems))
	for i, entry := range s.systems {
		out[i] = entry.sys.Name()
	}
	return out
}
