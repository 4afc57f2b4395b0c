package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat stores a float64 behind bit-converted atomics. The zero
// value reads as 0.0.
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(v float64) {
	f.bits.Store(math.Float64bits(v))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add retries through CAS until the delta lands.
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// AtomicString swaps whole values; no in-place mutation. The zero
// value reads as the empty string.
type AtomicString struct {
	p atomic.Pointer[string]
}

func (s *AtomicString) Set(v string) {
	s.p.Store(&v)
}

func (s *AtomicString) Get() string {
	if p := s.p.Load(); p != nil {
		return *p
	}
	return ""
}
