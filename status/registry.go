package status

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// MetricMap hands out stable pointers keyed by name. Systems resolve
// their metrics once at init and then write lock-free; the mutex only
// guards registration.
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the pointer for key, allocating on first use.
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	if p, ok := m.items[key]; ok {
		m.mu.RUnlock()
		return p
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.items[key]; ok {
		return p
	}
	p := new(T)
	m.items[key] = p
	return p
}

// Range visits metrics in sorted key order so the overlay renders a
// stable layout.
func (m *MetricMap[T]) Range(fn func(key string, p *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m.items[k])
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Registry is the process-wide metrics facade.
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Line is one formatted overlay row.
type Line struct {
	Key, Value string
}

// Snapshot flattens every metric into display form, keys sorted
// within each kind, kinds in a fixed order.
func (r *Registry) Snapshot() []Line {
	var out []Line
	r.Ints.Range(func(k string, p *atomic.Int64) {
		out = append(out, Line{k, fmt.Sprintf("%d", p.Load())})
	})
	r.Floats.Range(func(k string, p *AtomicFloat) {
		out = append(out, Line{k, fmt.Sprintf("%.2f", p.Get())})
	})
	r.Strings.Range(func(k string, p *AtomicString) {
		out = append(out, Line{k, p.Get()})
	})
	r.Bools.Range(func(k string, p *atomic.Bool) {
		out = append(out, Line{k, fmt.Sprintf("%t", p.Load())})
	})
	return out
}
