package status

import (
	"sync"
	"testing"
)

// TestGetReturnsStablePointer verifies repeated lookups share one
// metric, which is what lets systems cache the pointer at init.
func TestGetReturnsStablePointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("ticks")
	b := r.Ints.Get("ticks")
	if a != b {
		t.Error("Expected the same pointer for the same key")
	}
	a.Add(5)
	if got := b.Load(); got != 5 {
		t.Errorf("Expected 5 through the second pointer, got %d", got)
	}
}

// TestConcurrentRegistration hammers Get and Add from many goroutines
// to verify the registration path holds up.
func TestConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				r.Ints.Get("contacts").Add(1)
				r.Floats.Get("scale").Add(0.5)
			}
		}()
	}
	wg.Wait()
	if got := r.Ints.Get("contacts").Load(); got != 16*500 {
		t.Errorf("Expected %d, got %d", 16*500, got)
	}
	if got := r.Floats.Get("scale").Get(); got != 16*500*0.5 {
		t.Errorf("Expected %v, got %v", 16*500*0.5, got)
	}
}

// TestSnapshotOrder verifies the overlay sees keys in sorted order so
// rows do not jump around between frames.
func TestSnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b.second").Store(2)
	r.Ints.Get("a.first").Store(1)
	r.Strings.Get("screen").Set("gameplay")

	lines := r.Snapshot()
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[0].Key != "a.first" || lines[1].Key != "b.second" {
		t.Errorf("Expected sorted int keys first, got %v", lines)
	}
	if lines[2].Key != "screen" || lines[2].Value != "gameplay" {
		t.Errorf("Expected screen line last, got %v", lines[2])
	}
}

// TestAtomicStringZeroValue verifies an unset string metric reads
// empty instead of panicking.
func TestAtomicStringZeroValue(t *testing.T) {
	var s AtomicString
	if got := s.Get(); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
