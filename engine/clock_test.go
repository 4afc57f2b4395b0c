package engine

import (
	"testing"
	"time"
)

// TestMockClockAdvances verifies time only moves when told to.
func TestMockClockAdvances(t *testing.T) {
	c := NewMockClock()
	start := c.Now()
	if c.Now() != start {
		t.Error("Expected frozen time between advances")
	}
	c.Advance(250 * time.Millisecond)
	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Errorf("Expected 250ms advance, got %v", got)
	}
}
