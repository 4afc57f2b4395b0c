package engine

import (
	"sync"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/mkaza/fission/parameter"
)

// TimeScale arbitrates the simulation speed multiplier. Gameplay
// keeps an automatic value current; a manual override wins over it
// unconditionally while present. Setting the automatic value under
// an override does not disturb the override, it is simply the value
// revealed once the override clears.
//
// Target switches instantly; Applied glides toward it so the felt
// simulation speed has no step discontinuity.
type TimeScale struct {
	mu         sync.Mutex
	auto       float64
	override   float64
	overridden bool

	applied    float64
	lastTarget float64
	tween      *gween.Tween
}

func NewTimeScale() *TimeScale {
	return &TimeScale{
		auto:       parameter.NormalTimeScale,
		applied:    parameter.NormalTimeScale,
		lastTarget: parameter.NormalTimeScale,
	}
}

// Target is the value the controller currently asks for.
func (t *TimeScale) Target() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.overridden {
		return t.override
	}
	return t.auto
}

// SetAutomatic updates the gameplay-driven value.
func (t *TimeScale) SetAutomatic(v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.auto = v
}

// SetOverride pins the multiplier until ClearOverride.
func (t *TimeScale) SetOverride(v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.override = v
	t.overridden = true
}

// ClearOverride reverts to whatever the automatic value is now.
func (t *TimeScale) ClearOverride() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.overridden = false
}

func (t *TimeScale) Overridden() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.overridden
}

// Current reports the last applied multiplier without advancing the
// easing.
func (t *TimeScale) Current() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.applied
}

// Applied advances the easing by dt and returns the multiplier the
// physics step should use this tick.
func (t *TimeScale) Applied(dt time.Duration) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	target := t.auto
	if t.overridden {
		target = t.override
	}
	if target != t.lastTarget {
		t.tween = gween.New(float32(t.applied), float32(target), float32(parameter.TimeScaleEase.Seconds()), ease.OutQuad)
		t.lastTarget = target
	}
	if t.tween != nil {
		v, done := t.tween.Update(float32(dt.Seconds()))
		t.applied = float64(v)
		if done {
			t.tween = nil
			t.applied = target
		}
	}
	return t.applied
}
