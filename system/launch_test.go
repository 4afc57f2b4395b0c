package system

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/parameter"
	"github.com/mkaza/fission/physics"
)

func launchOnce(t *testing.T, v mgl32.Vec2) mgl32.Vec2 {
	t.Helper()
	ctx, _ := newTestContext(t)
	w := ctx.World
	ls := NewLaunchSystem(ctx)

	player := SpawnPlayer(ctx, mgl32.Vec2{})
	event.Launches.Publish(w, event.Launch{Vector: v})
	ls.Update(time.Second / 60)

	return physics.Velocity(component.Body.Get(w.Entry(player)).B)
}

// A full-length drag produces the full launch speed, straight along
// the drag vector.
func TestLaunchAppliesImpulse(t *testing.T) {
	vel := launchOnce(t, mgl32.Vec2{parameter.DragMax, 0})
	if vel.X() <= 0 {
		t.Fatalf("Expected a positive launch velocity, got %v", vel)
	}
	if math.Abs(float64(vel.Y())) > 0.001 {
		t.Errorf("Expected no lateral component, got %v", vel.Y())
	}
}

// Drags below the minimum are ignored entirely.
func TestLaunchIgnoresShortDrag(t *testing.T) {
	vel := launchOnce(t, mgl32.Vec2{parameter.DragMin - 1, 0})
	if vel.Len() != 0 {
		t.Errorf("Expected no impulse below the drag minimum, got %v", vel)
	}
}

// Drags beyond the maximum clamp to it, so an extreme drag launches
// no harder than a full one.
func TestLaunchClampsLongDrag(t *testing.T) {
	full := launchOnce(t, mgl32.Vec2{parameter.DragMax, 0})
	over := launchOnce(t, mgl32.Vec2{parameter.DragMax * 3, 0})
	if diff := math.Abs(float64(full.X() - over.X())); diff > 0.01 {
		t.Errorf("Expected clamped drags to match a full drag, diff %v", diff)
	}
}

// Impulse scales linearly with drag length between the limits.
func TestLaunchScalesWithDrag(t *testing.T) {
	half := launchOnce(t, mgl32.Vec2{parameter.DragMax / 2, 0})
	full := launchOnce(t, mgl32.Vec2{parameter.DragMax, 0})
	ratio := full.X() / half.X()
	if ratio < 1.99 || ratio > 2.01 {
		t.Errorf("Expected a full drag to launch twice as hard as a half drag, ratio %v", ratio)
	}
}

// Launching brings time back to normal speed after slow motion.
func TestLaunchRestoresNormalTime(t *testing.T) {
	ctx, _ := newTestContext(t)
	w := ctx.World
	ls := NewLaunchSystem(ctx)

	SpawnPlayer(ctx, mgl32.Vec2{})
	ctx.Res.Scale.SetAutomatic(parameter.SlowTimeScale)

	event.Launches.Publish(w, event.Launch{Vector: mgl32.Vec2{parameter.DragMax, 0}})
	ls.Update(time.Second / 60)

	if got := ctx.Res.Scale.Target(); got != parameter.NormalTimeScale {
		t.Errorf("Expected normal time after launch, got %v", got)
	}
}

// A launch with no player alive is dropped quietly.
func TestLaunchWithoutPlayer(t *testing.T) {
	ctx, _ := newTestContext(t)
	w := ctx.World
	ls := NewLaunchSystem(ctx)

	event.Launches.Publish(w, event.Launch{Vector: mgl32.Vec2{parameter.DragMax, 0}})
	ls.Update(time.Second / 60)

	if got := ctx.Res.Scale.Target(); got != parameter.NormalTimeScale {
		t.Errorf("Expected the scale untouched, got %v", got)
	}
}
