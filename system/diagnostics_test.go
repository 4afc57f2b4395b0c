package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mkaza/fission/parameter"
)

// Diagnostics samples world and state gauges into the registry.
func TestDiagnosticsSamplesGauges(t *testing.T) {
	ctx, _ := newTestContext(t)
	diag := NewDiagnosticsSystem(ctx)

	SpawnParticle(ctx, leafDef(10), mgl32.Vec2{}, mgl32.Vec2{}, false)
	SpawnParticle(ctx, leafDef(10), mgl32.Vec2{50, 0}, mgl32.Vec2{40, 0}, true)
	diag.Update(parameter.TickInterval)

	reg := ctx.Res.Metrics
	if got := reg.Ints.Get("world.particles").Load(); got != 2 {
		t.Errorf("Expected 2 particles sampled, got %d", got)
	}
	if got := reg.Ints.Get("world.immune").Load(); got != 1 {
		t.Errorf("Expected 1 immune instance sampled, got %d", got)
	}
	if got := reg.Strings.Get("game.screen").Get(); got != "splash" {
		t.Errorf("Expected the splash screen sampled, got %q", got)
	}
	if got := reg.Floats.Get("scale.target").Get(); got != parameter.NormalTimeScale {
		t.Errorf("Expected the normal scale target sampled, got %v", got)
	}
	if reg.Bools.Get("game.paused").Load() {
		t.Error("Expected an unpaused sample")
	}
}
