package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
)

// gauntletLevel is a stage whose root splits into one harmless leaf
// and one lethal fragment.
func gauntletLevel() *level.Data {
	root := twinDef()
	k := killerDef(10)
	k.Velocity = mgl32.Vec2{160, 0}
	root.Children[1] = k
	return &level.Data{
		Name:        "gauntlet",
		PlayerSpawn: mgl32.Vec2{-400, 0},
		Particles: []level.Placement{
			{Position: mgl32.Vec2{200, 0}, Particle: root},
		},
	}
}

// The full hostile pipeline across classifier, decompose, immunity and
// progression: the player splits a composite carrying a killer child,
// the fragments sit out their windows, and touching the lethal one
// afterwards ends the player without thinning the arena or the run.
func TestKillerFragmentStaysLethal(t *testing.T) {
	ctx, clock := newTestContext(t)
	w := ctx.World
	cls := NewClassifierSystem(ctx)
	imm := NewImmunitySystem(ctx)
	dec := NewDecomposeSystem(ctx)
	prog := NewProgressionSystem(ctx, nil)

	ctx.Res.Library = &level.Library{
		Customs: []level.Stage{{Custom: true, Data: gauntletLevel()}},
	}

	walkToLoading(t, ctx, engine.ScreenLevelSelect)
	event.StageStarts.Publish(w, event.StartStage{Custom: "gauntlet"})
	prog.Update(parameter.TickInterval)
	clock.Advance(parameter.LoadingMinDuration + 10*time.Millisecond)
	prog.Update(parameter.TickInterval)
	settle(ctx, clock, prog)

	root, ok := particleQuery.First(w)
	if !ok {
		t.Fatal("Expected the root particle spawned")
	}
	player, ok := playerQuery.First(w)
	if !ok {
		t.Fatal("Expected the player spawned")
	}
	rootProbe := component.Particle.Get(root).Sensor
	playerProbe := component.Player.Get(player).Sensor

	event.Contacts.Publish(w, event.Contact{A: playerProbe, B: rootProbe, Sensor: true})
	cls.Update(parameter.TickInterval)
	dec.Update(parameter.TickInterval)
	settle(ctx, clock, prog)

	if got := ctx.State.Attempt(clock.Now()).Count; got != 2 {
		t.Fatalf("Expected 2 fragments on record after the split, got %d", got)
	}
	var lethal *donburi.Entry
	killers := 0
	particleQuery.Each(w, func(entry *donburi.Entry) {
		if entry.HasComponent(component.Killer) {
			killers++
			lethal = entry
		}
	})
	if killers != 1 {
		t.Fatalf("Expected exactly 1 lethal fragment, got %d", killers)
	}

	imm.Update(parameter.ImmunityDuration + parameter.TickInterval)
	if got := immuneQuery.Count(w); got != 0 {
		t.Fatalf("Expected every window lapsed, got %d still immune", got)
	}

	event.Contacts.Publish(w, event.Contact{
		A:      component.Particle.Get(lethal).Sensor,
		B:      playerProbe,
		Sensor: true,
	})
	cls.Update(parameter.TickInterval)
	prog.Update(parameter.TickInterval)

	if _, ok := playerQuery.First(w); ok {
		t.Error("Expected the lethal touch to destroy the player")
	}
	if got := particleQuery.Count(w); got != 2 {
		t.Errorf("Expected the arena untouched by the kill, got %d particles", got)
	}
	att := ctx.State.Attempt(clock.Now())
	if att.Phase != engine.PhasePlaying {
		t.Errorf("Expected the attempt to keep running, got phase %v", att.Phase)
	}
	if got := ctx.State.Screen(); got != engine.ScreenGameplay {
		t.Errorf("Expected to stay in gameplay, got %v", got)
	}
}
