package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/event"
)

// Contacts arrive against probe entities; classification resolves
// each side up to the body-bearing owner before matching rules.
func TestClassifierResolvesProbeAncestors(t *testing.T) {
	ctx, _ := newTestContext(t)
	w := ctx.World
	cls := NewClassifierSystem(ctx)

	particle := SpawnParticle(ctx, twinDef(), mgl32.Vec2{0, 0}, mgl32.Vec2{}, false)
	player := SpawnPlayer(ctx, mgl32.Vec2{50, 0})
	particleProbe := component.Particle.Get(w.Entry(particle)).Sensor
	playerProbe := component.Player.Get(w.Entry(player)).Sensor

	var hits []event.PlayerParticle
	event.PlayerParticles.Subscribe(w, func(_ donburi.World, e event.PlayerParticle) {
		hits = append(hits, e)
	})

	event.Contacts.Publish(w, event.Contact{A: particleProbe, B: playerProbe, Sensor: true})
	cls.Update(time.Second / 60)
	event.PlayerParticles.ProcessEvents(w)

	if len(hits) != 1 {
		t.Fatalf("Expected 1 player-particle event, got %d", len(hits))
	}
	if hits[0].Particle != particle {
		t.Error("Expected the event to name the resolved particle entity")
	}
}

// A contact whose side cannot reach a body is dropped without any
// downstream event.
func TestClassifierDropsUnresolvable(t *testing.T) {
	ctx, _ := newTestContext(t)
	w := ctx.World
	cls := NewClassifierSystem(ctx)

	player := SpawnPlayer(ctx, mgl32.Vec2{})
	playerProbe := component.Player.Get(w.Entry(player)).Sensor
	orphan := w.Create(component.Probe)

	fired := 0
	event.PlayerParticles.Subscribe(w, func(_ donburi.World, e event.PlayerParticle) { fired++ })
	event.PlayerKills.Subscribe(w, func(_ donburi.World, e event.PlayerKilled) { fired++ })

	event.Contacts.Publish(w, event.Contact{A: orphan, B: playerProbe, Sensor: true})
	cls.Update(time.Second / 60)
	event.PlayerParticles.ProcessEvents(w)
	event.PlayerKills.ProcessEvents(w)

	if fired != 0 {
		t.Errorf("Expected no events from an unresolvable contact, got %d", fired)
	}
	if got := ctx.Res.Metrics.Ints.Get("collisions.dropped").Load(); got != 1 {
		t.Errorf("Expected 1 dropped contact, got %d", got)
	}
}

// Both probes of one instance resolve to the same owner; such a pair
// means nothing and is dropped.
func TestClassifierDropsSelfContact(t *testing.T) {
	ctx, _ := newTestContext(t)
	w := ctx.World
	cls := NewClassifierSystem(ctx)

	particle := SpawnParticle(ctx, leafDef(10), mgl32.Vec2{}, mgl32.Vec2{}, false)
	probe := component.Particle.Get(w.Entry(particle)).Sensor

	fired := 0
	event.ParticlePairs.Subscribe(w, func(_ donburi.World, e event.ParticlePair) { fired++ })

	event.Contacts.Publish(w, event.Contact{A: probe, B: particle, Sensor: true})
	cls.Update(time.Second / 60)
	event.ParticlePairs.ProcessEvents(w)

	if fired != 0 {
		t.Errorf("Expected no pair event from a self contact, got %d", fired)
	}
}

// Killer contact is fatal even though the killer side is also a
// splittable particle.
func TestClassifierKillOutranksSplit(t *testing.T) {
	ctx, _ := newTestContext(t)
	w := ctx.World
	cls := NewClassifierSystem(ctx)

	killer := SpawnParticle(ctx, killerDef(12), mgl32.Vec2{0, 0}, mgl32.Vec2{}, false)
	player := SpawnPlayer(ctx, mgl32.Vec2{40, 0})
	killerProbe := component.Particle.Get(w.Entry(killer)).Sensor
	playerProbe := component.Player.Get(w.Entry(player)).Sensor

	var kills []event.PlayerKilled
	splits := 0
	event.PlayerKills.Subscribe(w, func(_ donburi.World, e event.PlayerKilled) { kills = append(kills, e) })
	event.PlayerParticles.Subscribe(w, func(_ donburi.World, e event.PlayerParticle) { splits++ })

	event.Contacts.Publish(w, event.Contact{A: playerProbe, B: killerProbe, Sensor: true})
	cls.Update(time.Second / 60)
	event.PlayerKills.ProcessEvents(w)
	event.PlayerParticles.ProcessEvents(w)

	if len(kills) != 1 {
		t.Fatalf("Expected 1 kill event, got %d", len(kills))
	}
	if kills[0].Player != player {
		t.Error("Expected the kill event to name the player entity")
	}
	if splits != 0 {
		t.Errorf("Expected no split event from a killer touch, got %d", splits)
	}
}

// Two particles touching yields a pair event carrying both owners.
func TestClassifierParticlePair(t *testing.T) {
	ctx, _ := newTestContext(t)
	w := ctx.World
	cls := NewClassifierSystem(ctx)

	first := SpawnParticle(ctx, leafDef(10), mgl32.Vec2{0, 0}, mgl32.Vec2{}, false)
	second := SpawnParticle(ctx, leafDef(10), mgl32.Vec2{15, 0}, mgl32.Vec2{}, false)
	firstProbe := component.Particle.Get(w.Entry(first)).Sensor
	secondProbe := component.Particle.Get(w.Entry(second)).Sensor

	var pairs []event.ParticlePair
	event.ParticlePairs.Subscribe(w, func(_ donburi.World, e event.ParticlePair) { pairs = append(pairs, e) })

	event.Contacts.Publish(w, event.Contact{A: firstProbe, B: secondProbe, Sensor: true})
	cls.Update(time.Second / 60)
	event.ParticlePairs.ProcessEvents(w)

	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair event, got %d", len(pairs))
	}
	if pairs[0].First != first || pairs[0].Second != second {
		t.Error("Expected the pair event to carry both resolved owners")
	}
}

// Only the first classifiable contact of a tick goes through; the
// rest of the batch waits for following ticks.
func TestClassifierFirstMatchDefersRest(t *testing.T) {
	ctx, _ := newTestContext(t)
	w := ctx.World
	cls := NewClassifierSystem(ctx)

	player := SpawnPlayer(ctx, mgl32.Vec2{})
	playerProbe := component.Player.Get(w.Entry(player)).Sensor
	first := SpawnParticle(ctx, leafDef(10), mgl32.Vec2{30, 0}, mgl32.Vec2{}, false)
	second := SpawnParticle(ctx, leafDef(10), mgl32.Vec2{-30, 0}, mgl32.Vec2{}, false)
	firstProbe := component.Particle.Get(w.Entry(first)).Sensor
	secondProbe := component.Particle.Get(w.Entry(second)).Sensor

	var hits []event.PlayerParticle
	event.PlayerParticles.Subscribe(w, func(_ donburi.World, e event.PlayerParticle) {
		hits = append(hits, e)
	})

	event.Contacts.Publish(w, event.Contact{A: playerProbe, B: firstProbe, Sensor: true})
	event.Contacts.Publish(w, event.Contact{A: playerProbe, B: secondProbe, Sensor: true})

	cls.Update(time.Second / 60)
	event.PlayerParticles.ProcessEvents(w)
	if len(hits) != 1 {
		t.Fatalf("Expected 1 event after the first tick, got %d", len(hits))
	}
	if hits[0].Particle != first {
		t.Error("Expected arrival order to decide which contact matches first")
	}
	if got := ctx.Res.Metrics.Ints.Get("collisions.deferred").Load(); got != 1 {
		t.Errorf("Expected 1 deferred contact, got %d", got)
	}

	cls.Update(time.Second / 60)
	event.PlayerParticles.ProcessEvents(w)
	if len(hits) != 2 {
		t.Fatalf("Expected the deferred contact to match next tick, got %d events", len(hits))
	}
	if hits[1].Particle != second {
		t.Error("Expected the deferred contact to resolve second")
	}
}

// A deferred contact whose entities died in the meantime resolves to
// nothing and is quietly consumed.
func TestClassifierStaleDeferredDropped(t *testing.T) {
	ctx, _ := newTestContext(t)
	w := ctx.World
	cls := NewClassifierSystem(ctx)

	player := SpawnPlayer(ctx, mgl32.Vec2{})
	playerProbe := component.Player.Get(w.Entry(player)).Sensor
	first := SpawnParticle(ctx, leafDef(10), mgl32.Vec2{30, 0}, mgl32.Vec2{}, false)
	second := SpawnParticle(ctx, leafDef(10), mgl32.Vec2{-30, 0}, mgl32.Vec2{}, false)
	firstProbe := component.Particle.Get(w.Entry(first)).Sensor
	secondProbe := component.Particle.Get(w.Entry(second)).Sensor

	hits := 0
	event.PlayerParticles.Subscribe(w, func(_ donburi.World, e event.PlayerParticle) { hits++ })

	event.Contacts.Publish(w, event.Contact{A: playerProbe, B: firstProbe, Sensor: true})
	event.Contacts.Publish(w, event.Contact{A: playerProbe, B: secondProbe, Sensor: true})
	cls.Update(time.Second / 60)

	DestroyParticle(ctx, second)
	cls.Update(time.Second / 60)
	event.PlayerParticles.ProcessEvents(w)

	if hits != 1 {
		t.Errorf("Expected the stale deferred contact to drop, got %d events", hits)
	}
}
