package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
	"github.com/mkaza/fission/physics"
)

var (
	particleQuery = donburi.NewQuery(filter.Contains(component.Particle))
	immuneQuery   = donburi.NewQuery(filter.Contains(component.Particle, component.Immunity))
	playerQuery   = donburi.NewQuery(filter.Contains(component.Player))
	bodyQuery     = donburi.NewQuery(filter.Contains(component.Body))
	probeQuery    = donburi.NewQuery(filter.Contains(component.Probe))
	arrowQuery    = donburi.NewQuery(filter.Contains(component.Arrow))
	previewQuery  = donburi.NewQuery(filter.Contains(component.Preview))
)

// SpawnParticle builds one live instance: dynamic ball, probe child
// for overlap detection, and an arrow child per fragment. Split-born
// instances arrive immune with the full window; level roots arrive
// vulnerable and at rest. Publishes the spawn delta.
func SpawnParticle(ctx *engine.GameContext, def level.Particle, pos, vel mgl32.Vec2, immune bool) donburi.Entity {
	w := ctx.World
	comps := []donburi.IComponentType{component.Particle, component.Body}
	if immune {
		comps = append(comps, component.Immunity)
	}
	if def.Kind == level.KindKiller {
		comps = append(comps, component.Killer)
	}
	e := w.Create(comps...)
	entry := w.Entry(e)

	probe := w.Create(component.Probe, component.Parent)
	component.Parent.SetValue(w.Entry(probe), component.ParentData{Entity: e})

	body := ctx.Physics.CreateBall(e, pos, vel, def.Radius, immune)
	ctx.Physics.AttachProbe(body, probe, def.Radius)
	component.Body.SetValue(entry, component.BodyData{B: body})

	arrows := make([]donburi.Entity, 0, len(def.Children))
	for i := range def.Children {
		dir := def.Children[i].Velocity
		a := w.Create(component.Arrow, component.Position, component.Parent)
		ae := w.Entry(a)
		component.Arrow.SetValue(ae, component.ArrowData{Dir: dir})
		component.Parent.SetValue(ae, component.ParentData{Entity: e})
		component.Position.SetValue(ae, component.PositionData{Pos: arrowAnchor(pos, def.Radius, dir)})
		arrows = append(arrows, a)
	}
	component.Particle.SetValue(entry, component.ParticleData{Def: def, Sensor: probe, Arrows: arrows})
	if immune {
		component.Immunity.SetValue(entry, component.ImmunityData{Remaining: parameter.ImmunityDuration})
	}
	event.Spawns.Publish(w, event.InstanceSpawned{N: 1})
	return e
}

// arrowAnchor sits an arrow just off the parent's rim along the
// fragment's launch direction.
func arrowAnchor(center mgl32.Vec2, radius float32, dir mgl32.Vec2) mgl32.Vec2 {
	return center.Add(dir.Normalize().Mul(radius + parameter.ArrowOffset))
}

// DestroyParticle tears down an instance with its probe and arrows
// and publishes the removal delta. Safe to call on an entity that is
// already gone; it reports whether anything was destroyed.
func DestroyParticle(ctx *engine.GameContext, e donburi.Entity) bool {
	w := ctx.World
	if !w.Valid(e) {
		return false
	}
	entry := w.Entry(e)
	if !entry.HasComponent(component.Particle) {
		return false
	}
	pd := *component.Particle.Get(entry)
	if entry.HasComponent(component.Body) {
		ctx.Physics.Destroy(component.Body.Get(entry).B)
	}
	if w.Valid(pd.Sensor) {
		w.Remove(pd.Sensor)
	}
	for _, a := range pd.Arrows {
		if w.Valid(a) {
			w.Remove(a)
		}
	}
	w.Remove(e)
	event.Removals.Publish(w, event.InstanceRemoved{N: 1})
	return true
}

// SpawnPlayer creates the launchable ball with its probe.
func SpawnPlayer(ctx *engine.GameContext, pos mgl32.Vec2) donburi.Entity {
	w := ctx.World
	e := w.Create(component.Player, component.Body)
	entry := w.Entry(e)

	probe := w.Create(component.Probe, component.Parent)
	component.Parent.SetValue(w.Entry(probe), component.ParentData{Entity: e})

	body := ctx.Physics.CreateBall(e, pos, mgl32.Vec2{}, parameter.PlayerRadius, false)
	ctx.Physics.AttachProbe(body, probe, parameter.PlayerRadius)
	component.Body.SetValue(entry, component.BodyData{B: body})
	component.Player.SetValue(entry, component.PlayerData{Sensor: probe, Radius: parameter.PlayerRadius})
	return e
}

// DestroyPlayer removes the player ball if one is alive.
func DestroyPlayer(ctx *engine.GameContext) bool {
	w := ctx.World
	entry, ok := playerQuery.First(w)
	if !ok {
		return false
	}
	pd := *component.Player.Get(entry)
	if entry.HasComponent(component.Body) {
		ctx.Physics.Destroy(component.Body.Get(entry).B)
	}
	if w.Valid(pd.Sensor) {
		w.Remove(pd.Sensor)
	}
	w.Remove(entry.Entity())
	return true
}

// SpawnStage populates the arena from a level snapshot: boundary
// walls, terrain, root particles, and the player.
func SpawnStage(ctx *engine.GameContext, data *level.Data) {
	w := ctx.World

	walls := w.Create(component.Body)
	component.Body.SetValue(w.Entry(walls), component.BodyData{B: ctx.Physics.CreateWalls(walls)})

	for i := range data.Obstacles {
		ob := data.Obstacles[i]
		comps := []donburi.IComponentType{component.Obstacle, component.Body}
		if ob.Killer {
			comps = append(comps, component.Killer)
		}
		e := w.Create(comps...)
		entry := w.Entry(e)
		component.Obstacle.SetValue(entry, component.ObstacleData{Def: ob})
		component.Body.SetValue(entry, component.BodyData{B: ctx.Physics.CreateObstacle(e, &ob)})
	}

	for i := range data.Particles {
		p := data.Particles[i]
		SpawnParticle(ctx, p.Particle, p.Position, mgl32.Vec2{}, false)
	}

	SpawnPlayer(ctx, data.PlayerSpawn)
}

// TeardownStage removes every gameplay entity. Editor previews carry
// none of these components and survive.
func TeardownStage(ctx *engine.GameContext) {
	w := ctx.World
	var doomed []donburi.Entity

	bodyQuery.Each(w, func(entry *donburi.Entry) {
		ctx.Physics.Destroy(component.Body.Get(entry).B)
		doomed = append(doomed, entry.Entity())
	})
	probeQuery.Each(w, func(entry *donburi.Entry) {
		doomed = append(doomed, entry.Entity())
	})
	arrowQuery.Each(w, func(entry *donburi.Entry) {
		doomed = append(doomed, entry.Entity())
	})
	for _, e := range doomed {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
	ctx.Res.Drag = engine.DragState{}
}

// particlePosition reads an instance's center through its body.
func particlePosition(entry *donburi.Entry) mgl32.Vec2 {
	return physics.Position(component.Body.Get(entry).B)
}
