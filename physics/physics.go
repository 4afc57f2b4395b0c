package physics

import (
	"github.com/ByteArena/box2d"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/parameter"
)

// Scale converts world units to simulation meters. Gameplay constants
// are tuned in world units; only this package talks meters.
const Scale = 50.0

// Collision categories. Immune particles keep terrain response but
// stop pushing the player or each other; probes are sensor fixtures
// that only overlap other probes, so a touch between two filtered
// bodies still produces a contact to classify.
const (
	CategoryTerrain uint16 = 0x0001
	CategoryActive  uint16 = 0x0002
	CategoryImmune  uint16 = 0x0004
	CategoryProbe   uint16 = 0x0008

	MaskTerrain = CategoryTerrain | CategoryActive | CategoryImmune
	MaskActive  = CategoryTerrain | CategoryActive
	MaskImmune  = CategoryTerrain
	MaskProbe   = CategoryProbe
)

// Contact is one begin-touch observed during a step. A and B are the
// entities hung on the two fixtures; Sensor marks probe overlaps.
type Contact struct {
	A, B   donburi.Entity
	Sensor bool
}

// World wraps the rigid body simulation. Bodies must never be created
// or destroyed while Step runs; the listener only buffers contacts
// and systems mutate afterwards.
type World struct {
	b2      box2d.B2World
	pending []Contact
}

func NewWorld() *World {
	w := &World{
		b2: box2d.MakeB2World(box2d.MakeB2Vec2(0, parameter.Gravity)),
	}
	w.b2.SetContactListener(&contactListener{world: w})
	return w
}

// Step advances the simulation by dt seconds, already multiplied by
// whatever time scale applies.
func (w *World) Step(dt float64) {
	sub := dt / parameter.Substeps
	for i := 0; i < parameter.Substeps; i++ {
		w.b2.Step(sub, parameter.VelocityIterations, parameter.PositionIterations)
	}
}

// DrainContacts hands over everything buffered since the last drain.
func (w *World) DrainContacts() []Contact {
	if len(w.pending) == 0 {
		return nil
	}
	out := make([]Contact, len(w.pending))
	copy(out, w.pending)
	w.pending = w.pending[:0]
	return out
}

func toMeters(v mgl32.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(float64(v.X())/Scale, float64(v.Y())/Scale)
}

func toWorld(v box2d.B2Vec2) mgl32.Vec2 {
	return mgl32.Vec2{float32(v.X * Scale), float32(v.Y * Scale)}
}

// Position reports a body's center in world units.
func Position(b *box2d.B2Body) mgl32.Vec2 {
	return toWorld(b.GetPosition())
}

// Velocity reports a body's linear velocity in world units per second.
func Velocity(b *box2d.B2Body) mgl32.Vec2 {
	return toWorld(b.GetLinearVelocity())
}
