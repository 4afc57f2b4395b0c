package physics

import (
	"github.com/ByteArena/box2d"
	"github.com/yohamta/donburi"
)

// contactListener buffers begin-touches. The simulation forbids body
// mutation from inside callbacks, so this does nothing but record.
type contactListener struct {
	world *World
}

func (l *contactListener) BeginContact(contact box2d.B2ContactInterface) {
	fa := contact.GetFixtureA()
	fb := contact.GetFixtureB()
	ea, okA := fa.GetUserData().(donburi.Entity)
	eb, okB := fb.GetUserData().(donburi.Entity)
	if !okA || !okB {
		return
	}
	l.world.pending = append(l.world.pending, Contact{
		A:      ea,
		B:      eb,
		Sensor: fa.IsSensor() || fb.IsSensor(),
	})
}

func (l *contactListener) EndContact(contact box2d.B2ContactInterface) {}

func (l *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {
}

func (l *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}
