package component

import (
	"github.com/ByteArena/box2d"
	"github.com/yohamta/donburi"
)

// BodyData links an entity to its rigid body. Position and velocity
// live in the body alone; nothing caches them ECS-side.
type BodyData struct {
	B *box2d.B2Body
}

var Body = donburi.NewComponentType[BodyData]()
