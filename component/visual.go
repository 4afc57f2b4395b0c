package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/level"
)

// PositionData places entities without a rigid body: arrows and
// editor previews.
type PositionData struct {
	Pos mgl32.Vec2
}

var Position = donburi.NewComponentType[PositionData]()

// ArrowData is one fragment direction hint. The arrow system
// re-anchors it to its parent's rim every frame.
type ArrowData struct {
	Dir mgl32.Vec2
}

var Arrow = donburi.NewComponentType[ArrowData]()

// PreviewData backs editor-owned visual entities. Previews carry no
// bodies and none of the gameplay components, so teardown and the
// classifier never see them.
type PreviewData struct {
	Obstacle *level.Obstacle
	Particle *level.Particle
	Player   bool
	Selected bool
}

var Preview = donburi.NewComponentType[PreviewData]()
