package component

import (
	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/level"
)

// ObstacleData is a static terrain body, kept for rendering and for
// the killer flag.
type ObstacleData struct {
	Def level.Obstacle
}

var Obstacle = donburi.NewComponentType[ObstacleData]()
