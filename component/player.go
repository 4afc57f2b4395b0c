package component

import "github.com/yohamta/donburi"

// PlayerData marks the launchable ball. At most one exists per level
// attempt.
type PlayerData struct {
	Sensor donburi.Entity
	Radius float32
}

var Player = donburi.NewComponentType[PlayerData]()
