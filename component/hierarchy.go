package component

import "github.com/yohamta/donburi"

// ParentData points a child entity at its owner. Raw contacts arrive
// against arbitrary collider entities; the classifier walks these
// links upward until it finds an entity carrying a body, and drops
// the contact if the walk dead-ends.
type ParentData struct {
	Entity donburi.Entity
}

var Parent = donburi.NewComponentType[ParentData]()

// Probe marks the overlap sensor child that detects touches between
// pairs whose bodies are filtered out of physical response.
var Probe = donburi.NewTag().SetName("Probe")
