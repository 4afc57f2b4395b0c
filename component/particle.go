package component

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/level"
)

// ParticleData is one live particle instance. Def snapshots the
// definition node it was spawned from, so the fragment tree for
// future splits travels with the instance.
type ParticleData struct {
	Def    level.Particle
	Sensor donburi.Entity
	Arrows []donburi.Entity
}

var Particle = donburi.NewComponentType[ParticleData]()

// ImmunityData is the post-split invincibility window. While present
// the instance neither triggers nor suffers decompositions; the
// component is removed when Remaining runs out.
type ImmunityData struct {
	Remaining time.Duration
}

var Immunity = donburi.NewComponentType[ImmunityData]()

// Killer marks instances and obstacles that end the attempt on player
// contact.
var Killer = donburi.NewTag().SetName("Killer")
