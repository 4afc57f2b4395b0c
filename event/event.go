package event

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/mkaza/fission/level"
)

// Each event type is processed by exactly one system, at a fixed
// point in the tick. Publishing is open to anyone; the processing
// order below is what keeps a split visible before the population
// count settles.

// Contact is a raw begin-touch between two collider entities.
// Trigger: physics step, buffered in the contact listener
// Consumer: classifier | Sensor marks pairs without physical response
type Contact struct {
	A, B   donburi.Entity
	Sensor bool
}

var Contacts = events.NewEventType[Contact]()

// PlayerParticle reports the player touching a splittable particle.
// Trigger: classifier
// Consumer: decomposition
type PlayerParticle struct {
	Particle donburi.Entity
}

var PlayerParticles = events.NewEventType[PlayerParticle]()

// ParticlePair reports two particles touching; both sides split.
// Trigger: classifier
// Consumer: decomposition
type ParticlePair struct {
	First, Second donburi.Entity
}

var ParticlePairs = events.NewEventType[ParticlePair]()

// PlayerKilled reports fatal contact with a killer body. The level
// keeps running; only the player is removed.
// Trigger: classifier
// Consumer: progression
type PlayerKilled struct {
	Player donburi.Entity
}

var PlayerKills = events.NewEventType[PlayerKilled]()

// InstanceSpawned and InstanceRemoved are population deltas. The
// progression system sums the whole tick's worth and applies them to
// the count in one step, so the zero crossing fires exactly once.
// Trigger: spawner, decomposition
// Consumer: progression
type InstanceSpawned struct {
	N int
}

type InstanceRemoved struct {
	N int
}

var (
	Spawns   = events.NewEventType[InstanceSpawned]()
	Removals = events.NewEventType[InstanceRemoved]()
)

// ImmunityLapsed reports an invincibility window running out.
// Trigger: immunity system
// Consumer: cue
type ImmunityLapsed struct {
	Particle donburi.Entity
}

var Lapses = events.NewEventType[ImmunityLapsed]()

// Launch is a released drag in world space, already flipped to world
// orientation but not yet clamped.
// Trigger: input
// Consumer: launch system
type Launch struct {
	Vector mgl32.Vec2
}

var Launches = events.NewEventType[Launch]()

// StartStage asks progression to tear down whatever is running and
// spawn the given stage. Exactly one field is meaningful.
// Trigger: menu input
// Consumer: progression
type StartStage struct {
	Number int
	Custom string
}

var StageStarts = events.NewEventType[StartStage]()

// PlayTest carries an editor snapshot into a throwaway attempt.
// Trigger: editor input
// Consumer: progression
type PlayTest struct {
	Data *level.Data
}

var PlayTests = events.NewEventType[PlayTest]()

// Restart replays the current stage from its retained snapshot.
// Trigger: gameplay input
// Consumer: progression
type Restart struct{}

var Restarts = events.NewEventType[Restart]()

// Abandon quits the current attempt back to the menu.
// Trigger: gameplay input
// Consumer: progression
type Abandon struct{}

var Abandons = events.NewEventType[Abandon]()

// Cleared announces a finished stage after the completion delay.
// Final is set when no stage follows.
// Trigger: progression
// Consumer: cue
type Cleared struct {
	Final bool
}

var Clears = events.NewEventType[Cleared]()

// Sound asks the audio engine for a cue.
// Trigger: anyone
// Consumer: cue system, which forwards to the engine
type Sound struct {
	ID SoundID
}

var Sounds = events.NewEventType[Sound]()

type SoundID uint8

const (
	SoundLaunch SoundID = iota
	SoundStretch
	SoundSplit
	SoundPop
	SoundLapse
	SoundKill
	SoundClear
	SoundWin
	SoundMenuMove
	SoundMenuSelect
)
