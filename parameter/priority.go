package parameter

// System Execution Priorities (lower runs first)
const (
	// Physics must finish stepping and publish the tick's contacts
	// before anything downstream looks at them.
	PriorityPhysics = 10

	// Classification consumes raw contacts, so it follows physics
	// directly.
	PriorityClassifier = 20

	// Immunity timers advance before decomposition so a window that
	// lapses this tick frees its particle for this tick's splits,
	// while fragments spawned below never lapse early.
	PriorityImmunity = 30

	PriorityDecompose = 40
	PriorityLaunch    = 50

	// Arrows re-anchor to their parents after splits settle.
	PriorityArrow = 60

	PriorityPreview = 70
	PriorityCue     = 80
	PriorityFlow    = 90

	// Progression sums the tick's population deltas last, so the
	// zero crossing is evaluated exactly once per tick.
	PriorityProgression = 100

	PriorityDiagnostics = 1000
)
