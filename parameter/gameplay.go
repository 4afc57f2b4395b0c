package parameter

import "time"

// Arena
const (
	// World coordinates are centered on the arena origin, Y up.
	ArenaWidth  = 1280.0
	ArenaHeight = 720.0

	// WallThickness is the depth of the static boundary bodies that
	// keep everything inside the arena.
	WallThickness = 40.0
)

// Player
const (
	PlayerRadius = 20.0

	// ForceScalar converts a normalized drag vector into a launch
	// impulse. A full-length drag applies exactly this magnitude.
	ForceScalar = 7000.0

	// Drag vectors shorter than DragMin are ignored, longer than
	// DragMax are clamped before the impulse is computed.
	DragMin = 80.0
	DragMax = 250.0
)

// Decomposition
const (
	// SplitMargin separates a freshly spawned fragment from the
	// surface of its parent so the pair never starts interpenetrated.
	SplitMargin = 4.0

	// ArrowOffset is the gap between a particle's rim and the
	// direction arrows hinting at its fragments.
	ArrowOffset = 3.0

	// ImmunityDuration is the post-split invincibility window.
	// Must stay above zero so a fragment never lapses in the tick
	// it was created.
	ImmunityDuration = 3 * time.Second
)

// Level flow
const (
	// CompletionDelay runs after the particle count first reaches
	// zero, before the level is declared finished.
	CompletionDelay = 1500 * time.Millisecond

	// RestartHoldOff debounces restart requests while a level is
	// already tearing down.
	RestartHoldOff = 250 * time.Millisecond
)

// Time scale
const (
	NormalTimeScale = 1.0
	SlowTimeScale   = 0.1

	// TimeScaleEase is how long the applied physics multiplier takes
	// to glide to a new target. The controller's reported value
	// switches instantly; only the felt simulation speed eases.
	TimeScaleEase = 120 * time.Millisecond
)
