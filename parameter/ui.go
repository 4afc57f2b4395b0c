package parameter

import "time"

// Screen layout
const (
	// HUDRows is reserved at the top of the terminal for the status
	// line; the arena is projected into the remaining cells.
	HUDRows = 1

	// CellAspect compensates for terminal cells being roughly twice
	// as tall as wide when projecting world space onto the grid.
	CellAspect = 2.0

	MinScreenWidth  = 60
	MinScreenHeight = 20
)

// Menu timing
const (
	SplashDuration = 1800 * time.Millisecond
	FadeDuration   = 400 * time.Millisecond

	// LoadingMinDuration keeps the loading screen visible long
	// enough to register instead of flashing for one frame.
	LoadingMinDuration = 250 * time.Millisecond
)

// ImmunityBlink is the half-period of the immune flicker.
const ImmunityBlink = 150 * time.Millisecond

// Editor
const (
	// EditorNudge is the world-space distance one arrow-key press
	// moves the selected element.
	EditorNudge = 10.0

	// EditorHistoryDepth bounds the undo ring.
	EditorHistoryDepth = 64

	// EditorRotateStep is one rotate-key press in radians, 1/24 turn.
	EditorRotateStep = 0.2617993877991494

	AutosaveInterval = 30 * time.Second
)
