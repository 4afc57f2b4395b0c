package input

// IntentKind discriminates semantic actions.
type IntentKind uint8

const (
	IntentNone IntentKind = iota

	// System
	IntentQuit          // Ctrl+C anywhere, q on the title
	IntentResize        // terminal resize event
	IntentMuteToggle    // m
	IntentOverlayToggle // F2, `

	// Menus and interstitials
	IntentMenuUp     // Up, k
	IntentMenuDown   // Down, j
	IntentMenuSelect // Enter
	IntentBack       // Esc
	IntentSkip       // any key on splash and end screens

	// Gameplay
	IntentPauseToggle // Esc
	IntentRestart     // r
	IntentAbandon     // q while paused
	IntentSlowToggle  // Space
	IntentDragStart   // left press
	IntentDragMove    // motion while held
	IntentDragEnd     // left release

	// Editor
	IntentEditApply       // left click: place or select
	IntentEditCursor      // pointer motion
	IntentEditToolNext    // Tab
	IntentEditPaletteNext // ], wheel up
	IntentEditPalettePrev // [, wheel down
	IntentEditNudge       // arrows, hjkl
	IntentEditDelete      // d, Delete, Backspace
	IntentEditRotate      // r counterclockwise, R clockwise
	IntentEditUndo        // u
	IntentEditRedo        // Ctrl+R
	IntentEditCopy        // y
	IntentEditSave        // s
	IntentEditPlay        // p
	IntentEditClear       // n
)

// Intent is one parsed semantic action. Pure data, no engine calls.
// X,Y carry screen cells for pointer intents and the new size for
// resize; DX,DY carry the unit nudge direction or the rotate sign.
type Intent struct {
	Kind   IntentKind
	X, Y   int
	DX, DY float32
}
