package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mkaza/fission/engine"
)

// Machine parses tcell events into semantic intents. The same key
// means different things on different screens, so the current screen
// and pause flag come in with every event. The only state kept here
// is the left button, for press and release edges.
type Machine struct {
	leftDown bool
}

func NewMachine() *Machine {
	return &Machine{}
}

// Reset drops the held-button state, for screen transitions that
// happen under the pointer.
func (m *Machine) Reset() {
	m.leftDown = false
}

// Process parses one event. A nil intent means the event does not
// bind to anything on this screen.
func (m *Machine) Process(ev tcell.Event, screen engine.Screen, paused bool) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return &Intent{Kind: IntentResize, X: w, Y: h}
	case *tcell.EventKey:
		return m.processKey(ev, screen, paused)
	case *tcell.EventMouse:
		return m.processMouse(ev, screen)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey, screen engine.Screen, paused bool) *Intent {
	// Bindings that hold everywhere, whatever the screen.
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return &Intent{Kind: IntentQuit}
	case tcell.KeyF2:
		return &Intent{Kind: IntentOverlayToggle}
	}
	if ev.Key() == tcell.KeyRune && ev.Rune() == '`' {
		return &Intent{Kind: IntentOverlayToggle}
	}

	switch screen {
	case engine.ScreenSplash, engine.ScreenEnd:
		return &Intent{Kind: IntentSkip}
	case engine.ScreenTitle:
		return m.titleKey(ev)
	case engine.ScreenLevelSelect:
		return m.selectKey(ev)
	case engine.ScreenGameplay:
		if paused {
			return m.pausedKey(ev)
		}
		return m.gameplayKey(ev)
	case engine.ScreenEditor:
		return m.editorKey(ev)
	}
	return nil
}

func (m *Machine) titleKey(ev *tcell.EventKey) *Intent {
	switch ev.Key() {
	case tcell.KeyUp:
		return &Intent{Kind: IntentMenuUp}
	case tcell.KeyDown:
		return &Intent{Kind: IntentMenuDown}
	case tcell.KeyEnter:
		return &Intent{Kind: IntentMenuSelect}
	case tcell.KeyEscape:
		return &Intent{Kind: IntentQuit}
	}
	switch ev.Rune() {
	case 'k':
		return &Intent{Kind: IntentMenuUp}
	case 'j':
		return &Intent{Kind: IntentMenuDown}
	case 'q':
		return &Intent{Kind: IntentQuit}
	case 'm':
		return &Intent{Kind: IntentMuteToggle}
	}
	return nil
}

func (m *Machine) selectKey(ev *tcell.EventKey) *Intent {
	switch ev.Key() {
	case tcell.KeyUp:
		return &Intent{Kind: IntentMenuUp}
	case tcell.KeyDown:
		return &Intent{Kind: IntentMenuDown}
	case tcell.KeyEnter:
		return &Intent{Kind: IntentMenuSelect}
	case tcell.KeyEscape:
		return &Intent{Kind: IntentBack}
	}
	switch ev.Rune() {
	case 'k':
		return &Intent{Kind: IntentMenuUp}
	case 'j':
		return &Intent{Kind: IntentMenuDown}
	case 'q':
		return &Intent{Kind: IntentBack}
	case 'm':
		return &Intent{Kind: IntentMuteToggle}
	}
	return nil
}

func (m *Machine) gameplayKey(ev *tcell.EventKey) *Intent {
	if ev.Key() == tcell.KeyEscape {
		return &Intent{Kind: IntentPauseToggle}
	}
	switch ev.Rune() {
	case ' ':
		return &Intent{Kind: IntentSlowToggle}
	case 'r':
		return &Intent{Kind: IntentRestart}
	case 'm':
		return &Intent{Kind: IntentMuteToggle}
	}
	return nil
}

func (m *Machine) pausedKey(ev *tcell.EventKey) *Intent {
	if ev.Key() == tcell.KeyEscape {
		return &Intent{Kind: IntentPauseToggle}
	}
	switch ev.Rune() {
	case 'r':
		return &Intent{Kind: IntentRestart}
	case 'q':
		return &Intent{Kind: IntentAbandon}
	case 'm':
		return &Intent{Kind: IntentMuteToggle}
	}
	return nil
}

func (m *Machine) editorKey(ev *tcell.EventKey) *Intent {
	switch ev.Key() {
	case tcell.KeyEscape:
		return &Intent{Kind: IntentBack}
	case tcell.KeyTab:
		return &Intent{Kind: IntentEditToolNext}
	case tcell.KeyUp:
		return &Intent{Kind: IntentEditNudge, DY: 1}
	case tcell.KeyDown:
		return &Intent{Kind: IntentEditNudge, DY: -1}
	case tcell.KeyLeft:
		return &Intent{Kind: IntentEditNudge, DX: -1}
	case tcell.KeyRight:
		return &Intent{Kind: IntentEditNudge, DX: 1}
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		return &Intent{Kind: IntentEditDelete}
	case tcell.KeyCtrlR:
		return &Intent{Kind: IntentEditRedo}
	}
	switch ev.Rune() {
	case 'h':
		return &Intent{Kind: IntentEditNudge, DX: -1}
	case 'j':
		return &Intent{Kind: IntentEditNudge, DY: -1}
	case 'k':
		return &Intent{Kind: IntentEditNudge, DY: 1}
	case 'l':
		return &Intent{Kind: IntentEditNudge, DX: 1}
	case ']':
		return &Intent{Kind: IntentEditPaletteNext}
	case '[':
		return &Intent{Kind: IntentEditPalettePrev}
	case 'd':
		return &Intent{Kind: IntentEditDelete}
	case 'r':
		return &Intent{Kind: IntentEditRotate, DX: 1}
	case 'R':
		return &Intent{Kind: IntentEditRotate, DX: -1}
	case 'u':
		return &Intent{Kind: IntentEditUndo}
	case 'y':
		return &Intent{Kind: IntentEditCopy}
	case 's':
		return &Intent{Kind: IntentEditSave}
	case 'p':
		return &Intent{Kind: IntentEditPlay}
	case 'n':
		return &Intent{Kind: IntentEditClear}
	case 'm':
		return &Intent{Kind: IntentMuteToggle}
	}
	return nil
}

// processMouse tracks the left button edge. Wheel bits are transient
// and never enter the edge state.
func (m *Machine) processMouse(ev *tcell.EventMouse, screen engine.Screen) *Intent {
	x, y := ev.Position()
	btns := ev.Buttons()
	left := btns&tcell.Button1 != 0
	wasLeft := m.leftDown
	m.leftDown = left

	switch screen {
	case engine.ScreenGameplay:
		switch {
		case left && !wasLeft:
			return &Intent{Kind: IntentDragStart, X: x, Y: y}
		case left && wasLeft:
			return &Intent{Kind: IntentDragMove, X: x, Y: y}
		case !left && wasLeft:
			return &Intent{Kind: IntentDragEnd, X: x, Y: y}
		}

	case engine.ScreenEditor:
		if btns&tcell.WheelUp != 0 {
			return &Intent{Kind: IntentEditPaletteNext}
		}
		if btns&tcell.WheelDown != 0 {
			return &Intent{Kind: IntentEditPalettePrev}
		}
		if left && !wasLeft {
			return &Intent{Kind: IntentEditApply, X: x, Y: y}
		}
		return &Intent{Kind: IntentEditCursor, X: x, Y: y}
	}
	return nil
}
