package input

import (
	"log"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mkaza/fission/editor"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/parameter"
)

// Handler interprets intents and executes them against the game
// context. It owns the menu cursors, the drag state, and every
// screen transition that happens on input.
type Handler struct {
	ctx     *engine.GameContext
	sess    *editor.Session
	machine *Machine
}

func NewHandler(ctx *engine.GameContext, sess *editor.Session, machine *Machine) *Handler {
	return &Handler{ctx: ctx, sess: sess, machine: machine}
}

// HandleEvent parses and applies one terminal event. It returns false
// when the game should exit.
func (h *Handler) HandleEvent(ev tcell.Event) bool {
	in := h.machine.Process(ev, h.ctx.State.Screen(), h.ctx.State.Paused())
	return h.Apply(in)
}

// Apply executes a parsed intent and returns false on quit.
func (h *Handler) Apply(in *Intent) bool {
	if in == nil {
		return true
	}
	switch in.Kind {
	case IntentQuit:
		return false
	case IntentResize:
		h.ctx.Resize(in.X, in.Y)
		h.ctx.Screen.Sync()
	case IntentMuteToggle:
		h.ctx.Res.Audio.ToggleMute()
	case IntentOverlayToggle:
		h.ctx.Res.Overlay = !h.ctx.Res.Overlay

	case IntentSkip:
		h.transition(engine.ScreenTitle)
	case IntentMenuUp:
		h.moveMenu(-1)
	case IntentMenuDown:
		h.moveMenu(1)
	case IntentMenuSelect:
		return h.selectMenu()
	case IntentBack:
		h.back()

	case IntentPauseToggle:
		h.ctx.State.TogglePause()
		h.ctx.Res.Audio.Play(event.SoundMenuMove)
	case IntentRestart:
		h.restart()
	case IntentAbandon:
		h.abandon()
	case IntentSlowToggle:
		h.toggleSlow()
	case IntentDragStart:
		h.dragStart(in.X, in.Y)
	case IntentDragMove:
		h.dragMove(in.X, in.Y)
	case IntentDragEnd:
		h.dragEnd(in.X, in.Y)

	case IntentEditApply:
		pos := h.ctx.Res.View.CellToWorld(in.X, in.Y)
		h.sess.SetCursor(pos)
		h.sess.Apply(pos)
	case IntentEditCursor:
		h.sess.SetCursor(h.ctx.Res.View.CellToWorld(in.X, in.Y))
	case IntentEditToolNext:
		h.sess.CycleTool()
	case IntentEditPaletteNext:
		h.sess.CyclePalette(1)
	case IntentEditPalettePrev:
		h.sess.CyclePalette(-1)
	case IntentEditNudge:
		h.sess.Nudge(mgl32.Vec2{in.DX, in.DY}.Mul(parameter.EditorNudge))
	case IntentEditDelete:
		h.sess.DeleteSelection()
		event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundPop})
	case IntentEditRotate:
		h.sess.Rotate(in.DX * parameter.EditorRotateStep)
	case IntentEditUndo:
		h.sess.Undo()
	case IntentEditRedo:
		h.sess.Redo()
	case IntentEditCopy:
		h.copyDraft()
	case IntentEditSave:
		h.saveDraft()
	case IntentEditPlay:
		h.playDraft()
	case IntentEditClear:
		h.sess.Clear()
	}
	return true
}

// transition moves screens through the legal graph and resets the
// pointer edge state so a held button cannot leak across screens.
func (h *Handler) transition(to engine.Screen) bool {
	if !h.ctx.State.TransitionScreen(to, h.ctx.Clock.Now()) {
		return false
	}
	h.machine.Reset()
	return true
}

func (h *Handler) moveMenu(delta int) {
	menu := &h.ctx.Res.Menu
	switch h.ctx.State.Screen() {
	case engine.ScreenTitle:
		menu.Title = wrap(menu.Title+delta, len(engine.TitleMenu))
	case engine.ScreenLevelSelect:
		if lib := h.ctx.Res.Library; lib != nil {
			menu.Select = wrap(menu.Select+delta, len(lib.Stages()))
		}
	default:
		return
	}
	event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundMenuMove})
}

func (h *Handler) selectMenu() bool {
	switch h.ctx.State.Screen() {
	case engine.ScreenTitle:
		switch h.ctx.Res.Menu.Title {
		case engine.TitlePlay:
			h.transition(engine.ScreenLevelSelect)
		case engine.TitleEditor:
			h.transition(engine.ScreenEditor)
		case engine.TitleQuit:
			return false
		}
		event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundMenuSelect})

	case engine.ScreenLevelSelect:
		h.startSelected()
	}
	return true
}

// startSelected asks progression for the stage under the cursor. The
// loading screen goes up first; progression holds the start until it
// has been visible for its minimum duration.
func (h *Handler) startSelected() {
	lib := h.ctx.Res.Library
	if lib == nil {
		return
	}
	stages := lib.Stages()
	if len(stages) == 0 {
		return
	}
	st := stages[wrap(h.ctx.Res.Menu.Select, len(stages))]
	if !h.transition(engine.ScreenLoading) {
		return
	}
	start := event.StartStage{Number: st.Number}
	if st.Custom {
		start = event.StartStage{Custom: st.Data.Name}
	}
	event.StageStarts.Publish(h.ctx.World, start)
	event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundMenuSelect})
}

func (h *Handler) back() {
	switch h.ctx.State.Screen() {
	case engine.ScreenLevelSelect, engine.ScreenEditor:
		if h.transition(engine.ScreenTitle) {
			event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundMenuMove})
		}
	}
}

// restart and abandon unpause first: the scheduler does not run while
// paused, so a command published under pause would sit in the buffer
// forever.
func (h *Handler) restart() {
	if h.ctx.State.Paused() {
		h.ctx.State.TogglePause()
	}
	event.Restarts.Publish(h.ctx.World, event.Restart{})
}

func (h *Handler) abandon() {
	if h.ctx.State.Paused() {
		h.ctx.State.TogglePause()
	}
	event.Abandons.Publish(h.ctx.World, event.Abandon{})
}

// toggleSlow flips the manual slow-motion override. A toggle instead
// of hold-to-slow: terminals deliver no key releases.
func (h *Handler) toggleSlow() {
	sc := h.ctx.Res.Scale
	if sc.Overridden() {
		sc.ClearOverride()
		return
	}
	sc.SetOverride(parameter.SlowTimeScale)
	event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundStretch})
}

func (h *Handler) dragStart(x, y int) {
	pos := h.ctx.Res.View.CellToWorld(x, y)
	h.ctx.Res.Drag = engine.DragState{Active: true, Start: pos, Current: pos}
	h.ctx.Res.Scale.SetAutomatic(parameter.SlowTimeScale)
	event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundStretch})
}

func (h *Handler) dragMove(x, y int) {
	if !h.ctx.Res.Drag.Active {
		return
	}
	h.ctx.Res.Drag.Current = h.ctx.Res.View.CellToWorld(x, y)
}

func (h *Handler) dragEnd(x, y int) {
	drag := &h.ctx.Res.Drag
	if !drag.Active {
		return
	}
	drag.Current = h.ctx.Res.View.CellToWorld(x, y)
	v := drag.Vector()
	*drag = engine.DragState{}
	h.ctx.Res.Scale.SetAutomatic(parameter.NormalTimeScale)
	event.Launches.Publish(h.ctx.World, event.Launch{Vector: v})
}

func (h *Handler) copyDraft() {
	text, err := h.sess.CopyTOML()
	if err != nil {
		log.Printf("copy level: %v", err)
		return
	}
	h.ctx.Screen.SetClipboard([]byte(text))
	event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundMenuSelect})
}

func (h *Handler) saveDraft() {
	dir := filepath.Join(h.ctx.Res.Config.LevelsDir, "custom")
	if _, err := h.sess.Save(dir); err != nil {
		log.Printf("save level: %v", err)
		return
	}
	if lib := h.ctx.Res.Library; lib != nil {
		lib.RefreshCustoms(h.ctx.Res.Config.LevelsDir)
	}
	event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundMenuSelect})
}

func (h *Handler) playDraft() {
	snap, err := h.sess.PlaySnapshot()
	if err != nil {
		log.Printf("test level: %v", err)
		event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundPop})
		return
	}
	if !h.transition(engine.ScreenLoading) {
		return
	}
	event.PlayTests.Publish(h.ctx.World, event.PlayTest{Data: snap})
	event.Sounds.Publish(h.ctx.World, event.Sound{ID: event.SoundMenuSelect})
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
