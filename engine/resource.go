package engine

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
	"github.com/mkaza/fission/progress"
	"github.com/mkaza/fission/status"
)

// AudioPlayer is how the rest of the game reaches the audio engine.
// The cue system forwards sound events through Play; input uses the
// mute toggle.
type AudioPlayer interface {
	Play(id event.SoundID) bool
	ToggleMute() bool
	Muted() bool
}

// NullAudio stands in when the device failed to open; the game keeps
// running silent.
type NullAudio struct{}

func (NullAudio) Play(event.SoundID) bool { return false }
func (NullAudio) ToggleMute() bool        { return true }
func (NullAudio) Muted() bool             { return true }

// TimeResource tracks per-tick timing. Delta is clamped so a stall
// cannot turn into a physics explosion.
type TimeResource struct {
	Now   time.Time
	Delta time.Duration
	Frame uint64

	last time.Time
}

func (t *TimeResource) Update(now time.Time) {
	if t.last.IsZero() {
		t.Delta = parameter.TickInterval
	} else {
		t.Delta = now.Sub(t.last)
		if t.Delta > parameter.MaxFrameTime {
			t.Delta = parameter.MaxFrameTime
		}
		if t.Delta < 0 {
			t.Delta = 0
		}
	}
	t.last = now
	t.Now = now
	t.Frame++
}

// View maps arena world space onto the terminal grid below the HUD.
// One cell is wider than tall, so vertical world coverage per cell is
// CellAspect times the horizontal.
type View struct {
	Cols, Rows int
	cellW      float32
	cellH      float32
}

func NewView(screenW, screenH int) View {
	cols := screenW
	rows := screenH - parameter.HUDRows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	sw := float32(parameter.ArenaWidth) / float32(cols)
	sh := float32(parameter.ArenaHeight) / (float32(rows) * parameter.CellAspect)
	s := sw
	if sh > s {
		s = sh
	}
	return View{Cols: cols, Rows: rows, cellW: s, cellH: s * parameter.CellAspect}
}

// WorldToCell projects a world point to screen coordinates, already
// offset below the HUD. World Y points up, rows grow down.
func (v View) WorldToCell(p mgl32.Vec2) (int, int) {
	x := int((p.X() + parameter.ArenaWidth/2) / v.cellW)
	y := int((parameter.ArenaHeight/2 - p.Y()) / v.cellH)
	return x, y + parameter.HUDRows
}

// CellToWorld returns the world position of a cell's center.
func (v View) CellToWorld(x, y int) mgl32.Vec2 {
	wx := (float32(x)+0.5)*v.cellW - parameter.ArenaWidth/2
	wy := parameter.ArenaHeight/2 - (float32(y-parameter.HUDRows)+0.5)*v.cellH
	return mgl32.Vec2{wx, wy}
}

// CellSize reports world units covered by one cell, for radius
// rasterization.
func (v View) CellSize() (float32, float32) { return v.cellW, v.cellH }

// DragState is the live aim gesture. Input writes it, the launch
// system and renderer read it.
type DragState struct {
	Active         bool
	Start, Current mgl32.Vec2
}

// Vector is the aim from press point to current point.
func (d *DragState) Vector() mgl32.Vec2 {
	return d.Current.Sub(d.Start)
}

// MenuState carries the cursor positions of the list screens. Input
// moves them, the renderer highlights them.
type MenuState struct {
	Title  int
	Select int
}

// TitleMenu lists the title screen entries in cursor order. Input
// wraps over it, the renderer labels it.
var TitleMenu = [...]string{"play", "editor", "quit"}

const (
	TitlePlay = iota
	TitleEditor
	TitleQuit
)

// Resources are the shared singletons systems reach through the
// context.
type Resources struct {
	Time     TimeResource
	Config   Config
	Scale    *TimeScale
	Metrics  *status.Registry
	Audio    AudioPlayer
	Library  *level.Library
	Progress *progress.Store
	View     View
	Drag     DragState
	Menu     MenuState

	// Overlay shows the live metrics panel over whatever screen is
	// up. Input toggles it, everything else leaves it alone.
	Overlay bool
}
