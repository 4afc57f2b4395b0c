// Package editor holds the level editing session: a mutable level
// model, the placement tools that write into it, and the undo,
// autosave, and export plumbing around it. The session knows nothing
// about entities or the screen; the preview system mirrors the model
// into visual-only entities whenever the revision moves, and the
// renderer draws straight from both.
package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
)

// Tool is the active placement mode.
type Tool uint8

const (
	ToolSelect Tool = iota
	ToolParticle
	ToolObstacle
	ToolPlayer
	toolCount
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolParticle:
		return "particle"
	case ToolObstacle:
		return "obstacle"
	case ToolPlayer:
		return "player"
	}
	return "unknown"
}

// SelectionKind names what a selection points at.
type SelectionKind uint8

const (
	SelectNone SelectionKind = iota
	SelectParticle
	SelectObstacle
	SelectPlayer
)

// Selection addresses one element of the model. Index is meaningful
// for particles and obstacles only.
type Selection struct {
	Kind  SelectionKind
	Index int
}

// Session is one editing session over a level model. Everything runs
// on the simulation goroutine; there is no locking.
type Session struct {
	data     *level.Data
	revision uint64
	tool     Tool
	palette  int
	sel      Selection
	cursor   mgl32.Vec2
	dirty    bool
	hist     history
	savedAt  time.Time
}

// NewSession opens an editor on a blank draft.
func NewSession() *Session {
	return &Session{data: blankDraft()}
}

func blankDraft() *level.Data {
	return &level.Data{
		Name:        "draft",
		PlayerSpawn: mgl32.Vec2{-parameter.ArenaWidth/2 + 120, 0},
	}
}

// Data exposes the live model. Callers treat it as read-only; every
// mutation goes through the session so history and the revision stay
// coherent.
func (s *Session) Data() *level.Data { return s.data }

// Revision counts model and selection changes. The preview system
// regenerates whenever it moves.
func (s *Session) Revision() uint64 { return s.revision }

// Dirty reports unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) Tool() Tool { return s.tool }

// CycleTool steps to the next placement tool.
func (s *Session) CycleTool() Tool {
	s.tool = (s.tool + 1) % toolCount
	return s.tool
}

// Palette reports the active preset and its index.
func (s *Session) Palette() (int, level.Preset) {
	presets := level.Presets()
	return s.palette, presets[s.palette]
}

// CyclePalette moves the preset cursor by delta, wrapping.
func (s *Session) CyclePalette(delta int) {
	n := len(level.Presets())
	s.palette = ((s.palette+delta)%n + n) % n
}

// Cursor is the last pointed-at world position, drawn as the
// placement crosshair.
func (s *Session) Cursor() mgl32.Vec2 { return s.cursor }

func (s *Session) SetCursor(pos mgl32.Vec2) { s.cursor = pos }

func (s *Session) Selection() Selection { return s.sel }

// Apply performs the active tool at a world position: place with the
// placement tools, or pick with the select tool.
func (s *Session) Apply(pos mgl32.Vec2) {
	switch s.tool {
	case ToolSelect:
		s.sel = s.hitTest(pos)
		s.revision++
	case ToolParticle:
		_, preset := s.Palette()
		s.remember()
		s.data.Particles = append(s.data.Particles, level.Placement{
			Position: pos,
			Particle: preset.Build(),
		})
		s.sel = Selection{Kind: SelectParticle, Index: len(s.data.Particles) - 1}
		s.touch()
	case ToolObstacle:
		s.remember()
		s.data.Obstacles = append(s.data.Obstacles, level.DefaultObstacle(pos))
		s.sel = Selection{Kind: SelectObstacle, Index: len(s.data.Obstacles) - 1}
		s.touch()
	case ToolPlayer:
		s.remember()
		s.data.PlayerSpawn = pos
		s.sel = Selection{Kind: SelectPlayer}
		s.touch()
	}
}

// hitTest picks the element under a point: particles first since
// they sit on top, then the player marker, then terrain. Later
// placements win ties.
func (s *Session) hitTest(pos mgl32.Vec2) Selection {
	for i := len(s.data.Particles) - 1; i >= 0; i-- {
		p := &s.data.Particles[i]
		if pos.Sub(p.Position).Len() <= p.Particle.Radius {
			return Selection{Kind: SelectParticle, Index: i}
		}
	}
	if pos.Sub(s.data.PlayerSpawn).Len() <= parameter.PlayerRadius {
		return Selection{Kind: SelectPlayer}
	}
	for i := len(s.data.Obstacles) - 1; i >= 0; i-- {
		if s.data.Obstacles[i].Contains(pos) {
			return Selection{Kind: SelectObstacle, Index: i}
		}
	}
	return Selection{}
}

// Nudge moves the selected element by a world-space delta.
func (s *Session) Nudge(delta mgl32.Vec2) {
	switch s.sel.Kind {
	case SelectParticle:
		if s.sel.Index >= len(s.data.Particles) {
			return
		}
		s.remember()
		p := &s.data.Particles[s.sel.Index]
		p.Position = p.Position.Add(delta)
	case SelectObstacle:
		if s.sel.Index >= len(s.data.Obstacles) {
			return
		}
		s.remember()
		ob := &s.data.Obstacles[s.sel.Index]
		ob.Position = ob.Position.Add(delta)
	case SelectPlayer:
		s.remember()
		s.data.PlayerSpawn = s.data.PlayerSpawn.Add(delta)
	default:
		return
	}
	s.touch()
}

// Rotate spins the selected obstacle by delta radians. Other
// selections have no orientation and ignore it.
func (s *Session) Rotate(delta float32) {
	if s.sel.Kind != SelectObstacle || s.sel.Index >= len(s.data.Obstacles) {
		return
	}
	s.remember()
	s.data.Obstacles[s.sel.Index].Angle += delta
	s.touch()
}

// DeleteSelection removes the selected element. The player spawn
// cannot be deleted, only moved.
func (s *Session) DeleteSelection() {
	switch s.sel.Kind {
	case SelectParticle:
		if s.sel.Index >= len(s.data.Particles) {
			return
		}
		s.remember()
		s.data.Particles = append(s.data.Particles[:s.sel.Index], s.data.Particles[s.sel.Index+1:]...)
	case SelectObstacle:
		if s.sel.Index >= len(s.data.Obstacles) {
			return
		}
		s.remember()
		s.data.Obstacles = append(s.data.Obstacles[:s.sel.Index], s.data.Obstacles[s.sel.Index+1:]...)
	default:
		return
	}
	s.sel = Selection{}
	s.touch()
}

// Load replaces the model with a copy of an existing level, clearing
// history. Edits to the copy never leak back into the library.
func (s *Session) Load(d *level.Data) {
	s.data = d.Clone()
	s.hist = history{}
	s.sel = Selection{}
	s.dirty = false
	s.revision++
}

// Clear starts a fresh draft.
func (s *Session) Clear() {
	s.data = blankDraft()
	s.hist = history{}
	s.sel = Selection{}
	s.dirty = false
	s.revision++
}

// Undo rolls the model back one remembered state.
func (s *Session) Undo() bool {
	prev, ok := s.hist.stepBack(s.data)
	if !ok {
		return false
	}
	s.data = prev
	s.sel = Selection{}
	s.touch()
	return true
}

// Redo reapplies the last undone state.
func (s *Session) Redo() bool {
	next, ok := s.hist.stepForward(s.data)
	if !ok {
		return false
	}
	s.data = next
	s.sel = Selection{}
	s.touch()
	return true
}

func (s *Session) CanUndo() bool { return s.hist.canStepBack() }
func (s *Session) CanRedo() bool { return s.hist.canStepForward() }

// CopyTOML renders the model in the level file format, ready for the
// terminal clipboard or a pasted-together level file.
func (s *Session) CopyTOML() (string, error) {
	return level.EncodeString(s.data)
}

// PlaySnapshot validates the model and hands back an independent copy
// for a test attempt. An unplayable draft is refused with the
// validation failure.
func (s *Session) PlaySnapshot() (*level.Data, error) {
	snap := s.data.Clone()
	if err := level.Validate(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Save writes the draft into the custom levels directory. The first
// save mints the level's identity and pins its filename, so later
// saves land on the same file whatever the level gets renamed to.
func (s *Session) Save(dir string) (string, error) {
	if s.data.ID == "" {
		s.data.ID = uuid.NewString()
	}
	if s.data.Name == "" || s.data.Name == "draft" {
		s.data.Name = "draft-" + s.data.ID[:8]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save level: %w", err)
	}
	path := filepath.Join(dir, s.data.ID+".toml")
	if err := level.WriteFile(path, s.data); err != nil {
		return "", err
	}
	s.dirty = false
	return path, nil
}

// MaybeAutosave saves when the draft has unsaved edits and the
// autosave interval has passed since the last save attempt. The
// first call arms the timer; it reports whether a save happened.
func (s *Session) MaybeAutosave(now time.Time, dir string) (bool, error) {
	if s.savedAt.IsZero() {
		s.savedAt = now
		return false, nil
	}
	if !s.dirty || now.Sub(s.savedAt) < parameter.AutosaveInterval {
		return false, nil
	}
	s.savedAt = now
	if _, err := s.Save(dir); err != nil {
		return false, err
	}
	return true, nil
}

// remember pushes the current state onto the undo ring before a
// mutation lands.
func (s *Session) remember() {
	s.hist.record(s.data)
}

func (s *Session) touch() {
	s.revision++
	s.dirty = true
}
