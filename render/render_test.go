package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mkaza/fission/editor"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/system"
)

// newTestRenderer builds a renderer over a simulation screen with a
// blank editor session.
func newTestRenderer(t *testing.T) (*Renderer, *engine.GameContext, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Expected simulation screen to init, got %v", err)
	}
	screen.SetSize(120, 40)
	t.Cleanup(screen.Fini)
	ctx := engine.NewGameContext(screen, engine.NewMockClock())
	return NewRenderer(ctx, editor.NewSession()), ctx, screen
}

// screenText flattens the committed simulation cells into one string
// for substring assertions.
func screenText(sim tcell.SimulationScreen) string {
	cells, w, h := sim.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := cells[y*w+x]
			if len(cell.Runes) > 0 {
				b.WriteRune(cell.Runes[0])
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func walk(t *testing.T, ctx *engine.GameContext, path ...engine.Screen) {
	t.Helper()
	for _, s := range path {
		if !ctx.State.TransitionScreen(s, ctx.Clock.Now()) {
			t.Fatalf("Expected transition to %v from %v", s, ctx.State.Screen())
		}
	}
}

// TestFrameEveryScreen walks the whole screen graph and draws each
// screen once. The pass criterion is simply that every frame commits
// without panicking, with the frame counter keeping pace.
func TestFrameEveryScreen(t *testing.T) {
	r, ctx, _ := newTestRenderer(t)
	frames := ctx.Res.Metrics.Ints.Get("render.frames")

	r.Frame()
	path := []engine.Screen{
		engine.ScreenTitle,
		engine.ScreenLevelSelect,
		engine.ScreenLoading,
		engine.ScreenGameplay,
	}
	for _, s := range path {
		walk(t, ctx, s)
		r.Frame()
	}
	walk(t, ctx, engine.ScreenEnd, engine.ScreenTitle, engine.ScreenEditor)
	r.Frame()

	if got := frames.Load(); got != 6 {
		t.Errorf("Expected 6 frames drawn, got %d", got)
	}
}

// TestHUDShowsAttempt verifies the status row carries the title and
// the live population.
func TestHUDShowsAttempt(t *testing.T) {
	r, ctx, sim := newTestRenderer(t)
	walk(t, ctx, engine.ScreenTitle, engine.ScreenLevelSelect, engine.ScreenLoading, engine.ScreenGameplay)

	snap := &level.Data{Name: "testbed", Particles: []level.Placement{{Particle: level.Particle{Radius: 20}}}}
	ctx.State.BeginAttempt(snap, engine.OriginNumbered, 1, "default:1", ctx.Clock.Now())
	ctx.State.ApplyPopulationDelta(3, ctx.Clock.Now())

	r.Frame()
	text := screenText(sim)
	if !strings.Contains(text, "testbed") {
		t.Error("Expected HUD to show the level title")
	}
	if !strings.Contains(text, "remaining 3") {
		t.Error("Expected HUD to show the population")
	}
}

// TestHUDCleared verifies the HUD flips once the completion delay is
// running.
func TestHUDCleared(t *testing.T) {
	r, ctx, sim := newTestRenderer(t)
	walk(t, ctx, engine.ScreenTitle, engine.ScreenLevelSelect, engine.ScreenLoading, engine.ScreenGameplay)

	snap := &level.Data{Name: "done", Particles: []level.Placement{{Particle: level.Particle{Radius: 20}}}}
	ctx.State.BeginAttempt(snap, engine.OriginNumbered, 1, "default:1", ctx.Clock.Now())
	ctx.State.ApplyPopulationDelta(1, ctx.Clock.Now())
	ctx.State.ApplyPopulationDelta(-1, ctx.Clock.Now())

	r.Frame()
	if !strings.Contains(screenText(sim), "cleared") {
		t.Error("Expected HUD to show cleared once the count reaches zero")
	}
}

// TestGameplayDrawsStage spawns a real stage and draws it: obstacles,
// particles, player, and arrows all pass through the projection.
func TestGameplayDrawsStage(t *testing.T) {
	r, ctx, sim := newTestRenderer(t)
	walk(t, ctx, engine.ScreenTitle, engine.ScreenLevelSelect, engine.ScreenLoading, engine.ScreenGameplay)

	data := &level.Data{
		Name: "arena",
		Obstacles: []level.Obstacle{
			{Position: mgl32.Vec2{0, -200}, Size: mgl32.Vec2{400, 40}},
		},
		Particles: []level.Placement{
			{Position: mgl32.Vec2{200, 100}, Particle: level.Particle{
				Radius: 30,
				Children: []level.Particle{
					{Radius: 15, Velocity: mgl32.Vec2{120, 0}},
					{Radius: 15, Velocity: mgl32.Vec2{-120, 0}},
				},
			}},
		},
		PlayerSpawn: mgl32.Vec2{-400, 0},
	}
	system.SpawnStage(ctx, data)
	ctx.Res.Drag = engine.DragState{
		Active:  true,
		Start:   mgl32.Vec2{-400, 0},
		Current: mgl32.Vec2{-250, 80},
	}

	r.Frame()
	text := screenText(sim)
	if !strings.ContainsRune(text, '→') && !strings.ContainsRune(text, '←') {
		t.Error("Expected fragment arrows in the frame")
	}
}

// TestMinSizeGuard verifies a tiny terminal gets the size warning
// instead of a frame.
func TestMinSizeGuard(t *testing.T) {
	r, _, sim := newTestRenderer(t)
	sim.SetSize(40, 10)

	r.Frame()
	if !strings.Contains(screenText(sim), "terminal too small") {
		t.Error("Expected the too-small notice")
	}
}

// TestTitleMenuCursor verifies the highlighted entry follows the menu
// state.
func TestTitleMenuCursor(t *testing.T) {
	r, ctx, sim := newTestRenderer(t)
	walk(t, ctx, engine.ScreenTitle)
	ctx.Res.Menu.Title = engine.TitleEditor

	r.Frame()
	if !strings.Contains(screenText(sim), "▸ editor") {
		t.Error("Expected the cursor on the editor entry")
	}
}

// TestLevelSelectEmptyLibrary verifies the menu survives a missing
// library.
func TestLevelSelectEmptyLibrary(t *testing.T) {
	r, ctx, sim := newTestRenderer(t)
	walk(t, ctx, engine.ScreenTitle, engine.ScreenLevelSelect)

	r.Frame()
	if !strings.Contains(screenText(sim), "no levels found") {
		t.Error("Expected the empty-library notice")
	}
}

// TestLevelSelectListsStages verifies stage titles and the cursor
// marker show up.
func TestLevelSelectListsStages(t *testing.T) {
	r, ctx, sim := newTestRenderer(t)
	walk(t, ctx, engine.ScreenTitle, engine.ScreenLevelSelect)
	ctx.Res.Library = &level.Library{
		Defaults: []level.Stage{
			{Number: 1, Data: &level.Data{Name: "one"}},
			{Number: 2, Data: &level.Data{Name: "two"}},
		},
	}
	ctx.Res.Menu.Select = 1

	r.Frame()
	text := screenText(sim)
	if !strings.Contains(text, "Level 1") {
		t.Error("Expected the first stage listed")
	}
	if !strings.Contains(text, "▸ Level 2") {
		t.Error("Expected the cursor on the second stage")
	}
	if !strings.Contains(text, "not played yet") {
		t.Error("Expected the unplayed stats line")
	}
}

// TestEditorChrome verifies the editor status row reflects the
// session.
func TestEditorChrome(t *testing.T) {
	r, ctx, sim := newTestRenderer(t)
	walk(t, ctx, engine.ScreenTitle, engine.ScreenEditor)

	r.Frame()
	text := screenText(sim)
	if !strings.Contains(text, "tool select") {
		t.Error("Expected the active tool in the status row")
	}
	if !strings.Contains(text, "saved") {
		t.Error("Expected the save state in the status row")
	}
}

// TestEditorShowsDirty verifies edits flip the save flag in the
// chrome.
func TestEditorShowsDirty(t *testing.T) {
	r, ctx, sim := newTestRenderer(t)
	walk(t, ctx, engine.ScreenTitle, engine.ScreenEditor)
	r.sess.CycleTool()
	r.sess.Apply(mgl32.Vec2{100, 100})

	r.Frame()
	if !strings.Contains(screenText(sim), "unsaved") {
		t.Error("Expected the dirty marker after an edit")
	}
}

// TestOverlayListsMetrics verifies the F2 panel renders registry
// contents.
func TestOverlayListsMetrics(t *testing.T) {
	r, ctx, sim := newTestRenderer(t)
	ctx.Res.Metrics.Ints.Get("world.entities").Store(7)
	ctx.Res.Overlay = true

	r.Frame()
	text := screenText(sim)
	if !strings.Contains(text, "world.entities") {
		t.Error("Expected the metric key in the overlay")
	}
	if !strings.Contains(text, "7") {
		t.Error("Expected the metric value in the overlay")
	}
}

// TestArrowGlyphDirections checks the 8-way mapping, world Y up.
func TestArrowGlyphDirections(t *testing.T) {
	cases := []struct {
		dir  mgl32.Vec2
		want rune
	}{
		{mgl32.Vec2{1, 0}, '→'},
		{mgl32.Vec2{1, 1}, '↗'},
		{mgl32.Vec2{0, 1}, '↑'},
		{mgl32.Vec2{-1, 1}, '↖'},
		{mgl32.Vec2{-1, 0}, '←'},
		{mgl32.Vec2{-1, -1}, '↙'},
		{mgl32.Vec2{0, -1}, '↓'},
		{mgl32.Vec2{1, -1}, '↘'},
		{mgl32.Vec2{}, '·'},
	}
	for _, tc := range cases {
		if got := arrowGlyph(tc.dir); got != tc.want {
			t.Errorf("Expected %c for %v, got %c", tc.want, tc.dir, got)
		}
	}
}

// TestClockFormat pins the HUD time format.
func TestClockFormat(t *testing.T) {
	cases := []struct {
		ms   int
		want string
	}{
		{0, "0:00.0"},
		{1500, "0:01.5"},
		{65_300, "1:05.3"},
		{600_000, "10:00.0"},
	}
	for _, tc := range cases {
		d := time.Duration(tc.ms) * time.Millisecond
		if got := clockFormat(d); got != tc.want {
			t.Errorf("Expected %q for %dms, got %q", tc.want, tc.ms, got)
		}
	}
}
