package engine

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

// TestNewGameContext builds a context against a simulation screen and
// verifies the pieces come up wired.
func TestNewGameContext(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Screen init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	ctx := NewGameContext(screen, NewMockClock())
	if ctx.World == nil {
		t.Fatal("Expected a world")
	}
	if ctx.Physics == nil {
		t.Fatal("Expected a physics world")
	}
	if ctx.State.Screen() != ScreenSplash {
		t.Errorf("Expected splash screen, got %v", ctx.State.Screen())
	}
	if ctx.Res.Scale.Target() != 1.0 {
		t.Errorf("Expected normal time scale, got %v", ctx.Res.Scale.Target())
	}
	if ctx.Res.Metrics == nil {
		t.Fatal("Expected a metrics registry")
	}
}

// TestResizeRebuildsView verifies a terminal resize changes the
// projection.
func TestResizeRebuildsView(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Screen init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	ctx := NewGameContext(screen, NewMockClock())
	before := ctx.Res.View.Cols
	ctx.Resize(160, 48)
	if ctx.Res.View.Cols == before {
		t.Errorf("Expected view columns to change, still %d", before)
	}
}
