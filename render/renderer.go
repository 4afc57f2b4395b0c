// Package render draws the whole terminal frame: the arena during
// play, the menu screens around it, the editor view, and the metrics
// overlay. It runs after the simulation systems each tick and is the
// only writer of the screen.
package render

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/mkaza/fission/editor"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/parameter"
)

// Renderer draws one frame per tick from the current game state. It
// reads entities for the arena, the session for editor chrome, and
// resources for everything else; it never mutates any of them.
type Renderer struct {
	ctx  *engine.GameContext
	sess *editor.Session

	last   engine.Screen
	tween  *gween.Tween
	fade   float32
	stats  selectStats
	frames *atomic.Int64
}

func NewRenderer(ctx *engine.GameContext, sess *editor.Session) *Renderer {
	return &Renderer{
		ctx:    ctx,
		sess:   sess,
		last:   ctx.State.Screen(),
		fade:   1,
		frames: ctx.Res.Metrics.Ints.Get("render.frames"),
	}
}

// Frame draws the current screen and flushes it.
func (r *Renderer) Frame() {
	sc := r.ctx.Screen
	w, h := sc.Size()
	sc.Fill(' ', tcell.StyleDefault.Background(toColor(rgbBackground)))

	if w < parameter.MinScreenWidth || h < parameter.MinScreenHeight {
		r.drawTooSmall(sc, w, h)
		sc.Show()
		return
	}

	screen := r.ctx.State.Screen()
	if screen != r.last {
		r.last = screen
		r.tween = gween.New(0, 1, float32(parameter.FadeDuration.Seconds()), ease.OutQuad)
	}
	if r.tween != nil {
		v, done := r.tween.Update(float32(r.ctx.Res.Time.Delta.Seconds()))
		r.fade = v
		if done {
			r.tween = nil
			r.fade = 1
		}
	}

	c := newCanvas(sc, r.ctx.Res.View, r.fade)
	switch screen {
	case engine.ScreenSplash:
		r.drawSplash(c)
	case engine.ScreenTitle:
		r.drawTitle(c)
	case engine.ScreenLevelSelect:
		r.drawLevelSelect(c)
	case engine.ScreenLoading:
		r.drawLoading(c)
	case engine.ScreenGameplay:
		r.drawWorld(c)
		r.drawHUD(c)
		if r.ctx.State.Paused() {
			r.drawPauseMenu(c)
		}
	case engine.ScreenEditor:
		r.drawEditorArena(c)
		r.drawEditorChrome(c)
	case engine.ScreenEnd:
		r.drawEnd(c)
	}

	if r.ctx.Res.Overlay {
		r.drawOverlay(c)
	}

	sc.Show()
	r.frames.Add(1)
}

// drawTooSmall replaces the frame when the terminal cannot hold the
// minimum layout. Drawn raw since the projection is meaningless at
// this size.
func (r *Renderer) drawTooSmall(sc tcell.Screen, w, h int) {
	msg := "terminal too small"
	need := fmt.Sprintf("need %dx%d, have %dx%d",
		parameter.MinScreenWidth, parameter.MinScreenHeight, w, h)
	st := tcell.StyleDefault.
		Foreground(toColor(rgbWarn)).
		Background(toColor(rgbBackground))
	y := h / 2
	for i, ch := range []rune(msg) {
		sc.SetContent((w-len([]rune(msg)))/2+i, y-1, ch, nil, st)
	}
	for i, ch := range []rune(need) {
		sc.SetContent((w-len([]rune(need)))/2+i, y, ch, nil, st)
	}
}
