package system

import (
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/mkaza/fission/editor"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/parameter"
)

// FlowSystem runs the screen transitions that happen on a timer
// rather than on input: the splash advancing to the title, and the
// periodic editor autosave.
type FlowSystem struct {
	ctx       *engine.GameContext
	sess      *editor.Session
	autosaves *atomic.Int64
}

func NewFlowSystem(ctx *engine.GameContext, sess *editor.Session) engine.System {
	return &FlowSystem{
		ctx:       ctx,
		sess:      sess,
		autosaves: ctx.Res.Metrics.Ints.Get("editor.autosaves"),
	}
}

func (s *FlowSystem) Name() string  { return "flow" }
func (s *FlowSystem) Priority() int { return parameter.PriorityFlow }

func (s *FlowSystem) Update(dt time.Duration) {
	now := s.ctx.Clock.Now()
	state := s.ctx.State

	switch state.Screen() {
	case engine.ScreenSplash:
		if now.Sub(state.ScreenSince()) >= parameter.SplashDuration {
			state.TransitionScreen(engine.ScreenTitle, now)
		}

	case engine.ScreenEditor:
		dir := filepath.Join(s.ctx.Res.Config.LevelsDir, "custom")
		saved, err := s.sess.MaybeAutosave(now, dir)
		if err != nil {
			log.Printf("autosave: %v", err)
			return
		}
		if saved {
			s.autosaves.Add(1)
		}
	}
}
