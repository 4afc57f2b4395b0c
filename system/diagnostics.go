package system

import (
	"sync/atomic"
	"time"

	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/parameter"
	"github.com/mkaza/fission/status"
)

// DiagnosticsSystem samples world and state gauges into the registry
// once per tick. It runs last so the numbers describe the finished
// frame.
type DiagnosticsSystem struct {
	ctx *engine.GameContext

	entities  *atomic.Int64
	particles *atomic.Int64
	immune    *atomic.Int64
	count     *atomic.Int64
	screen    *status.AtomicString
	phase     *status.AtomicString
	scale     *status.AtomicFloat
	paused    *atomic.Bool
}

func NewDiagnosticsSystem(ctx *engine.GameContext) engine.System {
	reg := ctx.Res.Metrics
	return &DiagnosticsSystem{
		ctx:       ctx,
		entities:  reg.Ints.Get("world.entities"),
		particles: reg.Ints.Get("world.particles"),
		immune:    reg.Ints.Get("world.immune"),
		count:     reg.Ints.Get("level.population"),
		screen:    reg.Strings.Get("game.screen"),
		phase:     reg.Strings.Get("game.phase"),
		scale:     reg.Floats.Get("scale.target"),
		paused:    reg.Bools.Get("game.paused"),
	}
}

func (s *DiagnosticsSystem) Name() string  { return "diagnostics" }
func (s *DiagnosticsSystem) Priority() int { return parameter.PriorityDiagnostics }

func (s *DiagnosticsSystem) Update(dt time.Duration) {
	w := s.ctx.World
	now := s.ctx.Clock.Now()

	s.entities.Store(int64(w.Len()))
	s.particles.Store(int64(particleQuery.Count(w)))
	s.immune.Store(int64(immuneQuery.Count(w)))

	att := s.ctx.State.Attempt(now)
	s.count.Store(int64(att.Count))
	s.screen.Set(s.ctx.State.Screen().String())
	s.phase.Set(phaseLabel(att.Phase))
	s.scale.Set(s.ctx.Res.Scale.Target())
	s.paused.Store(s.ctx.State.Paused())
}

func phaseLabel(p engine.LevelPhase) string {
	switch p {
	case engine.PhasePlaying:
		return "playing"
	case engine.PhaseEnded:
		return "ended"
	}
	return "idle"
}
