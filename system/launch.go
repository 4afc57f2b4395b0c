package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/parameter"
)

// LaunchSystem turns released drags into impulses. The drag length is
// clamped into [DragMin, DragMax]; the impulse scales linearly with
// the clamped fraction of full length. Launching also brings time
// back to normal speed.
type LaunchSystem struct {
	ctx      *engine.GameContext
	requests []mgl32.Vec2
}

func NewLaunchSystem(ctx *engine.GameContext) engine.System {
	s := &LaunchSystem{ctx: ctx}
	event.Launches.Subscribe(ctx.World, s.onLaunch)
	return s
}

func (s *LaunchSystem) Name() string  { return "launch" }
func (s *LaunchSystem) Priority() int { return parameter.PriorityLaunch }

func (s *LaunchSystem) onLaunch(_ donburi.World, e event.Launch) {
	s.requests = append(s.requests, e.Vector)
}

func (s *LaunchSystem) Update(dt time.Duration) {
	w := s.ctx.World
	event.Launches.ProcessEvents(w)
	for _, v := range s.requests {
		s.apply(v)
	}
	s.requests = s.requests[:0]
}

func (s *LaunchSystem) apply(v mgl32.Vec2) {
	entry, ok := playerQuery.First(s.ctx.World)
	if !ok {
		return
	}
	l := v.Len()
	if l < parameter.DragMin {
		return
	}
	if l > parameter.DragMax {
		v = v.Mul(parameter.DragMax / l)
		l = parameter.DragMax
	}
	imp := v.Mul(parameter.ForceScalar / parameter.DragMax)
	s.ctx.Physics.ApplyImpulse(component.Body.Get(entry).B, imp)
	s.ctx.Res.Scale.SetAutomatic(parameter.NormalTimeScale)
	event.Sounds.Publish(s.ctx.World, event.Sound{ID: event.SoundLaunch})
}
