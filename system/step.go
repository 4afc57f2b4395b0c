package system

import (
	"sync/atomic"
	"time"

	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/parameter"
	"github.com/mkaza/fission/status"
)

// StepSystem advances the simulation under the applied time scale and
// republishes buffered contacts as events for the classifier.
type StepSystem struct {
	ctx      *engine.GameContext
	contacts *atomic.Int64
	applied  *status.AtomicFloat
}

func NewStepSystem(ctx *engine.GameContext) engine.System {
	return &StepSystem{
		ctx:      ctx,
		contacts: ctx.Res.Metrics.Ints.Get("physics.contacts"),
		applied:  ctx.Res.Metrics.Floats.Get("scale.applied"),
	}
}

func (s *StepSystem) Name() string  { return "step" }
func (s *StepSystem) Priority() int { return parameter.PriorityPhysics }

func (s *StepSystem) Update(dt time.Duration) {
	scale := s.ctx.Res.Scale.Applied(dt)
	s.applied.Set(scale)
	s.ctx.Physics.Step(dt.Seconds() * scale)

	contacts := s.ctx.Physics.DrainContacts()
	if len(contacts) == 0 {
		return
	}
	s.contacts.Add(int64(len(contacts)))
	for _, c := range contacts {
		event.Contacts.Publish(s.ctx.World, event.Contact{A: c.A, B: c.B, Sensor: c.Sensor})
	}
}
