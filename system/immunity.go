package system

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/parameter"
)

// ImmunitySystem ticks invincibility windows down in real frame time
// and handles the lapse: restore full collision response, drop the
// component, announce the transition. Windows are seeded non-zero, so
// an instance spawned by this tick's decomposition can never lapse in
// the same tick it appeared.
type ImmunitySystem struct {
	ctx    *engine.GameContext
	lapsed []donburi.Entity
}

func NewImmunitySystem(ctx *engine.GameContext) engine.System {
	return &ImmunitySystem{ctx: ctx}
}

func (s *ImmunitySystem) Name() string  { return "immunity" }
func (s *ImmunitySystem) Priority() int { return parameter.PriorityImmunity }

func (s *ImmunitySystem) Update(dt time.Duration) {
	w := s.ctx.World
	s.lapsed = s.lapsed[:0]
	immuneQuery.Each(w, func(entry *donburi.Entry) {
		im := component.Immunity.Get(entry)
		im.Remaining -= dt
		if im.Remaining <= 0 {
			s.lapsed = append(s.lapsed, entry.Entity())
		}
	})
	for _, e := range s.lapsed {
		entry := w.Entry(e)
		entry.RemoveComponent(component.Immunity)
		s.ctx.Physics.SetActiveFilter(component.Body.Get(entry).B)
		event.Lapses.Publish(w, event.ImmunityLapsed{Particle: e})
	}
}
