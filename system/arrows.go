package system

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/parameter"
)

// ArrowSystem keeps fragment direction hints pinned to their parents
// as bodies move. Arrows whose parent vanished mid-tick are cleaned
// up here.
type ArrowSystem struct {
	ctx     *engine.GameContext
	orphans []donburi.Entity
}

func NewArrowSystem(ctx *engine.GameContext) engine.System {
	return &ArrowSystem{ctx: ctx}
}

func (s *ArrowSystem) Name() string  { return "arrows" }
func (s *ArrowSystem) Priority() int { return parameter.PriorityArrow }

func (s *ArrowSystem) Update(dt time.Duration) {
	w := s.ctx.World
	s.orphans = s.orphans[:0]
	arrowQuery.Each(w, func(entry *donburi.Entry) {
		parent := component.Parent.Get(entry).Entity
		if !w.Valid(parent) {
			s.orphans = append(s.orphans, entry.Entity())
			return
		}
		pe := w.Entry(parent)
		if !pe.HasComponent(component.Body) || !pe.HasComponent(component.Particle) {
			s.orphans = append(s.orphans, entry.Entity())
			return
		}
		center := particlePosition(pe)
		radius := component.Particle.Get(pe).Def.Radius
		dir := component.Arrow.Get(entry).Dir
		component.Position.SetValue(entry, component.PositionData{
			Pos: arrowAnchor(center, radius, dir),
		})
	})
	for _, e := range s.orphans {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
}
