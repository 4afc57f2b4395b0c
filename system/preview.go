package system

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/editor"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/parameter"
)

// PreviewSystem mirrors the editor session into preview entities for
// the renderer. The mirror rebuilds only when the session revision
// moves and empties itself when the editor screen is left, so play
// tests never see stale previews.
type PreviewSystem struct {
	ctx  *engine.GameContext
	sess *editor.Session
	seen uint64
	live bool
}

func NewPreviewSystem(ctx *engine.GameContext, sess *editor.Session) engine.System {
	return &PreviewSystem{ctx: ctx, sess: sess}
}

func (s *PreviewSystem) Name() string  { return "preview" }
func (s *PreviewSystem) Priority() int { return parameter.PriorityPreview }

func (s *PreviewSystem) Update(dt time.Duration) {
	if s.ctx.State.Screen() != engine.ScreenEditor {
		if s.live {
			s.clear()
			s.live = false
		}
		return
	}
	if s.live && s.seen == s.sess.Revision() {
		return
	}
	s.clear()
	s.build()
	s.seen = s.sess.Revision()
	s.live = true
}

func (s *PreviewSystem) clear() {
	w := s.ctx.World
	var doomed []donburi.Entity
	previewQuery.Each(w, func(entry *donburi.Entry) {
		doomed = append(doomed, entry.Entity())
	})
	for _, e := range doomed {
		w.Remove(e)
	}
}

// build mirrors every model element plus the player spawn marker.
// Preview data points into the session model; the pointers stay valid
// until the next revision, which rebuilds the mirror.
func (s *PreviewSystem) build() {
	data := s.sess.Data()
	sel := s.sess.Selection()

	for i := range data.Obstacles {
		entry := s.spawn(component.PreviewData{
			Obstacle: &data.Obstacles[i],
			Selected: sel.Kind == editor.SelectObstacle && sel.Index == i,
		})
		component.Position.SetValue(entry, component.PositionData{Pos: data.Obstacles[i].Position})
	}
	for i := range data.Particles {
		entry := s.spawn(component.PreviewData{
			Particle: &data.Particles[i].Particle,
			Selected: sel.Kind == editor.SelectParticle && sel.Index == i,
		})
		component.Position.SetValue(entry, component.PositionData{Pos: data.Particles[i].Position})
	}
	entry := s.spawn(component.PreviewData{
		Player:   true,
		Selected: sel.Kind == editor.SelectPlayer,
	})
	component.Position.SetValue(entry, component.PositionData{Pos: data.PlayerSpawn})
}

func (s *PreviewSystem) spawn(pd component.PreviewData) *donburi.Entry {
	w := s.ctx.World
	entry := w.Entry(w.Create(component.Preview, component.Position))
	component.Preview.SetValue(entry, pd)
	return entry
}
