package system

import (
	"sync/atomic"
	"time"

	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/parameter"
)

// ClassifierSystem turns raw contacts into gameplay events. Contacts
// arrive against arbitrary collider entities; each side is resolved
// to its body-bearing ancestor first, and contacts whose walk
// dead-ends are dropped without note.
//
// At most one contact classifies per tick. When a batch holds more,
// the remainder waits for the next tick, so simultaneous touches
// resolve over consecutive frames in arrival order.
type ClassifierSystem struct {
	ctx     *engine.GameContext
	pending []event.Contact

	matched  *atomic.Int64
	deferred *atomic.Int64
	dropped  *atomic.Int64
}

func NewClassifierSystem(ctx *engine.GameContext) engine.System {
	s := &ClassifierSystem{
		ctx:      ctx,
		matched:  ctx.Res.Metrics.Ints.Get("collisions.matched"),
		deferred: ctx.Res.Metrics.Ints.Get("collisions.deferred"),
		dropped:  ctx.Res.Metrics.Ints.Get("collisions.dropped"),
	}
	event.Contacts.Subscribe(ctx.World, s.onContact)
	return s
}

func (s *ClassifierSystem) Name() string  { return "classifier" }
func (s *ClassifierSystem) Priority() int { return parameter.PriorityClassifier }

func (s *ClassifierSystem) onContact(_ donburi.World, c event.Contact) {
	s.pending = append(s.pending, c)
}

func (s *ClassifierSystem) Update(dt time.Duration) {
	event.Contacts.ProcessEvents(s.ctx.World)
	for len(s.pending) > 0 {
		c := s.pending[0]
		s.pending = s.pending[1:]
		if s.classify(c) {
			s.matched.Add(1)
			if n := len(s.pending); n > 0 {
				s.deferred.Add(int64(n))
			}
			return
		}
	}
}

// classify resolves both sides and emits the first matching event.
// Kill outranks split: a killer touching the player is always fatal,
// whatever else the pair could mean.
func (s *ClassifierSystem) classify(c event.Contact) bool {
	w := s.ctx.World
	a, okA := resolveBodyAncestor(w, c.A)
	b, okB := resolveBodyAncestor(w, c.B)
	if !okA || !okB || a == b {
		s.dropped.Add(1)
		return false
	}
	ae, be := w.Entry(a), w.Entry(b)

	aPlayer := ae.HasComponent(component.Player)
	bPlayer := be.HasComponent(component.Player)
	aParticle := ae.HasComponent(component.Particle)
	bParticle := be.HasComponent(component.Particle)
	aKiller := ae.HasComponent(component.Killer)
	bKiller := be.HasComponent(component.Killer)

	switch {
	case aPlayer && bKiller:
		event.PlayerKills.Publish(w, event.PlayerKilled{Player: a})
	case bPlayer && aKiller:
		event.PlayerKills.Publish(w, event.PlayerKilled{Player: b})
	case aPlayer && bParticle:
		event.PlayerParticles.Publish(w, event.PlayerParticle{Particle: b})
	case bPlayer && aParticle:
		event.PlayerParticles.Publish(w, event.PlayerParticle{Particle: a})
	case aParticle && bParticle:
		event.ParticlePairs.Publish(w, event.ParticlePair{First: a, Second: b})
	default:
		return false
	}
	return true
}

// resolveBodyAncestor walks parent links until it reaches an entity
// carrying a body. The walk is bounded; a cycle or an orphaned chain
// resolves to nothing.
func resolveBodyAncestor(w donburi.World, e donburi.Entity) (donburi.Entity, bool) {
	for hops := 0; hops <= parameter.MaxParentHops; hops++ {
		if !w.Valid(e) {
			return e, false
		}
		entry := w.Entry(e)
		if entry.HasComponent(component.Body) {
			return e, true
		}
		if !entry.HasComponent(component.Parent) {
			return e, false
		}
		e = component.Parent.Get(entry).Entity
	}
	return e, false
}
