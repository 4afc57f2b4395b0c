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

// DecomposeSystem performs splits. Each fragment spawns just off the
// parent's rim along its own launch direction, already moving, and
// immune for the full window; the parent is destroyed in the same
// tick. A target that died earlier in the tick is skipped without
// complaint, and a live immune instance neither triggers a split nor
// suffers one.
type DecomposeSystem struct {
	ctx        *engine.GameContext
	playerHits []donburi.Entity
	pairs      []event.ParticlePair

	splits *atomic.Int64
	misses *atomic.Int64
}

func NewDecomposeSystem(ctx *engine.GameContext) engine.System {
	s := &DecomposeSystem{
		ctx:    ctx,
		splits: ctx.Res.Metrics.Ints.Get("splits.total"),
		misses: ctx.Res.Metrics.Ints.Get("splits.stale"),
	}
	event.PlayerParticles.Subscribe(ctx.World, s.onPlayerHit)
	event.ParticlePairs.Subscribe(ctx.World, s.onPair)
	return s
}

func (s *DecomposeSystem) Name() string  { return "decompose" }
func (s *DecomposeSystem) Priority() int { return parameter.PriorityDecompose }

func (s *DecomposeSystem) onPlayerHit(_ donburi.World, e event.PlayerParticle) {
	// Impact moments play out in slow motion until the next launch.
	s.ctx.Res.Scale.SetAutomatic(parameter.SlowTimeScale)
	s.playerHits = append(s.playerHits, e.Particle)
}

func (s *DecomposeSystem) onPair(_ donburi.World, e event.ParticlePair) {
	s.pairs = append(s.pairs, e)
}

func (s *DecomposeSystem) Update(dt time.Duration) {
	w := s.ctx.World
	event.PlayerParticles.ProcessEvents(w)
	event.ParticlePairs.ProcessEvents(w)

	for _, e := range s.playerHits {
		s.split(e)
	}
	for _, pair := range s.pairs {
		if s.liveImmune(pair.First) || s.liveImmune(pair.Second) {
			continue
		}
		s.split(pair.First)
		s.split(pair.Second)
	}
	s.playerHits = s.playerHits[:0]
	s.pairs = s.pairs[:0]
}

func (s *DecomposeSystem) liveImmune(e donburi.Entity) bool {
	w := s.ctx.World
	if !w.Valid(e) {
		return false
	}
	return w.Entry(e).HasComponent(component.Immunity)
}

func (s *DecomposeSystem) split(e donburi.Entity) {
	w := s.ctx.World
	if !w.Valid(e) {
		s.misses.Add(1)
		return
	}
	entry := w.Entry(e)
	if !entry.HasComponent(component.Particle) {
		s.misses.Add(1)
		return
	}
	if entry.HasComponent(component.Immunity) {
		return
	}

	pd := *component.Particle.Get(entry)
	pos := particlePosition(entry)
	for i := range pd.Def.Children {
		child := pd.Def.Children[i]
		dir := child.Velocity.Normalize()
		offset := dir.Mul(pd.Def.Radius + parameter.SplitMargin + child.Radius)
		SpawnParticle(s.ctx, child, pos.Add(offset), child.Velocity, true)
	}
	DestroyParticle(s.ctx, e)
	s.splits.Add(1)

	if len(pd.Def.Children) > 0 {
		event.Sounds.Publish(w, event.Sound{ID: event.SoundSplit})
	} else {
		event.Sounds.Publish(w, event.Sound{ID: event.SoundPop})
	}
}
