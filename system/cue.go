package system

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/parameter"
)

// CueSystem is the single consumer of sound events and the bridge to
// the audio engine. It also translates a few gameplay notifications
// into their cues.
type CueSystem struct {
	ctx *engine.GameContext
}

func NewCueSystem(ctx *engine.GameContext) engine.System {
	s := &CueSystem{ctx: ctx}
	w := ctx.World
	event.Sounds.Subscribe(w, s.onSound)
	event.Lapses.Subscribe(w, func(w donburi.World, e event.ImmunityLapsed) {
		event.Sounds.Publish(w, event.Sound{ID: event.SoundLapse})
	})
	event.Clears.Subscribe(w, func(w donburi.World, e event.Cleared) {
		id := event.SoundClear
		if e.Final {
			id = event.SoundWin
		}
		event.Sounds.Publish(w, event.Sound{ID: id})
	})
	return s
}

func (s *CueSystem) Name() string  { return "cue" }
func (s *CueSystem) Priority() int { return parameter.PriorityCue }

func (s *CueSystem) onSound(_ donburi.World, e event.Sound) {
	s.ctx.Res.Audio.Play(e.ID)
}

func (s *CueSystem) Update(dt time.Duration) {
	event.Lapses.ProcessEvents(s.ctx.World)
	event.Clears.ProcessEvents(s.ctx.World)
	event.Sounds.ProcessEvents(s.ctx.World)
}
