package system

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/level"
)

// newTestContext builds a context around a simulation screen and a
// mock clock. Systems under test are constructed against it directly.
func newTestContext(t *testing.T) (*engine.GameContext, *engine.MockClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Expected simulation screen to init, got %v", err)
	}
	screen.SetSize(120, 40)
	t.Cleanup(screen.Fini)
	clock := engine.NewMockClock()
	return engine.NewGameContext(screen, clock), clock
}

// leafDef is a particle with no fragments; splitting it pops it.
func leafDef(radius float32) level.Particle {
	return level.Particle{
		Kind:   level.KindNormal,
		Radius: radius,
		Color:  level.Color{R: 220, G: 90, B: 60},
	}
}

// twinDef splits into two leaves heading opposite ways.
func twinDef() level.Particle {
	p := level.Particle{
		Kind:   level.KindNormal,
		Radius: 24,
		Color:  level.Color{R: 90, G: 160, B: 220},
	}
	left := leafDef(10)
	left.Velocity = mgl32.Vec2{-160, 0}
	right := leafDef(10)
	right.Velocity = mgl32.Vec2{160, 0}
	p.Children = []level.Particle{left, right}
	return p
}

// killerDef is a particle that is fatal to the player on contact.
func killerDef(radius float32) level.Particle {
	p := leafDef(radius)
	p.Kind = level.KindKiller
	return p
}

// twinLevel is a minimal playable stage with one splitting root.
func twinLevel(name string) *level.Data {
	return &level.Data{
		Name:        name,
		PlayerSpawn: mgl32.Vec2{-400, 0},
		Particles: []level.Placement{
			{Position: mgl32.Vec2{200, 0}, Particle: twinDef()},
		},
	}
}

// soundRecorder captures cue traffic in place of the audio engine.
type soundRecorder struct {
	played []event.SoundID
	muted  bool
}

func (r *soundRecorder) Play(id event.SoundID) bool {
	r.played = append(r.played, id)
	return true
}

func (r *soundRecorder) ToggleMute() bool {
	r.muted = !r.muted
	return r.muted
}

func (r *soundRecorder) Muted() bool { return r.muted }

func (r *soundRecorder) has(id event.SoundID) bool {
	for _, p := range r.played {
		if p == id {
			return true
		}
	}
	return false
}

// progressLog records persistence calls for progression tests.
type progressCall struct {
	key     string
	title   string
	elapsed time.Duration
}

type progressLog struct {
	attempts    []progressCall
	completions []progressCall
}

func (p *progressLog) RecordAttempt(key, title string, now time.Time) error {
	p.attempts = append(p.attempts, progressCall{key: key, title: title})
	return nil
}

func (p *progressLog) RecordCompletion(key, title string, elapsed time.Duration, now time.Time) error {
	p.completions = append(p.completions, progressCall{key: key, title: title, elapsed: elapsed})
	return nil
}

func vecNear(a, b mgl32.Vec2, eps float32) bool {
	return a.Sub(b).Len() <= eps
}
