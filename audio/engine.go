package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/mkaza/fission/event"
	"github.com/mkaza/fission/parameter"
)

// Engine synthesizes gameplay cues straight into the speaker. It
// satisfies the game's audio interface; when the device cannot be
// opened the game falls back to a null player and keeps running.
type Engine struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	master float64

	started atomic.Bool
	muted   atomic.Bool
}

// NewEngine prepares an engine at the given master gain in [0, 1].
// Nothing touches the device until Start.
func NewEngine(volume float64) *Engine {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Engine{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(parameter.SampleRate),
		master: volume,
	}
}

// Start opens the speaker and hooks the mixer up. Failing to open the
// device is returned to the caller, who decides whether to go silent.
func (e *Engine) Start() error {
	if e.started.Load() {
		return nil
	}
	if err := speaker.Init(e.rate, parameter.AudioBufferSize); err != nil {
		return err
	}
	speaker.Play(e.mixer)
	e.started.Store(true)
	return nil
}

// Stop silences everything. The speaker itself stays open; beep has
// no close, and clearing the mixer is enough to stop output.
func (e *Engine) Stop() {
	if !e.started.CompareAndSwap(true, false) {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
}

// Play synthesizes and queues the cue. It reports whether the cue was
// actually queued.
func (e *Engine) Play(id event.SoundID) bool {
	if !e.started.Load() || e.muted.Load() {
		return false
	}
	cue := cueFor(id, e.rate)
	if cue == nil {
		return false
	}

	e.mu.Lock()
	master := e.master
	e.mu.Unlock()

	speaker.Lock()
	e.mixer.Add(newVolume(cue, master))
	speaker.Unlock()
	return true
}

// ToggleMute flips the mute flag and reports the new state.
func (e *Engine) ToggleMute() bool {
	for {
		old := e.muted.Load()
		if e.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (e *Engine) Muted() bool { return e.muted.Load() }

// SetVolume replaces the master gain for cues queued afterwards.
func (e *Engine) SetVolume(vol float64) {
	if vol < 0 {
		vol = 0
	}
	if vol > 1 {
		vol = 1
	}
	e.mu.Lock()
	e.master = vol
	e.mu.Unlock()
}
