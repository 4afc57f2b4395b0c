package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/mkaza/fission/event"
)

// Cue constructors. Every cue is synthesized on demand from
// oscillators, so there are no asset files to ship.

// launchCue is a quick noise zip for the slingshot release.
func launchCue(rate beep.SampleRate) beep.Streamer {
	const d = 120 * time.Millisecond
	noise := NewOscillator(0, d, WaveNoise, rate)
	return NewEnvelope(noise, d, 5*time.Millisecond, 90*time.Millisecond, rate)
}

// stretchCue is a low creak when a drag starts.
func stretchCue(rate beep.SampleRate) beep.Streamer {
	const d = 90 * time.Millisecond
	osc := NewOscillator(70, d, WaveSaw, rate)
	return newVolume(NewEnvelope(osc, d, 15*time.Millisecond, 60*time.Millisecond, rate), 0.5)
}

// splitCue is a crack: a low square thump under a burst of noise.
func splitCue(rate beep.SampleRate) beep.Streamer {
	const d = 150 * time.Millisecond
	thump := NewEnvelope(NewOscillator(110, d, WaveSquare, rate), d, 2*time.Millisecond, 120*time.Millisecond, rate)
	crack := NewEnvelope(NewOscillator(0, 60*time.Millisecond, WaveNoise, rate), 60*time.Millisecond, time.Millisecond, 50*time.Millisecond, rate)
	return beep.Mix(newVolume(thump, 0.7), newVolume(crack, 0.4))
}

// popCue is a short high blip for a leaf vanishing.
func popCue(rate beep.SampleRate) beep.Streamer {
	const d = 70 * time.Millisecond
	osc := NewOscillator(880, d, WaveSine, rate)
	return NewEnvelope(osc, d, time.Millisecond, 55*time.Millisecond, rate)
}

// lapseCue is a soft tick marking an invincibility window running out.
func lapseCue(rate beep.SampleRate) beep.Streamer {
	const d = 40 * time.Millisecond
	osc := NewOscillator(660, d, WaveSine, rate)
	return newVolume(NewEnvelope(osc, d, time.Millisecond, 30*time.Millisecond, rate), 0.5)
}

// killCue is a harsh saw buzz for fatal contact.
func killCue(rate beep.SampleRate) beep.Streamer {
	const d = 400 * time.Millisecond
	osc := NewOscillator(100, d, WaveSaw, rate)
	return NewEnvelope(osc, d, 5*time.Millisecond, 250*time.Millisecond, rate)
}

// clearCue is a rising two-note chime for a finished stage.
func clearCue(rate beep.SampleRate) beep.Streamer {
	n1 := NewEnvelope(NewOscillator(987.77, 90*time.Millisecond, WaveSquare, rate),
		90*time.Millisecond, 2*time.Millisecond, 60*time.Millisecond, rate)
	n2 := NewEnvelope(NewOscillator(1318.51, 160*time.Millisecond, WaveSquare, rate),
		160*time.Millisecond, 2*time.Millisecond, 120*time.Millisecond, rate)
	return beep.Seq(n1, n2)
}

// winCue extends the chime into a three-note arpeggio for the final
// stage.
func winCue(rate beep.SampleRate) beep.Streamer {
	mk := func(freq float64, d time.Duration) beep.Streamer {
		return NewEnvelope(NewOscillator(freq, d, WaveSquare, rate), d, 2*time.Millisecond, d*3/4, rate)
	}
	return beep.Seq(
		mk(659.25, 110*time.Millisecond),
		mk(987.77, 110*time.Millisecond),
		mk(1318.51, 240*time.Millisecond),
	)
}

// menuMoveCue is a faint tick for cursor movement.
func menuMoveCue(rate beep.SampleRate) beep.Streamer {
	const d = 25 * time.Millisecond
	osc := NewOscillator(1200, d, WaveSine, rate)
	return newVolume(NewEnvelope(osc, d, time.Millisecond, 20*time.Millisecond, rate), 0.4)
}

// menuSelectCue confirms a menu choice.
func menuSelectCue(rate beep.SampleRate) beep.Streamer {
	const d = 70 * time.Millisecond
	osc := NewOscillator(880, d, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, d, 2*time.Millisecond, 50*time.Millisecond, rate), 0.6)
}

// cueFor builds a fresh streamer for the given cue. Streamers are
// single-use, so each play constructs its own.
func cueFor(id event.SoundID, rate beep.SampleRate) beep.Streamer {
	switch id {
	case event.SoundLaunch:
		return launchCue(rate)
	case event.SoundStretch:
		return stretchCue(rate)
	case event.SoundSplit:
		return splitCue(rate)
	case event.SoundPop:
		return popCue(rate)
	case event.SoundLapse:
		return lapseCue(rate)
	case event.SoundKill:
		return killCue(rate)
	case event.SoundClear:
		return clearCue(rate)
	case event.SoundWin:
		return winCue(rate)
	case event.SoundMenuMove:
		return menuMoveCue(rate)
	case event.SoundMenuSelect:
		return menuSelectCue(rate)
	}
	return nil
}
