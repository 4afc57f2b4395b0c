package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/mkaza/fission/event"
)

// TestOscillatorSine verifies sine generation stays in range
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok {
		t.Error("Expected stream to return ok=true")
	}
	if n != 100 {
		t.Errorf("Expected to stream 100 samples, got %d", n)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Expected mono output on both channels at %d", i)
		}
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorSquare verifies square output only takes the two rails
func TestOscillatorSquare(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, rate)

	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if samples[i][0] != -1.0 && samples[i][0] != 1.0 {
			t.Errorf("Square sample %d should be -1.0 or 1.0, got %f", i, samples[i][0])
		}
	}
}

// TestOscillatorDrains verifies a finite cue ends and reports it
func TestOscillatorDrains(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 10 * time.Millisecond
	osc := NewOscillator(440, d, WaveSine, rate)

	total := 0
	buf := make([][2]float64, 128)
	for {
		n, ok := osc.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if want := rate.N(d); total != want {
		t.Errorf("Expected %d samples before draining, got %d", want, total)
	}
	if n, ok := osc.Stream(buf); n != 0 || ok {
		t.Errorf("Expected a drained streamer to stay drained, got n=%d ok=%v", n, ok)
	}
}

// TestEnvelopeShapesEdges verifies attack starts silent and release
// ends silent
func TestEnvelopeShapesEdges(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 100 * time.Millisecond
	osc := NewOscillator(0, d, WaveSquare, rate)
	env := NewEnvelope(osc, d, 20*time.Millisecond, 20*time.Millisecond, rate)

	all := make([][2]float64, 0, rate.N(d))
	buf := make([][2]float64, 256)
	for {
		n, ok := env.Stream(buf)
		all = append(all, buf[:n]...)
		if !ok {
			break
		}
	}

	if len(all) == 0 {
		t.Fatal("Expected enveloped samples")
	}
	if first := all[0][0]; first != 0 {
		t.Errorf("Expected the attack to start at zero, got %f", first)
	}
	last := all[len(all)-1][0]
	if last > 0.01 || last < -0.01 {
		t.Errorf("Expected the release to end near zero, got %f", last)
	}
	mid := all[len(all)/2][0]
	if mid != 1.0 && mid != -1.0 {
		t.Errorf("Expected full level mid-cue, got %f", mid)
	}
}

// TestVolumeZeroGoesSilent verifies zero gain produces silence instead
// of a log of zero
func TestVolumeZeroGoesSilent(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 20*time.Millisecond, WaveSine, rate)
	vol := newVolume(osc, 0)

	samples := make([][2]float64, 64)
	n, _ := vol.Stream(samples)
	for i := 0; i < n; i++ {
		if samples[i][0] != 0 || samples[i][1] != 0 {
			t.Fatalf("Expected silence at zero gain, got %v", samples[i])
		}
	}
}

// TestEveryCueSynthesizes verifies the bank covers every cue and each
// one drains in bounded time
func TestEveryCueSynthesizes(t *testing.T) {
	rate := beep.SampleRate(44100)
	ids := []event.SoundID{
		event.SoundLaunch, event.SoundStretch, event.SoundSplit,
		event.SoundPop, event.SoundLapse, event.SoundKill,
		event.SoundClear, event.SoundWin, event.SoundMenuMove,
		event.SoundMenuSelect,
	}
	for _, id := range ids {
		cue := cueFor(id, rate)
		if cue == nil {
			t.Errorf("Expected a cue for sound %d", id)
			continue
		}
		total := 0
		buf := make([][2]float64, 512)
		for {
			n, ok := cue.Stream(buf)
			total += n
			for i := 0; i < n; i++ {
				if buf[i][0] < -1.0 || buf[i][0] > 1.0 {
					t.Errorf("Cue %d sample out of range: %f", id, buf[i][0])
				}
			}
			if !ok {
				break
			}
			if total > rate.N(2*time.Second) {
				t.Errorf("Cue %d did not drain within two seconds", id)
				break
			}
		}
		if total == 0 {
			t.Errorf("Expected cue %d to produce samples", id)
		}
	}
}

// TestEngineRefusesBeforeStart verifies nothing is queued before the
// device opens
func TestEngineRefusesBeforeStart(t *testing.T) {
	e := NewEngine(0.8)
	if e.Play(event.SoundLaunch) {
		t.Error("Expected Play to refuse before Start")
	}
}

// TestEngineMuteToggles verifies the mute round trip
func TestEngineMuteToggles(t *testing.T) {
	e := NewEngine(0.8)
	if e.Muted() {
		t.Error("Expected a fresh engine unmuted")
	}
	if !e.ToggleMute() {
		t.Error("Expected the first toggle to mute")
	}
	if !e.Muted() {
		t.Error("Expected Muted to report the toggle")
	}
	if e.ToggleMute() {
		t.Error("Expected the second toggle to unmute")
	}
}
