package parameter

// Audio engine
const (
	SampleRate = 44100

	// AudioBufferSize is the speaker buffer in samples. Smaller cuts
	// latency, larger survives scheduler hiccups.
	AudioBufferSize = 2048

	// MasterVolume is expressed in powers of VolumeBase below unity
	// gain, the convention the playback volume effect expects.
	MasterVolume = -1.0
	VolumeBase   = 2.0
)
