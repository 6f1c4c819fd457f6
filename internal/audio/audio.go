// Package audio renders a wet squelch cue whenever the probe is in
// contact with tissue, over a portaudio output stream.
package audio

import (
	"math"
	"math/rand"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	attack  = 0.004
	release = 0.9995
)

type Synth struct {
	Stream *portaudio.Stream

	// Synthesis state, touched only from the audio callback
	Time        float64
	FilterState [2]float64 // Stereo LPF state
	rng         *rand.Rand

	// Shared with the simulation thread
	mu        sync.Mutex
	gate      bool
	intensity float64
	env       float64

	Active bool
}

func NewSynth() *Synth {
	return &Synth{rng: rand.New(rand.NewSource(1))}
}

func (a *Synth) Start() error {
	portaudio.Initialize()

	// Output only (0 in, 2 out); duplex often fails on Linux when the
	// default devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		return err
	}
	if err := stream.Start(); err != nil {
		return err
	}

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Synth) Stop() {
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
	}
	portaudio.Terminate()
	a.Active = false
}

// SetContact feeds the per-frame contact flag and a 0..1 intensity,
// typically the normalized probe force.
func (a *Synth) SetContact(touching bool, intensity float64) {
	a.mu.Lock()
	a.gate = touching
	a.intensity = math.Max(0, math.Min(intensity, 1))
	a.mu.Unlock()
}

// Envelope returns the current contact envelope, for display.
func (a *Synth) Envelope() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.env
}

// Low pass filter (one pole)
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (a *Synth) ProcessAudio(out [][]float32) {
	a.mu.Lock()
	gate := a.gate
	intensity := a.intensity
	env := a.env
	a.mu.Unlock()

	dt := 1.0 / float64(SampleRate)

	// Filtered noise reads as wet tissue; the low sine adds body.
	cutoff := 400.0 + 1800.0*intensity
	vol := 0.3

	for i := 0; i < len(out[0]); i++ {
		if gate {
			env += (1 - env) * attack
		} else {
			env *= release
		}

		noiseL := a.rng.Float64()*2 - 1
		noiseR := a.rng.Float64()*2 - 1
		body := 0.4 * math.Sin(2*math.Pi*90*a.Time)

		var outL, outR float64
		outL, a.FilterState[0] = lpf(noiseL+body, cutoff, dt, a.FilterState[0])
		outR, a.FilterState[1] = lpf(noiseR+body, cutoff, dt, a.FilterState[1])

		g := env * (0.3 + 0.7*intensity) * vol
		out[0][i] = float32(outL * g)
		out[1][i] = float32(outR * g)

		a.Time += dt
	}

	a.mu.Lock()
	a.env = env
	a.mu.Unlock()
}
