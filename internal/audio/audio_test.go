package audio

import (
	"math"
	"testing"
)

func render(a *Synth, blocks int) [][]float32 {
	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
	for i := 0; i < blocks; i++ {
		a.ProcessAudio(out)
	}
	return out
}

func peak(buf []float32) float64 {
	m := 0.0
	for _, v := range buf {
		if a := math.Abs(float64(v)); a > m {
			m = a
		}
	}
	return m
}

func TestSilentWithoutContact(t *testing.T) {
	a := NewSynth()
	out := render(a, 4)

	if p := peak(out[0]); p != 0 {
		t.Fatalf("idle synth peaked at %v, want silence", p)
	}
	if a.Envelope() != 0 {
		t.Fatalf("idle envelope = %v, want 0", a.Envelope())
	}
}

func TestContactOpensEnvelope(t *testing.T) {
	a := NewSynth()
	a.SetContact(true, 0.5)
	out := render(a, 4)

	if a.Envelope() <= 0 {
		t.Fatal("contact should raise the envelope")
	}
	if peak(out[0]) == 0 || peak(out[1]) == 0 {
		t.Fatal("contact should produce output on both channels")
	}
}

func TestReleaseDecays(t *testing.T) {
	a := NewSynth()
	a.SetContact(true, 1)
	render(a, 8)
	held := a.Envelope()

	a.SetContact(false, 0)
	render(a, 40)
	released := a.Envelope()

	if released >= held {
		t.Fatalf("envelope did not decay: held %v, released %v", held, released)
	}
}

func TestSetContactClampsIntensity(t *testing.T) {
	a := NewSynth()
	a.SetContact(true, 7)
	if a.intensity != 1 {
		t.Fatalf("intensity = %v, want 1", a.intensity)
	}
	a.SetContact(true, -3)
	if a.intensity != 0 {
		t.Fatalf("intensity = %v, want 0", a.intensity)
	}
}

func TestOutputBounded(t *testing.T) {
	a := NewSynth()
	a.SetContact(true, 1)
	out := render(a, 20)

	for ch := range out {
		if p := peak(out[ch]); p > 1 {
			t.Fatalf("channel %d peaked at %v, want <= 1", ch, p)
		}
	}
}
