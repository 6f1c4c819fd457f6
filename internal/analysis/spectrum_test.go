package analysis

import (
	"math"
	"testing"
)

func TestDetrend(t *testing.T) {
	out := Detrend([]float64{1, 2, 3})
	want := []float64{-1, 0, 1}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}

	if len(Detrend(nil)) != 0 {
		t.Fatal("empty trace should stay empty")
	}
}

func TestPeakFrequency(t *testing.T) {
	const (
		dt   = 1.0 / 256.0
		n    = 256
		freq = 8.0
	)
	data := make([]float64, n)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}

	got := PeakFrequency(data, dt)
	if math.Abs(got-freq) > 0.5 {
		t.Fatalf("peak = %v Hz, want %v", got, freq)
	}
}

func TestPeakFrequencyFlat(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 2.5
	}
	if got := PeakFrequency(data, 0.01); got != 0 {
		t.Fatalf("flat trace peak = %v, want 0", got)
	}
	if got := PeakFrequency([]float64{1, 2}, 0.01); got != 0 {
		t.Fatalf("short trace peak = %v, want 0", got)
	}
}

func TestSettleIndex(t *testing.T) {
	data := []float64{1.0, 0.5, 0.2, 0.01, 0.005, 0.002}
	if got := SettleIndex(data, 0.1); got != 3 {
		t.Fatalf("settle index = %d, want 3", got)
	}
	if got := SettleIndex([]float64{1, 2, 3}, 0.1); got != -1 {
		t.Fatalf("never-settling trace index = %d, want -1", got)
	}
	if got := SettleIndex([]float64{0.01, 0.02}, 0.1); got != 0 {
		t.Fatalf("always-quiet trace index = %d, want 0", got)
	}
}
