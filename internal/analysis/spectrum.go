package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Detrend subtracts the mean from a trace so the spectrum's DC bin does
// not swamp the oscillation peaks.
func Detrend(data []float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out
}

// PowerSpectrum returns the one-sided magnitude spectrum of data.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}

	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// PeakFrequency returns the dominant non-DC frequency of data in Hz,
// given the sample interval dt. Returns 0 for traces too short to
// resolve a peak.
func PeakFrequency(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}

	ps := PowerSpectrum(Detrend(data))

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if ps[best] == 0 {
		return 0
	}

	return float64(best) / (float64(len(data)) * dt)
}

// SettleIndex returns the index of the first frame after which every
// sample stays within threshold, or -1 if the trace never settles.
func SettleIndex(data []float64, threshold float64) int {
	last := -1
	for i, v := range data {
		if v > threshold || v < -threshold {
			last = i
		}
	}
	if last == len(data)-1 {
		return -1
	}
	return last + 1
}
