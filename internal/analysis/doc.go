// Package analysis provides post-run analysis of deformation traces.
//
// The package characterizes the ringing of a damped tissue response:
//
//   - [PowerSpectrum]: magnitude spectrum of a displacement trace
//   - [PeakFrequency]: dominant oscillation frequency in Hz
//   - [SettleIndex]: first frame after which the trace stays quiet
//
// # Ring Detection
//
// An underdamped stiffness setting shows up as a spectral peak well
// above DC:
//
//	freq := analysis.PeakFrequency(trace, dt)
//	if freq > 0 {
//	    // Tissue is ringing at freq Hz
//	}
package analysis
