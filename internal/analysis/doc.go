// Package analysis inspects finished runs and solver behaviour.
//
//   - [TipSpectrum]: power spectrum of the free end's sway, via FFT
//   - [ConvergenceSweep]: constraint residual as relaxation passes accumulate
//
// # Swing frequency
//
// A rope driven by a periodic anchor settles into the driver's frequency;
// a free chain rings at its own:
//
//	spec, err := analysis.TipSpectrum(result.Tip, dt, analysis.AxisX)
//	f, _ := spec.Dominant()
package analysis
