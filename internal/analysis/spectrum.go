package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/san-kum/sticksim/internal/dynamo"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Spectrum holds one-sided power per frequency bin. Bin 0 (DC) is dropped.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum removes the mean, applies a Hann window and transforms.
func PowerSpectrum(samples []float64, dt float64) (*Spectrum, error) {
	n := len(samples)
	if n < 4 {
		return nil, fmt.Errorf("need at least 4 samples, got %d", n)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive", dynamo.ErrParameterBounds)
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range samples {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	coeffs := fft.FFTReal(x)
	half := n / 2
	spec := &Spectrum{
		Freqs: make([]float64, 0, half),
		Power: make([]float64, 0, half),
	}
	for k := 1; k <= half; k++ {
		spec.Freqs = append(spec.Freqs, float64(k)/(float64(n)*dt))
		a := cmplx.Abs(coeffs[k])
		spec.Power = append(spec.Power, a*a)
	}
	return spec, nil
}

// TipSpectrum analyses one coordinate of a tip trace.
func TipSpectrum(tip []dynamo.Vec2, dt float64, axis Axis) (*Spectrum, error) {
	samples := make([]float64, len(tip))
	for i, p := range tip {
		if axis == AxisY {
			samples[i] = p.Y
		} else {
			samples[i] = p.X
		}
	}
	return PowerSpectrum(samples, dt)
}

// Dominant returns the frequency with the most power.
func (s *Spectrum) Dominant() (freq, power float64) {
	for i, p := range s.Power {
		if p > power {
			freq, power = s.Freqs[i], p
		}
	}
	return freq, power
}
