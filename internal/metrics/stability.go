package metrics

import (
	"math"

	"github.com/san-kum/sticksim/internal/entity"
)

// Stability is the fraction of samples in which every point was finite and
// no stick exceeded threshold relative stretch.
type Stability struct {
	threshold float64
	stable    int
	samples   int
	firstBad  float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold, firstBad: math.NaN()}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(store *entity.Store, t float64) {
	s.samples++
	if store.IsValid() && maxRelative(store) <= s.threshold {
		s.stable++
		return
	}
	if math.IsNaN(s.firstBad) {
		s.firstBad = t
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1
	}
	return float64(s.stable) / float64(s.samples)
}

// FirstFailure is the time of the first unstable sample, or NaN if none.
func (s *Stability) FirstFailure() float64 { return s.firstBad }

func (s *Stability) Reset() {
	s.stable = 0
	s.samples = 0
	s.firstBad = math.NaN()
}
