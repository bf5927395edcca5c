package metrics

import (
	"math"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

// Stretch tracks relative stick length error |len-rest|/rest. Value reports
// the worst sample seen.
type Stretch struct {
	name  string
	worst float64
}

func NewStretch() *Stretch {
	return &Stretch{name: "stretch_max"}
}

func (s *Stretch) Name() string { return s.name }

func (s *Stretch) Observe(store *entity.Store, t float64) {
	if e := maxRelative(store); e > s.worst {
		s.worst = e
	}
}

func (s *Stretch) Value() float64 { return s.worst }

func (s *Stretch) Reset() { s.worst = 0 }

// MeanStretch averages the per-sample worst relative error.
type MeanStretch struct {
	name    string
	total   float64
	samples int
}

func NewMeanStretch() *MeanStretch {
	return &MeanStretch{name: "stretch_mean"}
}

func (m *MeanStretch) Name() string { return m.name }

func (m *MeanStretch) Observe(store *entity.Store, t float64) {
	m.total += maxRelative(store)
	m.samples++
}

func (m *MeanStretch) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanStretch) Reset() {
	m.total = 0
	m.samples = 0
}

func maxRelative(store *entity.Store) float64 {
	worst := 0.0
	n := store.NumSticks()
	for i := 0; i < n; i++ {
		st := store.StickAt(dynamo.StickID(i))
		if !st.Alive || st.Length == 0 {
			continue
		}
		l := store.At(st.A).Pos.Dist(store.At(st.B).Pos)
		if e := math.Abs(l-st.Length) / st.Length; e > worst {
			worst = e
		}
	}
	return worst
}
