package metrics

import (
	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

// Motion averages the per-step displacement |pos-prev| of free points, the
// Verlet stand-in for speed.
type Motion struct {
	name    string
	total   float64
	samples int
}

func NewMotion() *Motion {
	return &Motion{name: "motion"}
}

func (m *Motion) Name() string { return m.name }

func (m *Motion) Observe(store *entity.Store, t float64) {
	n := store.NumPoints()
	free := 0
	sum := 0.0
	for i := 0; i < n; i++ {
		p := store.At(dynamo.PointID(i))
		if p.Locked {
			continue
		}
		sum += p.Pos.Dist(p.Prev)
		free++
	}
	if free == 0 {
		return
	}
	m.total += sum / float64(free)
	m.samples++
}

func (m *Motion) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Motion) Reset() {
	m.total = 0
	m.samples = 0
}

// Travel accumulates the path length of a single point, typically the anchor.
type Travel struct {
	name  string
	id    dynamo.PointID
	last  dynamo.Vec2
	seen  bool
	total float64
}

func NewTravel(id dynamo.PointID) *Travel {
	return &Travel{name: "anchor_travel", id: id}
}

func (tr *Travel) Name() string { return tr.name }

func (tr *Travel) Observe(store *entity.Store, t float64) {
	if !store.Valid(tr.id) {
		return
	}
	pos := store.At(tr.id).Pos
	if tr.seen {
		tr.total += pos.Dist(tr.last)
	}
	tr.last = pos
	tr.seen = true
}

func (tr *Travel) Value() float64 { return tr.total }

func (tr *Travel) Reset() {
	tr.total = 0
	tr.seen = false
}
