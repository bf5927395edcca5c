// Package solver relaxes distance constraints by iterative position
// projection.
//
// Each pass walks the sticks in the order held by an order array, a
// permutation of stick slots that is reshuffled only when the stick set
// changes. The solver owns its random source so a seed reproduces a run.
package solver

import (
	"math"
	"math/rand"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

// Sticks shorter than this have no usable direction and are skipped.
const degenerateLength = 1e-9

type Solver struct {
	passes             int
	constrainMinLength bool
	rng                *rand.Rand
	order              []int
}

func New(passes int, constrainMinLength bool, seed int64) *Solver {
	if passes < 0 {
		passes = 0
	}
	return &Solver{
		passes:             passes,
		constrainMinLength: constrainMinLength,
		rng:                rand.New(rand.NewSource(seed)),
		order:              make([]int, 0),
	}
}

func NewFromParams(p dynamo.Params) *Solver {
	return New(p.Passes, p.ConstrainMinLength, p.Seed)
}

func (s *Solver) Passes() int { return s.passes }

func (s *Solver) SetPasses(n int) {
	if n < 0 {
		n = 0
	}
	s.passes = n
}

func (s *Solver) ConstrainMinLength() bool { return s.constrainMinLength }

func (s *Solver) SetConstrainMinLength(v bool) { s.constrainMinLength = v }

// Seed resets the random source. The current order is kept until the next
// Regenerate.
func (s *Solver) Seed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Regenerate reshuffles the order array to a fresh permutation of 0..n-1.
func (s *Solver) Regenerate(n int) {
	if n <= 0 {
		s.order = s.order[:0]
		return
	}
	s.order = s.rng.Perm(n)
}

// Order returns a copy of the current order array.
func (s *Solver) Order() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Solve runs the configured number of passes.
func (s *Solver) Solve(store *entity.Store) {
	s.SolveN(store, s.passes)
}

// SolveN runs exactly n passes regardless of the configured count.
func (s *Solver) SolveN(store *entity.Store, n int) {
	if len(s.order) != store.NumSticks() {
		s.Regenerate(store.NumSticks())
	}
	for i := 0; i < n; i++ {
		s.Relax(store)
	}
}

// Relax performs a single pass over every stick in order.
func (s *Solver) Relax(store *entity.Store) {
	for _, idx := range s.order {
		if idx >= store.NumSticks() {
			continue
		}
		s.project(store, store.StickAt(dynamo.StickID(idx)))
	}
}

func (s *Solver) project(store *entity.Store, st *entity.Stick) {
	if !st.Alive {
		return
	}
	pa, pb := store.At(st.A), store.At(st.B)
	if pa.Locked && pb.Locked {
		return
	}

	delta := pa.Pos.Sub(pb.Pos)
	dist := delta.Len()
	if dist < degenerateLength || math.IsNaN(dist) {
		return
	}

	diff := dist - st.Length
	if diff == 0 || (diff < 0 && !s.constrainMinLength) {
		return
	}

	// corr points from b towards a with magnitude |diff|; pulling a back along
	// it and pushing b forward shortens a stretched stick and lengthens a
	// compressed one.
	corr := delta.Scale(diff / dist)

	switch {
	case pa.Locked:
		pb.Pos = pb.Pos.Add(corr)
	case pb.Locked:
		pa.Pos = pa.Pos.Sub(corr)
	default:
		half := corr.Scale(0.5)
		pa.Pos = pa.Pos.Sub(half)
		pb.Pos = pb.Pos.Add(half)
	}
}

// MaxError returns the largest absolute deviation from rest length over live
// sticks. A store without sticks reports 0.
func MaxError(store *entity.Store) float64 {
	worst := 0.0
	n := store.NumSticks()
	for i := 0; i < n; i++ {
		st := store.StickAt(dynamo.StickID(i))
		if !st.Alive {
			continue
		}
		e := math.Abs(store.At(st.A).Pos.Dist(store.At(st.B).Pos) - st.Length)
		if e > worst {
			worst = e
		}
	}
	return worst
}

// TotalError sums the absolute deviations from rest length over live sticks.
func TotalError(store *entity.Store) float64 {
	sum := 0.0
	n := store.NumSticks()
	for i := 0; i < n; i++ {
		st := store.StickAt(dynamo.StickID(i))
		if !st.Alive {
			continue
		}
		sum += math.Abs(store.At(st.A).Pos.Dist(store.At(st.B).Pos) - st.Length)
	}
	return sum
}
