package solver

import (
	"math"
	"sort"
	"testing"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

func pair(a, b dynamo.Vec2) (*entity.Store, dynamo.PointID, dynamo.PointID) {
	store := entity.New()
	pa := store.AddPoint(a)
	pb := store.AddPoint(b)
	if _, err := store.AddStick(pa, pb); err != nil {
		panic(err)
	}
	return store, pa, pb
}

func dist(store *entity.Store, a, b dynamo.PointID) float64 {
	return store.At(a).Pos.Dist(store.At(b).Pos)
}

func TestSolverStretchedPairConverges(t *testing.T) {
	store, a, b := pair(dynamo.V(0, 0), dynamo.V(0, 3))
	store.SetPosition(b, dynamo.V(0, 5))

	s := New(50, true, 1)
	s.Solve(store)

	if got := dist(store, a, b); math.Abs(got-3) > 1e-3 {
		t.Errorf("expected distance 3, got %f", got)
	}
}

func TestSolverErrorNonIncreasing(t *testing.T) {
	store, a, b := pair(dynamo.V(0, 0), dynamo.V(0, 3))
	store.SetPosition(a, dynamo.V(-1.3, 0.2))
	store.SetPosition(b, dynamo.V(2.5, 7.1))

	s := New(1, true, 7)
	prev := math.Abs(dist(store, a, b) - 3)
	for pass := 0; pass < 20; pass++ {
		s.Solve(store)
		e := math.Abs(dist(store, a, b) - 3)
		if e > prev+1e-12 {
			t.Fatalf("pass %d: error grew from %g to %g", pass, prev, e)
		}
		prev = e
	}
}

func TestSolverCompressedHonoursMinLengthFlag(t *testing.T) {
	tests := []struct {
		name      string
		constrain bool
		want      float64
	}{
		{"rigid rod", true, 3},
		{"rope", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, a, b := pair(dynamo.V(0, 0), dynamo.V(0, 3))
			store.SetPosition(b, dynamo.V(0, 1))

			New(10, tt.constrain, 1).Solve(store)

			if got := dist(store, a, b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected distance %f, got %f", tt.want, got)
			}
		})
	}
}

func TestSolverLockedEndpointStays(t *testing.T) {
	store, a, b := pair(dynamo.V(0, 0), dynamo.V(0, 2))
	store.SetLocked(a, true)
	store.SetPosition(b, dynamo.V(0, 6))

	New(1, true, 1).Solve(store)

	if store.At(a).Pos != dynamo.V(0, 0) {
		t.Errorf("locked point moved to %v", store.At(a).Pos)
	}
	if got := store.At(b).Pos; math.Abs(got.Y-2) > 1e-12 {
		t.Errorf("free endpoint should take the full correction, got %v", got)
	}
}

func TestSolverBothLockedSkipped(t *testing.T) {
	store, a, b := pair(dynamo.V(0, 0), dynamo.V(0, 2))
	store.SetLocked(a, true)
	store.SetLocked(b, true)
	store.SetPosition(b, dynamo.V(0, 6))

	New(10, true, 1).Solve(store)

	if store.At(b).Pos != dynamo.V(0, 6) {
		t.Errorf("locked endpoint moved to %v", store.At(b).Pos)
	}
}

func TestSolverDegenerateStick(t *testing.T) {
	store, a, b := pair(dynamo.V(0, 0), dynamo.V(0, 1))
	store.SetPosition(b, dynamo.V(0, 0))

	New(10, true, 1).Solve(store)

	if !store.At(a).Pos.IsValid() || !store.At(b).Pos.IsValid() {
		t.Fatalf("degenerate stick produced NaN: %v %v", store.At(a).Pos, store.At(b).Pos)
	}

	zero, c, d := pair(dynamo.V(1, 1), dynamo.V(1, 1))
	New(10, true, 1).Solve(zero)
	if zero.At(c).Pos != dynamo.V(1, 1) || zero.At(d).Pos != dynamo.V(1, 1) {
		t.Error("zero-length stick at coincident points should be left alone")
	}
}

func TestSolverSkipsRemovedSticks(t *testing.T) {
	store, _, b := pair(dynamo.V(0, 0), dynamo.V(0, 2))
	store.RemoveStick(0)
	store.SetPosition(b, dynamo.V(0, 6))

	New(10, true, 1).Solve(store)

	if store.At(b).Pos != dynamo.V(0, 6) {
		t.Errorf("removed stick still applied, b=%v", store.At(b).Pos)
	}
}

func TestOrderArrayIsPermutation(t *testing.T) {
	s := New(1, true, 42)

	for _, n := range []int{0, 1, 2, 7, 64} {
		s.Regenerate(n)
		order := s.Order()
		if len(order) != n {
			t.Fatalf("n=%d: order length %d", n, len(order))
		}
		sorted := append([]int(nil), order...)
		sort.Ints(sorted)
		for i, v := range sorted {
			if v != i {
				t.Fatalf("n=%d: not a permutation: %v", n, order)
			}
		}
	}
}

func TestOrderArraySeeded(t *testing.T) {
	a := New(1, true, 99)
	b := New(1, true, 99)
	a.Regenerate(32)
	b.Regenerate(32)

	oa, ob := a.Order(), b.Order()
	for i := range oa {
		if oa[i] != ob[i] {
			t.Fatalf("same seed produced different orders: %v vs %v", oa, ob)
		}
	}
}

func TestSolveResizesStaleOrder(t *testing.T) {
	store, _, _ := pair(dynamo.V(0, 0), dynamo.V(1, 0))
	s := New(1, true, 3)
	s.Solve(store)

	c := store.AddPoint(dynamo.V(2, 0))
	store.AddStick(1, c)
	s.Solve(store)

	if got := len(s.Order()); got != 2 {
		t.Errorf("order should follow the stick count, got %d", got)
	}
}

func TestChainResidualShrinksWithPasses(t *testing.T) {
	build := func() *entity.Store {
		store := entity.New()
		prev := store.AddPoint(dynamo.V(0, 0))
		store.SetLocked(prev, true)
		for i := 1; i < 12; i++ {
			p := store.AddPoint(dynamo.V(float64(i), 0))
			store.AddStick(prev, p)
			prev = p
		}
		for i := 1; i < 12; i++ {
			store.SetPosition(dynamo.PointID(i), dynamo.V(float64(i)*1.4, float64(i%3)*0.3))
		}
		return store
	}

	few := build()
	New(1, true, 5).Solve(few)
	many := build()
	New(200, true, 5).Solve(many)

	if MaxError(many) > MaxError(few) {
		t.Errorf("200 passes (%g) worse than 1 pass (%g)", MaxError(many), MaxError(few))
	}
	if MaxError(many) > 1e-3 {
		t.Errorf("expected residual below 1e-3 after 200 passes, got %g", MaxError(many))
	}
}

func TestErrorMeasures(t *testing.T) {
	store, _, b := pair(dynamo.V(0, 0), dynamo.V(0, 2))
	if MaxError(store) != 0 || TotalError(store) != 0 {
		t.Error("fresh stick should have zero error")
	}
	store.SetPosition(b, dynamo.V(0, 3))
	if math.Abs(MaxError(store)-1) > 1e-12 || math.Abs(TotalError(store)-1) > 1e-12 {
		t.Errorf("expected error 1, got max=%g total=%g", MaxError(store), TotalError(store))
	}
}
