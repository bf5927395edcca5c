package analysis

import (
	"sort"

	"github.com/san-kum/sticksim/internal/sim"
	"github.com/san-kum/sticksim/internal/solver"
)

type ConvergencePoint struct {
	Passes   int
	MaxError float64
	Total    float64
}

// ConvergenceSweep relaxes s pass by pass from its current state and records
// the residual once the cumulative pass count reaches each requested value.
// Points are not integrated, so only the solver acts. s is modified.
func ConvergenceSweep(s *sim.Simulation, passes []int) []ConvergencePoint {
	want := make([]int, 0, len(passes))
	for _, n := range passes {
		if n >= 0 {
			want = append(want, n)
		}
	}
	sort.Ints(want)

	store := s.Store()
	sol := s.Solver()
	out := make([]ConvergencePoint, 0, len(want))
	done := 0
	for _, n := range want {
		sol.SolveN(store, n-done)
		done = n
		out = append(out, ConvergencePoint{
			Passes:   n,
			MaxError: solver.MaxError(store),
			Total:    solver.TotalError(store),
		})
	}
	return out
}

// Monotone reports whether the total residual never grows by more than tol
// from one point to the next.
func Monotone(points []ConvergencePoint, tol float64) bool {
	for i := 1; i < len(points); i++ {
		if points[i].Total > points[i-1].Total+tol {
			return false
		}
	}
	return true
}
