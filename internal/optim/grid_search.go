package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/sticksim/internal/experiment"
)

// Axis is one knob of the grid and the values to try for it.
type Axis struct {
	Name   string
	Values []float64
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	axes []Axis
}

func NewGridSearch(axes ...Axis) *GridSearch {
	return &GridSearch{axes: axes}
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.axes) == 0 {
		return 0
	}
	n := 1
	for _, a := range g.axes {
		n *= len(a.Values)
	}
	return n
}

// Search runs one experiment per grid point and returns the point with the
// lowest value of metricName along with every trial. Failed builds or runs
// are kept in the trial list and never win.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Trial, []Trial, error) {
	if g.Size() == 0 {
		return Trial{}, nil, fmt.Errorf("empty grid")
	}

	best := Trial{Value: math.Inf(1)}
	trials := make([]Trial, 0, g.Size())

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) {
		t := g.evaluate(ctx, params, buildExperiment, metricName)
		trials = append(trials, t)
		if t.Err == nil && t.Value < best.Value {
			best = t
		}
	})
	if err != nil {
		return best, trials, err
	}
	if best.Params == nil {
		return best, trials, fmt.Errorf("no grid point produced %q", metricName)
	}
	return best, trials, nil
}

func (g *GridSearch) evaluate(
	ctx context.Context,
	params map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
) Trial {
	t := Trial{Params: params, Value: math.NaN()}

	exp, err := buildExperiment(params)
	if err != nil {
		t.Err = err
		return t
	}
	result, err := exp.Run(ctx)
	if err != nil {
		t.Err = err
		return t
	}

	val, ok := result.Metrics[metricName]
	if !ok {
		t.Err = fmt.Errorf("metric %q not recorded", metricName)
		return t
	}
	t.Value = val
	return t
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	visit func(map[string]float64),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.axes) {
		visit(current)
		return nil
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[axis.Name] = val

		if err := g.searchRecursive(ctx, depth+1, next, visit); err != nil {
			return err
		}
	}
	return nil
}
