package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/experiment"
	"github.com/san-kum/sticksim/internal/models"
)

func ropeExperiment(params map[string]float64) (*experiment.Experiment, error) {
	rope := models.NewRope()
	rope.Segments = 10
	p := rope.Tune(dynamo.DefaultParams())
	p.Passes = int(params["passes"])

	exp := experiment.New(experiment.Config{
		Scene:    rope,
		Driver:   "sway",
		Dt:       0.02,
		Duration: 0.5,
		Params:   p,
		Motion:   experiment.DefaultDriverParams(),
	}, nil)
	if err := exp.Setup(nil); err != nil {
		return nil, err
	}
	return exp, nil
}

func TestGridSearchSize(t *testing.T) {
	g := NewGridSearch(Axis{"a", []float64{1, 2, 3}}, Axis{"b", []float64{1, 2}})
	if g.Size() != 6 {
		t.Errorf("expected 6 grid points, got %d", g.Size())
	}
	if NewGridSearch().Size() != 0 {
		t.Error("empty grid should have size 0")
	}
}

func TestGridSearchMorePassesWins(t *testing.T) {
	g := NewGridSearch(Axis{"passes", []float64{1, 50}})

	best, trials, err := g.Search(context.Background(), ropeExperiment, "stretch_max")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(trials) != 2 {
		t.Fatalf("expected 2 trials, got %d", len(trials))
	}
	if best.Params["passes"] != 50 {
		t.Errorf("expected 50 passes to minimise stretch, got %v (trials %+v)", best.Params, trials)
	}
}

func TestGridSearchKeepsFailures(t *testing.T) {
	g := NewGridSearch(Axis{"passes", []float64{-1, 20}})
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		if params["passes"] < 0 {
			return nil, dynamo.ErrParameterBounds
		}
		return ropeExperiment(params)
	}

	best, trials, err := g.Search(context.Background(), build, "stretch_max")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !errors.Is(trials[0].Err, dynamo.ErrParameterBounds) || !math.IsNaN(trials[0].Value) {
		t.Errorf("failed trial not recorded: %+v", trials[0])
	}
	if best.Params["passes"] != 20 {
		t.Errorf("expected the valid point to win, got %+v", best)
	}
}

func TestGridSearchUnknownMetric(t *testing.T) {
	g := NewGridSearch(Axis{"passes", []float64{5}})
	if _, _, err := g.Search(context.Background(), ropeExperiment, "nope"); err == nil {
		t.Error("expected error when no trial records the metric")
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch(Axis{"passes", []float64{5, 10}})
	if _, _, err := g.Search(ctx, ropeExperiment, "stretch_max"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
