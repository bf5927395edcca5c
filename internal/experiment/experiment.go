package experiment

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/models"
	"github.com/san-kum/sticksim/internal/sim"
)

type Config struct {
	Scene    models.Scene
	Driver   string
	Dt       float64
	Duration float64
	Params   dynamo.Params
	Motion   DriverParams
	Validate bool
}

type Experiment struct {
	cfg    Config
	reg    *Registry
	runner *sim.Runner
	logger *log.Logger
}

func New(cfg Config, logger *log.Logger) *Experiment {
	return &Experiment{
		cfg:    cfg,
		reg:    NewRegistry(),
		logger: logger,
	}
}

// Setup builds the scene, attaches the driver to its anchor (if any) and
// registers the metrics. A nil metrics slice selects the defaults.
func (e *Experiment) Setup(ms []sim.Metric) error {
	if e.cfg.Scene == nil {
		return fmt.Errorf("%w: no scene", dynamo.ErrUnknownScene)
	}
	s, err := models.Build(e.cfg.Scene, e.cfg.Params)
	if err != nil {
		return fmt.Errorf("build %s: %w", e.cfg.Scene.Name(), err)
	}
	s.SetSimulating(true)

	var driver sim.Driver
	if id, ok := s.Anchor(); ok && e.cfg.Driver != "" {
		p, _ := s.Store().Point(id)
		driver, err = e.reg.GetDriver(e.cfg.Driver, p.Pos, e.cfg.Motion)
		if err != nil {
			return err
		}
	}

	e.runner = sim.NewRunner(s, driver, e.logger)
	if ms == nil {
		ms = e.reg.DefaultMetrics(s)
	}
	for _, m := range ms {
		e.runner.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	return e.runner.Run(ctx, sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: e.cfg.Validate,
	})
}

// GetRunner returns the underlying runner for adding observers.
func (e *Experiment) GetRunner() *sim.Runner {
	return e.runner
}
