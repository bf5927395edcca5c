package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/sticksim/internal/dynamo"
)

// Runner drives a Simulation headlessly for a fixed duration, feeding the
// anchor from a Driver and sampling metrics every step.
type Runner struct {
	sim       *Simulation
	driver    Driver
	metrics   []Metric
	observers []Observer
	logger    *log.Logger
}

func NewRunner(s *Simulation, driver Driver, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		sim:       s,
		driver:    driver,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

func (r *Runner) AddMetric(m Metric)      { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)  { r.observers = append(r.observers, o) }
func (r *Runner) Simulation() *Simulation { return r.sim }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 0.5)
	result := &Result{
		Times:     make([]float64, 0, steps+1),
		Residuals: make([]float64, 0, steps+1),
		Tip:       make([]dynamo.Vec2, 0, steps+1),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.logger.Debug("run start", "steps", steps, "dt", cfg.Dt, "points", r.sim.store.NumPoints(), "sticks", r.sim.store.NumAlive())
	start := time.Now()

	r.record(result)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.logger.Info("run canceled", "step", i)
			r.collect(result)
			return result, ctx.Err()
		default:
		}

		t := r.sim.Time()
		for _, m := range r.metrics {
			m.Observe(r.sim.store, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(r.sim, t)
		}

		if r.driver != nil {
			r.sim.SetDriver(r.driver.Advance(cfg.Dt))
		}
		r.sim.Step(cfg.Dt)

		if cfg.ValidateState && !r.sim.store.IsValid() {
			err := &dynamo.SimulationError{Step: i, Time: r.sim.Time(), Wrapped: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			r.logger.Warn("invalid state", "step", i, "t", r.sim.Time())
			break
		}

		result.StepsTaken++
		r.record(result)
	}

	r.collect(result)

	r.logger.Debug("run done", "steps", result.StepsTaken, "elapsed", time.Since(start), "residual", r.sim.Residual())
	return result, nil
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (r *Runner) record(result *Result) {
	result.Times = append(result.Times, r.sim.Time())
	result.Residuals = append(result.Residuals, r.sim.Residual())
	tip, _ := r.sim.Tip()
	result.Tip = append(result.Tip, tip)
}

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrParameterBounds, cfg.Duration)
	}
	return nil
}

// RunWithCallback steps until the duration elapses or callback returns false.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(*Simulation, float64) bool) error {
	if err := r.validateConfig(cfg); err != nil {
		return err
	}

	end := r.sim.Time() + cfg.Duration
	for r.sim.Time() < end {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(r.sim, r.sim.Time()) {
			return nil
		}

		if r.driver != nil {
			r.sim.SetDriver(r.driver.Advance(cfg.Dt))
		}
		r.sim.Step(cfg.Dt)

		if cfg.ValidateState && !r.sim.store.IsValid() {
			return &dynamo.SimulationError{Step: r.sim.Steps(), Time: r.sim.Time(), Wrapped: dynamo.ErrInvalidState}
		}
	}

	return nil
}
