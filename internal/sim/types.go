package sim

import (
	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

// Integrator advances the free points of a store by dt seconds.
type Integrator interface {
	Step(store *entity.Store, dt float64)
}

// Driver supplies the externally driven anchor position, advanced once per step.
type Driver interface {
	Advance(dt float64) dynamo.Vec2
}

// DriverFunc adapts a function of elapsed time to a Driver.
type DriverFunc func(t float64) dynamo.Vec2

type funcDriver struct {
	fn DriverFunc
	t  float64
}

func (d *funcDriver) Advance(dt float64) dynamo.Vec2 {
	d.t += dt
	return d.fn(d.t)
}

func (fn DriverFunc) Driver() Driver { return &funcDriver{fn: fn} }

type Metric interface {
	Name() string
	Observe(store *entity.Store, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s *Simulation, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

type Result struct {
	Times      []float64
	Residuals  []float64
	Tip        []dynamo.Vec2
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
