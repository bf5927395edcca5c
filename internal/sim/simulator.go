package sim

import (
	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/editor"
	"github.com/san-kum/sticksim/internal/entity"
	"github.com/san-kum/sticksim/internal/integrators"
	"github.com/san-kum/sticksim/internal/solver"
)

// Simulation owns one entity store and advances it frame by frame:
// integrate free points, pin the anchor to its driver, then relax sticks.
type Simulation struct {
	params     dynamo.Params
	store      *entity.Store
	integrator Integrator
	solver     *solver.Solver
	editor     *editor.Editor

	simulating bool
	anchor     dynamo.PointID
	driver     dynamo.Vec2
	driven     bool

	time  float64
	steps int

	// custom is set when the caller supplied the integrator, so damping
	// changes leave it alone.
	custom bool
}

func integratorFor(p dynamo.Params) Integrator {
	if p.Damping > 0 {
		return integrators.NewDamped(p.GravityVector(), 1-p.Damping)
	}
	return integrators.NewVerlet(p.GravityVector())
}

func New(p dynamo.Params) (*Simulation, error) {
	s, err := NewWithIntegrator(p, integratorFor(p))
	if err != nil {
		return nil, err
	}
	s.custom = false
	return s, nil
}

func NewWithIntegrator(p dynamo.Params, integ Integrator) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	store := entity.New()
	sol := solver.NewFromParams(p)
	ed := editor.New(store, sol, p.PickRadius)

	s := &Simulation{
		params:     p,
		store:      store,
		integrator: integ,
		solver:     sol,
		editor:     ed,
		anchor:     dynamo.NoPoint,
		custom:     true,
	}
	if p.AutoChain {
		ed.SetAutoChain(true)
	}
	return s, nil
}

func (s *Simulation) Params() dynamo.Params     { return s.params }
func (s *Simulation) Editor() *editor.Editor    { return s.editor }
func (s *Simulation) Solver() *solver.Solver    { return s.solver }
func (s *Simulation) Time() float64             { return s.time }
func (s *Simulation) Steps() int                { return s.steps }
func (s *Simulation) Simulating() bool          { return s.simulating }
func (s *Simulation) SetSimulating(on bool)     { s.simulating = on }
func (s *Simulation) Snapshot() entity.Snapshot { return s.store.Snapshot() }

// Store exposes the entity store to metrics and scene builders. Callers must
// not hold it across a Step from another goroutine.
func (s *Simulation) Store() *entity.Store { return s.store }

func (s *Simulation) ToggleSimulating() bool {
	s.simulating = !s.simulating
	return s.simulating
}

// SetParams applies new knobs without touching topology.
func (s *Simulation) SetParams(p dynamo.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !s.custom && p.Damping != s.params.Damping {
		s.integrator = integratorFor(p)
	} else if g, ok := s.integrator.(interface{ SetGravity(dynamo.Vec2) }); ok {
		g.SetGravity(p.GravityVector())
	}
	s.solver.SetPasses(p.Passes)
	s.solver.SetConstrainMinLength(p.ConstrainMinLength)
	s.editor.SetPickRadius(p.PickRadius)
	if p.AutoChain != s.editor.AutoChain() {
		s.editor.SetAutoChain(p.AutoChain)
	}
	if p.Seed != s.params.Seed {
		s.solver.Seed(p.Seed)
	}
	s.params = p
	return nil
}

// Apply runs one edit command and reports its failure, if any.
func (s *Simulation) Apply(cmd editor.Command) error {
	err := cmd.Apply(s.editor)
	// An anchor that was cleared away or unlocked stops following the driver.
	if !s.store.Valid(s.anchor) || !s.store.At(s.anchor).Locked {
		s.ReleaseAnchor()
	}
	return err
}

// SetAnchor locks a point and makes it follow the driver position.
func (s *Simulation) SetAnchor(id dynamo.PointID) error {
	if err := s.store.SetLocked(id, true); err != nil {
		return err
	}
	p, _ := s.store.Point(id)
	s.anchor = id
	s.driver = p.Pos
	s.driven = true
	return nil
}

// ReleaseAnchor detaches the driver. The point stays locked.
func (s *Simulation) ReleaseAnchor() {
	s.anchor = dynamo.NoPoint
	s.driven = false
}

func (s *Simulation) Anchor() (dynamo.PointID, bool) {
	return s.anchor, s.driven
}

// SetDriver sets where the anchor is pinned on the next step.
func (s *Simulation) SetDriver(pos dynamo.Vec2) {
	s.driver = pos
}

// Step advances the simulation by dt regardless of the simulating toggle.
func (s *Simulation) Step(dt float64) {
	s.integrator.Step(s.store, dt)
	if s.driven && s.store.Valid(s.anchor) {
		s.store.SetPosition(s.anchor, s.driver)
	}
	s.solver.Solve(s.store)
	s.time += dt
	s.steps++
}

// Frame is the per-frame entry point: it steps only while simulating.
func (s *Simulation) Frame(dt float64) bool {
	if !s.simulating {
		return false
	}
	s.Step(dt)
	return true
}

// Tip returns the position of the last point, the free end of a rope.
func (s *Simulation) Tip() (dynamo.Vec2, bool) {
	n := s.store.NumPoints()
	if n == 0 {
		return dynamo.Vec2{}, false
	}
	return s.store.At(dynamo.PointID(n - 1)).Pos, true
}

// Residual is the largest absolute stick length error.
func (s *Simulation) Residual() float64 {
	return solver.MaxError(s.store)
}
