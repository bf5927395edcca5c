package models

import (
	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
	"github.com/san-kum/sticksim/internal/sim"
)

// Scene pre-populates an empty simulation with points and sticks.
type Scene interface {
	Name() string
	// Tune adjusts the shared knobs a scene depends on before the simulation
	// is created.
	Tune(p dynamo.Params) dynamo.Params
	Build(s *sim.Simulation) error
}

// New builds scene with its own preferred knobs.
func New(scene Scene) (*sim.Simulation, error) {
	return Build(scene, scene.Tune(dynamo.DefaultParams()))
}

// Build creates a simulation with p as given and populates it. Auto-chain is
// held off while the scene is laid out and applied afterwards.
func Build(scene Scene, p dynamo.Params) (*sim.Simulation, error) {
	layout := p
	layout.AutoChain = false
	s, err := sim.New(layout)
	if err != nil {
		return nil, err
	}
	if err := scene.Build(s); err != nil {
		return nil, err
	}
	if p.AutoChain {
		if err := s.SetParams(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// line adds n points from origin stepping by delta and joins neighbours.
func line(s *sim.Simulation, origin, delta dynamo.Vec2, n int) ([]dynamo.PointID, error) {
	ed := s.Editor()
	ids := make([]dynamo.PointID, n)
	for i := 0; i < n; i++ {
		ids[i] = ed.AddPoint(origin.Add(delta.Scale(float64(i))))
		if i > 0 {
			if _, err := ed.AddStick(ids[i-1], ids[i]); err != nil {
				return nil, err
			}
		}
	}
	return ids, nil
}

// lock pins every id and stops at the first bad handle.
func lock(store *entity.Store, ids ...dynamo.PointID) error {
	for _, id := range ids {
		if err := store.SetLocked(id, true); err != nil {
			return err
		}
	}
	return nil
}

type Empty struct{}

func NewEmpty() *Empty { return &Empty{} }

func (e *Empty) Name() string                       { return "empty" }
func (e *Empty) Tune(p dynamo.Params) dynamo.Params { return p }
func (e *Empty) Build(s *sim.Simulation) error      { return nil }
