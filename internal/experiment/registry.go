package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/metrics"
	"github.com/san-kum/sticksim/internal/models"
	"github.com/san-kum/sticksim/internal/sim"
)

type DriverFactory func(origin dynamo.Vec2, p DriverParams) sim.Driver

type Registry struct {
	drivers map[string]DriverFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		drivers: make(map[string]DriverFactory),
	}

	r.drivers["sway"] = func(o dynamo.Vec2, p DriverParams) sim.Driver { return NewSway(o, p) }
	r.drivers["circle"] = func(o dynamo.Vec2, p DriverParams) sim.Driver { return NewCircle(o, p) }
	r.drivers["lift"] = func(o dynamo.Vec2, p DriverParams) sim.Driver { return NewLift(o, p) }
	r.drivers["still"] = func(o dynamo.Vec2, p DriverParams) sim.Driver { return NewStill(o, p) }

	return r
}

func (r *Registry) GetScene(name string) (models.Scene, error) {
	return models.Get(name)
}

func (r *Registry) GetDriver(name string, origin dynamo.Vec2, p DriverParams) (sim.Driver, error) {
	fn, ok := r.drivers[name]
	if !ok {
		return nil, fmt.Errorf("unknown driver: %s", name)
	}
	return fn(origin, p), nil
}

func (r *Registry) ListScenes() []string {
	return models.List()
}

func (r *Registry) ListDrivers() []string {
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(s *sim.Simulation) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewStretch(),
		metrics.NewMeanStretch(),
		metrics.NewMotion(),
		metrics.NewStability(0.5),
	}
	if id, ok := s.Anchor(); ok {
		ms = append(ms, metrics.NewTravel(id))
	}
	return ms
}
