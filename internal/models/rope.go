package models

import (
	"fmt"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/sim"
)

const (
	DefaultRopeSegments      = 35
	DefaultRopeSegmentLength = 0.25
)

// Rope hangs a vertical chain from Origin with its first point anchored to
// the driver. Sticks only resist stretching, so the rope can go slack.
type Rope struct {
	Segments      int
	SegmentLength float64
	Origin        dynamo.Vec2
}

func NewRope() *Rope {
	return &Rope{
		Segments:      DefaultRopeSegments,
		SegmentLength: DefaultRopeSegmentLength,
	}
}

func (r *Rope) Name() string { return "rope" }

func (r *Rope) Tune(p dynamo.Params) dynamo.Params {
	p.ConstrainMinLength = false
	return p
}

func (r *Rope) Build(s *sim.Simulation) error {
	if r.Segments < 2 || r.SegmentLength <= 0 {
		return fmt.Errorf("%w: rope needs >= 2 segments of positive length", dynamo.ErrParameterBounds)
	}
	ids, err := line(s, r.Origin, dynamo.Down.Scale(r.SegmentLength), r.Segments)
	if err != nil {
		return err
	}
	return s.SetAnchor(ids[0])
}

// Chain is a free hanging chain with a locked head and no driver.
type Chain struct {
	Links      int
	LinkLength float64
	Origin     dynamo.Vec2
	// Horizontal lays the chain out sideways so it swings on start.
	Horizontal bool
}

func NewChain() *Chain {
	return &Chain{
		Links:      12,
		LinkLength: 0.5,
		Horizontal: true,
	}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Tune(p dynamo.Params) dynamo.Params {
	return p
}

func (c *Chain) Build(s *sim.Simulation) error {
	if c.Links < 2 || c.LinkLength <= 0 {
		return fmt.Errorf("%w: chain needs >= 2 links of positive length", dynamo.ErrParameterBounds)
	}
	dir := dynamo.Down
	if c.Horizontal {
		dir = dynamo.V(1, 0)
	}
	ids, err := line(s, c.Origin, dir.Scale(c.LinkLength), c.Links)
	if err != nil {
		return err
	}
	return s.Store().SetLocked(ids[0], true)
}

// Bridge spans a chain between two locked end points.
type Bridge struct {
	Planks int
	Span   float64
	Origin dynamo.Vec2
}

func NewBridge() *Bridge {
	return &Bridge{
		Planks: 16,
		Span:   8,
	}
}

func (b *Bridge) Name() string { return "bridge" }

func (b *Bridge) Tune(p dynamo.Params) dynamo.Params {
	return p
}

func (b *Bridge) Build(s *sim.Simulation) error {
	if b.Planks < 1 || b.Span <= 0 {
		return fmt.Errorf("%w: bridge needs planks and a positive span", dynamo.ErrParameterBounds)
	}
	ids, err := line(s, b.Origin, dynamo.V(b.Span/float64(b.Planks), 0), b.Planks+1)
	if err != nil {
		return err
	}
	return lock(s.Store(), ids[0], ids[len(ids)-1])
}
