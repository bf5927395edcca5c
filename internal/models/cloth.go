package models

import (
	"fmt"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/sim"
)

// Cloth is a rectangular grid with structural sticks. Every Pin-th point of
// the top row is locked.
type Cloth struct {
	Cols, Rows int
	Spacing    float64
	Pin        int
	Origin     dynamo.Vec2
}

func NewCloth() *Cloth {
	return &Cloth{
		Cols:    12,
		Rows:    8,
		Spacing: 0.5,
		Pin:     3,
	}
}

func (c *Cloth) Name() string { return "cloth" }

func (c *Cloth) Tune(p dynamo.Params) dynamo.Params {
	return p
}

func (c *Cloth) Build(s *sim.Simulation) error {
	if c.Cols < 1 || c.Rows < 1 || c.Spacing <= 0 {
		return fmt.Errorf("%w: cloth needs a non-empty grid", dynamo.ErrParameterBounds)
	}
	ed := s.Editor()
	grid := make([]dynamo.PointID, c.Cols*c.Rows)
	at := func(col, row int) dynamo.PointID { return grid[row*c.Cols+col] }

	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Cols; col++ {
			pos := c.Origin.Add(dynamo.V(float64(col)*c.Spacing, float64(row)*c.Spacing))
			grid[row*c.Cols+col] = ed.AddPoint(pos)
		}
	}

	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Cols; col++ {
			if col+1 < c.Cols {
				if _, err := ed.AddStick(at(col, row), at(col+1, row)); err != nil {
					return err
				}
			}
			if row+1 < c.Rows {
				if _, err := ed.AddStick(at(col, row), at(col, row+1)); err != nil {
					return err
				}
			}
		}
	}

	pin := c.Pin
	if pin < 1 {
		pin = 1
	}
	pins := make([]dynamo.PointID, 0, c.Cols/pin+1)
	for col := 0; col < c.Cols; col += pin {
		pins = append(pins, at(col, 0))
	}
	pins = append(pins, at(c.Cols-1, 0))
	return lock(s.Store(), pins...)
}

// Box is a braced square. With nothing to land on it falls freely, keeping
// its shape.
type Box struct {
	Size   float64
	Origin dynamo.Vec2
}

func NewBox() *Box {
	return &Box{Size: 2}
}

func (b *Box) Name() string { return "box" }

func (b *Box) Tune(p dynamo.Params) dynamo.Params {
	p.ConstrainMinLength = true
	return p
}

func (b *Box) Build(s *sim.Simulation) error {
	if b.Size <= 0 {
		return fmt.Errorf("%w: box size must be positive", dynamo.ErrParameterBounds)
	}
	ed := s.Editor()
	o := b.Origin
	corners := []dynamo.PointID{
		ed.AddPoint(o),
		ed.AddPoint(o.Add(dynamo.V(b.Size, 0))),
		ed.AddPoint(o.Add(dynamo.V(b.Size, b.Size))),
		ed.AddPoint(o.Add(dynamo.V(0, b.Size))),
	}
	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}, {1, 3}}
	for _, e := range edges {
		if _, err := ed.AddStick(corners[e[0]], corners[e[1]]); err != nil {
			return err
		}
	}
	return nil
}
