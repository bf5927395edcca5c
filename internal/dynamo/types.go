package dynamo

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector in world units. The y axis points down.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2             { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2             { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2        { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64          { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64                { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64         { return v.Sub(o).Len() }
func (v Vec2) IsValid() bool               { return isFinite(v.X) && isFinite(v.Y) }
func (v Vec2) String() string              { return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y) }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Scale(t)) }

// Normalized returns the unit vector and the original length. A zero vector
// yields (Vec2{}, 0).
func (v Vec2) Normalized() (Vec2, float64) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, 0
	}
	return Vec2{v.X / l, v.Y / l}, l
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Down is the unit gravity direction.
var Down = Vec2{0, 1}

// PointID is a stable handle into the entity store's point arena.
type PointID int

// StickID is a stable handle into the entity store's stick arena.
type StickID int

// NoPoint marks the absence of a point (e.g. a pick that hit nothing).
const NoPoint PointID = -1

// Params holds the solver and integrator knobs shared by every scene.
type Params struct {
	Gravity            float64
	Passes             int
	ConstrainMinLength bool
	PickRadius         float64
	AutoChain          bool
	Seed               int64
	// Damping is the fraction of implied velocity dropped each step, in [0,1].
	Damping float64
}

func DefaultParams() Params {
	return Params{
		Gravity:            9.8,
		Passes:             100,
		ConstrainMinLength: true,
		PickRadius:         0.5,
		Seed:               1,
	}
}

func (p Params) Validate() error {
	if !isFinite(p.Gravity) {
		return fmt.Errorf("%w: gravity must be finite, got %v", ErrParameterBounds, p.Gravity)
	}
	if p.Passes < 0 {
		return fmt.Errorf("%w: passes must be >= 0, got %d", ErrParameterBounds, p.Passes)
	}
	if p.Damping < 0 || p.Damping > 1 || math.IsNaN(p.Damping) {
		return fmt.Errorf("%w: damping must be in [0,1], got %v", ErrParameterBounds, p.Damping)
	}
	if p.PickRadius < 0 || !isFinite(p.PickRadius) {
		return fmt.Errorf("%w: pick radius must be >= 0, got %v", ErrParameterBounds, p.PickRadius)
	}
	return nil
}

// GravityVector is the per-second² acceleration applied to free points.
func (p Params) GravityVector() Vec2 {
	return Down.Scale(p.Gravity)
}
