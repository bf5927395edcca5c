package experiment

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/san-kum/sticksim/internal/dynamo"
)

// DriverParams shapes the scripted anchor motion.
type DriverParams struct {
	Amplitude float64
	Period    float64
}

func DefaultDriverParams() DriverParams {
	return DriverParams{Amplitude: 2, Period: 2}
}

// track plays a list of tweens back to back. When the last one finishes it
// restarts from loop, or holds its final value if loop is negative.
type track struct {
	legs  []*gween.Tween
	loop  int
	cur   int
	value float64
}

func newTrack(loop int, legs ...*gween.Tween) *track {
	return &track{legs: legs, loop: loop}
}

// advance moves the playhead by dt. Time left over at the end of a leg runs
// on into as many following legs as it covers.
func (tr *track) advance(dt float64) float64 {
	remaining := float32(dt)
	stalled := 0
	for {
		leg := tr.legs[tr.cur]
		v, done := leg.Update(remaining)
		tr.value = float64(v)
		if !done || leg.Overflow <= 0 || !tr.next() {
			return tr.value
		}

		// zero-length legs never use up time; one full lap of them ends the step
		if leg.Overflow >= remaining {
			stalled++
			if stalled > len(tr.legs) {
				return tr.value
			}
		} else {
			stalled = 0
		}
		remaining = leg.Overflow
		tr.legs[tr.cur].Reset()
	}
}

// next moves to the following leg, wrapping to loop. It reports false when
// the track holds on its last leg.
func (tr *track) next() bool {
	switch {
	case tr.cur+1 < len(tr.legs):
		tr.cur++
	case tr.loop >= 0:
		tr.cur = tr.loop
	default:
		return false
	}
	return true
}

// Sway swings the anchor horizontally around origin.
type Sway struct {
	origin dynamo.Vec2
	x      *track
}

func NewSway(origin dynamo.Vec2, p DriverParams) *Sway {
	a := float32(p.Amplitude)
	half := float32(p.Period / 2)
	return &Sway{
		origin: origin,
		x: newTrack(1,
			gween.New(0, a, half/2, ease.OutSine),
			gween.New(a, -a, half, ease.InOutSine),
			gween.New(-a, a, half, ease.InOutSine),
		),
	}
}

func (s *Sway) Advance(dt float64) dynamo.Vec2 {
	return s.origin.Add(dynamo.V(s.x.advance(dt), 0))
}

// Circle moves the anchor around a circle that passes through origin.
type Circle struct {
	origin dynamo.Vec2
	radius float64
	angle  *track
}

func NewCircle(origin dynamo.Vec2, p DriverParams) *Circle {
	return &Circle{
		origin: origin,
		radius: p.Amplitude,
		angle:  newTrack(0, gween.New(0, 2*math.Pi, float32(p.Period), ease.Linear)),
	}
}

func (c *Circle) Advance(dt float64) dynamo.Vec2 {
	a := c.angle.advance(dt)
	return c.origin.Add(dynamo.V(c.radius*(math.Cos(a)-1), c.radius*math.Sin(a)))
}

// Lift raises the anchor by the amplitude once, then holds.
type Lift struct {
	origin dynamo.Vec2
	y      *track
}

func NewLift(origin dynamo.Vec2, p DriverParams) *Lift {
	return &Lift{
		origin: origin,
		y:      newTrack(-1, gween.New(0, float32(-p.Amplitude), float32(p.Period), ease.InOutCubic)),
	}
}

func (l *Lift) Advance(dt float64) dynamo.Vec2 {
	return l.origin.Add(dynamo.V(0, l.y.advance(dt)))
}

// Still pins the anchor at origin.
type Still struct {
	origin dynamo.Vec2
}

func NewStill(origin dynamo.Vec2, _ DriverParams) *Still {
	return &Still{origin: origin}
}

func (s *Still) Advance(dt float64) dynamo.Vec2 { return s.origin }
