package integrators

import (
	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

// Verlet advances free points with position Verlet:
//
//	x' = x + (x - x_prev) + g*dt²
//
// Locked points keep both positions frozen.
type Verlet struct {
	gravity dynamo.Vec2
}

func NewVerlet(gravity dynamo.Vec2) *Verlet {
	return &Verlet{gravity: gravity}
}

func (v *Verlet) Gravity() dynamo.Vec2 { return v.gravity }

func (v *Verlet) SetGravity(g dynamo.Vec2) { v.gravity = g }

func (v *Verlet) Step(store *entity.Store, dt float64) {
	acc := v.gravity.Scale(dt * dt)
	n := store.NumPoints()

	for i := 0; i < n; i++ {
		p := store.At(dynamo.PointID(i))
		if p.Locked {
			continue
		}
		vel := p.Pos.Sub(p.Prev)
		p.Prev = p.Pos
		p.Pos = p.Pos.Add(vel).Add(acc)
	}
}

// Damped is Verlet with a velocity retention factor in [0,1]. A factor of 1
// behaves exactly like Verlet.
type Damped struct {
	Verlet
	retain float64
}

func NewDamped(gravity dynamo.Vec2, retain float64) *Damped {
	if retain < 0 {
		retain = 0
	}
	if retain > 1 {
		retain = 1
	}
	return &Damped{Verlet: Verlet{gravity: gravity}, retain: retain}
}

func (d *Damped) Step(store *entity.Store, dt float64) {
	acc := d.gravity.Scale(dt * dt)
	n := store.NumPoints()

	for i := 0; i < n; i++ {
		p := store.At(dynamo.PointID(i))
		if p.Locked {
			continue
		}
		vel := p.Pos.Sub(p.Prev).Scale(d.retain)
		p.Prev = p.Pos
		p.Pos = p.Pos.Add(vel).Add(acc)
	}
}
