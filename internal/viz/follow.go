package viz

import (
	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/sticksim/internal/dynamo"
)

// follower eases a position towards a target with a spring per axis, so the
// anchor trails the mouse instead of teleporting between terminal cells.
type follower struct {
	spring harmonica.Spring
	pos    dynamo.Vec2
	vel    dynamo.Vec2
}

func newFollower(fps int, frequency, damping float64, start dynamo.Vec2) *follower {
	return &follower{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		pos:    start,
	}
}

func (f *follower) update(target dynamo.Vec2) dynamo.Vec2 {
	f.pos.X, f.vel.X = f.spring.Update(f.pos.X, f.vel.X, target.X)
	f.pos.Y, f.vel.Y = f.spring.Update(f.pos.Y, f.vel.Y, target.Y)
	return f.pos
}

func (f *follower) reset(pos dynamo.Vec2) {
	f.pos = pos
	f.vel = dynamo.Vec2{}
}
