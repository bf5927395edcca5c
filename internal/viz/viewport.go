package viz

import (
	"math"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

// Viewport maps world coordinates onto canvas sub-pixels. The world y axis
// already points down, matching the terminal.
type Viewport struct {
	Origin dynamo.Vec2 // world position of sub-pixel (0, 0)
	Scale  float64     // world units per sub-pixel
	Cols   int
	Rows   int
}

// minExtent keeps an empty or tiny scene from zooming in absurdly.
const minExtent = 6.0

// FitViewport frames the snapshot inside a cols x rows canvas with a margin,
// keeping the aspect ratio of world space.
func FitViewport(snap entity.Snapshot, cols, rows int, margin float64) Viewport {
	lo, hi, ok := snap.Bounds()
	if !ok {
		lo, hi = dynamo.Vec2{}, dynamo.Vec2{}
	}
	center := lo.Lerp(hi, 0.5)
	w := math.Max(hi.X-lo.X, minExtent) * (1 + margin)
	h := math.Max(hi.Y-lo.Y, minExtent) * (1 + margin)

	px, py := float64(cols*2), float64(rows*4)
	scale := math.Max(w/px, h/py)
	return Viewport{
		Origin: center.Sub(dynamo.V(px*scale/2, py*scale/2)),
		Scale:  scale,
		Cols:   cols,
		Rows:   rows,
	}
}

func (v Viewport) ToScreen(p dynamo.Vec2) (int, int) {
	d := p.Sub(v.Origin).Scale(1 / v.Scale)
	return int(math.Floor(d.X)), int(math.Floor(d.Y))
}

// CellToWorld returns the world position at the center of a canvas cell.
func (v Viewport) CellToWorld(col, row int) dynamo.Vec2 {
	x := float64(col*2) + 1
	y := float64(row*4) + 2
	return v.Origin.Add(dynamo.V(x, y).Scale(v.Scale))
}

// Draw renders sticks as lines and points as glyphs.
func (v Viewport) Draw(c *Canvas, snap entity.Snapshot, anchor dynamo.PointID) {
	for _, st := range snap.Sticks {
		x0, y0 := v.ToScreen(st.From)
		x1, y1 := v.ToScreen(st.To)
		c.DrawLine(x0, y0, x1, y1)
	}
	for _, p := range snap.Points {
		x, y := v.ToScreen(p.Pos)
		switch {
		case p.ID == anchor:
			c.Mark(x, y, GlyphAnchor)
		case p.Locked:
			c.Mark(x, y, GlyphLocked)
		default:
			c.Set(x, y)
			c.Set(x+1, y)
			c.Set(x, y+1)
			c.Set(x+1, y+1)
		}
	}
}
