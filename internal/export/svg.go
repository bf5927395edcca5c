package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

type Style struct {
	Background  string
	Stick       string
	Stretched   string
	Point       string
	Locked      string
	PointRadius float64
	StrokeWidth float64
	// StretchLimit is the relative stretch at which a stick is drawn fully
	// in the Stretched color.
	StretchLimit float64
}

func DefaultStyle() Style {
	return Style{
		Background:   "#0a0a0a",
		Stick:        "#cccccc",
		Stretched:    "#ff4444",
		Point:        "#00ffff",
		Locked:       "#ff00ff",
		PointRadius:  4,
		StrokeWidth:  2,
		StretchLimit: 0.1,
	}
}

// frame maps world bounds onto a width x height image with 10% padding and
// a uniform scale. World y already points down, as in SVG.
type frame struct {
	min    dynamo.Vec2
	scale  float64
	offset dynamo.Vec2
}

func fit(min, max dynamo.Vec2, width, height int) frame {
	rangeX := max.X - min.X
	rangeY := max.Y - min.Y
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	pad := 0.1
	w, h := float64(width)*(1-2*pad), float64(height)*(1-2*pad)
	scale := math.Min(w/rangeX, h/rangeY)
	return frame{
		min:   min,
		scale: scale,
		offset: dynamo.V(
			(float64(width)-rangeX*scale)/2,
			(float64(height)-rangeY*scale)/2,
		),
	}
}

func (f frame) apply(p dynamo.Vec2) (float64, float64) {
	return f.offset.X + (p.X-f.min.X)*f.scale, f.offset.Y + (p.Y-f.min.Y)*f.scale
}

func header(sb *strings.Builder, width, height int, background string) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// SnapshotToSVG draws sticks (tinted by stretch) and points (locked ones in
// their own color).
func SnapshotToSVG(snap entity.Snapshot, width, height int, style Style) string {
	var sb strings.Builder
	header(&sb, width, height, style.Background)

	min, max, ok := snap.Bounds()
	if !ok {
		sb.WriteString("</svg>")
		return sb.String()
	}
	f := fit(min, max, width, height)

	sb.WriteString(fmt.Sprintf("<g stroke-width=\"%.1f\" stroke-linecap=\"round\">\n", style.StrokeWidth))
	for _, st := range snap.Sticks {
		x0, y0 := f.apply(st.From)
		x1, y1 := f.apply(st.To)
		color := style.Stick
		if style.StretchLimit > 0 && math.Abs(st.Stretch()) >= style.StretchLimit {
			color = style.Stretched
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, x0, y0, x1, y1, color))
	}
	sb.WriteString("</g>\n<g>\n")
	for _, p := range snap.Points {
		x, y := f.apply(p.Pos)
		color := style.Point
		if p.Locked {
			color = style.Locked
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, style.PointRadius, color))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws a path through points, such as a rope tip trace.
func TrajectoryToSVG(points []dynamo.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	min, max := points[0], points[0]
	for _, p := range points {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	f := fit(min, max, width, height)

	var sb strings.Builder
	header(&sb, width, height, "#0a0a0a")
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x, y := f.apply(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
