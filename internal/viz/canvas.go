package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid. Each cell holds 2x4 sub-pixels, so the
// drawable area is (Width*2) x (Height*4). Marks records cells that carry a
// glyph instead of dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Marks         map[[2]int]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Marks:  make(map[[2]int]rune),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Mark puts a glyph in the cell containing sub-pixel (x, y). Marks are
// drawn over dots.
func (c *Canvas) Mark(x, y int, glyph rune) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Marks[[2]int{col, row}] = glyph
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	for k := range c.Marks {
		delete(c.Marks, k)
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Cell returns the rune shown at a cell, mark first.
func (c *Canvas) Cell(col, row int) rune {
	if g, ok := c.Marks[[2]int{col, row}]; ok {
		return g
	}
	return c.Grid[row][col]
}

func (c *Canvas) String() string {
	return c.Render(nil)
}

// Render joins the rows, passing each marked glyph through style.
func (c *Canvas) Render(style func(rune) string) string {
	var b strings.Builder
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			g, ok := c.Marks[[2]int{col, row}]
			switch {
			case !ok:
				b.WriteRune(r)
			case style != nil:
				b.WriteString(style(g))
			default:
				b.WriteRune(g)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
