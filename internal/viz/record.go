package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

type frame = *image.Paletted

const (
	charW = 8
	charH = 16
)

// captureFrame rasterises the braille canvas, one dot per 4x4 pixel block.
func (m *Model) captureFrame() {
	m.frames = append(m.frames, rasterize(m.canvas))
}

func rasterize(c *Canvas) *image.Paletted {
	imgW, imgH := c.Width*charW, c.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			baseX, baseY := col*charW, row*charH
			if _, marked := c.Marks[[2]int{col, row}]; marked {
				fill(img, baseX+1, baseY+4, charW-2, charH-8)
				continue
			}
			pattern := int(c.Grid[row][col] - brailleBlank)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						fill(img, baseX+dx*dotW, baseY+dy*dotH, dotW, dotH)
					}
				}
			}
		}
	}
	return img
}

func fill(img *image.Paletted, x, y, w, h int) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			img.SetColorIndex(px, py, 1)
		}
	}
}

func (m *Model) saveGIF(path string) (string, error) {
	if len(m.frames) == 0 {
		return "", os.ErrInvalid
	}
	anim := gif.GIF{LoopCount: 0}
	for _, f := range m.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return "", err
	}
	return path, nil
}
