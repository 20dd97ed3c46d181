package viz

import (
	"image"
	"image/color"
	"math"
	"strings"
)

// Braille patterns pack a 2x4 dot block into one rune above 0x2800:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot matrix. A w x h character canvas carries
// (w*2) x (h*4) addressable dots.
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

// Dots returns the dot-space dimensions.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y) in dot coordinates. Out-of-range dots are
// ignored so callers can plot without clipping first.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row*c.Width+col] |= pixelMap[y%4][x%2]
}

// Cell returns the braille rune at a character position.
func (c *Canvas) Cell(col, row int) rune {
	return c.cells[row*c.Width+col]
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
}

// DrawLine lights the dots on the segment from (x0, y0) to (x1, y1) with
// Bresenham stepping.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

// PlotSeries draws values as a connected profile filling the whole canvas,
// mapping [lo, hi] onto the vertical dot range. A flat range is centered.
func (c *Canvas) PlotSeries(values []float64, lo, hi float64) {
	if len(values) == 0 {
		return
	}
	cw, ch := c.Dots()
	span := hi - lo
	if span <= 0 {
		span = 1
		lo -= 0.5
	}
	toY := func(v float64) int {
		frac := (v - lo) / span
		return ch - 1 - int(math.Round(frac*float64(ch-1)))
	}
	toX := func(i int) int {
		if len(values) == 1 {
			return 0
		}
		return i * (cw - 1) / (len(values) - 1)
	}
	px, py := toX(0), toY(values[0])
	for i := 1; i < len(values); i++ {
		x, y := toX(i), toY(values[i])
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

// String renders the canvas as Height lines of Width runes.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width + 1))
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}

// ToImage rasterizes the canvas into a two-color paletted image for GIF
// capture, dotScale pixels per dot.
func (c *Canvas) ToImage(dotScale int) *image.Paletted {
	if dotScale < 1 {
		dotScale = 1
	}
	cw, ch := c.Dots()
	img := image.NewPaletted(image.Rect(0, 0, cw*dotScale, ch*dotScale), color.Palette{color.Black, color.White})
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := c.cells[row*c.Width+col]
			if pattern == 0x2800 {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					bx, by := (col*2+dx)*dotScale, (row*4+dy)*dotScale
					for py := 0; py < dotScale; py++ {
						for px := 0; px < dotScale; px++ {
							img.SetColorIndex(bx+px, by+py, 1)
						}
					}
				}
			}
		}
	}
	return img
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
