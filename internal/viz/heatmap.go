package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vkarel/advlab/internal/field"
)

// Heatmap renders a nu x nv plane as a w x h character block, two vertical
// samples per character row using half blocks. Values map onto the active
// theme's ramp between lo and hi; row zero of the plane lands at the
// bottom, matching plot orientation.
func Heatmap(plane []float64, nu, nv, w, h int, lo, hi float64) string {
	if nu < 1 || nv < 1 || w < 1 || h < 1 || len(plane) < nu*nv {
		return ""
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	ramp := CurrentTheme.Ramp
	shade := func(px, py int) lipgloss.Color {
		u := px * (nu - 1) / maxInt(w-1, 1)
		v := py * (nv - 1) / maxInt(2*h-1, 1)
		norm := (plane[u+v*nu] - lo) / span
		idx := int(norm * float64(len(ramp)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(ramp) {
			idx = len(ramp) - 1
		}
		return ramp[idx]
	}

	var b strings.Builder
	for row := 0; row < h; row++ {
		// Upper half block: foreground is the upper sample, background
		// the lower one. Pixel rows count down from the top of the plane.
		topPy := 2*h - 1 - 2*row
		botPy := topPy - 1
		if botPy < 0 {
			botPy = 0
		}
		for col := 0; col < w; col++ {
			st := lipgloss.NewStyle().
				Foreground(shade(col, topPy)).
				Background(shade(col, botPy))
			b.WriteString(st.Render("▀"))
		}
		if row < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Plane copies the plane of a rank-3 field normal to axis ax at index k,
// row-major with the lower remaining axis fastest. Rank-2 fields render
// directly and do not need it.
func Plane(f field.Field, ax, k int) ([]float64, int, int) {
	g := f.Grid()
	var u, v int
	switch ax {
	case 0:
		u, v = 1, 2
	case 1:
		u, v = 0, 2
	default:
		u, v = 0, 1
	}
	nu, nv := g.Dim(u), g.Dim(v)
	su, sv := g.Stride(u), g.Stride(v)
	base := k * g.Stride(ax)
	data := f.Data()
	plane := make([]float64, nu*nv)
	for j := 0; j < nv; j++ {
		row := base + j*sv
		for i := 0; i < nu; i++ {
			plane[i+j*nu] = data[row+i*su]
		}
	}
	return plane, nu, nv
}

var grayPalette = func() color.Palette {
	p := make(color.Palette, 64)
	for i := range p {
		v := uint8(i * 255 / 63)
		p[i] = color.RGBA{v, v, v, 255}
	}
	return p
}()

// PlaneImage rasterizes a plane into a grayscale paletted image for GIF
// capture, scale pixels per sample, row zero at the bottom.
func PlaneImage(plane []float64, nu, nv, scale int, lo, hi float64) *image.Paletted {
	if scale < 1 {
		scale = 1
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	img := image.NewPaletted(image.Rect(0, 0, nu*scale, nv*scale), grayPalette)
	for v := 0; v < nv; v++ {
		for u := 0; u < nu; u++ {
			norm := (plane[u+v*nu] - lo) / span
			idx := int(norm * 63)
			if idx < 0 {
				idx = 0
			}
			if idx > 63 {
				idx = 63
			}
			bx, by := u*scale, (nv-1-v)*scale
			for py := 0; py < scale; py++ {
				for px := 0; px < scale; px++ {
					img.SetColorIndex(bx+px, by+py, uint8(idx))
				}
			}
		}
	}
	return img
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
