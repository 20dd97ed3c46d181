// Package export renders fields and canvases as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/vkarel/advlab/internal/field"
	"github.com/vkarel/advlab/internal/viz"
)

const svgBackground = "#0a0a0a"

// FieldSVG renders a field at the given pixel size: a profile curve for
// 1D fields, a shaded sample grid for 2D, and the middle z slice for 3D.
func FieldSVG(f field.Field, width, height int) string {
	switch f.Grid().Rank() {
	case 1:
		return ProfileSVG(f, width, height)
	case 2:
		return PlaneSVG(f.Data(), f.Grid().Dim(0), f.Grid().Dim(1), width, height)
	default:
		plane, nu, nv := viz.Plane(f, 2, f.Grid().Dim(2)/2)
		return PlaneSVG(plane, nu, nv, width, height)
	}
}

// ProfileSVG draws a 1D field as a polyline over its world coordinates,
// with a tenth of the value range as vertical padding.
func ProfileSVG(f field.Field, width, height int) string {
	g := f.Grid()
	n := g.Dim(0)
	if n < 2 {
		return ""
	}
	lo, hi := f.MinMax()
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	hi += span * 0.1
	span = hi - lo

	x0 := g.World(0, 0)
	xSpan := g.World(0, n-1) - x0
	if xSpan == 0 {
		xSpan = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, string(viz.CurrentTheme.Primary)))

	for i, v := range f.Data() {
		x := (g.World(0, i) - x0) / xSpan * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
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

// PlaneSVG draws a nu x nv plane as one rect per sample, shaded with the
// active theme's ramp between the plane's extrema. Row zero lands at the
// bottom, matching the terminal heatmap.
func PlaneSVG(plane []float64, nu, nv, width, height int) string {
	if nu < 1 || nv < 1 || len(plane) < nu*nv {
		return ""
	}
	lo, hi := plane[0], plane[0]
	for _, v := range plane {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	ramp := viz.CurrentTheme.Ramp

	cw := float64(width) / float64(nu)
	ch := float64(height) / float64(nv)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	for v := 0; v < nv; v++ {
		for u := 0; u < nu; u++ {
			norm := (plane[u+v*nu] - lo) / span
			idx := int(norm * float64(len(ramp)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(ramp) {
				idx = len(ramp) - 1
			}
			x := float64(u) * cw
			y := float64(nv-1-v) * ch
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, cw, ch, string(ramp[idx])))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasSVG converts a braille canvas to SVG, one circle per lit dot.
func CanvasSVG(c *viz.Canvas, scale float64) string {
	if c == nil {
		return ""
	}
	width := float64(c.Width) * scale * 2
	height := float64(c.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, svgBackground, string(viz.CurrentTheme.Primary)))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Cell(col, row)
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
