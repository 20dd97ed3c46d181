package scenario

import (
	"math"
	"math/rand"

	"github.com/vkarel/advlab/internal/field"
)

// domainCenter is the world-space midpoint of the node range on each axis.
func domainCenter(g *field.Grid) []float64 {
	c := make([]float64, g.Rank())
	for ax := range c {
		c[ax] = g.Origin(ax) + float64(g.Dim(ax)-1)*g.Spacing(ax)/2
	}
	return c
}

func pickCenter(g *field.Grid, given []float64) []float64 {
	if len(given) == g.Rank() {
		return given
	}
	return domainCenter(g)
}

// radius is the euclidean distance from the node at flat index i to center.
func radius(g *field.Grid, i int, center []float64) float64 {
	var coord [field.MaxRank]int
	g.Coords(i, coord[:g.Rank()])
	sum := 0.0
	for ax := 0; ax < g.Rank(); ax++ {
		d := g.World(ax, coord[ax]) - center[ax]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// applyInitial writes the initial condition into f. The seed only matters
// for the random kind; every other generator is a pure function of the grid.
func applyInitial(f field.Field, g *field.Grid, ic InitialConfig, seed int64) error {
	amp := ic.Amplitude
	if amp == 0 {
		amp = 1
	}
	width := ic.Width
	if width <= 0 {
		width = float64(g.Dim(0)) * g.Spacing(0) / 8
	}
	switch ic.Kind {
	case "", "zero":
		f.Fill(0)
	case "uniform":
		f.Fill(amp)
	case "square-pulse":
		from, to := ic.From, ic.To
		if len(from) != g.Rank() || len(to) != g.Rank() {
			c := pickCenter(g, ic.Center)
			from = make([]float64, g.Rank())
			to = make([]float64, g.Rank())
			for ax := range c {
				from[ax] = c[ax] - width/2
				to[ax] = c[ax] + width/2
			}
		}
		data := f.Data()
		var coord [field.MaxRank]int
		for i := range data {
			g.Coords(i, coord[:g.Rank()])
			inside := true
			for ax := 0; ax < g.Rank(); ax++ {
				x := g.World(ax, coord[ax])
				if x < from[ax] || x >= to[ax] {
					inside = false
					break
				}
			}
			if inside {
				data[i] = amp
			} else {
				data[i] = 0
			}
		}
	case "top-hat":
		c := pickCenter(g, ic.Center)
		data := f.Data()
		for i := range data {
			if radius(g, i, c) <= width/2 {
				data[i] = amp
			} else {
				data[i] = 0
			}
		}
	case "gaussian":
		c := pickCenter(g, ic.Center)
		data := f.Data()
		for i := range data {
			r := radius(g, i, c)
			data[i] = amp * math.Exp(-r*r/(2*width*width))
		}
	case "cone":
		c := pickCenter(g, ic.Center)
		data := f.Data()
		for i := range data {
			data[i] = amp * math.Max(0, 1-radius(g, i, c)/width)
		}
	case "cosine-hill":
		c := pickCenter(g, ic.Center)
		data := f.Data()
		for i := range data {
			r := radius(g, i, c)
			if r < width {
				data[i] = amp * 0.5 * (1 + math.Cos(math.Pi*r/width))
			} else {
				data[i] = 0
			}
		}
	case "random":
		rng := rand.New(rand.NewSource(seed))
		data := f.Data()
		for i := range data {
			data[i] = amp * rng.Float64()
		}
	}
	return nil
}

// buildFlow allocates and fills the velocity field for the scenario.
func buildFlow(g *field.Grid, fc FlowConfig) (*field.VectorField, error) {
	vel := field.NewVectorField(g)
	switch fc.Kind {
	case "", "uniform":
		for ax := 0; ax < g.Rank(); ax++ {
			v := 0.0
			if ax < len(fc.Velocity) {
				v = fc.Velocity[ax]
			}
			vel.Comp(ax).Fill(v)
		}
	case "rotation":
		c := pickCenter(g, fc.Center)
		vx := vel.Comp(0).Data()
		vy := vel.Comp(1).Data()
		var coord [field.MaxRank]int
		for i := range vx {
			g.Coords(i, coord[:g.Rank()])
			x := g.World(0, coord[0]) - c[0]
			y := g.World(1, coord[1]) - c[1]
			vx[i] = -fc.Omega * y
			vy[i] = fc.Omega * x
		}
	case "shear":
		c := pickCenter(g, fc.Center)
		vx := vel.Comp(0).Data()
		var coord [field.MaxRank]int
		for i := range vx {
			g.Coords(i, coord[:g.Rank()])
			vx[i] = fc.Rate * (g.World(1, coord[1]) - c[1])
		}
	}
	return vel, nil
}
