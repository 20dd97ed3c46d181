package scheme

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vkarel/advlab/internal/field"
)

func TestLaxWendroffExactShiftAtUnitCourant(t *testing.T) {
	g, vel := line(t, 12, 1)
	g.Current().Set(1, 3)

	stepN(t, NewLaxWendroff(false), g, vel, periodic1(), 1.0, 5)

	for i := 0; i < 12; i++ {
		want := 0.0
		if i == 8 {
			want = 1
		}
		if got := g.Current().At(i); got != want {
			t.Errorf("cell %d = %v, want %v", i, got, want)
		}
	}
}

func TestLaxWendroffExactShiftAtNegativeUnitCourant(t *testing.T) {
	g, vel := line(t, 12, -1)
	g.Current().Set(1, 8)

	stepN(t, NewLaxWendroff(false), g, vel, periodic1(), 1.0, 5)

	if got := g.Current().At(3); got != 1 {
		t.Errorf("cell 3 = %v, want 1", got)
	}
}

func TestLaxWendroffUniformFieldInvariant(t *testing.T) {
	g, err := field.NewUniform(1.0, 20)
	if err != nil {
		t.Fatal(err)
	}
	vel := field.NewVectorField(g)
	vd := vel.Comp(0).Data()
	for i := range vd {
		vd[i] = math.Sin(float64(i) * 0.7) // non-uniform flow
	}
	g.Current().Fill(3.7)

	stepN(t, NewLaxWendroff(false), g, vel, periodic1(), 0.5, 10)

	for i := 0; i < 20; i++ {
		if got := g.Current().At(i); got != 3.7 {
			t.Fatalf("cell %d = %v, want 3.7 exactly", i, got)
		}
	}
}

func TestLaxWendroffMatchesClassicStencilForUniformFlow(t *testing.T) {
	const n = 32
	g, vel := line(t, n, 0.8)
	rng := rand.New(rand.NewSource(3))
	cur := g.Current().Data()
	for i := range cur {
		cur[i] = rng.NormFloat64()
	}
	src := g.Current().Clone()

	const dt = 0.7
	nu := 0.8 * dt
	if err := NewLaxWendroff(false).Advect(g.Next(), g.Current(), vel, periodic1(), dt); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < n; i++ {
		um := src.At((i + n - 1) % n)
		c := src.At(i)
		up := src.At((i + 1) % n)
		classic := c - 0.5*nu*(up-um) + 0.5*nu*nu*(up-2*c+um)
		if got := g.Next().At(i); math.Abs(got-classic) > 1e-12 {
			t.Errorf("cell %d: MacCormack %v vs classic %v", i, got, classic)
		}
	}
}

func TestLaxWendroffOvershootAndLimiter(t *testing.T) {
	topHat := func() *field.Grid {
		g, err := field.NewUniform(1.0, 100)
		if err != nil {
			t.Fatal(err)
		}
		f := g.Current()
		for i := 20; i < 40; i++ {
			f.Set(1, i)
		}
		return g
	}
	newVel := func(g *field.Grid) *field.VectorField {
		v := field.NewVectorField(g)
		v.Comp(0).Fill(1)
		return v
	}

	g := topHat()
	stepN(t, NewLaxWendroff(false), g, newVel(g), periodic1(), 0.5, 30)
	_, hi := g.Current().MinMax()
	if hi <= 1+1e-6 {
		t.Errorf("unlimited scheme should overshoot a discontinuity, max = %v", hi)
	}

	g = topHat()
	stepN(t, NewLaxWendroff(true), g, newVel(g), periodic1(), 0.5, 30)
	lo, hi := g.Current().MinMax()
	if lo < -1e-12 || hi > 1+1e-12 {
		t.Errorf("limited scheme escaped [0, 1]: [%v, %v]", lo, hi)
	}
}

func TestLaxWendroff2DUniformShift(t *testing.T) {
	g, err := field.NewUniform(1.0, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	vel := field.NewVectorField(g)
	vel.Comp(0).Fill(1)
	vel.Comp(1).Fill(1)
	bc := field.Uniform(field.Periodic{}, 2)
	g.Current().Set(1, 2, 3)

	// split passes at nu == 1 shift one cell per axis
	if err := NewLaxWendroff(false).Advect(g.Next(), g.Current(), vel, bc, 1.0); err != nil {
		t.Fatal(err)
	}
	g.Swap()

	if got := g.Current().At(3, 4); got != 1 {
		t.Errorf("peak at (3,4) = %v, want 1", got)
	}
	if got := g.Current().Sum(); math.Abs(got-1) > 1e-14 {
		t.Errorf("mass = %v, want 1", got)
	}
}

func TestLaxWendroffInflowFromFixedBoundary(t *testing.T) {
	g, vel := line(t, 6, 1)
	bc := field.Boundaries{field.Fixed{Value: 2}}

	stepN(t, NewLaxWendroff(false), g, vel, bc, 1.0, 1)

	if got := g.Current().At(0); got != 2 {
		t.Errorf("inflow cell = %v, want 2", got)
	}
}
