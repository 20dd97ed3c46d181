package scheme

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vkarel/advlab/internal/field"
)

func TestUpwindExactShiftAtUnitCourant(t *testing.T) {
	g, vel := line(t, 10, 1)
	g.Current().Set(1, 4)

	stepN(t, NewUpwind(), g, vel, periodic1(), 1.0, 3)

	for i := 0; i < 10; i++ {
		want := 0.0
		if i == 7 {
			want = 1
		}
		if got := g.Current().At(i); got != want {
			t.Errorf("cell %d = %v, want %v", i, got, want)
		}
	}
}

func TestUpwindShiftsLeftForNegativeVelocity(t *testing.T) {
	g, vel := line(t, 10, -1)
	g.Current().Set(1, 4)

	stepN(t, NewUpwind(), g, vel, periodic1(), 1.0, 2)

	if got := g.Current().At(2); got != 1 {
		t.Errorf("cell 2 = %v, want 1", got)
	}
}

func TestUpwindMaxPrinciple(t *testing.T) {
	g, vel := line(t, 64, 0.7)
	rng := rand.New(rand.NewSource(1))
	cur := g.Current().Data()
	for i := range cur {
		cur[i] = rng.Float64()
	}
	lo0, hi0 := g.Current().MinMax()

	stepN(t, NewUpwind(), g, vel, periodic1(), 0.9, 200)

	lo, hi := g.Current().MinMax()
	if lo < lo0-1e-12 || hi > hi0+1e-12 {
		t.Errorf("extrema [%v, %v] escaped initial bounds [%v, %v]", lo, hi, lo0, hi0)
	}
}

func TestUpwindConservesMassOnPeriodicGrid(t *testing.T) {
	g, vel := line(t, 50, 1.3)
	cur := g.Current().Data()
	for i := range cur {
		cur[i] = math.Sin(float64(i) * 0.3)
	}
	before := g.Current().Sum()

	stepN(t, NewUpwind(), g, vel, periodic1(), 0.5, 40)

	after := g.Current().Sum()
	if math.Abs(after-before) > 1e-10 {
		t.Errorf("mass drifted from %v to %v", before, after)
	}
}

func TestUpwind2DSplitsFluxAcrossAxes(t *testing.T) {
	g, err := field.NewUniform(1.0, 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	vel := field.NewVectorField(g)
	vel.Comp(0).Fill(1)
	vel.Comp(1).Fill(1)
	bc := field.Uniform(field.Periodic{}, 2)
	g.Current().Set(1, 5, 5)

	// nu_x + nu_y == 1: the donor cell empties completely
	if err := NewUpwind().Advect(g.Next(), g.Current(), vel, bc, 0.5); err != nil {
		t.Fatal(err)
	}
	g.Swap()

	f := g.Current()
	if got := f.At(5, 5); got != 0 {
		t.Errorf("donor cell = %v, want 0", got)
	}
	if got := f.At(6, 5); got != 0.5 {
		t.Errorf("east neighbour = %v, want 0.5", got)
	}
	if got := f.At(5, 6); got != 0.5 {
		t.Errorf("north neighbour = %v, want 0.5", got)
	}
	if got := f.Sum(); math.Abs(got-1) > 1e-14 {
		t.Errorf("total mass = %v, want 1", got)
	}
}

func TestUpwindInflowFromFixedBoundary(t *testing.T) {
	g, vel := line(t, 6, 1)
	bc := field.Boundaries{field.Fixed{Value: 5}}

	stepN(t, NewUpwind(), g, vel, bc, 1.0, 1)

	if got := g.Current().At(0); got != 5 {
		t.Errorf("inflow cell = %v, want the boundary constant 5", got)
	}
}

func TestUpwindZeroVelocityIsIdentity(t *testing.T) {
	g, vel := line(t, 12, 0)
	cur := g.Current().Data()
	for i := range cur {
		cur[i] = float64(i) * 1.1
	}
	before := g.Current().Clone()

	stepN(t, NewUpwind(), g, vel, periodic1(), 0.25, 5)

	for i := 0; i < 12; i++ {
		if g.Current().At(i) != before.At(i) {
			t.Fatalf("cell %d changed with zero velocity", i)
		}
	}
}
