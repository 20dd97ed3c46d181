package scheme

import (
	"math"
	"testing"

	"github.com/vkarel/advlab/internal/field"
)

func benchGrid2D(b *testing.B, n int) (*field.Grid, *field.VectorField, field.Boundaries) {
	b.Helper()
	g, err := field.NewUniform(1.0, n, n)
	if err != nil {
		b.Fatal(err)
	}
	cur := g.Current().Data()
	for i := range cur {
		cur[i] = math.Sin(float64(i) * 0.01)
	}
	vel := field.NewVectorField(g)
	vel.Comp(0).Fill(0.7)
	vel.Comp(1).Fill(-0.4)
	return g, vel, field.Uniform(field.Periodic{}, 2)
}

func BenchmarkUpwind1D(b *testing.B) {
	g, _ := field.NewUniform(1.0, 1<<16)
	vel := field.NewVectorField(g)
	vel.Comp(0).Fill(1)
	bc := field.Uniform(field.Periodic{}, 1)
	s := NewUpwind()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Advect(g.Next(), g.Current(), vel, bc, 0.5); err != nil {
			b.Fatal(err)
		}
		g.Swap()
	}
}

func BenchmarkUpwind2D(b *testing.B) {
	g, vel, bc := benchGrid2D(b, 256)
	s := NewUpwind()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Advect(g.Next(), g.Current(), vel, bc, 0.4); err != nil {
			b.Fatal(err)
		}
		g.Swap()
	}
}

func BenchmarkLaxWendroff2D(b *testing.B) {
	g, vel, bc := benchGrid2D(b, 256)
	s := NewLaxWendroff(true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Advect(g.Next(), g.Current(), vel, bc, 0.4); err != nil {
			b.Fatal(err)
		}
		g.Swap()
	}
}

func BenchmarkSemiLagrangian2D(b *testing.B) {
	g, vel, bc := benchGrid2D(b, 256)
	s := NewSemiLagrangian()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Advect(g.Next(), g.Current(), vel, bc, 2.0); err != nil {
			b.Fatal(err)
		}
		g.Swap()
	}
}
