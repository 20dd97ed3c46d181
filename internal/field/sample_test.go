package field_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vkarel/advlab/internal/field"
)

var _ = Describe("SampleAt", func() {
	allPolicies := []field.Policy{
		field.Periodic{},
		field.Clamp{},
		field.Fixed{Value: 0.5},
		field.Fixed{Value: 0.5, Strict: true},
	}

	It("reduces exactly to the stored value at every node, under every policy", func() {
		g, _ := field.NewUniform(1.0, 7)
		f := g.Current()
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 7; i++ {
			f.Set(rng.NormFloat64(), i)
		}
		for _, p := range allPolicies {
			bc := field.Boundaries{p}
			for i := 0; i < 7; i++ {
				got, err := f.SampleAt(bc, []float64{float64(i)})
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(f.At(i)), "policy %s node %d", p.Name(), i)
			}
		}
	})

	It("interpolates linearly between nodes", func() {
		g, _ := field.NewUniform(1.0, 4)
		f := g.Current()
		f.Set(2, 1)
		f.Set(6, 2)
		bc := field.Uniform(field.Periodic{}, 1)

		got, err := f.SampleAt(bc, []float64{1.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", 4.0, 1e-14))

		got, _ = f.SampleAt(bc, []float64{1.25})
		Expect(got).To(BeNumerically("~", 3.0, 1e-14))
	})

	It("resolves off-grid corners through the boundary policy", func() {
		g, _ := field.NewUniform(1.0, 3)
		f := g.Current()
		f.Set(1, 0)
		f.Set(2, 1)
		f.Set(4, 2)

		// halfway between cell 2 and the wrapped cell 0
		got, err := f.SampleAt(field.Boundaries{field.Periodic{}}, []float64{2.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", 2.5, 1e-14))

		// clamp replicates the edge: flat extrapolation
		got, _ = f.SampleAt(field.Boundaries{field.Clamp{}}, []float64{2.5})
		Expect(got).To(BeNumerically("~", 4.0, 1e-14))

		// fixed blends toward the constant
		got, _ = f.SampleAt(field.Boundaries{field.Fixed{Value: 0}}, []float64{2.5})
		Expect(got).To(BeNumerically("~", 2.0, 1e-14))
	})

	It("fails only where a strict fixed policy refuses", func() {
		g, _ := field.NewUniform(1.0, 3)
		f := g.Current()
		bc := field.Boundaries{field.Fixed{Value: 0, Strict: true}}

		_, err := f.SampleAt(bc, []float64{2.5})
		Expect(err).To(MatchError(field.ErrOutOfDomain))

		// the last node itself stays readable
		_, err = f.SampleAt(bc, []float64{2.0})
		Expect(err).NotTo(HaveOccurred())
	})

	It("is bilinear on 2D grids", func() {
		g, _ := field.NewUniform(1.0, 3, 3)
		f := g.Current()
		f.Set(1, 0, 0)
		f.Set(3, 1, 0)
		f.Set(5, 0, 1)
		f.Set(7, 1, 1)
		bc := field.Uniform(field.Clamp{}, 2)

		got, err := f.SampleAt(bc, []float64{0.5, 0.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", 4.0, 1e-14)) // mean of the four corners

		got, _ = f.SampleAt(bc, []float64{0.5, 0.0})
		Expect(got).To(BeNumerically("~", 2.0, 1e-14)) // pure x interpolation on row 0
	})

	It("is trilinear on 3D grids", func() {
		g, _ := field.NewUniform(1.0, 2, 2, 2)
		f := g.Current()
		sum := 0.0
		for z := 0; z < 2; z++ {
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					v := float64(x + 2*y + 4*z)
					f.Set(v, x, y, z)
					sum += v
				}
			}
		}
		bc := field.Uniform(field.Periodic{}, 3)
		got, err := f.SampleAt(bc, []float64{0.5, 0.5, 0.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", sum/8, 1e-14))
	})

	It("rejects positions of the wrong rank", func() {
		g, _ := field.NewUniform(1.0, 4)
		_, err := g.Current().SampleAt(field.Uniform(field.Periodic{}, 1), []float64{1, 2})
		Expect(err).To(MatchError(field.ErrShapeMismatch))
	})

	It("samples vector fields component-wise", func() {
		g, _ := field.NewUniform(1.0, 4, 4)
		v := field.NewVectorField(g)
		v.Comp(0).Fill(2)
		v.Comp(1).Fill(-1)
		out := make([]float64, 2)
		err := v.SampleAt(field.Uniform(field.Periodic{}, 2), []float64{1.3, 2.7}, out)
		Expect(err).NotTo(HaveOccurred())
		Expect(out[0]).To(BeNumerically("~", 2.0, 1e-14))
		Expect(out[1]).To(BeNumerically("~", -1.0, 1e-14))
	})
})
