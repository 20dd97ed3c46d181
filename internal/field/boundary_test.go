package field_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vkarel/advlab/internal/field"
)

// fiveCells builds the canonical 5-cell line 10, 11, 12, 13, 14.
func fiveCells() field.Field {
	g, err := field.NewUniform(1.0, 5)
	Expect(err).NotTo(HaveOccurred())
	f := g.Current()
	for i := 0; i < 5; i++ {
		f.Set(10+float64(i), i)
	}
	return f
}

var _ = Describe("boundary policies", func() {
	DescribeTable("coordinate -1 on a 5-cell line",
		func(p field.Policy, want float64) {
			got, err := fiveCells().Sample(field.Boundaries{p}, -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("periodic wraps to the last cell", field.Periodic{}, 14.0),
		Entry("clamp replicates the first cell", field.Clamp{}, 10.0),
		Entry("fixed supplies its constant exactly", field.Fixed{Value: 7.5}, 7.5),
	)

	DescribeTable("coordinate 5 on a 5-cell line",
		func(p field.Policy, want float64) {
			got, err := fiveCells().Sample(field.Boundaries{p}, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("periodic wraps to the first cell", field.Periodic{}, 10.0),
		Entry("clamp replicates the last cell", field.Clamp{}, 14.0),
		Entry("fixed supplies its constant", field.Fixed{Value: -2.0}, -2.0),
	)

	It("wraps periodic coordinates through multiple turns", func() {
		f := fiveCells()
		bc := field.Boundaries{field.Periodic{}}
		for coord, want := range map[int]float64{-6: 14, -5: 10, 9: 14, 10: 10, -11: 14} {
			got, err := f.Sample(bc, coord)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want), "coordinate %d", coord)
		}
	})

	It("keeps in-range lookups untouched by the policy", func() {
		f := fiveCells()
		for _, p := range []field.Policy{field.Periodic{}, field.Clamp{}, field.Fixed{Value: 99}} {
			got, err := f.Sample(field.Boundaries{p}, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(13.0))
		}
	})

	It("refuses out-of-domain lookups under a strict fixed policy", func() {
		f := fiveCells()
		bc := field.Boundaries{field.Fixed{Value: 1, Strict: true}}
		_, err := f.Sample(bc, -1)
		Expect(err).To(MatchError(field.ErrOutOfDomain))

		got, err := f.Sample(bc, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(14.0))
	})

	Describe("per-axis composition on a 2D grid", func() {
		var f field.Field
		var bc field.Boundaries

		BeforeEach(func() {
			g, err := field.NewUniform(1.0, 4, 3)
			Expect(err).NotTo(HaveOccurred())
			f = g.Current()
			for y := 0; y < 3; y++ {
				for x := 0; x < 4; x++ {
					f.Set(float64(10*y+x), x, y)
				}
			}
			bc = field.Boundaries{field.Periodic{}, field.Fixed{Value: -1}}
		})

		It("resolves each axis with its own policy", func() {
			got, err := f.Sample(bc, -1, 1) // x wraps to 3, y in range
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(13.0))

			got, err = f.Sample(bc, 1, -1) // y outside, fixed wins
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(-1.0))
		})

		It("lets the fixed axis win at corners", func() {
			got, err := f.Sample(bc, -1, 3) // x wraps, y outside
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(-1.0))
		})
	})

	Describe("ParsePolicy", func() {
		It("builds every named variant", func() {
			for name, want := range map[string]string{
				"periodic":     "periodic",
				"":             "periodic",
				"clamp":        "clamp",
				"clamped":      "clamp",
				"fixed":        "fixed",
				"fixed-strict": "fixed-strict",
			} {
				p, err := field.ParsePolicy(name, 0)
				Expect(err).NotTo(HaveOccurred())
				Expect(p.Name()).To(Equal(want))
			}
		})

		It("rejects unknown names", func() {
			_, err := field.ParsePolicy("reflecting", 0)
			Expect(err).To(HaveOccurred())
		})

		It("threads the constant into fixed policies", func() {
			p, err := field.ParsePolicy("fixed", 3.25)
			Expect(err).NotTo(HaveOccurred())
			got, err := fiveCells().Sample(field.Boundaries{p}, 17)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(3.25))
		})
	})

	Describe("Validate", func() {
		It("requires one policy per axis", func() {
			Expect(field.Uniform(field.Periodic{}, 2).Validate(2)).To(Succeed())
			Expect(field.Uniform(field.Periodic{}, 1).Validate(2)).To(MatchError(field.ErrShapeMismatch))
			Expect(field.Boundaries{nil}.Validate(1)).To(MatchError(field.ErrShapeMismatch))
		})
	})
})
