package field_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vkarel/advlab/internal/field"
)

var _ = Describe("Grid", func() {
	Describe("construction", func() {
		It("accepts ranks one through three", func() {
			for _, dims := range [][]int{{8}, {4, 6}, {3, 4, 5}} {
				g, err := field.NewGrid(dims, nil, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(g.Rank()).To(Equal(len(dims)))
				cells := 1
				for _, d := range dims {
					cells *= d
				}
				Expect(g.Cells()).To(Equal(cells))
			}
		})

		It("rejects non-positive extents", func() {
			_, err := field.NewGrid([]int{0}, nil, nil)
			Expect(err).To(MatchError(field.ErrInvalidDimension))
			_, err = field.NewGrid([]int{4, -1}, nil, nil)
			Expect(err).To(MatchError(field.ErrInvalidDimension))
		})

		It("rejects unsupported ranks", func() {
			_, err := field.NewGrid(nil, nil, nil)
			Expect(err).To(MatchError(field.ErrInvalidDimension))
			_, err = field.NewGrid([]int{2, 2, 2, 2}, nil, nil)
			Expect(err).To(MatchError(field.ErrInvalidDimension))
		})

		It("rejects degenerate spacing", func() {
			_, err := field.NewGrid([]int{4}, []float64{0}, nil)
			Expect(err).To(MatchError(field.ErrInvalidDimension))
			_, err = field.NewGrid([]int{4}, []float64{-0.5}, nil)
			Expect(err).To(MatchError(field.ErrInvalidDimension))
		})

		It("rejects mismatched spacing or origin lengths", func() {
			_, err := field.NewGrid([]int{4, 4}, []float64{1}, nil)
			Expect(err).To(MatchError(field.ErrShapeMismatch))
			_, err = field.NewGrid([]int{4}, nil, []float64{0, 0})
			Expect(err).To(MatchError(field.ErrShapeMismatch))
		})

		It("defaults spacing to one and origin to zero", func() {
			g, err := field.NewGrid([]int{4, 4}, nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Spacing(0)).To(Equal(1.0))
			Expect(g.Origin(1)).To(Equal(0.0))
		})
	})

	Describe("two-slot buffering", func() {
		It("swaps by index without moving data", func() {
			g, _ := field.NewUniform(1.0, 4)
			g.Current().Fill(1)
			g.Next().Fill(2)

			before := g.Current().Data()
			g.Swap()
			Expect(g.Current().At(0)).To(Equal(2.0))
			Expect(g.Next().At(0)).To(Equal(1.0))
			// the old current slice is now reachable as next
			Expect(&g.Next().Data()[0]).To(BeIdenticalTo(&before[0]))

			g.Swap()
			Expect(g.Current().At(0)).To(Equal(1.0))
		})

		It("keeps the slots disjoint", func() {
			g, _ := field.NewUniform(1.0, 8)
			g.Current().Fill(3)
			Expect(g.Next().Sum()).To(BeZero())
		})
	})

	Describe("Resize", func() {
		It("reallocates and zero-fills both slots", func() {
			g, _ := field.NewUniform(1.0, 4)
			g.Current().Fill(5)
			g.Swap()

			Expect(g.Resize([]int{6})).To(Succeed())
			Expect(g.Cells()).To(Equal(6))
			Expect(g.Current().Sum()).To(BeZero())
			Expect(g.Next().Sum()).To(BeZero())
		})

		It("rejects invalid extents and rank changes", func() {
			g, _ := field.NewUniform(1.0, 4)
			Expect(g.Resize([]int{0})).To(MatchError(field.ErrInvalidDimension))
			Expect(g.Resize([]int{4, 4})).To(MatchError(field.ErrInvalidDimension))
			// the failed calls left the grid untouched
			Expect(g.Cells()).To(Equal(4))
		})
	})

	Describe("indexing", func() {
		It("is row-major with axis zero fastest", func() {
			g, _ := field.NewGrid([]int{3, 4, 5}, nil, nil)
			Expect(g.Stride(0)).To(Equal(1))
			Expect(g.Stride(1)).To(Equal(3))
			Expect(g.Stride(2)).To(Equal(12))
			Expect(g.Index(2, 1, 3)).To(Equal(2 + 3 + 36))
		})

		It("round-trips through Coords", func() {
			g, _ := field.NewGrid([]int{3, 4, 5}, nil, nil)
			out := make([]int, 3)
			for i := 0; i < g.Cells(); i++ {
				g.Coords(i, out)
				Expect(g.Index(out...)).To(Equal(i))
			}
		})

		It("maps grid space to world space", func() {
			g, err := field.NewGrid([]int{10}, []float64{0.05}, []float64{2})
			Expect(err).NotTo(HaveOccurred())
			Expect(g.World(0, 4)).To(BeNumerically("~", 2.2, 1e-12))
		})
	})
})
