package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/vkarel/advlab/internal/field"
)

// PowerSpectrum returns the normalized magnitude of each Fourier
// coefficient of one line of samples, bins 0 through n/2. A pure tone of
// amplitude A at wavenumber k shows up as A/2 in bin k, independent of
// resolution.
func PowerSpectrum(line []float64) []float64 {
	n := len(line)
	if n == 0 {
		return nil
	}
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, line)
	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c) / float64(n)
	}
	return ps
}

// MidLine copies the axis-ax line passing through the domain midpoint,
// the usual probe for spectra of multidimensional fields.
func MidLine(f field.Field, ax int) []float64 {
	g := f.Grid()
	n := g.Dim(ax)
	base := 0
	for a := 0; a < g.Rank(); a++ {
		if a != ax {
			base += (g.Dim(a) / 2) * g.Stride(a)
		}
	}
	stride := g.Stride(ax)
	data := f.Data()
	line := make([]float64, n)
	for i := 0; i < n; i++ {
		line[i] = data[base+i*stride]
	}
	return line
}
