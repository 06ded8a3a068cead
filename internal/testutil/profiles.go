package testutil

import "math"

// Ramp returns n wavelengths start, start+step, ...
func Ramp(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// GaussianBand samples a Gaussian bandpass of the given peak and FWHM at
// every wavelength in grid.
func GaussianBand(grid []float64, center, fwhm, peak float64) []float64 {
	sigma := fwhm / (2 * math.Sqrt(2*math.Ln2))
	out := make([]float64, len(grid))
	for i, x := range grid {
		d := (x - center) / sigma
		out[i] = peak * math.Exp(-0.5*d*d)
	}
	return out
}

// Linear samples a + b*x at every wavelength in grid.
func Linear(grid []float64, a, b float64) []float64 {
	out := make([]float64, len(grid))
	for i, x := range grid {
		out[i] = a + b*x
	}
	return out
}
