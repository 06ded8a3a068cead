package bandpass

import (
	"math"

	"github.com/cwbudde/algo-etc/optics/curve"
)

// Stats holds bandpass properties of a throughput curve.
type Stats struct {
	Samples        int
	Peak           float64
	PeakWavelength float64

	EquivalentWidth float64 // ∫T dλ
	RectWidth       float64 // equivalent width / peak
	AvgWavelength   float64 // ∫λT dλ / ∫T dλ
	PivotWavelength float64 // sqrt(∫λT dλ / ∫T/λ dλ)
	RMSWidth        float64 // spread around AvgWavelength

	HalfMaxLow  float64 // blue half-maximum crossing
	HalfMaxHigh float64 // red half-maximum crossing
	FWHM        float64
}

// Calculate computes all properties of c.
func Calculate(c *curve.Curve) Stats {
	return CalculateSamples(c.Wavelength(), c.Values())
}

// CalculateSamples computes all properties from paired samples. The
// wavelengths must be increasing. A curve with zero throughput everywhere
// has only Samples and the peak fields set.
func CalculateSamples(wavelength, value []float64) Stats {
	n := min(len(wavelength), len(value))
	if n == 0 {
		return Stats{}
	}
	wavelength, value = wavelength[:n], value[:n]

	var s Stats
	s.Samples = n
	peakIdx := peakIndex(value)
	s.Peak = value[peakIdx]
	s.PeakWavelength = wavelength[peakIdx]

	s.EquivalentWidth = EquivalentWidth(wavelength, value)
	if s.EquivalentWidth == 0 {
		return s
	}
	s.RectWidth = s.EquivalentWidth / s.Peak

	weighted := trapezoid(wavelength, func(i int) float64 { return wavelength[i] * value[i] })
	s.AvgWavelength = weighted / s.EquivalentWidth

	inverse := trapezoid(wavelength, func(i int) float64 { return value[i] / wavelength[i] })
	if inverse > 0 {
		s.PivotWavelength = math.Sqrt(weighted / inverse)
	}

	s.RMSWidth = spread(wavelength, value, s.AvgWavelength, s.EquivalentWidth)
	s.HalfMaxLow, s.HalfMaxHigh = halfMax(wavelength, value, peakIdx)
	s.FWHM = s.HalfMaxHigh - s.HalfMaxLow
	return s
}

// EquivalentWidth returns ∫T dλ.
func EquivalentWidth(wavelength, value []float64) float64 {
	return trapezoid(wavelength, func(i int) float64 { return value[i] })
}

// FWHM returns the full width at half maximum around the peak. Crossings
// are linearly interpolated; a side that never drops below half maximum
// ends at the domain edge.
func FWHM(wavelength, value []float64) float64 {
	if len(wavelength) < 2 {
		return 0
	}
	lo, hi := halfMax(wavelength, value, peakIndex(value))
	return hi - lo
}

func trapezoid(x []float64, f func(i int) float64) float64 {
	sum := 0.0
	prev := f(0)
	for i := 1; i < len(x); i++ {
		cur := f(i)
		sum += 0.5 * (prev + cur) * (x[i] - x[i-1])
		prev = cur
	}
	return sum
}

func spread(wavelength, value []float64, avg, ew float64) float64 {
	sq := trapezoid(wavelength, func(i int) float64 {
		d := wavelength[i] - avg
		return d * d * value[i]
	})
	return math.Sqrt(sq / ew)
}

func peakIndex(value []float64) int {
	best := 0
	for i, v := range value {
		if v > value[best] {
			best = i
		}
	}
	return best
}

func halfMax(wavelength, value []float64, peak int) (float64, float64) {
	n := len(value)
	threshold := value[peak] / 2

	lower := wavelength[0]
	for i := peak; i >= 1; i-- {
		if value[i-1] <= threshold && value[i] > threshold {
			lower = crossing(wavelength[i-1], wavelength[i], value[i-1], value[i], threshold)
			break
		}
	}

	upper := wavelength[n-1]
	for i := peak; i < n-1; i++ {
		if value[i+1] <= threshold && value[i] > threshold {
			upper = crossing(wavelength[i], wavelength[i+1], value[i], value[i+1], threshold)
			break
		}
	}
	return lower, upper
}

// crossing interpolates the wavelength where the curve passes threshold.
func crossing(x0, x1, y0, y1, threshold float64) float64 {
	denom := y1 - y0
	if denom == 0 {
		return (x0 + x1) / 2
	}
	return x0 + (threshold-y0)/denom*(x1-x0)
}
