package testutil

import (
	"math"
	"testing"
)

func TestRamp(t *testing.T) {
	RequireSliceNearlyEqual(t, Ramp(300, 0.5, 3), []float64{300, 300.5, 301}, 0)
}

func TestGaussianBandHalfMaximum(t *testing.T) {
	got := GaussianBand([]float64{500, 525, 550}, 550, 50, 0.8)
	if math.Abs(got[2]-0.8) > 1e-12 {
		t.Fatalf("peak = %v, want 0.8", got[2])
	}
	if math.Abs(got[1]-0.4) > 1e-12 {
		t.Fatalf("half-width value = %v, want 0.4", got[1])
	}
	RequireFinite(t, got)
}

func TestLinear(t *testing.T) {
	RequireSliceNearlyEqual(t, Linear([]float64{0, 10}, 1, 0.5), []float64{1, 6}, 1e-15)
}
