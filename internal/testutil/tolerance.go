package testutil

import (
	"math"
	"testing"
)

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual(t testing.TB, got, want, eps float64) {
	t.Helper()
	if diff := math.Abs(got - want); !(diff <= eps) {
		t.Fatalf("got %v, want %v (|diff| %v > %v)", got, want, diff, eps)
	}
}

// RequireSliceNearlyEqual fails t if the slices differ in length or if the
// worst element pair differs by more than eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	i, diff := worst(got, want)
	if i >= 0 && !(diff <= eps) {
		t.Fatalf("sample %d of %d: got %v, want %v (|diff| %v > %v)", i, len(got), got[i], want[i], diff, eps)
	}
}

// RequireWithin fails t if any sample lies outside [lo, hi], or is NaN.
func RequireWithin(t testing.TB, data []float64, lo, hi float64) {
	t.Helper()
	for i, v := range data {
		if !(v >= lo && v <= hi) {
			t.Fatalf("sample %d: %v outside [%v, %v]", i, v, lo, hi)
		}
	}
}

// worst returns the index and size of the largest absolute difference,
// or -1 for empty input. NaN differences win.
func worst(a, b []float64) (int, float64) {
	idx, maxDiff := -1, -1.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			return i, d
		}
		if d > maxDiff {
			idx, maxDiff = i, d
		}
	}
	return idx, maxDiff
}
