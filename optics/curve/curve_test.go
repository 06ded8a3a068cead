package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-etc/internal/testutil"
	"github.com/cwbudde/algo-etc/optics/units"
)

func mustNew(t *testing.T, wl, v []float64, opts ...Option) *Curve {
	t.Helper()
	c, err := New(wl, v, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRejectsMalformedInput(t *testing.T) {
	for _, tc := range []struct {
		name string
		wl   []float64
		v    []float64
	}{
		{"length mismatch", []float64{1, 2}, []float64{1}},
		{"empty", nil, nil},
		{"not increasing", []float64{1, 3, 2}, []float64{1, 1, 1}},
		{"duplicate", []float64{1, 1}, []float64{1, 1}},
		{"non-positive", []float64{0, 1}, []float64{1, 1}},
		{"nan value", []float64{1, 2}, []float64{math.NaN(), 1}},
		{"inf wavelength", []float64{1, math.Inf(1)}, []float64{1, 1}},
	} {
		_, err := New(tc.wl, tc.v)
		if !errors.Is(err, ErrShape) {
			t.Fatalf("%s: got %v, want ErrShape", tc.name, err)
		}
	}
}

func TestNewClampsNegativeByDefault(t *testing.T) {
	c := mustNew(t, []float64{1, 2, 3}, []float64{-0.1, 0.5, -2})
	testutil.RequireSliceNearlyEqual(t, c.Values(), []float64{0, 0.5, 0}, 0)

	k := mustNew(t, []float64{1, 2, 3}, []float64{-0.1, 0.5, -2}, WithKeepNegative(true))
	testutil.RequireSliceNearlyEqual(t, k.Values(), []float64{-0.1, 0.5, -2}, 0)
}

func TestNewConvertsUnits(t *testing.T) {
	c := mustNew(t, []float64{5000, 6000}, []float64{50, 80},
		WithWavelengthUnit(units.Angstrom), WithValueUnit(units.Percent))
	testutil.RequireSliceNearlyEqual(t, c.Wavelength(), []float64{500, 600}, 1e-9)
	testutil.RequireSliceNearlyEqual(t, c.Values(), []float64{0.5, 0.8}, 1e-12)
}

func TestNewDoesNotAliasInput(t *testing.T) {
	wl := []float64{1, 2}
	v := []float64{0.5, 0.6}
	c := mustNew(t, wl, v)
	v[0] = 9
	wl[0] = 0.5
	if got, _ := c.Evaluate(1); got != 0.5 {
		t.Fatalf("curve changed with input: %v", got)
	}
}

func TestEvaluateInterpolatesLinearly(t *testing.T) {
	c := mustNew(t, []float64{400, 500, 600}, []float64{0.2, 0.6, 0.4})
	for _, tc := range []struct {
		x, want float64
	}{
		{400, 0.2},
		{450, 0.4},
		{500, 0.6},
		{575, 0.45},
		{600, 0.4},
	} {
		got, err := c.Evaluate(tc.x)
		if err != nil {
			t.Fatalf("x=%v: %v", tc.x, err)
		}
		testutil.RequireNearlyEqual(t, got, tc.want, 1e-12)
	}
}

func TestEvaluateOutsideDomain(t *testing.T) {
	c := mustNew(t, []float64{400, 600}, []float64{1, 1})
	if _, err := c.Evaluate(399); !errors.Is(err, ErrDomain) {
		t.Fatalf("strict: got %v, want ErrDomain", err)
	}
	if _, err := c.Evaluate(math.NaN()); !errors.Is(err, ErrDomain) {
		t.Fatalf("nan: got %v, want ErrDomain", err)
	}

	z := c.WithPolicy(PolicyZero)
	got, err := z.Evaluate(700)
	if err != nil || got != 0 {
		t.Fatalf("zero policy: got %v, %v", got, err)
	}
	if c.Policy() != PolicyStrict {
		t.Fatal("WithPolicy modified the receiver")
	}
}

func TestEvaluateAllStopsAtFirstDomainError(t *testing.T) {
	c := mustNew(t, []float64{400, 600}, []float64{0.1, 0.3})
	got, err := c.EvaluateAll([]float64{400, 500})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.1, 0.2}, 1e-12)

	if _, err := c.EvaluateAll([]float64{500, 601}); !errors.Is(err, ErrDomain) {
		t.Fatalf("got %v, want ErrDomain", err)
	}
}

func TestPeak(t *testing.T) {
	c := mustNew(t, []float64{400, 500, 600}, []float64{0.2, 0.9, 0.4})
	p, err := c.Peak()
	if err != nil || p != 0.9 {
		t.Fatalf("Peak() = %v, %v", p, err)
	}
	p, err = c.Peak(400, 600)
	if err != nil || p != 0.4 {
		t.Fatalf("Peak(400, 600) = %v, %v", p, err)
	}
	if _, err := c.Peak(700); !errors.Is(err, ErrDomain) {
		t.Fatalf("Peak(700) err = %v", err)
	}
}

func TestGridIsInclusive(t *testing.T) {
	g := CharacterizationGrid()
	if len(g) != 1201 {
		t.Fatalf("len = %d, want 1201", len(g))
	}
	if g[0] != 300 || g[len(g)-1] != 1500 {
		t.Fatalf("bounds = %v..%v", g[0], g[len(g)-1])
	}
	if Grid(10, 5, 1) != nil || Grid(0, 5, 0) != nil {
		t.Fatal("invalid grid should be nil")
	}
}

func TestFlat(t *testing.T) {
	c, err := Flat(0.91, CharacterizationGrid())
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := c.Domain()
	if lo != 300 || hi != 1500 {
		t.Fatalf("domain = %v..%v", lo, hi)
	}
	testutil.RequireNearlyEqual(t, c.Mean(), 0.91, 1e-12)

	if _, err := Flat(1, nil); !errors.Is(err, ErrShape) {
		t.Fatalf("empty grid: got %v", err)
	}
}

func TestResample(t *testing.T) {
	c := mustNew(t, []float64{400, 600}, []float64{0, 1}, WithMetadata(Metadata{MetaFilename: "x.dat"}))
	r, err := c.Resample([]float64{400, 450, 500})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, r.Values(), []float64{0, 0.25, 0.5}, 1e-12)
	if r.Meta()[MetaFilename] != "x.dat" {
		t.Fatalf("metadata lost: %v", r.Meta())
	}

	if _, err := c.Resample([]float64{500, 450}); !errors.Is(err, ErrShape) {
		t.Fatalf("unsorted grid: got %v", err)
	}
	if _, err := c.Resample([]float64{300, 400}); !errors.Is(err, ErrDomain) {
		t.Fatalf("outside grid: got %v", err)
	}
}

func TestMetaIsCopied(t *testing.T) {
	c := mustNew(t, []float64{1, 2}, []float64{1, 1}, WithMetadata(Metadata{MetaNotes: "a"}))
	m := c.Meta()
	m[MetaNotes] = "b"
	if c.Meta()[MetaNotes] != "a" {
		t.Fatal("Meta returned an aliased map")
	}

	d := c.WithMeta(Metadata{MetaDescription: "d"})
	if _, ok := c.Meta()[MetaDescription]; ok {
		t.Fatal("WithMeta modified the receiver")
	}
	if d.Meta()[MetaNotes] != "a" || d.Meta()[MetaDescription] != "d" {
		t.Fatalf("merged metadata = %v", d.Meta())
	}
}
