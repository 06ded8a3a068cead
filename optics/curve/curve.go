package curve

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

// Characterization grid bounds in nanometers. Scalar efficiencies are
// expanded onto this grid.
const (
	CharacterizationStart = 300.0
	CharacterizationStop  = 1500.0
	CharacterizationStep  = 1.0
)

// Curve is an immutable wavelength-sampled efficiency function.
//
// The zero value is not usable; construct curves with [New] or [Flat].
type Curve struct {
	wavelength   []float64 // nm, strictly increasing
	value        []float64
	keepNegative bool
	policy       Policy
	meta         Metadata

	// eval replaces grid interpolation inside the domain. Composed curves
	// set it to evaluate their operands directly.
	eval func(x float64) float64
}

// New builds a curve from paired samples.
//
// Wavelengths are converted to nanometers and values to fractions according
// to the configured units. Unless [WithKeepNegative] is set, negative values
// are clamped to zero.
func New(wavelength, value []float64, opts ...Option) (*Curve, error) {
	if err := validateShape(wavelength, value); err != nil {
		return nil, err
	}

	cfg := ApplyOptions(opts...)

	wl := cfg.WavelengthUnit.ToNanometers(wavelength)
	vals := make([]float64, len(value))
	vecmath.ScaleBlock(vals, value, cfg.ValueUnit.Factor())

	if !cfg.KeepNegative {
		clampNegative(vals)
	}

	meta := cfg.Metadata
	if meta == nil {
		meta = Metadata{}
	}

	return &Curve{
		wavelength:   wl,
		value:        vals,
		keepNegative: cfg.KeepNegative,
		policy:       cfg.OutOfDomain,
		meta:         meta,
	}, nil
}

// Flat returns a curve with the same value at every grid point.
func Flat(value float64, grid []float64, opts ...Option) (*Curve, error) {
	vals := make([]float64, len(grid))
	for i := range vals {
		vals[i] = value
	}
	return New(grid, vals, opts...)
}

// Grid returns start, start+step, ... up to and including stop.
// It returns nil for a non-positive step or stop < start.
func Grid(start, stop, step float64) []float64 {
	if !(step > 0) || stop < start {
		return nil
	}

	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// CharacterizationGrid returns 300-1500 nm at 1 nm sampling.
func CharacterizationGrid() []float64 {
	return Grid(CharacterizationStart, CharacterizationStop, CharacterizationStep)
}

// Len returns the number of samples.
func (c *Curve) Len() int { return len(c.wavelength) }

// Domain returns the native wavelength range in nanometers.
func (c *Curve) Domain() (lo, hi float64) {
	return c.wavelength[0], c.wavelength[len(c.wavelength)-1]
}

// Contains reports whether x lies inside the native domain.
func (c *Curve) Contains(x float64) bool {
	lo, hi := c.Domain()
	return x >= lo && x <= hi
}

// Wavelength returns a copy of the wavelength samples in nanometers.
func (c *Curve) Wavelength() []float64 {
	return append([]float64(nil), c.wavelength...)
}

// Values returns a copy of the value samples.
func (c *Curve) Values() []float64 {
	return append([]float64(nil), c.value...)
}

// Meta returns a copy of the provenance metadata.
func (c *Curve) Meta() Metadata { return c.meta.Clone() }

// KeepNegative reports whether negative samples were preserved.
func (c *Curve) KeepNegative() bool { return c.keepNegative }

// Policy returns the out-of-domain policy.
func (c *Curve) Policy() Policy { return c.policy }

// Throughput returns c itself, so raw curves compose like optical
// components.
func (c *Curve) Throughput() (*Curve, error) { return c, nil }

// WithMeta returns a curve sharing c's samples with extra metadata merged in.
func (c *Curve) WithMeta(extra Metadata) *Curve {
	out := *c
	out.meta = c.meta.Merge(extra)
	return &out
}

// WithPolicy returns a curve sharing c's samples with a different
// out-of-domain policy.
func (c *Curve) WithPolicy(p Policy) *Curve {
	out := *c
	out.policy = p
	out.meta = c.meta.Clone()
	return &out
}

// Evaluate returns the linearly interpolated value at x nanometers.
func (c *Curve) Evaluate(x float64) (float64, error) {
	if math.IsNaN(x) || !c.Contains(x) {
		if c.policy == PolicyZero && !math.IsNaN(x) {
			return 0, nil
		}
		lo, hi := c.Domain()
		return 0, fmt.Errorf("%w: %g nm not in [%g, %g] nm", ErrDomain, x, lo, hi)
	}
	return c.interpolate(x), nil
}

// EvaluateAll evaluates the curve at every query wavelength.
func (c *Curve) EvaluateAll(xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		v, err := c.Evaluate(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Peak returns the maximum value over the given wavelengths, or over the
// native samples when none are given.
func (c *Curve) Peak(wavelengths ...float64) (float64, error) {
	samples := c.value
	if len(wavelengths) > 0 {
		var err error
		samples, err = c.EvaluateAll(wavelengths)
		if err != nil {
			return 0, err
		}
	}

	peak := math.Inf(-1)
	for _, v := range samples {
		if v > peak {
			peak = v
		}
	}
	return peak, nil
}

// Mean returns the arithmetic mean of the native samples.
func (c *Curve) Mean() float64 {
	sum := 0.0
	for _, v := range c.value {
		sum += v
	}
	return sum / float64(len(c.value))
}

// Resample evaluates c on grid and returns the result as a new curve.
// Every grid point must lie inside the domain unless the policy is
// [PolicyZero].
func (c *Curve) Resample(grid []float64) (*Curve, error) {
	if err := validateGrid(grid); err != nil {
		return nil, err
	}
	vals, err := c.EvaluateAll(grid)
	if err != nil {
		return nil, err
	}
	return &Curve{
		wavelength:   append([]float64(nil), grid...),
		value:        vals,
		keepNegative: c.keepNegative,
		policy:       c.policy,
		meta:         c.meta.Clone(),
	}, nil
}

// String summarizes the curve.
func (c *Curve) String() string {
	lo, hi := c.Domain()
	return fmt.Sprintf("Curve(n=%d, %g-%g nm)", c.Len(), lo, hi)
}

// interpolate assumes x is inside the domain.
func (c *Curve) interpolate(x float64) float64 {
	if c.eval != nil {
		return c.eval(x)
	}
	return c.sampled(x)
}

// sampled interpolates linearly between the stored samples.
func (c *Curve) sampled(x float64) float64 {
	i := sort.SearchFloat64s(c.wavelength, x)
	if i < len(c.wavelength) && c.wavelength[i] == x {
		return c.value[i]
	}

	x0, x1 := c.wavelength[i-1], c.wavelength[i]
	frac := (x - x0) / (x1 - x0)
	return c.value[i-1] + frac*(c.value[i]-c.value[i-1])
}

func clampNegative(vals []float64) {
	for i, v := range vals {
		if v < 0 {
			vals[i] = 0
		}
	}
}
