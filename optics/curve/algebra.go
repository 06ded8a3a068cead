package curve

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Multiply returns the pointwise product of c and other.
//
// The result is defined on the intersection of both domains and sampled on
// the union of both grids inside it. Disjoint domains fail with [ErrDomain].
// Evaluating the result between samples multiplies the operands' values at
// that wavelength.
func (c *Curve) Multiply(other *Curve) (*Curve, error) {
	grid, a, b, err := align(c, other)
	if err != nil {
		return nil, err
	}

	vals := make([]float64, len(grid))
	vecmath.MulBlock(vals, a, b)

	out := combine(c, other, "*", grid, vals)
	out.eval = func(x float64) float64 {
		return c.interpolate(x) * other.interpolate(x)
	}
	return out, nil
}

// Divide returns the pointwise ratio c / other on the shared grid.
// A zero divisor sample fails with [ErrDivisionByZero].
func (c *Curve) Divide(other *Curve) (*Curve, error) {
	grid, a, b, err := align(c, other)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(grid))
	for i := range out {
		if b[i] == 0 {
			return nil, fmt.Errorf("%w: divisor is zero at %g nm", ErrDivisionByZero, grid[i])
		}
		out[i] = a[i] / b[i]
	}

	q := combine(c, other, "/", grid, out)
	q.eval = func(x float64) float64 {
		if d := other.interpolate(x); d != 0 {
			return c.interpolate(x) / d
		}
		return q.sampled(x)
	}
	return q, nil
}

// Scale multiplies every value by k on the unchanged grid. Curves that clamp
// negatives stay clamped, so a negative k yields zeros for them.
func (c *Curve) Scale(k float64) *Curve {
	out := make([]float64, len(c.value))
	vecmath.ScaleBlock(out, c.value, k)
	if !c.keepNegative {
		clampNegative(out)
	}

	meta := c.meta.Clone()
	meta[MetaExpr] = fmt.Sprintf("(%s * %g)", exprOf(c), k)

	return &Curve{
		wavelength:   c.wavelength,
		value:        out,
		keepNegative: c.keepNegative,
		policy:       c.policy,
		meta:         meta,
	}
}

// DivideScalar divides every value by k.
func (c *Curve) DivideScalar(k float64) (*Curve, error) {
	if k == 0 {
		return nil, fmt.Errorf("%w: scalar divisor", ErrDivisionByZero)
	}
	return c.Scale(1 / k), nil
}

// Product multiplies curves left to right.
func Product(curves ...*Curve) (*Curve, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("%w: empty product", ErrShape)
	}

	acc := curves[0]
	if acc == nil {
		return nil, fmt.Errorf("%w: nil operand 0", ErrShape)
	}
	for i, next := range curves[1:] {
		var err error
		acc, err = acc.Multiply(next)
		if err != nil {
			return nil, fmt.Errorf("product operand %d: %w", i+1, err)
		}
	}
	return acc, nil
}

// align builds the shared grid and samples both curves on it.
func align(a, b *Curve) (grid, av, bv []float64, err error) {
	if a == nil || b == nil {
		return nil, nil, nil, fmt.Errorf("%w: nil operand", ErrShape)
	}

	aLo, aHi := a.Domain()
	bLo, bHi := b.Domain()
	lo := max(aLo, bLo)
	hi := min(aHi, bHi)
	if lo > hi {
		return nil, nil, nil, fmt.Errorf("%w: [%g, %g] and [%g, %g] nm do not overlap", ErrDomain, aLo, aHi, bLo, bHi)
	}

	grid = unionGrid(a.wavelength, b.wavelength, lo, hi)
	av = make([]float64, len(grid))
	bv = make([]float64, len(grid))
	for i, x := range grid {
		av[i] = a.interpolate(x)
		bv[i] = b.interpolate(x)
	}
	return grid, av, bv, nil
}

// unionGrid merges two increasing grids, keeping points in [lo, hi] once.
func unionGrid(a, b []float64, lo, hi float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	push := func(x float64) {
		if x < lo || x > hi {
			return
		}
		if n := len(out); n > 0 && out[n-1] == x {
			return
		}
		out = append(out, x)
	}

	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && a[i] <= b[j]):
			push(a[i])
			i++
		default:
			push(b[j])
			j++
		}
	}
	return out
}

func combine(a, b *Curve, op string, grid, vals []float64) *Curve {
	policy := PolicyZero
	if a.policy == PolicyStrict || b.policy == PolicyStrict {
		policy = PolicyStrict
	}
	return &Curve{
		wavelength:   grid,
		value:        vals,
		keepNegative: a.keepNegative || b.keepNegative,
		policy:       policy,
		meta:         Metadata{MetaExpr: fmt.Sprintf("(%s %s %s)", exprOf(a), op, exprOf(b))},
	}
}

func exprOf(c *Curve) string {
	if e := c.meta[MetaExpr]; e != "" {
		return e
	}
	if f := c.meta[MetaFilename]; f != "" {
		return f
	}
	return "curve"
}
