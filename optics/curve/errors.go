package curve

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrShape reports malformed construction input.
	ErrShape = errors.New("curve: malformed samples")
	// ErrDomain reports a wavelength outside a curve's native domain, or
	// operands whose domains do not overlap.
	ErrDomain = errors.New("curve: wavelength outside native domain")
	// ErrDivisionByZero reports a zero divisor sample.
	ErrDivisionByZero = errors.New("curve: division by zero")
)

func validateShape(wavelength, value []float64) error {
	if len(wavelength) != len(value) {
		return fmt.Errorf("%w: %d wavelengths, %d values", ErrShape, len(wavelength), len(value))
	}
	if len(wavelength) == 0 {
		return fmt.Errorf("%w: no samples", ErrShape)
	}
	if err := validateGrid(wavelength); err != nil {
		return err
	}
	for i, v := range value {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value %v at index %d", ErrShape, v, i)
		}
	}
	return nil
}

func validateGrid(grid []float64) error {
	if len(grid) == 0 {
		return fmt.Errorf("%w: empty wavelength grid", ErrShape)
	}
	for i, w := range grid {
		if !(w > 0) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: wavelength %v at index %d must be positive and finite", ErrShape, w, i)
		}
		if i > 0 && w <= grid[i-1] {
			return fmt.Errorf("%w: wavelength not strictly increasing at index %d (%v after %v)", ErrShape, i, w, grid[i-1])
		}
	}
	return nil
}
