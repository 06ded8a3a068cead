package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMissingCurve is returned when a component was configured without
	// the curve a caller asked for.
	ErrMissingCurve = errors.New("model: component has no curve")
	// ErrUnknownComponentToken reports a component name that a System does
	// not recognize.
	ErrUnknownComponentToken = errors.New("model: unknown component token")
	// ErrInvalidConfig reports an out-of-range model parameter.
	ErrInvalidConfig = errors.New("model: invalid configuration")
)

func validateCount(name string, n, minimum int) error {
	if n < minimum {
		return fmt.Errorf("%w: %s must be >= %d, got %d", ErrInvalidConfig, name, minimum, n)
	}
	return nil
}

func validateEfficiency(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a non-negative number, got %g", ErrInvalidConfig, name, v)
	}
	return nil
}
