package model

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/specio"
)

// Throughputer is anything with a throughput curve. *curve.Curve
// satisfies it, so raw curves and components compose alike.
type Throughputer interface {
	Throughput() (*curve.Curve, error)
}

// Component is a named optical subsystem.
type Component interface {
	Throughputer
	Name() string
}

// Multiply returns the product of a's and b's throughput as a new curve.
func Multiply(a, b Throughputer) (*curve.Curve, error) {
	ca, cb, err := operands(a, b)
	if err != nil {
		return nil, err
	}
	return ca.Multiply(cb)
}

// Divide returns a's throughput divided by b's as a new curve.
func Divide(a, b Throughputer) (*curve.Curve, error) {
	ca, cb, err := operands(a, b)
	if err != nil {
		return nil, err
	}
	return ca.Divide(cb)
}

func operands(a, b Throughputer) (*curve.Curve, *curve.Curve, error) {
	ca, err := throughputOf(a)
	if err != nil {
		return nil, nil, err
	}
	cb, err := throughputOf(b)
	if err != nil {
		return nil, nil, err
	}
	return ca, cb, nil
}

func throughputOf(t Throughputer) (*curve.Curve, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil operand", ErrMissingCurve)
	}
	c, err := t.Throughput()
	if err != nil {
		if n, ok := t.(Component); ok {
			return nil, fmt.Errorf("%s: %w", n.Name(), err)
		}
		return nil, err
	}
	return c, nil
}

// flatCurve spreads a scalar over the characterization grid.
func flatCurve(v float64, meta curve.Metadata, opts ...curve.Option) (*curve.Curve, error) {
	all := append([]curve.Option{curve.WithMetadata(meta)}, opts...)
	return curve.Flat(v, curve.CharacterizationGrid(), all...)
}

// readTable opens ref through the locator and decodes it with read.
func readTable(l specio.Locator, ref string, read func(io.Reader) (specio.Table, error)) (specio.Table, string, error) {
	rc, path, err := l.Open(ref)
	if err != nil {
		return specio.Table{}, "", err
	}
	defer rc.Close()

	t, err := read(rc)
	if err != nil {
		return specio.Table{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return t, path, nil
}

func undefined(name string) string {
	if name == "" {
		return "Undefined"
	}
	return name
}
