package model

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/specio"
	"github.com/cwbudde/algo-etc/optics/units"
)

// DefaultMirrorReflectivity approximates bare aluminium averaged over
// 300-1200 nm.
const DefaultMirrorReflectivity = 0.91

// TelescopeConfig describes a telescope's collecting optics.
type TelescopeConfig struct {
	Name       string
	Size       float64 // primary diameter, m
	Area       float64 // collecting area, m^2
	NumMirrors int

	// Reflectivity of a single mirror. Files are two-column ASCII tables
	// in nanometers and percent.
	Reflectivity Input
}

// DefaultTelescopeConfig returns a two-mirror telescope with aluminium
// coatings.
func DefaultTelescopeConfig() TelescopeConfig {
	return TelescopeConfig{
		NumMirrors:   2,
		Reflectivity: Scalar(DefaultMirrorReflectivity),
	}
}

// Telescope owns the combined reflectivity of its identical mirrors.
type Telescope struct {
	name         string
	size         float64
	area         float64
	numMirrors   int
	mirror       *curve.Curve
	reflectivity *curve.Curve
}

// NewTelescope builds the mirror reflectivity and multiplies it by itself
// once per additional mirror.
func NewTelescope(cfg TelescopeConfig, opts ...Option) (*Telescope, error) {
	o := ApplyOptions(opts...)
	name := undefined(cfg.Name)
	if err := validateCount("num_mirrors", cfg.NumMirrors, 1); err != nil {
		return nil, fmt.Errorf("telescope %s: %w", name, err)
	}

	mirror, err := mirrorReflectivity(cfg.Reflectivity.Or(Scalar(DefaultMirrorReflectivity)), o.Locator)
	if err != nil {
		return nil, fmt.Errorf("telescope %s: reflectivity: %w", name, err)
	}

	train := make([]*curve.Curve, cfg.NumMirrors)
	for i := range train {
		train[i] = mirror
	}
	refl, err := curve.Product(train...)
	if err != nil {
		return nil, fmt.Errorf("telescope %s: %w", name, err)
	}
	o.Logger.V(1).Info("built telescope reflectivity", "telescope", name, "mirrors", cfg.NumMirrors)

	return &Telescope{
		name:         name,
		size:         cfg.Size,
		area:         cfg.Area,
		numMirrors:   cfg.NumMirrors,
		mirror:       mirror,
		reflectivity: refl,
	}, nil
}

func mirrorReflectivity(in Input, l specio.Locator) (*curve.Curve, error) {
	if v, ok := in.Scalar(); ok {
		if err := validateEfficiency("reflectivity", v); err != nil {
			return nil, err
		}
		return flatCurve(v, curve.Metadata{curve.MetaDescription: "mirror reflectivity"}, curve.WithKeepNegative(true))
	}

	ref, _ := in.Path()
	t, _, err := readTable(l, ref, func(r io.Reader) (specio.Table, error) {
		return specio.ReadASCII(r, units.Nanometer)
	})
	if err != nil {
		return nil, err
	}
	return t.Curve(curve.Metadata{curve.MetaFilename: ref},
		curve.WithValueUnit(units.Percent),
		curve.WithKeepNegative(true),
	)
}

// Name returns the telescope name.
func (t *Telescope) Name() string { return t.name }

// Size returns the primary mirror diameter in meters.
func (t *Telescope) Size() float64 { return t.size }

// Area returns the collecting area in square meters.
func (t *Telescope) Area() float64 { return t.area }

// NumMirrors returns the number of reflections.
func (t *Telescope) NumMirrors() int { return t.numMirrors }

// Mirror returns the single-mirror reflectivity.
func (t *Telescope) Mirror() *curve.Curve { return t.mirror }

// Throughput returns the combined reflectivity of all mirrors.
func (t *Telescope) Throughput() (*curve.Curve, error) { return t.reflectivity, nil }

// PeakThroughput returns the peak combined reflectivity over wavelengths,
// or over the native grid when none are given.
func (t *Telescope) PeakThroughput(wavelengths ...float64) (float64, error) {
	return t.reflectivity.Peak(wavelengths...)
}

func (t *Telescope) String() string {
	return fmt.Sprintf("%s (M1: %g m diameter, %g m2 area; %d mirrors)", t.name, t.size, t.area, t.numMirrors)
}
