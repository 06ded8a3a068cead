package model

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/specio"
	"github.com/cwbudde/algo-etc/optics/units"
)

// AtmosphereDialects are the column layouts accepted for site
// transmission tables, in order: SkyCalc style (lam, trans) in nanometers,
// then ESO SM-01 (lam, flux) in micrometers.
var AtmosphereDialects = []specio.ColumnDialect{
	{Name: "skycalc", WaveCol: "lam", ValueCol: "trans", Unit: units.Nanometer},
	{Name: "eso-sm01", WaveCol: "lam", ValueCol: "flux", Unit: units.Micrometer},
}

// SiteConfig describes an observing site.
type SiteConfig struct {
	Name      string
	Altitude  float64 // m
	Latitude  float64 // deg
	Longitude float64 // deg

	// Transmission of the atmosphere above the site. Unset means the site
	// is transparent.
	Transmission Input
}

// Site is an observatory location and the atmosphere above it.
type Site struct {
	name         string
	altitude     float64
	latitude     float64
	longitude    float64
	transmission *curve.Curve
}

// NewSite builds a site, loading its transmission table when one is given.
func NewSite(cfg SiteConfig, opts ...Option) (*Site, error) {
	o := ApplyOptions(opts...)
	s := &Site{
		name:      undefined(cfg.Name),
		altitude:  cfg.Altitude,
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
	}

	var err error
	s.transmission, err = siteTransmission(cfg.Transmission, o.Locator, o.Logger)
	if err != nil {
		return nil, fmt.Errorf("site %s: transmission: %w", s.name, err)
	}
	return s, nil
}

func siteTransmission(in Input, l specio.Locator, log logr.Logger) (*curve.Curve, error) {
	if v, ok := in.Scalar(); ok {
		if err := validateEfficiency("transmission", v); err != nil {
			return nil, err
		}
		return flatCurve(v, curve.Metadata{curve.MetaDescription: "atmospheric transmission"})
	}
	ref, ok := in.Path()
	if !ok {
		return nil, nil
	}

	var dialect specio.ColumnDialect
	t, path, err := readTable(l, ref, func(r io.Reader) (specio.Table, error) {
		t, d, err := specio.ReadDialects(r, AtmosphereDialects)
		dialect = d
		return t, err
	})
	if err != nil {
		return nil, err
	}
	log.V(1).Info("read atmospheric transmission", "file", path, "dialect", dialect.Name)
	return t.Curve(curve.Metadata{curve.MetaFilename: ref})
}

// Name returns the site name.
func (s *Site) Name() string { return s.name }

// Altitude returns the altitude in meters.
func (s *Site) Altitude() float64 { return s.altitude }

// Latitude returns the latitude in degrees.
func (s *Site) Latitude() float64 { return s.latitude }

// Longitude returns the longitude in degrees.
func (s *Site) Longitude() float64 { return s.longitude }

// HasTransmission reports whether an atmosphere was configured.
func (s *Site) HasTransmission() bool { return s.transmission != nil }

// Throughput returns the atmospheric transmission, or [ErrMissingCurve]
// for a transparent site.
func (s *Site) Throughput() (*curve.Curve, error) {
	if s.transmission == nil {
		return nil, fmt.Errorf("site %s: %w", s.name, ErrMissingCurve)
	}
	return s.transmission, nil
}

func (s *Site) String() string {
	return fmt.Sprintf("%s: lon=%g, lat=%g, altitude=%g m", s.name, s.longitude, s.latitude, s.altitude)
}
