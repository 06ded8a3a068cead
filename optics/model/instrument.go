package model

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/filter"
)

// InstrumentType classifies an instrument.
type InstrumentType string

const (
	Imager       InstrumentType = "IMAGER"
	Spectrograph InstrumentType = "SPECTROGRAPH"
)

// ParseInstrumentType is case-insensitive; unknown names are imagers.
func ParseInstrumentType(s string) InstrumentType {
	if InstrumentType(strings.ToUpper(s)) == Spectrograph {
		return Spectrograph
	}
	return Imager
}

// FilterResolver turns a filter token into its transmission curve.
// *filter.Resolver implements it.
type FilterResolver interface {
	Resolve(ctx context.Context, token string) (*curve.Curve, error)
}

// InstrumentConfig describes the optics behind the telescope focus.
type InstrumentConfig struct {
	Name string
	Type InstrumentType

	NumARCoatings      int
	NumLenses          int
	NumMirrors         int
	ARCoating          float64 // per-surface transmission
	LensTransmission   float64
	MirrorReflectivity float64

	// Filters are resolved once each, in order. Repeated tokens are
	// ignored.
	Filters []string

	// Detector quantum efficiency. Unset means [DefaultQE].
	Detector Input
}

// DefaultInstrumentConfig is a single-lens imager with two AR-coated
// surfaces and no mirrors.
func DefaultInstrumentConfig() InstrumentConfig {
	return InstrumentConfig{
		Type:               Imager,
		NumARCoatings:      2,
		NumLenses:          1,
		NumMirrors:         0,
		ARCoating:          0.99,
		LensTransmission:   0.9,
		MirrorReflectivity: 0.9925,
		Detector:           Scalar(DefaultQE),
	}
}

// Instrument owns its filter curves, a flat internal transmission and a
// detector.
type Instrument struct {
	name     string
	kind     InstrumentType
	cfg      InstrumentConfig
	internal float64

	transmission *curve.Curve
	detector     *Detector
	filters      map[string]*curve.Curve
	order        []string
}

// NewInstrument resolves every configured filter through resolver and
// loads the detector.
func NewInstrument(ctx context.Context, cfg InstrumentConfig, resolver FilterResolver, opts ...Option) (*Instrument, error) {
	o := ApplyOptions(opts...)
	name := undefined(cfg.Name)
	if err := validateInstrument(cfg); err != nil {
		return nil, fmt.Errorf("instrument %s: %w", name, err)
	}

	in := &Instrument{
		name:    name,
		kind:    ParseInstrumentType(string(cfg.Type)),
		cfg:     cfg,
		filters: make(map[string]*curve.Curve, len(cfg.Filters)),
	}
	in.internal = internalTransmission(cfg)

	var err error
	in.transmission, err = flatCurve(in.internal, curve.Metadata{
		curve.MetaDescription: "instrument internal transmission",
	}, curve.WithKeepNegative(true))
	if err != nil {
		return nil, fmt.Errorf("instrument %s: %w", name, err)
	}

	if len(cfg.Filters) > 0 && resolver == nil {
		return nil, fmt.Errorf("instrument %s: %w: filters configured without a resolver", name, ErrInvalidConfig)
	}
	for _, token := range cfg.Filters {
		if _, seen := in.filters[token]; seen {
			continue
		}
		c, err := resolver.Resolve(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("instrument %s: %w", name, err)
		}
		in.filters[token] = c
		in.order = append(in.order, token)
	}

	in.detector, err = NewDetector(name+" detector", cfg.Detector, opts...)
	if err != nil {
		return nil, fmt.Errorf("instrument %s: %w", name, err)
	}

	o.Logger.V(1).Info("built instrument", "instrument", name, "type", in.kind,
		"internal_transmission", in.internal, "filters", in.order)
	return in, nil
}

func validateInstrument(cfg InstrumentConfig) error {
	for _, c := range []struct {
		name string
		n    int
	}{
		{"num_ar_coatings", cfg.NumARCoatings},
		{"num_inst_lenses", cfg.NumLenses},
		{"num_inst_mirrors", cfg.NumMirrors},
	} {
		if err := validateCount(c.name, c.n, 0); err != nil {
			return err
		}
	}
	for _, e := range []struct {
		name string
		v    float64
	}{
		{"inst_ar_coating_refl", cfg.ARCoating},
		{"inst_lens_trans", cfg.LensTransmission},
		{"inst_mirror_refl", cfg.MirrorReflectivity},
	} {
		if err := validateEfficiency(e.name, e.v); err != nil {
			return err
		}
	}
	return nil
}

// internalTransmission treats each optical interface category as a run of
// identical elements: AR-coated surfaces, lenses and mirrors.
func internalTransmission(cfg InstrumentConfig) float64 {
	t := math.Pow(cfg.ARCoating, float64(cfg.NumARCoatings))
	t *= math.Pow(cfg.LensTransmission, float64(cfg.NumLenses))
	t *= math.Pow(cfg.MirrorReflectivity, float64(cfg.NumMirrors))
	return t
}

// Name returns the instrument name.
func (in *Instrument) Name() string { return in.name }

// Type returns the instrument type.
func (in *Instrument) Type() InstrumentType { return in.kind }

// InternalTransmission returns the wavelength-independent optical
// transmission.
func (in *Instrument) InternalTransmission() float64 { return in.internal }

// Throughput returns the internal transmission curve.
func (in *Instrument) Throughput() (*curve.Curve, error) { return in.transmission, nil }

// Detector returns the detector.
func (in *Instrument) Detector() *Detector { return in.detector }

// Filters returns the registered filter tokens in configuration order.
func (in *Instrument) Filters() []string {
	return append([]string(nil), in.order...)
}

// Filter returns the transmission of a registered filter.
func (in *Instrument) Filter(token string) (*curve.Curve, error) {
	c, ok := in.filters[token]
	if !ok {
		return nil, fmt.Errorf("instrument %s: %w: %q is not registered", in.name, filter.ErrUnknownFilter, token)
	}
	return c, nil
}

// TotalThroughput returns filter × internal transmission × detector QE
// for a registered filter.
func (in *Instrument) TotalThroughput(token string) (*curve.Curve, error) {
	f, err := in.Filter(token)
	if err != nil {
		return nil, err
	}
	qe, err := in.detector.Throughput()
	if err != nil {
		return nil, err
	}
	total, err := curve.Product(f, in.transmission, qe)
	if err != nil {
		return nil, fmt.Errorf("instrument %s: filter %s: %w", in.name, token, err)
	}
	return total, nil
}

func (in *Instrument) String() string {
	return fmt.Sprintf("%s (%s; internal transmission %.4g; %d filters)", in.name, in.kind, in.internal, len(in.order))
}
