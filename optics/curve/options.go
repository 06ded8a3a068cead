package curve

import "github.com/cwbudde/algo-etc/optics/units"

// Policy selects how a curve answers queries outside its native domain.
type Policy int

const (
	// PolicyStrict fails with [ErrDomain].
	PolicyStrict Policy = iota
	// PolicyZero returns 0, modelling an element opaque outside its range.
	PolicyZero
)

// String returns the policy name.
func (p Policy) String() string {
	if p == PolicyZero {
		return "zero"
	}
	return "strict"
}

// Config defines how raw samples become a curve.
type Config struct {
	KeepNegative   bool
	Metadata       Metadata
	WavelengthUnit units.Length
	ValueUnit      units.Value
	OutOfDomain    Policy
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig clamps negatives and reads nanometers and fractions.
func DefaultConfig() Config {
	return Config{
		WavelengthUnit: units.Nanometer,
		ValueUnit:      units.Fraction,
		OutOfDomain:    PolicyStrict,
	}
}

// WithKeepNegative keeps negative samples instead of clamping them to zero.
// Reflectivity tables use it; transmission and QE tables do not.
func WithKeepNegative(keep bool) Option {
	return func(cfg *Config) {
		cfg.KeepNegative = keep
	}
}

// WithMetadata attaches provenance entries. The map is copied.
func WithMetadata(meta Metadata) Option {
	return func(cfg *Config) {
		cfg.Metadata = meta.Clone()
	}
}

// WithWavelengthUnit declares the unit of the wavelength samples.
func WithWavelengthUnit(unit units.Length) Option {
	return func(cfg *Config) {
		cfg.WavelengthUnit = unit
	}
}

// WithValueUnit declares the scale of the value samples.
func WithValueUnit(unit units.Value) Option {
	return func(cfg *Config) {
		cfg.ValueUnit = unit
	}
}

// WithOutOfDomain sets the out-of-domain evaluation policy.
func WithOutOfDomain(p Policy) Option {
	return func(cfg *Config) {
		cfg.OutOfDomain = p
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
