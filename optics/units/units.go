package units

import (
	"fmt"
	"strings"
)

// Length identifies the unit of a wavelength axis.
type Length int

const (
	// Nanometer is the canonical wavelength unit.
	Nanometer Length = iota
	// Angstrom is 0.1 nm; remote filter services report in Angstrom.
	Angstrom
	// Micrometer is 1000 nm; ESO sky-model tables use it.
	Micrometer
)

// String returns the conventional symbol for the unit.
func (l Length) String() string {
	switch l {
	case Nanometer:
		return "nm"
	case Angstrom:
		return "Angstrom"
	case Micrometer:
		return "um"
	default:
		return "unknown"
	}
}

// PerNanometer returns how many nanometers one unit of l spans.
func (l Length) PerNanometer() float64 {
	switch l {
	case Angstrom:
		return 0.1
	case Micrometer:
		return 1000
	default:
		return 1
	}
}

// ToNanometers returns a new slice with xs converted from l to nanometers.
func (l Length) ToNanometers(xs []float64) []float64 {
	out := make([]float64, len(xs))
	f := l.PerNanometer()
	for i, x := range xs {
		out[i] = x * f
	}
	return out
}

// ParseLength maps common spellings to a Length.
func ParseLength(s string) (Length, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nm", "nanometer", "nanometers", "":
		return Nanometer, nil
	case "a", "aa", "angstrom", "angstroms", "å":
		return Angstrom, nil
	case "um", "micron", "microns", "micrometer", "micrometers", "µm":
		return Micrometer, nil
	default:
		return Nanometer, fmt.Errorf("unknown length unit %q", s)
	}
}

// Value identifies the scale of dimensionless efficiency samples.
type Value int

const (
	// Fraction samples are ratios, nominally in [0,1].
	Fraction Value = iota
	// Percent samples are ratios times 100.
	Percent
)

// String returns the unit name.
func (v Value) String() string {
	if v == Percent {
		return "%"
	}
	return "fraction"
}

// Factor is the multiplier that converts samples in v to fractions.
func (v Value) Factor() float64 {
	if v == Percent {
		return 0.01
	}
	return 1
}
