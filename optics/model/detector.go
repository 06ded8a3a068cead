package model

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/specio"
	"github.com/cwbudde/algo-etc/optics/units"
)

// DefaultQE is the detector quantum efficiency used when none is given.
const DefaultQE = 0.9

const percentNote = "Divided by 100.0 to convert from percentage"

// Detector owns a quantum-efficiency curve.
type Detector struct {
	name     string
	qe       *curve.Curve
	rescaled bool
}

// NewDetector builds a QE curve from a scalar or an ASCII table in
// nanometers.
//
// Tables carry no unit information, so a table whose mean exceeds 1 is
// taken to be in percent and divided by 100. This is a guess: the curve's
// metadata records it under [curve.MetaNotes] and [curve.MetaRescaled],
// and it is logged.
func NewDetector(name string, qe Input, opts ...Option) (*Detector, error) {
	o := ApplyOptions(opts...)
	d := &Detector{name: undefined(name)}
	qe = qe.Or(Scalar(DefaultQE))

	if v, ok := qe.Scalar(); ok {
		if err := validateEfficiency("qe", v); err != nil {
			return nil, fmt.Errorf("detector %s: %w", d.name, err)
		}
		c, err := flatCurve(v, curve.Metadata{curve.MetaDescription: "detector QE"})
		if err != nil {
			return nil, fmt.Errorf("detector %s: %w", d.name, err)
		}
		d.qe = c
		return d, nil
	}

	ref, _ := qe.Path()
	t, path, err := readTable(o.Locator, ref, func(r io.Reader) (specio.Table, error) {
		return specio.ReadASCII(r, units.Nanometer)
	})
	if err != nil {
		return nil, fmt.Errorf("detector %s: qe: %w", d.name, err)
	}
	c, err := t.Curve(curve.Metadata{curve.MetaFilename: ref})
	if err != nil {
		return nil, fmt.Errorf("detector %s: qe %s: %w", d.name, path, err)
	}

	if mean := rawMean(t.Values); mean > 1 {
		o.Logger.Info("detector QE looks like percent, rescaling",
			"warning", true, "detector", d.name, "file", path, "mean", mean)
		c = c.Scale(0.01).WithMeta(curve.Metadata{
			curve.MetaNotes:    percentNote,
			curve.MetaRescaled: "true",
		})
		d.rescaled = true
	}
	d.qe = c
	return d, nil
}

// Name returns the detector name.
func (d *Detector) Name() string { return d.name }

// Throughput returns the QE curve.
func (d *Detector) Throughput() (*curve.Curve, error) { return d.qe, nil }

// Rescaled reports whether the QE table was converted from percent.
func (d *Detector) Rescaled() bool { return d.rescaled }

// rawMean averages the table as read, before negatives are clamped.
func rawMean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
