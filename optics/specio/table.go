package specio

import (
	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/units"
)

// Table is the common output of every loader.
type Table struct {
	Header     map[string]string
	Wavelength []float64
	Unit       units.Length
	Values     []float64
}

// Curve converts t into a curve. The table header becomes the curve's
// metadata, overlaid by extra.
func (t Table) Curve(extra curve.Metadata, opts ...curve.Option) (*curve.Curve, error) {
	meta := curve.Metadata(t.Header).Merge(extra)
	all := append([]curve.Option{
		curve.WithWavelengthUnit(t.Unit),
	}, opts...)
	all = append(all, curve.WithMetadata(meta))
	return curve.New(t.Wavelength, t.Values, all...)
}

// ascending reverses wavelength and values in place when the wavelength
// axis is in descending order.
func (t *Table) ascending() {
	n := len(t.Wavelength)
	if n < 2 || t.Wavelength[0] < t.Wavelength[n-1] {
		return
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		t.Wavelength[i], t.Wavelength[j] = t.Wavelength[j], t.Wavelength[i]
		t.Values[i], t.Values[j] = t.Values[j], t.Values[i]
	}
}
