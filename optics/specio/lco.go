package specio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/algo-etc/optics/units"
)

// LCO Imaging Lab v1 layout. Rows before lcoDataStart are keyword rows
// (keyword, value, comment); the first of them names the dialect and its
// cells double as column labels for the data rows.
const (
	lcoDataStart     = 64
	lcoWavelengthCol = "ILDIALCT"
	lcoMeasuredCol   = "ilab_v1"
)

// ReadLCOCSV reads an LCO Imaging Lab v1 filter transmission CSV.
//
// The vendor column labels are renamed to the canonical pair: the
// ILDIALCT column is the wavelength in nanometers, the ilab_v1 column is
// the measured transmission. The filtered-transmission column is ignored.
func ReadLCOCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: lco csv: %v", ErrFormatDialect, err)
	}
	if len(records) <= lcoDataStart {
		return Table{}, fmt.Errorf("%w: lco csv has %d rows, data starts at row %d", ErrFormatDialect, len(records), lcoDataStart)
	}

	names := records[0]
	wCol := indexOf(names, lcoWavelengthCol)
	vCol := indexOf(names, lcoMeasuredCol)
	if wCol < 0 || vCol < 0 {
		return Table{}, fmt.Errorf("%w: lco csv header %q lacks %q/%q", ErrFormatDialect, names, lcoWavelengthCol, lcoMeasuredCol)
	}

	t := Table{Header: map[string]string{}, Unit: units.Nanometer}
	for _, rec := range records[1:lcoDataStart] {
		if len(rec) >= 2 && rec[0] != "" {
			t.Header[rec[0]] = rec[1]
		}
	}

	for i, rec := range records[lcoDataStart:] {
		row := i + lcoDataStart + 1
		if len(rec) <= max(wCol, vCol) {
			return Table{}, fmt.Errorf("%w: lco csv row %d has %d cells", ErrFormatDialect, row, len(rec))
		}
		w, v, err := parsePair(strings.TrimSpace(rec[wCol]), strings.TrimSpace(rec[vCol]))
		if err != nil {
			return Table{}, fmt.Errorf("%w: lco csv row %d: %v", ErrFormatDialect, row, err)
		}
		t.Wavelength = append(t.Wavelength, w)
		t.Values = append(t.Values, v)
	}

	t.ascending()
	return t, nil
}

func indexOf(names []string, want string) int {
	for i, n := range names {
		if strings.TrimSpace(n) == want {
			return i
		}
	}
	return -1
}
