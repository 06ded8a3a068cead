package specio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-etc/optics/units"
)

// NamedTable is a text table whose first non-comment row labels the
// columns.
type NamedTable struct {
	Header  map[string]string
	Columns []string
	data    map[string][]float64
}

// ReadNamedTable reads a labelled table. The labels are the first
// non-numeric row, or the last comment row ahead of the first data row, so
// "# lam trans" and "lam trans" are equivalent.
func ReadNamedTable(r io.Reader) (NamedTable, error) {
	nt := NamedTable{Header: map[string]string{}, data: map[string][]float64{}}

	var comments []string
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if isComment(text) {
			comments = append(comments, strings.TrimSpace(text[1:]))
			continue
		}

		fields := splitFields(text)
		if nt.Columns == nil {
			if !isNumeric(fields[0]) {
				nt.Columns = fields
				continue
			}
			if len(comments) == 0 {
				return NamedTable{}, fmt.Errorf("%w: line %d: data before column labels", ErrFormatDialect, line)
			}
			nt.Columns = splitFields(comments[len(comments)-1])
			comments = comments[:len(comments)-1]
		}

		if len(fields) != len(nt.Columns) {
			return NamedTable{}, fmt.Errorf("%w: line %d has %d cells, header has %d", ErrFormatDialect, line, len(fields), len(nt.Columns))
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return NamedTable{}, fmt.Errorf("%w: line %d column %q: %v", ErrFormatDialect, line, nt.Columns[i], err)
			}
			nt.data[nt.Columns[i]] = append(nt.data[nt.Columns[i]], v)
		}
	}
	if err := sc.Err(); err != nil {
		return NamedTable{}, fmt.Errorf("read named table: %w", err)
	}
	if nt.Columns == nil {
		return NamedTable{}, fmt.Errorf("%w: no column labels", ErrFormatDialect)
	}
	if len(comments) > 0 {
		nt.Header[headerComment] = strings.Join(comments, "\n")
	}
	return nt, nil
}

// Has reports whether every named column is present.
func (nt NamedTable) Has(cols ...string) bool {
	for _, c := range cols {
		if indexOf(nt.Columns, c) < 0 {
			return false
		}
	}
	return true
}

// Table extracts a wavelength/value pair of columns.
func (nt NamedTable) Table(waveCol, valueCol string, unit units.Length) (Table, error) {
	if !nt.Has(waveCol, valueCol) {
		return Table{}, fmt.Errorf("%w: columns %q/%q not in %q", ErrFormatDialect, waveCol, valueCol, nt.Columns)
	}
	if len(nt.data[waveCol]) == 0 {
		return Table{}, fmt.Errorf("%w: no data rows", ErrFormatDialect)
	}
	t := Table{
		Header:     make(map[string]string, len(nt.Header)),
		Wavelength: append([]float64(nil), nt.data[waveCol]...),
		Unit:       unit,
		Values:     append([]float64(nil), nt.data[valueCol]...),
	}
	for k, v := range nt.Header {
		t.Header[k] = v
	}
	t.ascending()
	return t, nil
}

// ColumnDialect names the columns and wavelength unit of one table layout.
type ColumnDialect struct {
	Name     string
	WaveCol  string
	ValueCol string
	Unit     units.Length
}

// Recognize reports whether nt carries this dialect's columns.
func (d ColumnDialect) Recognize(nt NamedTable) bool {
	return nt.Has(d.WaveCol, d.ValueCol)
}

// ReadDialects reads a labelled table and extracts the first dialect in
// order whose columns are present.
func ReadDialects(r io.Reader, dialects []ColumnDialect) (Table, ColumnDialect, error) {
	nt, err := ReadNamedTable(r)
	if err != nil {
		return Table{}, ColumnDialect{}, err
	}
	for _, d := range dialects {
		if d.Recognize(nt) {
			t, err := nt.Table(d.WaveCol, d.ValueCol, d.Unit)
			return t, d, err
		}
	}
	names := make([]string, len(dialects))
	for i, d := range dialects {
		names[i] = d.Name
	}
	return Table{}, ColumnDialect{}, fmt.Errorf("%w: columns %q match none of %q", ErrFormatDialect, nt.Columns, names)
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
