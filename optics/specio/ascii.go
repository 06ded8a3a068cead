package specio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/cwbudde/algo-etc/optics/units"
)

const headerComment = "comment"

// ReadASCII reads a two- or three-column text table. Lines starting with
// '#' or ';' are comments and collected under the "comment" header key.
// Only the first two columns are used; a third (uncertainty) column is
// ignored.
func ReadASCII(r io.Reader, unit units.Length) (Table, error) {
	t := Table{Header: map[string]string{}, Unit: unit}

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
		if len(fields) < 2 {
			return Table{}, fmt.Errorf("%w: line %d has %d column(s), want at least 2", ErrFormatDialect, line, len(fields))
		}
		w, v, err := parsePair(fields[0], fields[1])
		if err != nil {
			return Table{}, fmt.Errorf("%w: line %d: %v", ErrFormatDialect, line, err)
		}
		t.Wavelength = append(t.Wavelength, w)
		t.Values = append(t.Values, v)
	}
	if err := sc.Err(); err != nil {
		return Table{}, fmt.Errorf("read ascii table: %w", err)
	}
	if len(t.Wavelength) == 0 {
		return Table{}, fmt.Errorf("%w: no data rows", ErrFormatDialect)
	}
	if len(comments) > 0 {
		t.Header[headerComment] = strings.Join(comments, "\n")
	}

	t.ascending()
	return t, nil
}

func isComment(line string) bool {
	return line[0] == '#' || line[0] == ';'
}

func splitFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func parsePair(ws, vs string) (float64, float64, error) {
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("wavelength %q: %w", ws, err)
	}
	v, err := strconv.ParseFloat(vs, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("value %q: %w", vs, err)
	}
	return w, v, nil
}
