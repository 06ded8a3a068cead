package specio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-etc/optics/units"
)

var atmosphereDialects = []ColumnDialect{
	{Name: "skycalc", WaveCol: "lam", ValueCol: "trans", Unit: units.Nanometer},
	{Name: "eso-sm01", WaveCol: "lam", ValueCol: "flux", Unit: units.Micrometer},
}

func TestReadNamedTableCommentLabels(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "skycalc_nm.dat"))
	require.NoError(t, err)
	defer f.Close()

	nt, err := ReadNamedTable(f)
	require.NoError(t, err)
	require.Equal(t, []string{"lam", "trans"}, nt.Columns)
	require.True(t, nt.Has("lam", "trans"))
	require.False(t, nt.Has("flux"))
	require.Contains(t, nt.Header["comment"], "SkyCalc")
}

func TestReadDialectsPrimary(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "skycalc_nm.dat"))
	require.NoError(t, err)
	defer f.Close()

	tab, d, err := ReadDialects(f, atmosphereDialects)
	require.NoError(t, err)
	require.Equal(t, "skycalc", d.Name)
	require.Equal(t, units.Nanometer, tab.Unit)
	require.Equal(t, []float64{300, 400, 500, 1000}, tab.Wavelength)
}

func TestReadDialectsFallback(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "sm01_micron.dat"))
	require.NoError(t, err)
	defer f.Close()

	tab, d, err := ReadDialects(f, atmosphereDialects)
	require.NoError(t, err)
	require.Equal(t, "eso-sm01", d.Name)
	require.Equal(t, units.Micrometer, tab.Unit)
	require.Equal(t, []float64{0.25, 0.8, 0.9}, tab.Values)

	c, err := tab.Curve(nil)
	require.NoError(t, err)
	lo, hi := c.Domain()
	require.InDelta(t, 300, lo, 1e-9)
	require.InDelta(t, 1200, hi, 1e-9)
}

func TestReadDialectsNoMatch(t *testing.T) {
	_, _, err := ReadDialects(strings.NewReader("wave tau\n300 0.1\n"), atmosphereDialects)
	require.ErrorIs(t, err, ErrFormatDialect)
}

func TestReadNamedTableErrors(t *testing.T) {
	for name, in := range map[string]string{
		"no labels":   "300 0.1\n",
		"short row":   "lam trans\n300\n",
		"non numeric": "lam trans\n300 x\n",
		"empty":       "",
	} {
		_, err := ReadNamedTable(strings.NewReader(in))
		require.ErrorIs(t, err, ErrFormatDialect, name)
	}

	nt, err := ReadNamedTable(strings.NewReader("lam trans\n"))
	require.NoError(t, err)
	_, err = nt.Table("lam", "trans", units.Nanometer)
	require.ErrorIs(t, err, ErrFormatDialect)
}

func TestLocator(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "qe.dat"), []byte("400 0.5\n500 0.6\n"), 0o644))

	t.Setenv("ETC_TEST_DATA", dir)
	l := Locator{Dirs: []string{"$ETC_TEST_DATA"}}

	p, err := l.Resolve("qe.dat")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "qe.dat"), p)

	p, err = Locator{}.Resolve("$ETC_TEST_DATA/qe.dat")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "qe.dat"), p)

	rc, resolved, err := l.Open("qe.dat")
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, p, resolved)

	_, err = l.Resolve("missing.dat")
	require.ErrorIs(t, err, os.ErrNotExist)
}
