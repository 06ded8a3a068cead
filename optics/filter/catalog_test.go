package filter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	in := `filters:
  - token: V
    resource: bessell_v.dat
    description: Bessell V
  - token: z
    resource: LCO_zs_scan.csv
`
	c, err := LoadCatalog(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	require.Equal(t, []string{"V", "z"}, c.Tokens())

	e, ok := c.Lookup("V")
	require.True(t, ok)
	require.Equal(t, Entry{Token: "V", Resource: "bessell_v.dat", Description: "Bessell V"}, e)

	_, ok = c.Lookup("zp")
	require.False(t, ok, "aliases are a resolver concern")
}

func TestCatalogRejectsBadEntries(t *testing.T) {
	for name, entries := range map[string][]Entry{
		"duplicate":   {{Token: "V", Resource: "a"}, {Token: "V", Resource: "b"}},
		"no token":    {{Resource: "a"}},
		"no resource": {{Token: "V", Resource: "  "}},
	} {
		_, err := NewCatalog(entries...)
		require.ErrorIs(t, err, ErrInvalidCatalog, name)
	}

	_, err := LoadCatalog(strings.NewReader("filters:\n  - token: V\n    path: x\n"))
	require.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestCatalogTokensIsACopy(t *testing.T) {
	c, err := NewCatalog(Entry{Token: "V", Resource: "v.dat"})
	require.NoError(t, err)
	c.Tokens()[0] = "X"
	require.Equal(t, []string{"V"}, c.Tokens())
}

func TestLoadCatalogFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "filters.yaml")
	require.NoError(t, os.WriteFile(p, []byte("filters:\n  - token: g\n    resource: g.dat\n"), 0o644))

	c, err := LoadCatalogFile(p)
	require.NoError(t, err)
	require.Equal(t, []string{"g"}, c.Tokens())

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSVOCatalog(t *testing.T) {
	c := SVOCatalog()
	for _, tok := range []string{"U", "B", "V", "R", "I", "u", "g", "r", "i", "z"} {
		e, ok := c.Lookup(tok)
		require.True(t, ok, tok)
		require.True(t, SVODialect().Recognize(e), tok)
	}
}
