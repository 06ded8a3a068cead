package filter

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed svo_catalog.yaml
var svoCatalog []byte

// Entry maps a canonical filter token to the resource holding its profile.
type Entry struct {
	Token       string `yaml:"token"`
	Resource    string `yaml:"resource"`
	Description string `yaml:"description"`
}

// Catalog is an immutable, insertion-ordered set of entries.
type Catalog struct {
	entries map[string]Entry
	order   []string
}

type catalogFile struct {
	Filters []Entry `yaml:"filters"`
}

// NewCatalog validates entries and builds a catalog. Tokens must be unique
// and every entry needs a resource.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for i, e := range entries {
		e.Token = strings.TrimSpace(e.Token)
		e.Resource = strings.TrimSpace(e.Resource)
		if e.Token == "" {
			return nil, fmt.Errorf("%w: entry %d has no token", ErrInvalidCatalog, i)
		}
		if e.Resource == "" {
			return nil, fmt.Errorf("%w: filter %q has no resource", ErrInvalidCatalog, e.Token)
		}
		if _, dup := c.entries[e.Token]; dup {
			return nil, fmt.Errorf("%w: duplicate filter %q", ErrInvalidCatalog, e.Token)
		}
		c.entries[e.Token] = e
		c.order = append(c.order, e.Token)
	}
	return c, nil
}

// LoadCatalog reads a YAML catalog of the form
//
//	filters:
//	  - token: V
//	    resource: bessell_v.dat
//	    description: Bessell V
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	return NewCatalog(f.Filters...)
}

// LoadCatalogFile reads a YAML catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// SVOCatalog returns the built-in catalog of Bessell UBVRI and SDSS ugriz
// profiles from the SVO Filter Profile Service.
func SVOCatalog() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(svoCatalog))
	if err != nil {
		panic(fmt.Sprintf("filter: embedded catalog: %v", err))
	}
	return c
}

// Lookup returns the entry for an exact token.
func (c *Catalog) Lookup(token string) (Entry, bool) {
	e, ok := c.entries[token]
	return e, ok
}

// Tokens returns the tokens in insertion order.
func (c *Catalog) Tokens() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.order) }
