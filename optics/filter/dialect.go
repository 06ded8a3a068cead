package filter

import (
	"context"
	"io"
	"strings"

	"github.com/cwbudde/algo-etc/optics/specio"
	"github.com/cwbudde/algo-etc/optics/units"
)

// Dialect recognizes a resource form and loads it into a table.
type Dialect struct {
	Name      string
	Recognize func(e Entry) bool
	Load      func(ctx context.Context, r *Resolver, e Entry) (specio.Table, error)
}

// DefaultDialects returns the built-in recognizers in precedence order.
// The ASCII dialect accepts anything and must stay last.
func DefaultDialects() []Dialect {
	return []Dialect{LCOILabDialect(), SVODialect(), ASCIIDialect()}
}

// LCOILabDialect reads LCO Imaging Lab CSV scans, recognized by "lco_" and
// ".csv" anywhere in the resource, ignoring case.
func LCOILabDialect() Dialect {
	return Dialect{
		Name: "lco-ilab",
		Recognize: func(e Entry) bool {
			res := strings.ToLower(e.Resource)
			return strings.Contains(res, "lco_") && strings.Contains(res, ".csv")
		},
		Load: func(_ context.Context, r *Resolver, e Entry) (specio.Table, error) {
			return r.readLocal(e.Resource, specio.ReadLCOCSV)
		},
	}
}

// SVODialect fetches profiles from the SVO Filter Profile Service. Any
// resource containing an http(s)://svo URL matches, ignoring case.
func SVODialect() Dialect {
	return Dialect{
		Name: "svo",
		Recognize: func(e Entry) bool {
			res := strings.ToLower(e.Resource)
			return strings.Contains(res, "http://svo") || strings.Contains(res, "https://svo")
		},
		Load: func(ctx context.Context, r *Resolver, e Entry) (specio.Table, error) {
			return r.remote.Fetch(ctx, e.Resource)
		},
	}
}

// ASCIIDialect reads two-column tables in nanometers.
func ASCIIDialect() Dialect {
	return Dialect{
		Name:      "ascii",
		Recognize: func(Entry) bool { return true },
		Load: func(_ context.Context, r *Resolver, e Entry) (specio.Table, error) {
			return r.readLocal(e.Resource, func(rd io.Reader) (specio.Table, error) {
				return specio.ReadASCII(rd, units.Nanometer)
			})
		},
	}
}
