package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-etc/internal/testutil"
	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/filter"
	"github.com/cwbudde/algo-etc/optics/model"
)

func TestReadDiscriminatesScalarsFromFiles(t *testing.T) {
	in := `
[site]
transmission = 1
[telescope]
reflectivity = "$ETC_DATA/al.dat"
[instrument]
ccd = 0.75
`
	o, err := Read(strings.NewReader(in), "toml")
	require.NoError(t, err)

	site, err := o.SiteConfig()
	require.NoError(t, err)
	v, ok := site.Transmission.Scalar()
	require.True(t, ok)
	require.Equal(t, 1.0, v)

	tel, err := o.TelescopeConfig()
	require.NoError(t, err)
	p, ok := tel.Reflectivity.Path()
	require.True(t, ok)
	require.Equal(t, "$ETC_DATA/al.dat", p)
	require.Equal(t, 2, tel.NumMirrors)

	inst, err := o.InstrumentConfig()
	require.NoError(t, err)
	qe, ok := inst.Detector.Scalar()
	require.True(t, ok)
	require.Equal(t, 0.75, qe)
}

func TestReadAppliesModelDefaults(t *testing.T) {
	o, err := Read(strings.NewReader("[instrument]\nname = \"cam\"\ninst_type = \"echelle\"\n"), "toml")
	require.NoError(t, err)

	site, err := o.SiteConfig()
	require.NoError(t, err)
	require.False(t, site.Transmission.IsSet())

	tel, err := o.TelescopeConfig()
	require.NoError(t, err)
	require.Equal(t, model.DefaultTelescopeConfig(), tel)

	inst, err := o.InstrumentConfig()
	require.NoError(t, err)
	want := model.DefaultInstrumentConfig()
	want.Name = "cam"
	require.Equal(t, want, inst)
}

func TestReadRejectsWrongValueType(t *testing.T) {
	_, err := Read(strings.NewReader("[telescope]\nreflectivity = true\n"), "toml")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestEnvironmentOverridesFileKeys(t *testing.T) {
	t.Setenv("ETC_TELESCOPE_NUM_MIRRORS", "3")
	o, err := Read(strings.NewReader("[telescope]\nnum_mirrors = 2\n"), "toml")
	require.NoError(t, err)

	tel, err := o.TelescopeConfig()
	require.NoError(t, err)
	require.Equal(t, 3, tel.NumMirrors)
}

func TestLoadAndBuild(t *testing.T) {
	path := filepath.Join("testdata", "observatory.toml")
	o, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "testdata", o.Dir())

	reg := prometheus.NewRegistry()
	m, err := filter.NewMetrics(reg)
	require.NoError(t, err)

	sys, err := o.Build(context.Background(), WithLogger(testr.New(t)), WithMetrics(m))
	require.NoError(t, err)
	require.Equal(t, "Siding Spring", sys.Site.Name())
	require.Equal(t, []string{"V", "gp"}, sys.Instrument.Filters())
	require.True(t, sys.Instrument.Detector().Rescaled())
	testutil.RequireNearlyEqual(t, sys.Instrument.InternalTransmission(), 0.99*0.99*0.95*0.95, 1e-12)

	total, err := sys.Throughput("V")
	require.NoError(t, err)
	v, err := total.Evaluate(550)
	require.NoError(t, err)
	want := 0.85 * 0.81 * 0.9 * (0.99 * 0.99 * 0.95 * 0.95) * 0.75
	testutil.RequireNearlyEqual(t, v, want, 1e-9)

	g, err := sys.Instrument.Filter("gp")
	require.NoError(t, err)
	require.Equal(t, "g", g.Meta()[curve.MetaExpr])
	require.Equal(t, 2.0, promtest.ToFloat64(m.Resolutions.WithLabelValues("ascii", "ok")))
}

func TestBuildWithInjectedResolver(t *testing.T) {
	o, err := Read(strings.NewReader("[instrument]\nfilterlist = [\"R\"]\n"), "toml")
	require.NoError(t, err)

	cat, err := filter.NewCatalog(filter.Entry{Token: "R", Resource: "r.dat"})
	require.NoError(t, err)
	r, err := filter.NewResolver(cat)
	require.NoError(t, err)

	_, err = o.Build(context.Background(), WithResolver(r))
	require.Error(t, err, "r.dat does not exist")

	_, err = o.Build(context.Background(), WithResolver(stubResolver{}))
	require.NoError(t, err)
}

type stubResolver struct{}

func (stubResolver) Resolve(context.Context, string) (*curve.Curve, error) {
	return curve.Flat(0.5, curve.Grid(500, 700, 100))
}

func TestServiceFromEnv(t *testing.T) {
	s, err := ServiceFromEnv()
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, s.SVOTimeout)
	require.EqualValues(t, 2, s.SVORetries)
	require.Equal(t, "info", s.LogLevel)

	t.Setenv("ETC_SVO_TIMEOUT", "3s")
	t.Setenv("ETC_SVO_RETRIES", "5")
	t.Setenv("ETC_DATA_DIRS", "/a:/b")
	s, err = ServiceFromEnv()
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, s.SVOTimeout)
	require.EqualValues(t, 5, s.SVORetries)
	require.Equal(t, []string{"/a", "/b"}, s.DataDirs)

	t.Setenv("ETC_SVO_RETRIES", "many")
	_, err = ServiceFromEnv()
	require.Error(t, err)
}

func TestExampleObservatory(t *testing.T) {
	o, err := Load(filepath.Join("..", "..", "configs", "lco_0m4_qhy600.toml"))
	require.NoError(t, err)

	inst, err := o.InstrumentConfig()
	require.NoError(t, err)
	require.Len(t, inst.Filters, 9)
	require.Equal(t, model.Imager, inst.Type)

	tel, err := o.TelescopeConfig()
	require.NoError(t, err)
	v, ok := tel.Reflectivity.Scalar()
	require.True(t, ok)
	require.Equal(t, model.DefaultMirrorReflectivity, v)

	r, err := o.Resolver()
	require.NoError(t, err)
	require.Equal(t, filter.SVOCatalog().Tokens(), r.Catalog().Tokens())
}
