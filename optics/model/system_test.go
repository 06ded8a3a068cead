package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-etc/internal/testutil"
	"github.com/cwbudde/algo-etc/optics/filter"
)

func newSystem(t *testing.T, site SiteConfig) *System {
	t.Helper()
	s, err := NewSite(site)
	require.NoError(t, err)
	tel, err := NewTelescope(TelescopeConfig{Name: "0.4m", NumMirrors: 2, Reflectivity: Scalar(0.9)})
	require.NoError(t, err)
	cfg := DefaultInstrumentConfig()
	cfg.Filters = []string{"V", "B"}
	cfg.Detector = Scalar(0.5)
	in, err := NewInstrument(context.Background(), cfg, newStubResolver(t))
	require.NoError(t, err)
	return &System{Site: s, Telescope: tel, Instrument: in}
}

func TestSystemThroughput(t *testing.T) {
	sys := newSystem(t, SiteConfig{Name: "ogg", Transmission: Scalar(0.8)})
	total, err := sys.Throughput("V")
	require.NoError(t, err)

	v, err := total.Evaluate(550)
	require.NoError(t, err)
	want := 0.8 * 0.81 * 0.8 * 0.882225 * 0.5
	testutil.RequireNearlyEqual(t, v, want, 1e-9)

	inst, err := sys.Instrument.TotalThroughput("V")
	require.NoError(t, err)
	w, err := inst.Evaluate(550)
	require.NoError(t, err)
	testutil.RequireNearlyEqual(t, v, 0.8*0.81*w, 1e-9)
}

func TestSystemTransparentSite(t *testing.T) {
	sys := newSystem(t, SiteConfig{Name: "space"})
	total, err := sys.Throughput("B")
	require.NoError(t, err)
	v, err := total.Evaluate(450)
	require.NoError(t, err)
	testutil.RequireNearlyEqual(t, v, 0.81*0.7*0.882225*0.5, 1e-9)
}

func TestSystemComponent(t *testing.T) {
	sys := newSystem(t, SiteConfig{Name: "ogg", Transmission: Scalar(0.8)})
	for _, tok := range []string{TokenSite, TokenTelescope, "Instrument", " detector "} {
		c, err := sys.Component(tok)
		require.NoError(t, err, tok)
		_, err = c.Throughput()
		require.NoError(t, err, tok)
	}

	_, err := sys.Component("dome")
	require.ErrorIs(t, err, ErrUnknownComponentToken)

	_, err = (&System{}).Component(TokenTelescope)
	require.ErrorIs(t, err, ErrMissingCurve)
}

func TestSystemChain(t *testing.T) {
	sys := newSystem(t, SiteConfig{Name: "ogg"})

	onlyFilter, err := sys.Chain("V")
	require.NoError(t, err)
	v, err := onlyFilter.Evaluate(600)
	require.NoError(t, err)
	require.Equal(t, 0.8, v)

	withDetector, err := sys.Chain("V", TokenDetector)
	require.NoError(t, err)
	v, err = withDetector.Evaluate(600)
	require.NoError(t, err)
	testutil.RequireNearlyEqual(t, v, 0.4, 1e-12)

	_, err = sys.Chain("V", TokenSite)
	require.ErrorIs(t, err, ErrMissingCurve)
	_, err = sys.Chain("R")
	require.ErrorIs(t, err, filter.ErrUnknownFilter)
}
