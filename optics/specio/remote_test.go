package specio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/units"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveFetch(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func serveFile(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func fastClient(srv *httptest.Server, obs FetchObserver) *SVOClient {
	return NewSVOClient(
		WithHTTPClient(srv.Client()),
		WithTimeout(2*time.Second),
		WithInitialInterval(time.Millisecond),
		WithObserver(obs),
	)
}

func TestReadVOTable(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "bessell_v.xml"))
	require.NoError(t, err)
	defer f.Close()

	tab, err := ReadVOTable(f)
	require.NoError(t, err)
	require.Equal(t, units.Angstrom, tab.Unit)
	require.Equal(t, []float64{4700, 5000, 5500, 6000, 7000}, tab.Wavelength)
	require.Equal(t, 0.95, tab.Values[2])
	require.Equal(t, "Generic/Bessell.V", tab.Header["filterID"])
}

func TestFetchRetriesThenSucceeds(t *testing.T) {
	body := serveFile(t, "bessell_v.xml")
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	tab, err := fastClient(srv, obs).Fetch(context.Background(), srv.URL+"/fps.php?ID=Generic/Bessell.V")
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
	require.Equal(t, []string{OutcomeRetryable, OutcomeOK}, obs.outcomes)
	require.Contains(t, tab.Header[curve.MetaFilename], "Bessell.V")

	c, err := tab.Curve(nil)
	require.NoError(t, err)
	peak, err := c.Peak()
	require.NoError(t, err)
	require.Equal(t, 0.95, peak)
	lo, _ := c.Domain()
	require.InDelta(t, 470, lo, 1e-9)
}

func TestFetchExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	_, err := fastClient(srv, obs).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrFilterServiceUnavailable)
	require.EqualValues(t, 3, calls.Load())
	require.Len(t, obs.outcomes, 3)
}

func TestFetchClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fastClient(srv, nil).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrFilterServiceUnavailable)
	require.EqualValues(t, 1, calls.Load())
}

func TestFetchMalformedProfileIsNotRetried(t *testing.T) {
	body := serveFile(t, "svo_error.xml")
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	_, err := fastClient(srv, obs).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrFormatDialect)
	require.EqualValues(t, 1, calls.Load())
	require.Equal(t, []string{OutcomeMalformed}, obs.outcomes)
}

func TestFetchHonorsCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fastClient(srv, nil).Fetch(ctx, srv.URL)
	require.ErrorIs(t, err, ErrFilterServiceUnavailable)
}
