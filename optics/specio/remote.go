package specio

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/units"
)

const tracerName = "github.com/cwbudde/algo-etc/optics/specio"

// FetchObserver receives one call per remote fetch attempt.
type FetchObserver interface {
	ObserveFetch(outcome string, elapsed time.Duration)
}

// Fetch attempt outcomes reported to a [FetchObserver].
const (
	OutcomeOK        = "ok"
	OutcomeRetryable = "retryable"
	OutcomeRejected  = "rejected"
	OutcomeMalformed = "malformed"
)

// ClientConfig controls remote fetches.
type ClientConfig struct {
	HTTPClient      *http.Client
	Timeout         time.Duration // per attempt
	Retries         uint          // attempts after the first
	InitialInterval time.Duration
	Logger          logr.Logger
	Observer        FetchObserver
}

// ClientOption mutates a ClientConfig.
type ClientOption func(*ClientConfig)

// DefaultClientConfig allows two retries with a 10 s per-attempt timeout.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:         10 * time.Second,
		Retries:         2,
		InitialInterval: 500 * time.Millisecond,
		Logger:          logr.Discard(),
	}
}

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cfg *ClientConfig) {
		if c != nil {
			cfg.HTTPClient = c
		}
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(cfg *ClientConfig) {
		if d > 0 {
			cfg.Timeout = d
		}
	}
}

// WithRetries sets how many times a failed attempt is retried.
func WithRetries(n uint) ClientOption {
	return func(cfg *ClientConfig) {
		cfg.Retries = n
	}
}

// WithInitialInterval sets the first backoff delay.
func WithInitialInterval(d time.Duration) ClientOption {
	return func(cfg *ClientConfig) {
		if d > 0 {
			cfg.InitialInterval = d
		}
	}
}

// WithClientLogger sets the logger.
func WithClientLogger(l logr.Logger) ClientOption {
	return func(cfg *ClientConfig) {
		cfg.Logger = l
	}
}

// WithObserver registers a per-attempt observer.
func WithObserver(o FetchObserver) ClientOption {
	return func(cfg *ClientConfig) {
		cfg.Observer = o
	}
}

// SVOClient fetches filter profiles from the SVO Filter Profile Service.
// Profiles are VOTables with Wavelength (Angstrom) and Transmission
// columns.
type SVOClient struct {
	cfg ClientConfig
}

// NewSVOClient builds a client. Without [WithHTTPClient] requests go
// through an OpenTelemetry-instrumented transport.
func NewSVOClient(opts ...ClientOption) *SVOClient {
	cfg := DefaultClientConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &SVOClient{cfg: cfg}
}

// Fetch downloads and parses the profile at url.
//
// Network failures and 5xx responses are retried with exponential backoff
// up to the configured retry count; exhaustion and 4xx responses fail with
// [ErrFilterServiceUnavailable]. An unparseable profile fails with
// [ErrFormatDialect] without retrying.
func (c *SVOClient) Fetch(ctx context.Context, url string) (Table, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "SVOClient.Fetch",
		trace.WithAttributes(attribute.String("svo.url", url)))
	defer span.End()

	log := c.cfg.Logger.WithValues("url", url)
	attempts := 0
	op := func() (Table, error) {
		attempts++
		start := time.Now()
		t, err := c.fetchOnce(ctx, url)
		c.observe(outcomeOf(err), time.Since(start))
		if err != nil {
			log.V(1).Info("filter service attempt failed", "attempt", attempts, "error", err.Error())
		}
		return t, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialInterval
	t, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.cfg.Retries+1),
	)
	span.SetAttributes(attribute.Int("svo.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, ErrFormatDialect) || errors.Is(err, ErrFilterServiceUnavailable) {
			return Table{}, err
		}
		return Table{}, fmt.Errorf("%w: %s after %d attempt(s): %v", ErrFilterServiceUnavailable, url, attempts, err)
	}

	t.Header[curve.MetaFilename] = url
	return t, nil
}

func (c *SVOClient) fetchOnce(ctx context.Context, url string) (Table, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Table{}, backoff.Permanent(fmt.Errorf("%w: %v", ErrFilterServiceUnavailable, err))
	}
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return Table{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return Table{}, fmt.Errorf("status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Table{}, backoff.Permanent(fmt.Errorf("%w: %s: status %d", ErrFilterServiceUnavailable, url, resp.StatusCode))
	}

	t, err := ReadVOTable(resp.Body)
	if err != nil {
		return Table{}, backoff.Permanent(err)
	}
	return t, nil
}

func (c *SVOClient) observe(outcome string, elapsed time.Duration) {
	if c.cfg.Observer != nil {
		c.cfg.Observer.ObserveFetch(outcome, elapsed)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrFormatDialect):
		return OutcomeMalformed
	case errors.Is(err, ErrFilterServiceUnavailable):
		return OutcomeRejected
	default:
		return OutcomeRetryable
	}
}

type voTable struct {
	XMLName   xml.Name     `xml:"VOTABLE"`
	Infos     []voParam    `xml:"INFO"`
	Resources []voResource `xml:"RESOURCE"`
}

type voResource struct {
	Infos  []voParam   `xml:"INFO"`
	Params []voParam   `xml:"PARAM"`
	Tables []voTableEl `xml:"TABLE"`
}

type voTableEl struct {
	Params []voParam `xml:"PARAM"`
	Fields []voField `xml:"FIELD"`
	Rows   []voRow   `xml:"DATA>TABLEDATA>TR"`
}

type voParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
	Text  string `xml:",chardata"`
}

type voField struct {
	Name string `xml:"name,attr"`
	Unit string `xml:"unit,attr"`
}

type voRow struct {
	Cells []string `xml:"TD"`
}

// ReadVOTable parses a single-table VOTable filter profile. PARAM values
// become header entries; the Wavelength column is read in Angstrom.
func ReadVOTable(r io.Reader) (Table, error) {
	var doc voTable
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Table{}, fmt.Errorf("%w: votable: %v", ErrFormatDialect, err)
	}

	if err := queryError(doc.Infos); err != nil {
		return Table{}, err
	}

	t := Table{Header: map[string]string{}, Unit: units.Angstrom}
	var table *voTableEl
	for i := range doc.Resources {
		res := &doc.Resources[i]
		if err := queryError(res.Infos); err != nil {
			return Table{}, err
		}
		for _, p := range res.Params {
			t.Header[p.Name] = p.Value
		}
		if table == nil && len(res.Tables) > 0 {
			table = &res.Tables[0]
		}
	}
	if table == nil {
		return Table{}, fmt.Errorf("%w: votable has no TABLE", ErrFormatDialect)
	}
	for _, p := range table.Params {
		t.Header[p.Name] = p.Value
	}

	wCol, vCol := 0, 1
	for i, f := range table.Fields {
		switch strings.ToLower(f.Name) {
		case "wavelength":
			wCol = i
		case "transmission":
			vCol = i
		}
	}

	for i, row := range table.Rows {
		if len(row.Cells) <= max(wCol, vCol) {
			return Table{}, fmt.Errorf("%w: votable row %d has %d cells", ErrFormatDialect, i, len(row.Cells))
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(row.Cells[wCol]), 64)
		if err != nil {
			return Table{}, fmt.Errorf("%w: votable row %d: %v", ErrFormatDialect, i, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row.Cells[vCol]), 64)
		if err != nil {
			return Table{}, fmt.Errorf("%w: votable row %d: %v", ErrFormatDialect, i, err)
		}
		t.Wavelength = append(t.Wavelength, w)
		t.Values = append(t.Values, v)
	}
	if len(t.Wavelength) == 0 {
		return Table{}, fmt.Errorf("%w: votable has no rows", ErrFormatDialect)
	}

	t.ascending()
	return t, nil
}

func queryError(infos []voParam) error {
	for _, info := range infos {
		if strings.EqualFold(info.Name, "QUERY_STATUS") && strings.EqualFold(info.Value, "ERROR") {
			return fmt.Errorf("%w: votable query error: %s", ErrFormatDialect, strings.TrimSpace(info.Text))
		}
	}
	return nil
}
