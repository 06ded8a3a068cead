package filter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/specio"
)

// Fetcher downloads a remote filter profile.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (specio.Table, error)
}

// Config holds resolver dependencies.
type Config struct {
	Locator  specio.Locator
	Remote   Fetcher
	Dialects []Dialect
	Logger   logr.Logger
	Metrics  *Metrics
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a config with the built-in dialects and a discard
// logger. The remote fetcher is created on demand.
func DefaultConfig() Config {
	return Config{
		Dialects: DefaultDialects(),
		Logger:   logr.Discard(),
	}
}

// WithLocator sets where local resources are searched for.
func WithLocator(l specio.Locator) Option {
	return func(cfg *Config) {
		cfg.Locator = l
	}
}

// WithFetcher replaces the SVO client.
func WithFetcher(f Fetcher) Option {
	return func(cfg *Config) {
		if f != nil {
			cfg.Remote = f
		}
	}
}

// WithDialects replaces the dialect list. Order is precedence.
func WithDialects(d ...Dialect) Option {
	return func(cfg *Config) {
		cfg.Dialects = append([]Dialect(nil), d...)
	}
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// WithMetrics records resolutions and remote fetches.
func WithMetrics(m *Metrics) Option {
	return func(cfg *Config) {
		cfg.Metrics = m
	}
}

// Resolver maps filter tokens to transmission curves.
type Resolver struct {
	catalog  *Catalog
	locator  specio.Locator
	remote   Fetcher
	dialects []Dialect
	log      logr.Logger
	metrics  *Metrics
}

// NewResolver binds a catalog to its loaders.
func NewResolver(catalog *Catalog, opts ...Option) (*Resolver, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidCatalog)
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(cfg.Dialects) == 0 {
		return nil, errors.New("filter: no dialects configured")
	}
	if cfg.Remote == nil {
		cfg.Remote = specio.NewSVOClient(
			specio.WithClientLogger(cfg.Logger.WithName("svo")),
			specio.WithObserver(observerOf(cfg.Metrics)),
		)
	}
	return &Resolver{
		catalog:  catalog,
		locator:  cfg.Locator,
		remote:   cfg.Remote,
		dialects: cfg.Dialects,
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
	}, nil
}

// Catalog returns the bound catalog.
func (r *Resolver) Catalog() *Catalog { return r.catalog }

// NormalizeToken maps a two-character token ending in "p" to its base
// filter: "zp" resolves as "z".
func NormalizeToken(token string) string {
	if len(token) == 2 && token[1] == 'p' {
		return token[:1]
	}
	return token
}

// Resolve loads the transmission curve for token. Unknown tokens fail with
// [ErrUnknownFilter]. The curve's metadata records the resource, the
// catalog description and the canonical token.
func (r *Resolver) Resolve(ctx context.Context, token string) (*curve.Curve, error) {
	name := NormalizeToken(token)
	if name != token {
		r.log.V(1).Info("filter token aliased", "token", token, "canonical", name)
	}

	entry, ok := r.catalog.Lookup(name)
	if !ok {
		r.metrics.observeResolution("", resolvedUnknown)
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, token)
	}

	d, ok := r.dialectFor(entry)
	if !ok {
		r.metrics.observeResolution("", resolvedError)
		return nil, fmt.Errorf("filter %q: %w: no dialect recognizes %q", name, specio.ErrFormatDialect, entry.Resource)
	}

	r.log.Info("reading filter profile", "token", name, "dialect", d.Name, "resource", entry.Resource)
	tab, err := d.Load(ctx, r, entry)
	if err != nil {
		r.metrics.observeResolution(d.Name, resolvedError)
		return nil, fmt.Errorf("filter %q from %s: %w", name, entry.Resource, err)
	}

	c, err := tab.Curve(curve.Metadata{
		curve.MetaFilename:    entry.Resource,
		curve.MetaDescription: entry.Description,
		curve.MetaExpr:        name,
	})
	if err != nil {
		r.metrics.observeResolution(d.Name, resolvedError)
		return nil, fmt.Errorf("filter %q from %s: %w", name, entry.Resource, err)
	}
	r.metrics.observeResolution(d.Name, resolvedOK)
	return c, nil
}

func (r *Resolver) dialectFor(e Entry) (Dialect, bool) {
	for _, d := range r.dialects {
		if d.Recognize != nil && d.Recognize(e) {
			return d, true
		}
	}
	return Dialect{}, false
}

func (r *Resolver) readLocal(ref string, read func(io.Reader) (specio.Table, error)) (specio.Table, error) {
	rc, _, err := r.locator.Open(ref)
	if err != nil {
		return specio.Table{}, err
	}
	defer rc.Close()
	return read(rc)
}

// observerOf avoids handing a typed nil to the client.
func observerOf(m *Metrics) specio.FetchObserver {
	if m == nil {
		return nil
	}
	return m
}
