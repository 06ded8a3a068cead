package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/cwbudde/algo-etc/optics/filter"
	"github.com/cwbudde/algo-etc/optics/model"
	"github.com/cwbudde/algo-etc/optics/specio"
)

// BuildConfig holds collaborators for [Observatory.Build].
type BuildConfig struct {
	Service  Service
	Logger   logr.Logger
	Metrics  *filter.Metrics
	Resolver model.FilterResolver
}

// BuildOption mutates a BuildConfig.
type BuildOption func(*BuildConfig)

// WithService sets the remote-service settings. Without it remote fetches
// use a 10 s timeout and two retries.
func WithService(s Service) BuildOption {
	return func(cfg *BuildConfig) {
		cfg.Service = s
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(l logr.Logger) BuildOption {
	return func(cfg *BuildConfig) {
		cfg.Logger = l
	}
}

// WithMetrics records filter resolutions and remote fetches.
func WithMetrics(m *filter.Metrics) BuildOption {
	return func(cfg *BuildConfig) {
		cfg.Metrics = m
	}
}

// WithResolver bypasses the catalog and resolves filters through r.
func WithResolver(r model.FilterResolver) BuildOption {
	return func(cfg *BuildConfig) {
		cfg.Resolver = r
	}
}

func defaultBuildConfig() BuildConfig {
	def := specio.DefaultClientConfig()
	return BuildConfig{
		Service: Service{SVOTimeout: def.Timeout, SVORetries: def.Retries},
		Logger:  logr.Discard(),
	}
}

// Locator returns the search path for data files: the document's
// directory, then [catalog] data_dirs, then extra.
func (o *Observatory) Locator(extra ...string) specio.Locator {
	var dirs []string
	if o.dir != "" {
		dirs = append(dirs, o.dir)
	}
	for _, d := range o.Catalog.DataDirs {
		if !filepath.IsAbs(d) && o.dir != "" {
			d = filepath.Join(o.dir, d)
		}
		dirs = append(dirs, d)
	}
	return specio.Locator{Dirs: append(dirs, extra...)}
}

// Resolver builds the filter resolver described by [catalog].
func (o *Observatory) Resolver(opts ...BuildOption) (*filter.Resolver, error) {
	cfg := applyBuildOptions(opts)
	return o.resolver(cfg, o.Locator(cfg.Service.DataDirs...))
}

func (o *Observatory) resolver(cfg BuildConfig, loc specio.Locator) (*filter.Resolver, error) {
	cat := filter.SVOCatalog()
	if o.Catalog.File != "" {
		path, err := loc.Resolve(o.Catalog.File)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		cat, err = filter.LoadCatalogFile(path)
		if err != nil {
			return nil, err
		}
	}

	clientOpts := []specio.ClientOption{
		specio.WithTimeout(cfg.Service.SVOTimeout),
		specio.WithRetries(cfg.Service.SVORetries),
		specio.WithClientLogger(cfg.Logger.WithName("svo")),
	}
	if cfg.Metrics != nil {
		clientOpts = append(clientOpts, specio.WithObserver(cfg.Metrics))
	}

	return filter.NewResolver(cat,
		filter.WithLocator(loc),
		filter.WithFetcher(specio.NewSVOClient(clientOpts...)),
		filter.WithLogger(cfg.Logger.WithName("filter")),
		filter.WithMetrics(cfg.Metrics),
	)
}

// Build constructs the site, telescope and instrument.
func (o *Observatory) Build(ctx context.Context, opts ...BuildOption) (*model.System, error) {
	cfg := applyBuildOptions(opts)
	loc := o.Locator(cfg.Service.DataDirs...)
	mopts := []model.Option{model.WithLocator(loc), model.WithLogger(cfg.Logger.WithName("model"))}

	siteCfg, err := o.SiteConfig()
	if err != nil {
		return nil, err
	}
	site, err := model.NewSite(siteCfg, mopts...)
	if err != nil {
		return nil, err
	}

	telCfg, err := o.TelescopeConfig()
	if err != nil {
		return nil, err
	}
	tel, err := model.NewTelescope(telCfg, mopts...)
	if err != nil {
		return nil, err
	}

	instCfg, err := o.InstrumentConfig()
	if err != nil {
		return nil, err
	}
	resolver := cfg.Resolver
	if resolver == nil && len(instCfg.Filters) > 0 {
		r, err := o.resolver(cfg, loc)
		if err != nil {
			return nil, err
		}
		resolver = r
	}
	inst, err := model.NewInstrument(ctx, instCfg, resolver, mopts...)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Info("observatory ready", "site", site.Name(), "telescope", tel.Name(),
		"instrument", inst.Name(), "filters", inst.Filters())
	return &model.System{Site: site, Telescope: tel, Instrument: inst}, nil
}

func applyBuildOptions(opts []BuildOption) BuildConfig {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
