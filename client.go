// Package facetview is the SDK entry point: it wires configuration, the
// theme registry, field extraction, rendering, and the search orchestrator
// into one UI value the HTTP transport (or an embedding application) drives.
package facetview

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/domain"
	"github.com/kailas-cloud/facetview/internal/fields"
	"github.com/kailas-cloud/facetview/internal/render"
	"github.com/kailas-cloud/facetview/internal/searchclient"
	"github.com/kailas-cloud/facetview/internal/theme"
	"github.com/kailas-cloud/facetview/internal/usecase/orchestrator"
)

// UI bundles the wired components of one faceted search frontend.
type UI struct {
	cfg       *config.Config
	client    searchclient.Client
	extractor *fields.Extractor
	registry  *theme.Registry
	themes    *theme.Manager
	renderer  *render.Dispatcher
	orch      *orchestrator.Service
	logger    *zap.Logger
}

// New creates a UI from the given options. Configuration must come from
// WithConfig or WithConfigEnv; everything else has defaults: an HTTP search
// client built from the config, the built-in themes, a no-op logger.
func New(opts ...Option) (*UI, error) {
	c := &uiConfig{env: config.GetEnv()}
	for _, o := range opts {
		o.apply(c)
	}

	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	cfg := c.cfg
	if cfg == nil {
		loaded, err := config.Load(c.env)
		if err != nil {
			return nil, fmt.Errorf("facetview: load config: %w", err)
		}
		cfg = &loaded
	}
	cfg.ApplyDefaults()
	// Construction-time fatal: rendering must never run over a config with
	// missing required fields, whichever way the config arrived.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("facetview: %w", err)
	}

	client := c.client
	if client == nil {
		httpClient, err := searchclient.NewHTTPClient(searchclient.Config{
			URL:          cfg.Server.URL,
			Index:        cfg.Server.Index,
			PageSize:     cfg.Server.PageSize,
			Timeout:      time.Duration(cfg.Server.TimeoutSec) * time.Second,
			DisplayNames: facetDisplayNames(cfg),
			Logger:       c.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("facetview: create search client: %w", err)
		}
		client = httpClient
	}

	extractor := fields.New(cfg.ResultFields, cfg.UI)

	registry := theme.NewRegistry()
	for _, d := range append(BuiltinThemes(), c.themes...) {
		if err := registry.Register(d); err != nil {
			return nil, fmt.Errorf("facetview: register theme %q: %w", d.ID, err)
		}
	}

	ui := &UI{
		cfg:       cfg,
		client:    client,
		extractor: extractor,
		registry:  registry,
		logger:    c.logger,
	}

	handle := &uiHandle{ui: ui}
	ui.themes = theme.NewManager(registry, handle, c.logger)
	ui.renderer = render.NewDispatcher(ui.themes, handle, c.logger)
	ui.orch = orchestrator.New(client, cfg, c.logger).WithHooks(c.hooks)

	initial := c.initial
	if initial == "" {
		initial = cfg.UI.Theme
	}
	ui.themes.Activate(initial)

	return ui, nil
}

// Config returns the effective configuration.
func (u *UI) Config() *config.Config { return u.cfg }

// Client returns the underlying search client.
func (u *UI) Client() searchclient.Client { return u.client }

// Extractor returns the field extractor.
func (u *UI) Extractor() *fields.Extractor { return u.extractor }

// Themes returns the theme manager.
func (u *UI) Themes() *theme.Manager { return u.themes }

// Registry returns the theme registry.
func (u *UI) Registry() *theme.Registry { return u.registry }

// Renderer returns the render dispatcher.
func (u *UI) Renderer() *render.Dispatcher { return u.renderer }

// Search runs a free-text query and commits the result page.
func (u *UI) Search(ctx context.Context, query string) (*domain.Page, error) {
	return u.orch.Search(ctx, query)
}

// Filter applies a facet selection, optionally with date boundaries.
func (u *UI) Filter(ctx context.Context, req orchestrator.FilterRequest) (*domain.Page, error) {
	return u.orch.Filter(ctx, req)
}

// Page fetches page n of the current query.
func (u *UI) Page(ctx context.Context, n int) (*domain.Page, error) {
	return u.orch.Page(ctx, n)
}

// ResetFacets clears all facet selections and the date constraint.
func (u *UI) ResetFacets(ctx context.Context) (*domain.Page, error) {
	return u.orch.ResetFacets(ctx)
}

// CurrentPage returns the held result page, nil before the first search.
func (u *UI) CurrentPage() *domain.Page { return u.orch.Current() }

// CurrentDates returns the applied date filter boundaries, zero when none.
func (u *UI) CurrentDates() orchestrator.DateRange { return u.orch.CurrentDates() }

// SwitchTheme deactivates the current theme and activates the given one.
// Unknown ids are a logged no-op; the current theme stays active.
func (u *UI) SwitchTheme(id string) { u.themes.Switch(id) }

// Suggest returns autocomplete suggestions for a term prefix.
func (u *UI) Suggest(ctx context.Context, term string) ([]string, error) {
	return u.client.Suggest(ctx, term)
}

func facetDisplayNames(cfg *config.Config) map[string]string {
	names := make(map[string]string, len(cfg.Facets))
	for _, f := range cfg.Facets {
		if f.DisplayName != "" {
			names[f.Field] = f.DisplayName
		}
	}
	return names
}
