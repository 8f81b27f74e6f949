package facetview

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/searchclient"
	"github.com/kailas-cloud/facetview/internal/theme"
	"github.com/kailas-cloud/facetview/internal/usecase/orchestrator"
)

// Option configures the UI.
type Option interface {
	apply(*uiConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*uiConfig)

func (f optionFunc) apply(c *uiConfig) { f(c) }

type uiConfig struct {
	cfg     *config.Config
	env     string
	client  searchclient.Client
	logger  *zap.Logger
	themes  []theme.Descriptor
	initial string
	hooks   orchestrator.Hooks
}

// WithConfig supplies an already-loaded configuration.
func WithConfig(cfg config.Config) Option {
	return optionFunc(func(c *uiConfig) {
		c.cfg = &cfg
	})
}

// WithConfigEnv loads configuration for the given environment name
// (local, dev, prod) via the standard config search path.
func WithConfigEnv(env string) Option {
	return optionFunc(func(c *uiConfig) {
		c.env = env
	})
}

// WithSearchClient replaces the HTTP search client, e.g. with a stub in
// tests or an adapter for a different backend dialect.
func WithSearchClient(client searchclient.Client) Option {
	return optionFunc(func(c *uiConfig) {
		c.client = client
	})
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *uiConfig) {
		c.logger = l
	})
}

// WithTheme registers an additional theme besides the built-ins.
func WithTheme(d theme.Descriptor) Option {
	return optionFunc(func(c *uiConfig) {
		c.themes = append(c.themes, d)
	})
}

// WithInitialTheme overrides the configured startup theme id.
func WithInitialTheme(id string) Option {
	return optionFunc(func(c *uiConfig) {
		c.initial = id
	})
}

// WithPreSearchHook transforms the query string before every search.
func WithPreSearchHook(fn orchestrator.PreSearchFunc) Option {
	return optionFunc(func(c *uiConfig) {
		c.hooks.PreSearch = fn
	})
}

// WithPostSearchHook transforms the result page after every search.
func WithPostSearchHook(fn orchestrator.PostSearchFunc) Option {
	return optionFunc(func(c *uiConfig) {
		c.hooks.PostSearch = fn
	})
}
