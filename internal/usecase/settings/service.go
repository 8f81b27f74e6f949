// Package settings backs the settings overlay: it resolves the effective
// backend endpoint per session and persists the user's overrides.
package settings

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/repository/prefs"
)

// prefsStore is the consumer interface for preference persistence (ISP).
type prefsStore interface {
	Get(ctx context.Context, session string) (prefs.Preferences, error)
	Set(ctx context.Context, session string, p prefs.Preferences) error
	Delete(ctx context.Context, session string) error
}

// Settings are the effective values shown in the overlay form: per-session
// overrides already folded over the configured defaults.
type Settings struct {
	ServerURL string
	Index     string
	Theme     string
}

// Service resolves and persists per-session settings.
type Service struct {
	store      prefsStore
	defaultURL string
	defaultIdx string
	defaultThm string
	logger     *zap.Logger
}

// New creates a settings service over the given preferences store.
func New(store prefsStore, cfg *config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:      store,
		defaultURL: cfg.Server.URL,
		defaultIdx: cfg.Server.Index,
		defaultThm: cfg.UI.Theme,
		logger:     logger,
	}
}

// Resolve returns the effective settings for a session. Blank overrides fall
// back to the configured defaults, so clearing a field in the overlay
// restores the deployment's endpoint.
func (s *Service) Resolve(ctx context.Context, session string) (Settings, error) {
	p, err := s.store.Get(ctx, session)
	if err != nil {
		// A broken store must not take the page down; fall back to defaults.
		s.logger.Warn("preferences unavailable, using defaults",
			zap.String("session", session), zap.Error(err))
		p = prefs.Preferences{}
	}
	return s.effective(p), nil
}

// Save persists the overlay form values. Values equal to the configured
// defaults are stored as blanks so later default changes reach the session.
func (s *Service) Save(ctx context.Context, session string, in Settings) (Settings, error) {
	p := prefs.Preferences{
		ServerURL: normalize(in.ServerURL, s.defaultURL),
		Index:     normalize(in.Index, s.defaultIdx),
		Theme:     normalize(in.Theme, s.defaultThm),
	}

	if p.IsZero() {
		if err := s.store.Delete(ctx, session); err != nil {
			return Settings{}, err
		}
		return s.effective(p), nil
	}

	if err := s.store.Set(ctx, session, p); err != nil {
		return Settings{}, err
	}
	return s.effective(p), nil
}

// SaveTheme persists only the theme id, keeping other overrides.
func (s *Service) SaveTheme(ctx context.Context, session, theme string) error {
	p, err := s.store.Get(ctx, session)
	if err != nil {
		return err
	}
	p.Theme = normalize(theme, s.defaultThm)
	if p.IsZero() {
		return s.store.Delete(ctx, session)
	}
	return s.store.Set(ctx, session, p)
}

func (s *Service) effective(p prefs.Preferences) Settings {
	out := Settings{
		ServerURL: p.ServerURL,
		Index:     p.Index,
		Theme:     p.Theme,
	}
	if out.ServerURL == "" {
		out.ServerURL = s.defaultURL
	}
	if out.Index == "" {
		out.Index = s.defaultIdx
	}
	if out.Theme == "" {
		out.Theme = s.defaultThm
	}
	return out
}

func normalize(v, def string) string {
	v = strings.TrimSpace(v)
	if v == def {
		return ""
	}
	return v
}
