package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/facetview/internal/db"
)

// store is the consumer interface for preference operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Preferences are the durable per-session settings written by the settings
// overlay and read at bootstrap: endpoint/index overrides and the active
// theme id. Empty strings mean "use the configured default".
type Preferences struct {
	ServerURL string `json:"server_url,omitempty"`
	Index     string `json:"index,omitempty"`
	Theme     string `json:"theme,omitempty"`
}

// IsZero reports whether no preference is set.
func (p Preferences) IsZero() bool {
	return p.ServerURL == "" && p.Index == "" && p.Theme == ""
}

// Store persists Preferences as a JSON blob per session key.
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a preferences store.
// ttl bounds how long an idle session keeps its settings (recommended: 30 days).
func New(s store, prefix string, ttl time.Duration) *Store {
	return &Store{store: s, prefix: prefix, ttl: ttl}
}

// Get returns the preferences for a session. A missing key yields zero
// Preferences, not an error.
func (s *Store) Get(ctx context.Context, session string) (Preferences, error) {
	data, err := s.store.Get(ctx, s.key(session))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return Preferences{}, nil
		}
		return Preferences{}, fmt.Errorf("prefs GET %s: %w", session, err)
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("prefs GET %s decode: %w", session, err)
	}
	return p, nil
}

// Set stores the preferences for a session, refreshing the TTL.
func (s *Store) Set(ctx context.Context, session string, p Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs SET %s encode: %w", session, err)
	}
	if err := s.store.SetWithTTL(ctx, s.key(session), data, s.ttl); err != nil {
		return fmt.Errorf("prefs SET %s: %w", session, err)
	}
	return nil
}

// Delete removes the preferences for a session.
func (s *Store) Delete(ctx context.Context, session string) error {
	if err := s.store.Del(ctx, s.key(session)); err != nil {
		return fmt.Errorf("prefs DEL %s: %w", session, err)
	}
	return nil
}

func (s *Store) key(session string) string {
	return s.prefix + "prefs:" + session
}
