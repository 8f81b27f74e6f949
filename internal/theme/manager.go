package theme

import (
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetview/internal/domain"
	"github.com/kailas-cloud/facetview/internal/metrics"
)

// State is the activation state of the manager.
type State int

const (
	// Unloaded means no theme is active.
	Unloaded State = iota
	// Loading means a theme is being activated.
	Loading
	// Active means exactly one theme is active.
	Active
)

// Manager drives the theme activation lifecycle. At most one theme is Active
// at a time; activating a new theme fully deactivates the previous one first
// so no stylesheet references or hooks leak across themes.
type Manager struct {
	registry *Registry
	handle   Handle
	logger   *zap.Logger

	// lifecycle serializes whole activate/deactivate transitions so two
	// concurrent callers cannot interleave mid-switch. mu only guards the
	// bookkeeping fields and is never held while hooks run.
	lifecycle sync.Mutex

	mu          sync.Mutex
	state       State
	active      Descriptor
	stylesheets []string
	marker      string
}

// NewManager creates a theme manager over the given registry.
func NewManager(registry *Registry, handle Handle, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{registry: registry, handle: handle, logger: logger}
}

// Activate looks up the descriptor and makes it the active theme.
// An unknown id is a no-op with a warning; the current theme stays active.
// Re-activating the already-active id is idempotent: no duplicate stylesheet
// reference, no second Init invocation.
func (m *Manager) Activate(id string) {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()
	m.activate(id)
}

// activate is the body of Activate; the caller holds m.lifecycle.
func (m *Manager) activate(id string) {
	m.mu.Lock()
	if m.state == Active && m.active.ID == id {
		m.mu.Unlock()
		return
	}
	d, ok := m.registry.Get(id)
	if !ok {
		m.mu.Unlock()
		m.logger.Warn("keeping current theme",
			zap.String("theme", id), zap.Error(domain.ErrThemeNotFound))
		return
	}
	wasActive := m.state == Active
	m.mu.Unlock()

	if wasActive {
		m.deactivate()
	}

	m.mu.Lock()
	m.state = Loading
	m.attachStylesheet(d.Stylesheet)
	m.marker = "theme-" + d.ID
	m.active = d
	m.state = Active
	m.mu.Unlock()

	if d.Init != nil {
		if err := d.Init(m.handle); err != nil {
			m.logger.Warn("theme init hook failed",
				zap.String("theme", d.ID), zap.Error(err))
		}
	}
	metrics.ThemeActivationsTotal.WithLabelValues(d.ID).Inc()
	m.logger.Info("theme activated", zap.String("theme", d.ID))
}

// Deactivate runs the active theme's destroy hook and clears all bookkeeping:
// marker, stylesheet references, descriptor. Idempotent.
func (m *Manager) Deactivate() {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()
	m.deactivate()
}

// deactivate is the body of Deactivate; the caller holds m.lifecycle.
func (m *Manager) deactivate() {
	m.mu.Lock()
	if m.state != Active {
		m.mu.Unlock()
		return
	}
	d := m.active
	m.active = Descriptor{}
	m.stylesheets = nil
	m.marker = ""
	m.state = Unloaded
	m.mu.Unlock()

	if d.Destroy != nil {
		if err := d.Destroy(m.handle); err != nil {
			m.logger.Warn("theme destroy hook failed",
				zap.String("theme", d.ID), zap.Error(err))
		}
	}
	m.logger.Info("theme deactivated", zap.String("theme", d.ID))
}

// Switch deactivates the current theme (if any) and activates the new one.
// An unknown id keeps the current theme active, same as Activate; the old
// theme is only torn down once the target is known to exist.
// The caller re-renders any held result page afterwards; no refetch needed.
func (m *Manager) Switch(id string) {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()
	if _, ok := m.registry.Get(id); !ok {
		m.logger.Warn("keeping current theme",
			zap.String("theme", id), zap.Error(domain.ErrThemeNotFound))
		return
	}
	m.deactivate()
	m.activate(id)
}

// ActiveDescriptor returns the active descriptor, if any.
func (m *Manager) ActiveDescriptor() (Descriptor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.state == Active
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Marker returns the theme-scoped marker applied to the document root,
// e.g. "theme-compact". Empty when no theme is active.
func (m *Manager) Marker() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.marker
}

// Stylesheets returns the stylesheet references attached by the active theme.
func (m *Manager) Stylesheets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.stylesheets...)
}

// attachStylesheet records a stylesheet reference once. Caller holds m.mu.
func (m *Manager) attachStylesheet(ref string) {
	if ref == "" {
		return
	}
	for _, existing := range m.stylesheets {
		if existing == ref {
			return
		}
	}
	m.stylesheets = append(m.stylesheets, ref)
}
