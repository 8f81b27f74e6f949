package theme

import (
	"fmt"
	"sync"
)

// Registry maps theme ids to descriptors. It is an explicit value constructed
// at startup and passed to whoever needs theme lookup; there is no ambient
// global registry.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]Descriptor
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{themes: make(map[string]Descriptor)}
}

// Register adds a descriptor under its id.
func (r *Registry) Register(d Descriptor) error {
	if d.ID == "" {
		return fmt.Errorf("theme id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.themes[d.ID]; exists {
		return fmt.Errorf("theme %q already registered", d.ID)
	}
	r.themes[d.ID] = d
	r.order = append(r.order, d.ID)
	return nil
}

// Get looks up a descriptor by id.
func (r *Registry) Get(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.themes[id]
	return d, ok
}

// IDs returns the registered theme ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
