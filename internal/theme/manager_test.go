package theme

import (
	"sync"
	"testing"
)

func testRegistry(t *testing.T, hooks *hookLog) *Registry {
	t.Helper()
	r := NewRegistry()
	themes := []Descriptor{
		{
			ID:         "plain",
			Name:       "Plain",
			Stylesheet: "/static/themes/plain.css",
			Init:       hooks.record("init:plain"),
			Destroy:    hooks.record("destroy:plain"),
		},
		{
			ID:         "compact",
			Name:       "Compact",
			Stylesheet: "/static/themes/compact.css",
			Init:       hooks.record("init:compact"),
			Destroy:    hooks.record("destroy:compact"),
		},
	}
	for _, d := range themes {
		if err := r.Register(d); err != nil {
			t.Fatalf("Register(%s): %v", d.ID, err)
		}
	}
	return r
}

// hookLog records lifecycle hook invocations in order.
type hookLog struct {
	calls []string
}

func (h *hookLog) record(name string) func(Handle) error {
	return func(Handle) error {
		h.calls = append(h.calls, name)
		return nil
	}
}

func TestRegistry_DuplicateAndEmptyID(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Descriptor{}); err == nil {
		t.Error("expected error for empty id")
	}
	if err := r.Register(Descriptor{ID: "plain"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(Descriptor{ID: "plain"}); err == nil {
		t.Error("expected error for duplicate id")
	}
}

func TestManager_ActivateUnknownIsNoOp(t *testing.T) {
	hooks := &hookLog{}
	m := NewManager(testRegistry(t, hooks), nil, nil)

	m.Activate("plain")
	m.Activate("nonexistent")

	if d, ok := m.ActiveDescriptor(); !ok || d.ID != "plain" {
		t.Errorf("active = %v/%v, want plain still active", d.ID, ok)
	}
	if got := len(hooks.calls); got != 1 {
		t.Errorf("hook calls = %v, unknown id must not trigger lifecycle", hooks.calls)
	}
}

func TestManager_ActivateIsIdempotent(t *testing.T) {
	hooks := &hookLog{}
	m := NewManager(testRegistry(t, hooks), nil, nil)

	m.Activate("plain")
	m.Activate("plain")

	if got := len(hooks.calls); got != 1 {
		t.Errorf("init calls = %v, want exactly one", hooks.calls)
	}
	if refs := m.Stylesheets(); len(refs) != 1 {
		t.Errorf("stylesheets = %v, want exactly one reference", refs)
	}
}

func TestManager_SwitchDeactivatesBeforeActivating(t *testing.T) {
	hooks := &hookLog{}
	m := NewManager(testRegistry(t, hooks), nil, nil)

	m.Activate("plain")
	m.Switch("compact")

	want := []string{"init:plain", "destroy:plain", "init:compact"}
	if len(hooks.calls) != len(want) {
		t.Fatalf("hook calls = %v, want %v", hooks.calls, want)
	}
	for i := range want {
		if hooks.calls[i] != want[i] {
			t.Errorf("hook[%d] = %q, want %q", i, hooks.calls[i], want[i])
		}
	}

	if m.Marker() != "theme-compact" {
		t.Errorf("marker = %q, want theme-compact", m.Marker())
	}
	refs := m.Stylesheets()
	if len(refs) != 1 || refs[0] != "/static/themes/compact.css" {
		t.Errorf("stylesheets = %v, old theme's sheet must be gone", refs)
	}
}

func TestManager_SwitchUnknownKeepsCurrent(t *testing.T) {
	hooks := &hookLog{}
	m := NewManager(testRegistry(t, hooks), nil, nil)

	m.Activate("plain")
	m.Switch("nonexistent")

	if d, ok := m.ActiveDescriptor(); !ok || d.ID != "plain" {
		t.Errorf("active = %q/%v, want plain still active", d.ID, ok)
	}
	if got := len(hooks.calls); got != 1 {
		t.Errorf("hook calls = %v, unknown target must not tear down plain", hooks.calls)
	}
	if m.Marker() != "theme-plain" {
		t.Errorf("marker = %q, want theme-plain", m.Marker())
	}
	refs := m.Stylesheets()
	if len(refs) != 1 || refs[0] != "/static/themes/plain.css" {
		t.Errorf("stylesheets = %v, want plain's sheet untouched", refs)
	}
}

func TestManager_ConcurrentSwitchesLeaveOneTheme(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"plain", "compact"} {
		if err := r.Register(Descriptor{ID: id, Stylesheet: "/static/themes/" + id + ".css"}); err != nil {
			t.Fatalf("Register(%s): %v", id, err)
		}
	}
	m := NewManager(r, nil, nil)
	m.Activate("plain")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		id := "plain"
		if i%2 == 0 {
			id = "compact"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Switch(id)
		}()
	}
	wg.Wait()

	d, ok := m.ActiveDescriptor()
	if !ok {
		t.Fatal("no active theme after concurrent switches")
	}
	refs := m.Stylesheets()
	if len(refs) != 1 || refs[0] != d.Stylesheet {
		t.Errorf("stylesheets = %v, want only the active theme's %q", refs, d.Stylesheet)
	}
	if m.Marker() != "theme-"+d.ID {
		t.Errorf("marker = %q, want theme-%s", m.Marker(), d.ID)
	}
}

func TestManager_DeactivateClearsBookkeeping(t *testing.T) {
	hooks := &hookLog{}
	m := NewManager(testRegistry(t, hooks), nil, nil)

	m.Activate("plain")
	m.Deactivate()

	if m.State() != Unloaded {
		t.Errorf("state = %v, want Unloaded", m.State())
	}
	if m.Marker() != "" {
		t.Errorf("marker = %q, want empty", m.Marker())
	}
	if refs := m.Stylesheets(); len(refs) != 0 {
		t.Errorf("stylesheets = %v, want none", refs)
	}

	// Second deactivate is a no-op.
	m.Deactivate()
	want := []string{"init:plain", "destroy:plain"}
	if len(hooks.calls) != len(want) {
		t.Errorf("hook calls = %v, want %v", hooks.calls, want)
	}
}
