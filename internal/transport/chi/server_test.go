package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/facetview"
	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/db"
	"github.com/kailas-cloud/facetview/internal/repository/prefs"
	settingsuc "github.com/kailas-cloud/facetview/internal/usecase/settings"
)

// memKV is an in-memory stand-in for the preferences database.
type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// newBackend serves a canned search response: 12 total hits across 2 pages,
// 2 facets, 10 docs on the first page.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	docs := make([]map[string]any, 10)
	for i := range docs {
		docs[i] = map[string]any{
			"fields": map[string]any{
				"title": "Software architecture",
				"url":   "http://docs/arch",
				"body":  "Patterns and practice.",
			},
		}
	}
	body := map[string]any{
		"results": docs,
		"numRows": 12,
		"rows":    10,
		"page":    1,
		"facets": []map[string]any{
			{"name": "mime_type", "counts": []map[string]any{
				{"value": "pdf", "count": 7}, {"value": "html", "count": 5},
			}},
			{"name": "language", "counts": []map[string]any{
				{"value": "en", "count": 12},
			}},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, mutate func(*config.Config)) (*httptest.Server, *memKV) {
	t.Helper()
	backend := newBackend(t)

	cfg := config.Config{}
	cfg.Server.URL = backend.URL
	cfg.Server.Index = "docs"
	cfg.ResultFields.Title.Field = "title"
	cfg.ResultFields.Link.Fields = []string{"url"}
	cfg.ResultFields.Description.Fields = []string{"body"}
	cfg.ApplyDefaults()
	if mutate != nil {
		mutate(&cfg)
	}

	ui, err := facetview.New(facetview.WithConfig(cfg))
	if err != nil {
		t.Fatalf("facetview.New: %v", err)
	}

	kv := newMemKV()
	settings := settingsuc.New(prefs.New(kv, cfg.Database.KeyPrefix, time.Hour), &cfg, nil)

	srv := NewServer(ui, settings, zapNop())
	r := chirouter.NewRouter()
	srv.Routes(r)

	web := httptest.NewServer(r)
	t.Cleanup(web.Close)
	return web, kv
}

func TestIndex_QuerySearchRendersFullPage(t *testing.T) {
	web, _ := newTestServer(t, nil)

	resp, err := http.Get(web.URL + "/?q=architecture")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	out := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := strings.Count(out, `class="fv-facet"`); got != 2 {
		t.Errorf("facet blocks = %d, want 2:\n%s", got, out)
	}
	if got := strings.Count(out, `class="fv-result"`); got != 10 {
		t.Errorf("result cards = %d, want 10", got)
	}
	if !strings.Contains(out, "Results 1-10 of 12") {
		t.Errorf("results info missing:\n%s", out)
	}
	if !strings.Contains(out, `data-page="2"`) {
		t.Error("pagination link to page 2 missing")
	}
}

func TestIndex_NoQueryNoHeldPageRendersEmptyShell(t *testing.T) {
	web, _ := newTestServer(t, nil)

	resp, err := http.Get(web.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	out := readBody(t, resp)

	if strings.Contains(out, "fv-result") {
		t.Error("empty shell must not render result cards")
	}
	if !strings.Contains(out, `action="/search"`) {
		t.Error("search form missing")
	}
}

func TestSearch_RedirectsToQuery(t *testing.T) {
	web, _ := newTestServer(t, nil)
	client := noRedirectClient()

	resp, err := client.PostForm(web.URL+"/search", url.Values{"q": {"data systems"}})
	if err != nil {
		t.Fatalf("POST /search: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/?q=data+systems" {
		t.Errorf("Location = %q", loc)
	}
}

func TestFilter_AppliesSelectionAndRenders(t *testing.T) {
	web, _ := newTestServer(t, nil)

	resp, err := http.PostForm(web.URL+"/filter", url.Values{
		"facet": {"mime_type"},
		"value": {"pdf"},
	})
	if err != nil {
		t.Fatalf("POST /filter: %v", err)
	}
	defer resp.Body.Close()
	out := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(out, "Results 1-10 of 12") {
		t.Errorf("filtered page missing results info:\n%s", out)
	}
}

func TestFilter_EchoesDateBoundariesIntoForm(t *testing.T) {
	web, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Features.DateFilter = true
		cfg.DateFilter.Field = "published"
	})

	resp, err := http.PostForm(web.URL+"/filter", url.Values{
		"date_start": {"2020-01-01"},
		"date_end":   {"2021-06-30"},
	})
	if err != nil {
		t.Fatalf("POST /filter: %v", err)
	}
	defer resp.Body.Close()
	out := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(out, `value="2020-01-01"`) {
		t.Errorf("start boundary not echoed into the date form:\n%s", out)
	}
	if !strings.Contains(out, `value="2021-06-30"`) {
		t.Errorf("end boundary not echoed into the date form:\n%s", out)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	web, kv := newTestServer(t, nil)
	client := noRedirectClient()

	resp, err := client.PostForm(web.URL+"/settings", url.Values{
		"server_url": {""},
		"index":      {"archive"},
		"theme":      {"compact"},
	})
	if err != nil {
		t.Fatalf("POST /settings: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect to /", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("Location = %q", loc)
	}
	if len(kv.data) != 1 {
		t.Fatalf("stored records = %d, want 1", len(kv.data))
	}
	for _, raw := range kv.data {
		var p prefs.Preferences
		if err := json.Unmarshal(raw, &p); err != nil {
			t.Fatalf("decode stored prefs: %v", err)
		}
		if p.ServerURL != "" {
			t.Errorf("blank server field persisted as %q, must stay blank", p.ServerURL)
		}
		if p.Index != "archive" || p.Theme != "compact" {
			t.Errorf("stored prefs = %+v", p)
		}
	}
}

func TestSettingsForm_ShowsEffectiveDefaults(t *testing.T) {
	web, _ := newTestServer(t, nil)

	resp, err := http.Get(web.URL + "/settings")
	if err != nil {
		t.Fatalf("GET /settings: %v", err)
	}
	defer resp.Body.Close()
	out := readBody(t, resp)

	if !strings.Contains(out, `name="server_url"`) || !strings.Contains(out, `name="theme"`) {
		t.Errorf("settings form incomplete:\n%s", out)
	}
	if !strings.Contains(out, `value="plain" selected`) {
		t.Errorf("default theme not preselected:\n%s", out)
	}
}

func TestInspect_FeatureFlagged(t *testing.T) {
	web, _ := newTestServer(t, nil)

	resp, err := http.Get(web.URL + "/inspect/0")
	if err != nil {
		t.Fatalf("GET /inspect/0: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, inspector must be off by default", resp.StatusCode)
	}
}

func TestInspect_ListsAllFieldsOfOneResult(t *testing.T) {
	web, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Features.FieldInspector = true
	})

	// Seed the held page first.
	seed, err := http.Get(web.URL + "/?q=architecture")
	if err != nil {
		t.Fatalf("seed search: %v", err)
	}
	seed.Body.Close()

	resp, err := http.Get(web.URL + "/inspect/0")
	if err != nil {
		t.Fatalf("GET /inspect/0: %v", err)
	}
	defer resp.Body.Close()
	out := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, field := range []string{"title", "url", "body"} {
		if !strings.Contains(out, "<th>"+field+"</th>") {
			t.Errorf("field %q missing from inspector:\n%s", field, out)
		}
	}
}

func TestHealthz(t *testing.T) {
	web, _ := newTestServer(t, nil)

	resp, err := http.Get(web.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK || body.Status != "ok" {
		t.Errorf("status = %d/%q", resp.StatusCode, body.Status)
	}
}

func TestMetricsEndpointServes(t *testing.T) {
	web, _ := newTestServer(t, nil)

	resp, err := http.Get(web.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
