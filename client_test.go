package facetview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/domain"
	"github.com/kailas-cloud/facetview/internal/theme"
)

type stubClient struct {
	page *domain.Page
}

func (s *stubClient) Search(context.Context, string) (*domain.Page, error) { return s.page, nil }
func (s *stubClient) Filter(context.Context, string, []string) (*domain.Page, error) {
	return s.page, nil
}
func (s *stubClient) Page(context.Context, int) (*domain.Page, error)       { return s.page, nil }
func (s *stubClient) ResetFacets(context.Context) (*domain.Page, error)     { return s.page, nil }
func (s *stubClient) Suggest(context.Context, string) ([]string, error)     { return nil, nil }
func (s *stubClient) SetCustomParam(string, string)                         {}
func (s *stubClient) DeleteCustomParam(string)                              {}

func testConfig() config.Config {
	cfg := config.Config{}
	cfg.Server.URL = "http://backend:8983"
	cfg.Server.Index = "docs"
	cfg.ResultFields.Title.Field = "title"
	cfg.ResultFields.Link.Fields = []string{"url"}
	cfg.ResultFields.Description.Fields = []string{"body"}
	cfg.ApplyDefaults()
	return cfg
}

func testHits(t *testing.T, n int) []domain.Hit {
	t.Helper()
	hits := make([]domain.Hit, n)
	for i := range hits {
		hits[i] = domain.Hit{Result: domain.Result{
			"title": "Doc", "url": "http://d", "body": "text",
		}}
	}
	return hits
}

func TestNew_WiresDefaultsAndActivatesConfiguredTheme(t *testing.T) {
	page, err := domain.NewPage(testHits(t, 3), nil, 3, 10, 1, nil)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	ui, err := New(
		WithConfig(testConfig()),
		WithSearchClient(&stubClient{page: page}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ui.Themes().State() != theme.Active {
		t.Errorf("state = %v, want active startup theme", ui.Themes().State())
	}
	if d, _ := ui.Themes().ActiveDescriptor(); d.ID != "plain" {
		t.Errorf("active theme = %q, want configured default", d.ID)
	}
	if got := ui.Registry().IDs(); len(got) != 2 {
		t.Errorf("registered themes = %v, want the built-ins", got)
	}
}

func TestNew_RejectsIncompleteConfig(t *testing.T) {
	_, err := New(
		WithConfig(config.Config{}),
		WithSearchClient(&stubClient{}),
	)
	if err == nil {
		t.Fatal("New accepted a config with no required fields")
	}
	var cfgErr *config.Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *config.Error", err)
	}
	if len(cfgErr.Missing) == 0 {
		t.Error("config error lists no missing fields")
	}
}

func TestNew_CustomThemeAndInitialOverride(t *testing.T) {
	ui, err := New(
		WithConfig(testConfig()),
		WithSearchClient(&stubClient{}),
		WithTheme(theme.Descriptor{ID: "dark", Name: "Dark"}),
		WithInitialTheme("dark"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d, _ := ui.Themes().ActiveDescriptor(); d.ID != "dark" {
		t.Errorf("active theme = %q, want override", d.ID)
	}
}

func TestSearch_RunsHooksAndHoldsPage(t *testing.T) {
	page, err := domain.NewPage(testHits(t, 1), nil, 1, 10, 1, nil)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	var gotQuery string
	ui, err := New(
		WithConfig(testConfig()),
		WithSearchClient(&stubClient{page: page}),
		WithPreSearchHook(func(_ context.Context, q string) string {
			gotQuery = q
			return q
		}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := ui.Search(context.Background(), "go"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "go" {
		t.Errorf("pre-search hook saw %q", gotQuery)
	}
	if ui.CurrentPage() != page {
		t.Error("page not held after search")
	}
}

func TestCompactTheme_OverridesResultCard(t *testing.T) {
	hits := []domain.Hit{{Result: domain.Result{
		"title": "Go & You", "url": "http://example.com/go", "body": "All about Go.",
	}}}
	page, err := domain.NewPage(hits, nil, 1, 10, 1, nil)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	ui, err := New(
		WithConfig(testConfig()),
		WithSearchClient(&stubClient{page: page}),
		WithInitialTheme("compact"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var b strings.Builder
	if err := ui.Renderer().Results(&b, page); err != nil {
		t.Fatalf("Results: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, `data-density="compact"`) {
		t.Errorf("missing compact card attrs:\n%s", out)
	}
	if !strings.Contains(out, "Go &amp; You") {
		t.Errorf("title not escaped in override markup:\n%s", out)
	}
	if !strings.Contains(out, `href="http://example.com/go"`) {
		t.Errorf("link missing:\n%s", out)
	}
}
