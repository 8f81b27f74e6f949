package searchclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// backendStub serves canned responses and records request parameters.
type backendStub struct {
	response  map[string]any
	status    int
	lastQuery url.Values
	lastPath  string
}

func (b *backendStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.lastQuery = r.URL.Query()
		b.lastPath = r.URL.Path
		if b.status != 0 && b.status != http.StatusOK {
			w.WriteHeader(b.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(b.response)
	})
}

func newTestClient(t *testing.T, stub *backendStub) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(Config{URL: srv.URL, Index: "docs", PageSize: 10})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return c
}

func TestSearch_DecodesPage(t *testing.T) {
	stub := &backendStub{response: map[string]any{
		"results": []map[string]any{
			{"fields": map[string]any{"title_t": "one"}, "highlights": map[string]any{"content": []string{"<em>one</em>"}}},
			{"fields": map[string]any{"title_t": "two"}},
		},
		"facets": []map[string]any{
			{
				"name":     "mime_type",
				"counts":   []map[string]any{{"value": "pdf", "count": 7}, {"value": "html", "count": 5}},
				"selected": []string{"pdf"},
			},
		},
		"numRows":     12,
		"rows":        10,
		"page":        1,
		"suggestions": []string{"architecture"},
	}}
	c := newTestClient(t, stub)

	page, err := c.Search(context.Background(), "architectur")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if stub.lastPath != "/docs/search" {
		t.Errorf("path = %q, want /docs/search", stub.lastPath)
	}
	if got := stub.lastQuery.Get("q"); got != "architectur" {
		t.Errorf("q = %q", got)
	}
	if len(page.Hits()) != 2 {
		t.Fatalf("hits = %d, want 2", len(page.Hits()))
	}
	if page.Total() != 12 || page.PageSize() != 10 || page.PageNumber() != 1 {
		t.Errorf("pagination = %d/%d/%d", page.Total(), page.PageSize(), page.PageNumber())
	}
	if len(page.Facets()) != 1 || !page.Facets()[0].IsSelected("pdf") {
		t.Errorf("facets decoded wrong: %+v", page.Facets())
	}
	if len(page.Suggestions()) != 1 || page.Suggestions()[0] != "architecture" {
		t.Errorf("suggestions = %v", page.Suggestions())
	}
	if snippets := page.Hits()[0].Highlight["content"]; len(snippets) != 1 {
		t.Errorf("highlights = %v", page.Hits()[0].Highlight)
	}
}

func TestSearch_TotalCountAliases(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"numRows", map[string]any{"numRows": 41}, 41},
		{"totalHits", map[string]any{"totalHits": 42}, 42},
		{"totalResults", map[string]any{"totalResults": 43}, 43},
		{"total", map[string]any{"total": 44}, 44},
		{"numRows wins over total", map[string]any{"numRows": 41, "total": 99}, 41},
		{"none falls back to hit count", map[string]any{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, &backendStub{response: tt.body})
			page, err := c.Search(context.Background(), "x")
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if page.Total() != tt.want {
				t.Errorf("Total() = %d, want %d", page.Total(), tt.want)
			}
		})
	}
}

func TestFilter_SendsSelectionsAndCustomParams(t *testing.T) {
	stub := &backendStub{response: map[string]any{"total": 0}}
	c := newTestClient(t, stub)

	c.SetCustomParam("dates", "[2020-01-01 TO *]")
	if _, err := c.Filter(context.Background(), "mime_type", []string{"pdf", "html"}); err != nil {
		t.Fatalf("Filter: %v", err)
	}

	if got := stub.lastQuery["f.mime_type"]; len(got) != 2 || got[0] != "pdf" || got[1] != "html" {
		t.Errorf("f.mime_type = %v", got)
	}
	if got := stub.lastQuery.Get("dates"); got != "[2020-01-01 TO *]" {
		t.Errorf("dates = %q", got)
	}

	// Clearing the custom param removes it from subsequent requests.
	c.DeleteCustomParam("dates")
	if _, err := c.Filter(context.Background(), "mime_type", nil); err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if _, ok := stub.lastQuery["dates"]; ok {
		t.Error("deleted custom param still sent")
	}
	if _, ok := stub.lastQuery["f.mime_type"]; ok {
		t.Error("cleared facet selection still sent")
	}
}

func TestResetFacets_ClearsAllSelections(t *testing.T) {
	stub := &backendStub{response: map[string]any{"total": 0}}
	c := newTestClient(t, stub)

	if _, err := c.Filter(context.Background(), "mime_type", []string{"pdf"}); err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if _, err := c.Filter(context.Background(), "language", []string{"en"}); err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if _, err := c.ResetFacets(context.Background()); err != nil {
		t.Fatalf("ResetFacets: %v", err)
	}
	for _, key := range []string{"f.mime_type", "f.language"} {
		if _, ok := stub.lastQuery[key]; ok {
			t.Errorf("%s still sent after reset", key)
		}
	}
}

func TestPage_RequestsPageNumber(t *testing.T) {
	stub := &backendStub{response: map[string]any{"total": 30, "rows": 10}}
	c := newTestClient(t, stub)

	page, err := c.Page(context.Background(), 3)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if got := stub.lastQuery.Get("page"); got != "3" {
		t.Errorf("page param = %q, want 3", got)
	}
	// Backend omitted the page number; the requested one is trusted.
	if page.PageNumber() != 3 {
		t.Errorf("PageNumber() = %d, want 3", page.PageNumber())
	}
}

func TestSearch_BackendErrorSurfaces(t *testing.T) {
	c := newTestClient(t, &backendStub{status: http.StatusInternalServerError})
	if _, err := c.Search(context.Background(), "x"); err == nil {
		t.Error("expected error on backend 500")
	}
}

func TestSuggest(t *testing.T) {
	stub := &backendStub{response: map[string]any{"suggestions": []string{"architecture", "archive"}}}
	c := newTestClient(t, stub)

	got, err := c.Suggest(context.Background(), "arch")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if stub.lastPath != "/docs/suggest" {
		t.Errorf("path = %q", stub.lastPath)
	}
	if len(got) != 2 || got[0] != "architecture" {
		t.Errorf("suggestions = %v", got)
	}
}
