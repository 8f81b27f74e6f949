package searchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetview/internal/domain"
	"github.com/kailas-cloud/facetview/internal/metrics"
)

// Compile-time check: HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// facetParamPrefix marks per-facet selection parameters, e.g. f.mime_type=pdf.
const facetParamPrefix = "f."

// Config holds the search backend connection settings.
type Config struct {
	URL          string
	Index        string
	PageSize     int
	Timeout      time.Duration
	DisplayNames map[string]string
	Logger       *zap.Logger
}

// HTTPClient talks to a JSON search API at {url}/{index}/search.
// It owns the accumulated query state: term, facet selections, and custom
// parameters.
type HTTPClient struct {
	base         *url.URL
	index        string
	pageSize     int
	displayNames map[string]string
	httpc        *http.Client
	logger       *zap.Logger

	mu         sync.Mutex
	query      string
	selections map[string][]string
	custom     map[string]string
}

// NewHTTPClient creates a search client for the given backend.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	base, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", cfg.URL, err)
	}
	if cfg.Index == "" {
		return nil, fmt.Errorf("index is required")
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		base:         base,
		index:        cfg.Index,
		pageSize:     pageSize,
		displayNames: cfg.DisplayNames,
		httpc:        &http.Client{Timeout: timeout},
		logger:       logger,
		selections:   make(map[string][]string),
		custom:       make(map[string]string),
	}, nil
}

// Search runs a free-text query. Facet selections and custom parameters carry
// over; the term is replaced.
func (c *HTTPClient) Search(ctx context.Context, query string) (*domain.Page, error) {
	c.mu.Lock()
	c.query = query
	c.mu.Unlock()
	return c.fetch(ctx, 1)
}

// Filter replaces one facet's selection set and re-runs the current query.
func (c *HTTPClient) Filter(ctx context.Context, facet string, values []string) (*domain.Page, error) {
	if facet == "" {
		return nil, fmt.Errorf("facet name is required")
	}
	c.mu.Lock()
	if len(values) == 0 {
		delete(c.selections, facet)
	} else {
		c.selections[facet] = append([]string(nil), values...)
	}
	c.mu.Unlock()
	return c.fetch(ctx, 1)
}

// Page fetches the given 1-based page of the current query.
func (c *HTTPClient) Page(ctx context.Context, n int) (*domain.Page, error) {
	if n <= 0 {
		n = 1
	}
	return c.fetch(ctx, n)
}

// ResetFacets clears every facet selection and re-runs the current query.
func (c *HTTPClient) ResetFacets(ctx context.Context) (*domain.Page, error) {
	c.mu.Lock()
	c.selections = make(map[string][]string)
	c.mu.Unlock()
	return c.fetch(ctx, 1)
}

// Suggest returns autocomplete suggestions for a partial term.
func (c *HTTPClient) Suggest(ctx context.Context, term string) ([]string, error) {
	u := c.endpoint("suggest")
	q := u.Query()
	q.Set("term", term)
	u.RawQuery = q.Encode()

	var dto struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.getJSON(ctx, "suggest", u.String(), &dto); err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return dto.Suggestions, nil
}

// SetCustomParam sets a named parameter sent verbatim with every request.
func (c *HTTPClient) SetCustomParam(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.custom[key] = value
}

// DeleteCustomParam removes a previously set custom parameter.
func (c *HTTPClient) DeleteCustomParam(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.custom, key)
}

// fetch executes the search request for one page and decodes the result.
func (c *HTTPClient) fetch(ctx context.Context, page int) (*domain.Page, error) {
	u := c.endpoint("search")

	c.mu.Lock()
	q := u.Query()
	q.Set("q", c.query)
	q.Set("page", strconv.Itoa(page))
	q.Set("rows", strconv.Itoa(c.pageSize))
	for facet, values := range c.selections {
		for _, v := range values {
			q.Add(facetParamPrefix+facet, v)
		}
	}
	for k, v := range c.custom {
		q.Set(k, v)
	}
	c.mu.Unlock()
	u.RawQuery = q.Encode()

	var dto responseDTO
	if err := c.getJSON(ctx, "search", u.String(), &dto); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	result, err := dto.toPage(c.pageSize, c.displayNames)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if result.PageNumber() == 1 && page != 1 {
		// Backend omitted the page number; trust the requested one.
		result, err = domain.NewPage(
			result.Hits(), result.Facets(), result.Total(),
			result.PageSize(), page, result.Suggestions(),
		)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
	}
	return result, nil
}

func (c *HTTPClient) endpoint(op string) *url.URL {
	return c.base.JoinPath(c.index, op)
}

func (c *HTTPClient) getJSON(ctx context.Context, op, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	c.logger.Debug("backend_request",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("backend status %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
