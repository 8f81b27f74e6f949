// Package orchestrator drives search, filter, and paging actions against the
// external search client and owns the single current result page.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/domain"
	"github.com/kailas-cloud/facetview/internal/metrics"
)

// PreSearchFunc transforms the query string before it reaches the backend.
type PreSearchFunc func(ctx context.Context, query string) string

// PostSearchFunc transforms the result page before it is committed.
type PostSearchFunc func(ctx context.Context, page *domain.Page) *domain.Page

// Hooks transform the query before and the page after a search call.
type Hooks struct {
	PreSearch  PreSearchFunc
	PostSearch PostSearchFunc
}

// FilterRequest carries one filter action: a facet's new selection set plus
// the optional date boundaries from the two date inputs.
type FilterRequest struct {
	Facet  string
	Values []string
	Reset  bool
	Dates  DateRange
}

// Service orchestrates calls against the external search client. Every
// successful action replaces the current page atomically before any
// rendering reads from it. Overlapping actions are sequenced: a response
// belonging to anything but the latest issued request is discarded.
type Service struct {
	client      SearchClient
	hooks       Hooks
	logger      *zap.Logger
	dateEnabled bool
	dateParam   string

	seq atomic.Uint64

	mu      sync.Mutex
	current *domain.Page
	dates   DateRange
}

// New creates an orchestrator service.
func New(client SearchClient, cfg *config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:      client,
		logger:      logger,
		dateEnabled: cfg.Features.DateFilter,
		dateParam:   cfg.DateFilter.Param,
	}
}

// WithHooks attaches pre/post search hooks.
func (s *Service) WithHooks(h Hooks) *Service {
	s.hooks = h
	return s
}

// Current returns the held result page, nil when none.
func (s *Service) Current() *domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentDates returns the date constraint applied to the search client,
// zero when none. The page shell echoes it back into the date inputs.
func (s *Service) CurrentDates() DateRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dates
}

// Search runs a free-text query. Failures are caught here: logged and
// returned as a wrapped ErrSearchFailed, never propagated further up raw.
func (s *Service) Search(ctx context.Context, query string) (*domain.Page, error) {
	seq := s.seq.Add(1)

	if s.hooks.PreSearch != nil {
		query = s.hooks.PreSearch(ctx, query)
	}

	page, err := s.client.Search(ctx, query)
	if err != nil {
		metrics.SearchOpsTotal.WithLabelValues("search", "error").Inc()
		s.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	if s.hooks.PostSearch != nil {
		page = s.hooks.PostSearch(ctx, page)
	}

	if !s.commit(seq, page) {
		return nil, domain.ErrStaleResponse
	}
	metrics.SearchOpsTotal.WithLabelValues("search", "ok").Inc()
	return page, nil
}

// Filter applies one facet's selection set, folding in the date-range custom
// parameter when date filtering is enabled. On failure the previously held
// page stays untouched.
func (s *Service) Filter(ctx context.Context, req FilterRequest) (*domain.Page, error) {
	seq := s.seq.Add(1)

	values := req.Values
	if req.Reset {
		values = nil
	}

	if s.dateEnabled {
		if expr := req.Dates.Expression(); expr != "" {
			s.client.SetCustomParam(s.dateParam, expr)
		} else {
			s.client.DeleteCustomParam(s.dateParam)
		}
		s.mu.Lock()
		s.dates = req.Dates
		s.mu.Unlock()
	}

	// A request naming no facet only changes the date constraint: re-run the
	// current query at page 1 with selections untouched.
	var page *domain.Page
	var err error
	if req.Facet == "" {
		page, err = s.client.Page(ctx, 1)
	} else {
		page, err = s.client.Filter(ctx, req.Facet, values)
	}
	if err != nil {
		metrics.SearchOpsTotal.WithLabelValues("filter", "error").Inc()
		s.logger.Error("filter failed",
			zap.String("facet", req.Facet),
			zap.Strings("values", values),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrFilterFailed, err)
	}

	if !s.commit(seq, page) {
		return nil, domain.ErrStaleResponse
	}
	metrics.SearchOpsTotal.WithLabelValues("filter", "ok").Inc()
	return page, nil
}

// Page fetches the given page of the current query. Requires a held page;
// facets are not refetched by the caller, only results and pagination change.
func (s *Service) Page(ctx context.Context, n int) (*domain.Page, error) {
	if s.Current() == nil {
		return nil, domain.ErrNoPage
	}
	seq := s.seq.Add(1)

	page, err := s.client.Page(ctx, n)
	if err != nil {
		metrics.SearchOpsTotal.WithLabelValues("page", "error").Inc()
		s.logger.Error("page fetch failed", zap.Int("page", n), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	if !s.commit(seq, page) {
		return nil, domain.ErrStaleResponse
	}
	metrics.SearchOpsTotal.WithLabelValues("page", "ok").Inc()
	return page, nil
}

// ResetFacets clears every facet selection and the date constraint.
func (s *Service) ResetFacets(ctx context.Context) (*domain.Page, error) {
	seq := s.seq.Add(1)

	if s.dateEnabled {
		s.client.DeleteCustomParam(s.dateParam)
		s.mu.Lock()
		s.dates = DateRange{}
		s.mu.Unlock()
	}

	page, err := s.client.ResetFacets(ctx)
	if err != nil {
		metrics.SearchOpsTotal.WithLabelValues("reset", "error").Inc()
		s.logger.Error("facet reset failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrFilterFailed, err)
	}

	if !s.commit(seq, page) {
		return nil, domain.ErrStaleResponse
	}
	metrics.SearchOpsTotal.WithLabelValues("reset", "ok").Inc()
	return page, nil
}

// commit replaces the current page if seq still belongs to the latest issued
// request; a stale response is dropped so the newest action wins the render.
func (s *Service) commit(seq uint64, page *domain.Page) bool {
	if seq != s.seq.Load() {
		metrics.StaleResponsesTotal.Inc()
		s.logger.Debug("discarding stale response", zap.Uint64("seq", seq))
		return false
	}
	s.mu.Lock()
	s.current = page
	s.mu.Unlock()
	return true
}
