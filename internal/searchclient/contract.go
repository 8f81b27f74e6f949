// Package searchclient is the boundary to the external search service.
// The core never implements search itself; it drives this client and renders
// whatever page comes back.
package searchclient

import (
	"context"

	"github.com/kailas-cloud/facetview/internal/domain"
)

// Client is the consumed surface of the external search service.
// Implementations own the query state the backend expects: the current term,
// per-facet selections, and named custom parameters.
type Client interface {
	// Search runs a free-text query and returns the first result page.
	Search(ctx context.Context, query string) (*domain.Page, error)

	// Filter replaces the selection set of one facet and re-runs the query.
	// An empty value list clears that facet's selection.
	Filter(ctx context.Context, facet string, values []string) (*domain.Page, error)

	// Page fetches the given 1-based page of the current query.
	Page(ctx context.Context, n int) (*domain.Page, error)

	// ResetFacets clears every facet selection and re-runs the query.
	ResetFacets(ctx context.Context) (*domain.Page, error)

	// Suggest returns autocomplete suggestions for a partial term.
	Suggest(ctx context.Context, term string) ([]string, error)

	// SetCustomParam sets a named custom query parameter sent verbatim with
	// every subsequent request.
	SetCustomParam(key, value string)

	// DeleteCustomParam removes a previously set custom parameter.
	DeleteCustomParam(key string)
}
