package orchestrator

import (
	"context"

	"github.com/kailas-cloud/facetview/internal/domain"
)

// SearchClient is the consumer interface over the external search client.
type SearchClient interface {
	Search(ctx context.Context, query string) (*domain.Page, error)
	Filter(ctx context.Context, facet string, values []string) (*domain.Page, error)
	Page(ctx context.Context, n int) (*domain.Page, error)
	ResetFacets(ctx context.Context) (*domain.Page, error)
	SetCustomParam(key, value string)
	DeleteCustomParam(key string)
}
