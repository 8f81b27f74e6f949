// Package theme manages pluggable presentation themes: a registry of
// descriptors and the activation lifecycle. A theme may override how facets
// and result cards render; everything it does not override falls back to the
// built-in rendering.
package theme

import (
	"context"

	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/domain"
	"github.com/kailas-cloud/facetview/internal/searchclient"
)

// Handle is the capability surface handed to theme code. It exposes field
// extraction, date formatting, filtering, the effective configuration
// (read-only), and the underlying search client.
type Handle interface {
	Field(r domain.Result, logical string) string
	FormatDate(r domain.Result) string
	Filter(ctx context.Context, facet string, values []string) (*domain.Page, error)
	Config() *config.Config
	Client() searchclient.Client
}

// RenderFunc produces markup for one facet.
type RenderFunc func(f domain.Facet, h Handle) (string, error)

// CardFunc produces markup for one result card.
type CardFunc func(hit domain.Hit, h Handle) (string, error)

// Components are the optional render-point overrides a theme may supply.
// A nil member means "use the built-in rendering for that point".
type Components struct {
	Facet      RenderFunc
	ResultCard CardFunc
}

// AttrFunc contributes extra attributes to a rendered facet element.
type AttrFunc func(f domain.Facet) map[string]string

// CardAttrFunc contributes extra attributes to a rendered result card.
type CardAttrFunc func(hit domain.Hit) map[string]string

// Events are the optional per-element interaction hooks: attribute sets
// attached to the produced elements so theme scripts can address them.
type Events struct {
	FacetAttrs AttrFunc
	CardAttrs  CardAttrFunc
}

// Descriptor bundles everything a theme provides, keyed by its id.
type Descriptor struct {
	ID          string
	Name        string
	Description string
	// Stylesheet is the stylesheet reference attached while the theme is
	// active, e.g. "/static/themes/compact.css".
	Stylesheet string
	Components Components
	Events     Events
	// Init runs when the theme becomes active.
	Init func(h Handle) error
	// Destroy runs when the theme is deactivated.
	Destroy func(h Handle) error
}
