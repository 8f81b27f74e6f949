// Package render dispatches facet and result-card rendering: a theme
// override when the active theme supplies one, the built-in fallback
// otherwise. Render functions write markup to an io.Writer and never touch
// anything beyond it; all other side effects live in the transport layer.
package render

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetview/internal/domain"
	"github.com/kailas-cloud/facetview/internal/fields"
	"github.com/kailas-cloud/facetview/internal/metrics"
	"github.com/kailas-cloud/facetview/internal/theme"
)

// Render point names, used in logs and metrics labels.
const (
	pointFacet = "facet"
	pointCard  = "result_card"
)

// Dispatcher resolves, per render pass, whether the active theme overrides a
// render point and falls back to the built-in rendering otherwise.
type Dispatcher struct {
	themes *theme.Manager
	handle theme.Handle
	logger *zap.Logger
}

// NewDispatcher creates a render dispatcher.
func NewDispatcher(themes *theme.Manager, handle theme.Handle, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{themes: themes, handle: handle, logger: logger}
}

// Facets renders every facet block into w. An error from a theme override is
// isolated to its item: logged, counted, skipped — the remaining facets still
// render.
func (d *Dispatcher) Facets(w io.Writer, facets []domain.Facet) error {
	desc, active := d.themes.ActiveDescriptor()
	for i := range facets {
		f := facets[i]
		if active && desc.Components.Facet != nil {
			markup, err := callFacetOverride(desc.Components.Facet, f, d.handle)
			if err != nil {
				d.reportItemError(pointFacet, desc.ID, f.Name(), err)
				continue
			}
			attrs := map[string]string{"data-facet-name": f.Name()}
			if desc.Events.FacetAttrs != nil {
				mergeAttrs(attrs, desc.Events.FacetAttrs(f))
			}
			if err := writeElement(w, "div", "fv-facet", attrs, markup); err != nil {
				return fmt.Errorf("render facet %q: %w", f.Name(), err)
			}
			continue
		}
		data := facetData{Facet: f}
		if active && desc.Events.FacetAttrs != nil {
			data.Attrs = attrString(desc.Events.FacetAttrs(f))
		}
		if err := builtins.ExecuteTemplate(w, "facet", data); err != nil {
			return fmt.Errorf("render facet %q: %w", f.Name(), err)
		}
	}
	return nil
}

// Results renders every result card of the page into w, with the same
// per-item isolation as Facets.
func (d *Dispatcher) Results(w io.Writer, page *domain.Page) error {
	desc, active := d.themes.ActiveDescriptor()
	for i, hit := range page.Hits() {
		if active && desc.Components.ResultCard != nil {
			markup, err := callCardOverride(desc.Components.ResultCard, hit, d.handle)
			if err != nil {
				d.reportItemError(pointCard, desc.ID, fmt.Sprintf("index %d", i), err)
				continue
			}
			attrs := map[string]string{"data-result-index": fmt.Sprintf("%d", i)}
			if desc.Events.CardAttrs != nil {
				mergeAttrs(attrs, desc.Events.CardAttrs(hit))
			}
			if err := writeElement(w, "article", "fv-result", attrs, markup); err != nil {
				return fmt.Errorf("render card %d: %w", i, err)
			}
			continue
		}
		data := d.cardData(i, hit)
		if active && desc.Events.CardAttrs != nil {
			data.Attrs = attrString(desc.Events.CardAttrs(hit))
		}
		if err := builtins.ExecuteTemplate(w, "card", data); err != nil {
			return fmt.Errorf("render card %d: %w", i, err)
		}
	}
	return nil
}

// ResultsInfo renders the "Results 1-10 of 12" line.
func (d *Dispatcher) ResultsInfo(w io.Writer, page *domain.Page) error {
	from, to := page.Window()
	data := struct {
		From, To, Total int
	}{from, to, page.Total()}
	if err := builtins.ExecuteTemplate(w, "results-info", data); err != nil {
		return fmt.Errorf("render results info: %w", err)
	}
	return nil
}

// Pagination renders a page-button window of at most maxButtons numbered
// links around the current page.
func (d *Dispatcher) Pagination(w io.Writer, page *domain.Page, maxButtons int) error {
	if maxButtons <= 0 {
		maxButtons = 5
	}
	count := page.PageCount()
	current := page.PageNumber()

	start := current - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > count {
		end = count
		if start > end-maxButtons+1 {
			start = end - maxButtons + 1
			if start < 1 {
				start = 1
			}
		}
	}

	type button struct {
		Number  int
		Current bool
	}
	var pages []button
	for n := start; n <= end; n++ {
		pages = append(pages, button{Number: n, Current: n == current})
	}
	data := struct {
		Pages      []button
		HasPrev    bool
		HasNext    bool
		Prev, Next int
	}{
		Pages:   pages,
		HasPrev: current > 1,
		HasNext: current < count,
		Prev:    current - 1,
		Next:    current + 1,
	}
	if err := builtins.ExecuteTemplate(w, "pagination", data); err != nil {
		return fmt.Errorf("render pagination: %w", err)
	}
	return nil
}

// DidYouMean renders the spelling suggestions, if any.
func (d *Dispatcher) DidYouMean(w io.Writer, page *domain.Page) error {
	data := struct{ Suggestions []string }{page.Suggestions()}
	if err := builtins.ExecuteTemplate(w, "didyoumean", data); err != nil {
		return fmt.Errorf("render didyoumean: %w", err)
	}
	return nil
}

// facetData feeds the built-in facet template.
type facetData struct {
	Facet domain.Facet
	Attrs template.HTMLAttr
}

// cardData feeds the built-in card template.
type cardData struct {
	Index       int
	Title       string
	Link        string
	Description string
	Date        string
	Language    string
	Snippets    []template.HTML
	Attrs       template.HTMLAttr
}

func (d *Dispatcher) cardData(index int, hit domain.Hit) cardData {
	data := cardData{
		Index:       index,
		Title:       d.handle.Field(hit.Result, fields.Title),
		Link:        d.handle.Field(hit.Result, fields.Link),
		Description: d.handle.Field(hit.Result, fields.Description),
		Date:        d.handle.FormatDate(hit.Result),
		Language:    d.handle.Field(hit.Result, fields.Language),
	}
	// Highlight snippets arrive pre-marked from the backend (<em> wrapping).
	for _, snippets := range hit.Highlight {
		for _, s := range snippets {
			data.Snippets = append(data.Snippets, template.HTML(s)) //nolint:gosec // backend-provided highlight markup
		}
	}
	return data
}

func (d *Dispatcher) reportItemError(point, themeID, item string, err error) {
	metrics.RenderItemErrorsTotal.WithLabelValues(point, themeID).Inc()
	d.logger.Error("theme override failed, skipping item",
		zap.String("point", point),
		zap.String("theme", themeID),
		zap.String("item", item),
		zap.Error(err),
	)
}

// callFacetOverride invokes a theme's facet renderer, converting panics into
// errors so one bad item cannot abort the whole pass.
func callFacetOverride(fn theme.RenderFunc, f domain.Facet, h theme.Handle) (markup string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("override panicked: %v", r)
		}
	}()
	return fn(f, h)
}

func callCardOverride(fn theme.CardFunc, hit domain.Hit, h theme.Handle) (markup string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("override panicked: %v", r)
		}
	}()
	return fn(hit, h)
}

// writeElement wraps theme-produced markup in a container that carries the
// data attributes later event handling addresses.
func writeElement(w io.Writer, tag, class string, attrs map[string]string, inner string) error {
	var b strings.Builder
	b.WriteString("<" + tag + ` class="` + class + `"`)
	b.WriteString(string(attrString(attrs)))
	b.WriteString(">")
	b.WriteString(inner)
	b.WriteString("</" + tag + ">\n")
	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write element: %w", err)
	}
	return nil
}

func mergeAttrs(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

// attrString renders an attribute map deterministically (sorted by key) with
// escaped values.
func attrString(attrs map[string]string) template.HTMLAttr {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(" " + k + `="` + html.EscapeString(attrs[k]) + `"`)
	}
	return template.HTMLAttr(b.String()) //nolint:gosec // keys are code-supplied, values escaped
}
