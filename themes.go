package facetview

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/facetview/internal/domain"
	"github.com/kailas-cloud/facetview/internal/fields"
	"github.com/kailas-cloud/facetview/internal/theme"
)

// BuiltinThemes returns the descriptors registered by default: "plain"
// renders everything through the built-in templates, "compact" overrides the
// result card with a single-line variant.
func BuiltinThemes() []theme.Descriptor {
	return []theme.Descriptor{
		{
			ID:          "plain",
			Name:        "Plain",
			Description: "Default rendering with no overrides.",
			Stylesheet:  "/static/themes/plain.css",
		},
		{
			ID:          "compact",
			Name:        "Compact",
			Description: "Dense single-line result cards.",
			Stylesheet:  "/static/themes/compact.css",
			Components: theme.Components{
				ResultCard: compactCard,
			},
			Events: theme.Events{
				CardAttrs: func(domain.Hit) map[string]string {
					return map[string]string{"data-density": "compact"}
				},
			},
		},
	}
}

// compactCard renders one result as a single line: linked title, date, and a
// truncated description.
func compactCard(hit domain.Hit, h theme.Handle) (string, error) {
	title := h.Field(hit.Result, fields.Title)
	link := h.Field(hit.Result, fields.Link)
	desc := truncate(h.Field(hit.Result, fields.Description), 120)
	date := h.FormatDate(hit.Result)

	var b strings.Builder
	if link != "" {
		fmt.Fprintf(&b, `<a href="%s">%s</a>`, html.EscapeString(link), html.EscapeString(title))
	} else {
		b.WriteString(html.EscapeString(title))
	}
	fmt.Fprintf(&b, ` <span class="compact-date">%s</span>`, html.EscapeString(date))
	if desc != "" {
		fmt.Fprintf(&b, ` <span class="compact-desc">%s</span>`, html.EscapeString(desc))
	}
	return b.String(), nil
}

// truncate shortens s to at most max bytes, backing up to a rune boundary so
// a multi-byte character is never cut mid-sequence, then to the last space so
// words stay whole.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	cut := s[:max]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
