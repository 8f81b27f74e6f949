// Package fields resolves logical result fields (title, link, description,
// date, ...) to physical backend fields through the configured mapping.
package fields

import (
	"strconv"
	"time"

	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/domain"
)

// Logical field names understood by the extractor.
const (
	Title       = "title"
	Link        = "link"
	Description = "description"
	Date        = "date"
	Language    = "language"
)

// Extractor resolves result fields and formats dates per configuration.
type Extractor struct {
	mappings   map[string]config.FieldMapping
	dateLayout string
	dateFall   string
}

// New creates an Extractor from the result-field configuration.
func New(rf config.ResultFieldsConfig, ui config.UIConfig) *Extractor {
	return &Extractor{
		mappings: map[string]config.FieldMapping{
			Title:       rf.Title,
			Link:        rf.Link,
			Description: rf.Description,
			Date:        rf.Date,
			Language:    rf.Language,
		},
		dateLayout: ui.DateLayout,
		dateFall:   ui.DateFallback,
	}
}

// Field resolves a logical name through the configured mapping: an ordered
// candidate list where the first non-empty physical field wins. Array-valued
// fields reduce to their first element. Returns the configured fallback when
// nothing resolves.
func (e *Extractor) Field(r domain.Result, logical string) string {
	m, ok := e.mappings[logical]
	if !ok {
		// Unknown logical name: treat it as a physical field.
		v, _ := r.First(logical)
		return v
	}
	for _, candidate := range m.Candidates() {
		if v, ok := r.First(candidate); ok {
			return v
		}
	}
	return m.Fallback
}

// FormatDate resolves the date field, parses it, and formats it with the
// configured layout. Missing or unparseable input yields the configured
// fallback string. Never returns an error.
func (e *Extractor) FormatDate(r domain.Result) string {
	raw := e.Field(r, Date)
	if raw == "" || raw == e.mappings[Date].Fallback {
		return e.dateFall
	}
	t, ok := parseTimestamp(raw)
	if !ok {
		return e.dateFall
	}
	return t.Format(e.dateLayout)
}

// parseTimestamp accepts RFC3339, date-only, and epoch seconds/milliseconds.
func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		// Heuristic: values this large are epoch milliseconds.
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), true
		}
		return time.Unix(n, 0).UTC(), true
	}
	return time.Time{}, false
}
