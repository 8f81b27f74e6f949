package searchclient

import (
	"fmt"

	"github.com/kailas-cloud/facetview/internal/domain"
)

// responseDTO tolerates the response shapes observed from deployed backends.
// Total count, page size, and page number each have several field aliases,
// tried in sequence; all are accepted rather than picking one authoritative
// name, since the backend contract is undocumented on this point.
type responseDTO struct {
	Results []docDTO `json:"results"`
	Docs    []docDTO `json:"docs"`

	Facets []facetDTO `json:"facets"`

	NumRows      *int `json:"numRows"`
	TotalHits    *int `json:"totalHits"`
	TotalResults *int `json:"totalResults"`
	Total        *int `json:"total"`

	Rows     *int `json:"rows"`
	PageSize *int `json:"pageSize"`

	Page       *int `json:"page"`
	PageNumber *int `json:"pageNumber"`

	Suggestions []string `json:"suggestions"`
	DidYouMean  []string `json:"didYouMean"`
}

type docDTO struct {
	Fields     domain.Result       `json:"fields"`
	Highlights map[string][]string `json:"highlights"`
}

type facetDTO struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName"`
	Counts      []countDTO `json:"counts"`
	Selected    []string   `json:"selected"`
}

type countDTO struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func firstInt(candidates ...*int) (int, bool) {
	for _, c := range candidates {
		if c != nil {
			return *c, true
		}
	}
	return 0, false
}

// toPage converts the decoded response into a domain Page.
// displayNames renames facets for presentation without touching their filter
// identity.
func (d *responseDTO) toPage(defaultRows int, displayNames map[string]string) (*domain.Page, error) {
	docs := d.Results
	if len(docs) == 0 && len(d.Docs) > 0 {
		docs = d.Docs
	}

	hits := make([]domain.Hit, 0, len(docs))
	for _, doc := range docs {
		hits = append(hits, domain.Hit{
			Result:    doc.Fields,
			Highlight: doc.Highlights,
		})
	}

	facets := make([]domain.Facet, 0, len(d.Facets))
	for _, fd := range d.Facets {
		counts := make([]domain.ValueCount, 0, len(fd.Counts))
		for _, c := range fd.Counts {
			counts = append(counts, domain.ValueCount{Value: c.Value, Count: c.Count})
		}
		f, err := domain.NewFacet(fd.Name, counts, fd.Selected)
		if err != nil {
			return nil, fmt.Errorf("decode facet: %w", err)
		}
		if fd.DisplayName != "" {
			f = f.WithDisplayName(fd.DisplayName)
		} else if name, ok := displayNames[fd.Name]; ok {
			f = f.WithDisplayName(name)
		}
		facets = append(facets, f)
	}

	total, ok := firstInt(d.NumRows, d.TotalHits, d.TotalResults, d.Total)
	if !ok {
		total = len(hits)
	}
	pageSize, ok := firstInt(d.Rows, d.PageSize)
	if !ok {
		pageSize = defaultRows
	}
	pageNumber, _ := firstInt(d.Page, d.PageNumber)

	suggestions := d.Suggestions
	if len(suggestions) == 0 {
		suggestions = d.DidYouMean
	}

	page, err := domain.NewPage(hits, facets, total, pageSize, pageNumber, suggestions)
	if err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return page, nil
}
