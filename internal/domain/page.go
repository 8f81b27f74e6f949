package domain

import "fmt"

// Page is one fetched slice of search results plus its facets, pagination
// state, and spelling suggestions. A page is replaced wholesale on every
// search, filter, or paging action — never patched in place.
type Page struct {
	hits        []Hit
	facets      []Facet
	total       int
	pageSize    int
	pageNumber  int
	suggestions []string
}

// NewPage validates and creates a Page. pageNumber is 1-based.
func NewPage(
	hits []Hit, facets []Facet, total, pageSize, pageNumber int, suggestions []string,
) (*Page, error) {
	if total < 0 {
		return nil, fmt.Errorf("total must be non-negative, got %d", total)
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	if pageNumber <= 0 {
		pageNumber = 1
	}
	return &Page{
		hits:        hits,
		facets:      facets,
		total:       total,
		pageSize:    pageSize,
		pageNumber:  pageNumber,
		suggestions: suggestions,
	}, nil
}

// Hits returns the ordered result/highlight pairs of this page.
func (p *Page) Hits() []Hit { return p.hits }

// Facets returns the facet list delivered with this page.
func (p *Page) Facets() []Facet { return p.facets }

// Total returns the total number of matching documents.
func (p *Page) Total() int { return p.total }

// PageSize returns the number of results per page.
func (p *Page) PageSize() int { return p.pageSize }

// PageNumber returns the 1-based current page number.
func (p *Page) PageNumber() int { return p.pageNumber }

// Suggestions returns the "did you mean" spelling suggestions.
func (p *Page) Suggestions() []string { return p.suggestions }

// PageCount returns the number of pages covering Total.
func (p *Page) PageCount() int {
	if p.total == 0 {
		return 0
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// Window returns the 1-based inclusive result range shown on this page,
// e.g. 1..10 for the first page of 12 results. Returns 0, 0 on an empty page.
func (p *Page) Window() (from, to int) {
	if p.total == 0 {
		return 0, 0
	}
	from = (p.pageNumber-1)*p.pageSize + 1
	to = from + p.pageSize - 1
	if to > p.total {
		to = p.total
	}
	if from > p.total {
		return 0, 0
	}
	return from, to
}
