package domain

import "fmt"

// ValueCount is a single facet bucket: a value and its document count.
type ValueCount struct {
	Value string
	Count int
}

// Facet is a filterable field dimension: ordered value/count buckets plus the
// current selection set. The field name is the filter identity; a display
// name override never changes it.
type Facet struct {
	name        string
	displayName string
	counts      []ValueCount
	selected    map[string]struct{}
}

// NewFacet validates and creates a Facet.
func NewFacet(name string, counts []ValueCount, selected []string) (Facet, error) {
	if name == "" {
		return Facet{}, fmt.Errorf("facet name is required")
	}
	sel := make(map[string]struct{}, len(selected))
	for _, v := range selected {
		sel[v] = struct{}{}
	}
	return Facet{name: name, counts: counts, selected: sel}, nil
}

// Name returns the field-name identity used for filtering.
func (f Facet) Name() string { return f.name }

// DisplayName returns the display override, falling back to the field name.
func (f Facet) DisplayName() string {
	if f.displayName != "" {
		return f.displayName
	}
	return f.name
}

// WithDisplayName returns a renamed copy; the original is not mutated and the
// filter identity stays the same.
func (f Facet) WithDisplayName(displayName string) Facet {
	f.displayName = displayName
	return f
}

// Counts returns the ordered value/count buckets.
func (f Facet) Counts() []ValueCount { return f.counts }

// Selected returns the currently selected values in bucket order; selected
// values without a bucket follow in arbitrary order.
func (f Facet) Selected() []string {
	out := make([]string, 0, len(f.selected))
	seen := make(map[string]struct{}, len(f.selected))
	for _, c := range f.counts {
		if _, ok := f.selected[c.Value]; ok {
			out = append(out, c.Value)
			seen[c.Value] = struct{}{}
		}
	}
	for v := range f.selected {
		if _, ok := seen[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// IsSelected reports whether a value is in the selection set.
func (f Facet) IsSelected(value string) bool {
	_, ok := f.selected[value]
	return ok
}
