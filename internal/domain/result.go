package domain

import "strconv"

// Result is a single search hit: field name -> scalar or list of scalars.
// Field semantics (title, link, description, ...) are resolved through the
// configured result-field mapping, never hardcoded here.
type Result map[string]any

// Highlight maps a field name to highlighted snippets for that field.
type Highlight map[string][]string

// Hit pairs a result with its highlights, in backend order.
type Hit struct {
	Result    Result
	Highlight Highlight
}

// First returns the first scalar value of a field as a string.
// Array-valued fields reduce to their first element. Returns "" and false
// when the field is absent, empty, or an empty array.
func (r Result) First(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, t != ""
	case []string:
		if len(t) == 0 {
			return "", false
		}
		return t[0], t[0] != ""
	case []any:
		if len(t) == 0 {
			return "", false
		}
		return scalarString(t[0])
	default:
		return scalarString(v)
	}
}

// Fields returns all field names present on the result.
func (r Result) Fields() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	return names
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
