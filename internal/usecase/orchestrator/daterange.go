package orchestrator

import "fmt"

// DateRange holds the two optional date boundary inputs. An unset boundary
// is an open-ended wildcard on that side.
type DateRange struct {
	Start string
	End   string
}

// IsZero reports whether neither boundary is set.
func (r DateRange) IsZero() bool { return r.Start == "" && r.End == "" }

// Expression returns the inclusive range expression sent as the date custom
// parameter, e.g. "[2020-01-01 TO *]". Empty when neither boundary is set.
func (r DateRange) Expression() string {
	if r.IsZero() {
		return ""
	}
	start, end := r.Start, r.End
	if start == "" {
		start = "*"
	}
	if end == "" {
		end = "*"
	}
	return fmt.Sprintf("[%s TO %s]", start, end)
}
