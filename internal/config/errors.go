package config

import "strings"

// Error aggregates every missing required configuration path. Integrators see
// all gaps in one pass instead of fixing them one validation run at a time.
type Error struct {
	Missing []string
}

func (e *Error) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}
