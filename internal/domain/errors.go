package domain

import "errors"

var (
	// ErrSearchFailed signals a failed call to the external search backend.
	ErrSearchFailed = errors.New("search failed")
	// ErrFilterFailed signals a failed facet filter call.
	ErrFilterFailed = errors.New("filter failed")
	// ErrThemeNotFound signals an activation request for an unregistered theme.
	ErrThemeNotFound = errors.New("theme not found")
	// ErrNoPage signals a paging request while no result page is held.
	ErrNoPage = errors.New("no result page held")
	// ErrStaleResponse signals a response superseded by a newer request.
	ErrStaleResponse = errors.New("stale response discarded")
)
