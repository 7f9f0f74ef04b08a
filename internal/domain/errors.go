package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by result stores for unknown result ids.
// It is an expected outcome, not a retryable failure.
var ErrNotFound = errors.New("result not found")

// ErrEnrichmentUnavailable signals that no enrichment capability is
// configured. Checkers treat it as a normal degraded mode.
var ErrEnrichmentUnavailable = errors.New("enrichment unavailable")

// FetchErrorKind classifies content source failures for URL targets.
type FetchErrorKind string

const (
	FetchTimeout    FetchErrorKind = "timeout"
	FetchDNS        FetchErrorKind = "dns"
	FetchHTTPStatus FetchErrorKind = "http_status"
	FetchTooLarge   FetchErrorKind = "too_large"
)

// FetchError reports a failed content fetch. It aborts the whole job
// before any checker runs.
type FetchError struct {
	Kind   FetchErrorKind
	Detail string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error (%s): %s", e.Kind, e.Detail)
}

// ParseError reports malformed input that could not be turned into
// ParsedContent.
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Detail)
}

// CheckerFault wraps an unexpected internal error (including a recovered
// panic) inside one checker. It is contained at the checker boundary and
// converted to a non-completed CheckerResult, never propagated to callers.
type CheckerFault struct {
	Category Category
	Cause    any
}

func (e *CheckerFault) Error() string {
	return fmt.Sprintf("checker %s faulted: %v", e.Category, e.Cause)
}
