package domain

import (
	"context"
	"time"
)

// FetchOptions tune a single content acquisition.
type FetchOptions struct {
	Timeout  time.Duration
	MaxBytes int64
}

// ContentSource turns a validation target into ParsedContent. URL targets
// involve network I/O and may fail with *FetchError; raw-HTML targets are
// pure in-memory parses that fail only with *ParseError.
type ContentSource interface {
	Fetch(ctx context.Context, target Target, opts FetchOptions) (*ParsedContent, error)
}

// Checker is one independent heuristic analyzer. Analyze must be a pure
// function of the content: no hidden state, no network access beyond an
// injected enrichment capability, deterministic for identical input.
type Checker interface {
	Category() Category
	Analyze(ctx context.Context, content *ParsedContent) CheckerResult
}

// Analysis is the payload of an optional generative enrichment pass over
// page text. It only ever adds informational findings.
type Analysis struct {
	Summary      string   `json:"summary,omitempty"`
	ReadingEase  string   `json:"reading_ease,omitempty"`
	Observations []string `json:"observations,omitempty"`
}

// Enricher is the injected optional enrichment capability. Implementations
// return ErrEnrichmentUnavailable when not configured; absence must never
// fail a job.
type Enricher interface {
	Enrich(ctx context.Context, text string) (*Analysis, error)
}

// ResultStore persists finalized validation results. Writes happen exactly
// once per job; reads by id are idempotent and must never observe a
// half-written result. Get returns ErrNotFound for unknown ids.
type ResultStore interface {
	Put(ctx context.Context, result *ValidationResult) error
	Get(ctx context.Context, id string) (*ValidationResult, error)
}
