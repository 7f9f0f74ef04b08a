package domain

import (
	"fmt"
	"time"
)

// Category identifies one Deaf-first scoring dimension.
type Category string

const (
	CategoryVisualClarity     Category = "visual_clarity"
	CategoryASLCompatibility  Category = "asl_compatibility"
	CategoryAudioIndependence Category = "audio_independence"
	CategoryNavigationLogic   Category = "navigation_logic"
	CategoryGeneral           Category = "general"
)

// Categories enumerates the four scoring dimensions in their canonical
// order. Recommendation tie-breaks rely on this ordering.
var Categories = []Category{
	CategoryVisualClarity,
	CategoryASLCompatibility,
	CategoryAudioIndependence,
	CategoryNavigationLogic,
}

// CategoryMax is the maximum sub-score any single category can earn.
const CategoryMax = 25.0

// CategoryRank returns the position of c in the canonical category order,
// or len(Categories) for unknown/general categories.
func CategoryRank(c Category) int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return len(Categories)
}

// Severity grades a finding.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityBlocking Severity = "blocking"
)

// TargetKind discriminates the validation target union.
type TargetKind string

const (
	TargetKindURL     TargetKind = "url"
	TargetKindRawHTML TargetKind = "raw_html"
)

// Target is what a validation run analyzes: either a URL to fetch or raw
// HTML supplied by the caller.
type Target struct {
	Kind TargetKind `json:"kind"`
	URL  string     `json:"url,omitempty"`
	HTML string     `json:"-"`
}

// TargetURL builds a fetch-by-URL target.
func TargetURL(url string) Target {
	return Target{Kind: TargetKindURL, URL: url}
}

// TargetRawHTML builds an accept-as-given target.
func TargetRawHTML(html string) Target {
	return Target{Kind: TargetKindRawHTML, HTML: html}
}

// Key returns the identifier used for this target in batch result maps.
func (t Target) Key() string {
	if t.Kind == TargetKindURL {
		return t.URL
	}
	return fmt.Sprintf("raw-html(%d bytes)", len(t.HTML))
}

// ValidationRequest is the immutable input to one validation run.
// Tenant is an opaque key resolved against configured tenant policies;
// the engine never interprets it beyond allowlist/limit lookups.
type ValidationRequest struct {
	Target        Target `json:"target"`
	DeafFirstMode bool   `json:"deaf_first_mode"`
	Tenant        string `json:"tenant,omitempty"`
}

// Finding is one deduction-bearing observation produced by a checker.
// Element and Rule identify the (category, element, rule) triple used to
// deduplicate repeated observations of the same violation.
type Finding struct {
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	PointsDeducted float64  `json:"points_deducted"`
	Element        string   `json:"element,omitempty"`
	Rule           string   `json:"rule"`
}

// CheckerResult is the output of a single checker over one ParsedContent.
//
// Invariant: Score == CategoryMax - sum(PointsDeducted), clamped to
// [0, CategoryMax]. When Completed is false the score is meaningless and
// must be excluded from aggregation rather than treated as zero.
type CheckerResult struct {
	Category  Category  `json:"category"`
	Score     float64   `json:"score"`
	Findings  []Finding `json:"findings,omitempty"`
	Completed bool      `json:"completed"`
}

// FinalizeScore computes the score from the accumulated findings and marks
// the result completed.
func (r *CheckerResult) FinalizeScore() {
	deducted := 0.0
	for _, f := range r.Findings {
		deducted += f.PointsDeducted
	}
	score := CategoryMax - deducted
	if score < 0 {
		score = 0
	}
	if score > CategoryMax {
		score = CategoryMax
	}
	r.Score = score
	r.Completed = true
}

// Status is the lifecycle state of a validation job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

// Error reasons surfaced on failed or partial results.
const (
	ReasonJobTimeout          = "job_timeout"
	ReasonBatchTimeout        = "batch_timeout"
	ReasonNoCheckersCompleted = "no_checkers_completed"
	ReasonTenantDenied        = "tenant_domain_not_allowed"
)

// Recommendation is one ranked remediation suggestion derived from a
// finding. Blocking findings always produce one; warnings compete for the
// remaining slots by points deducted.
type Recommendation struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Impact   float64  `json:"impact"`
}

// ValidationResult is the durable artifact of one validation run. It is
// created in StatusPending, finalized exactly once, and never mutated
// afterwards; a re-validation of the same target produces a new result
// with a new ID.
type ValidationResult struct {
	ID              string                      `json:"id"`
	Target          Target                      `json:"target"`
	CreatedAt       time.Time                   `json:"created_at"`
	OverallScore    float64                     `json:"overall_score"`
	Passed          bool                        `json:"passed"`
	Breakdown       map[Category]*CheckerResult `json:"deaf_score_breakdown,omitempty"`
	ASLCompatible   bool                        `json:"asl_compatible"`
	ASLUnknown      bool                        `json:"asl_unknown,omitempty"`
	Recommendations []Recommendation            `json:"recommendations,omitempty"`
	Status          Status                      `json:"status"`
	ErrorReason     string                      `json:"error_reason,omitempty"`
}

// CompletedResults returns the checker results that actually completed,
// in canonical category order.
func (r *ValidationResult) CompletedResults() []CheckerResult {
	var out []CheckerResult
	for _, cat := range Categories {
		if cr, ok := r.Breakdown[cat]; ok && cr.Completed {
			out = append(out, *cr)
		}
	}
	return out
}

// ScoreEntry is one line of local validation history: enough to see how
// a target's score moved over time without loading full results.
type ScoreEntry struct {
	Timestamp    string  `json:"timestamp"`
	TargetKey    string  `json:"target"`
	OverallScore float64 `json:"overall_score"`
	Passed       bool    `json:"passed"`
	Status       Status  `json:"status"`
}

// BatchStatus is the terminal state of a batch run.
type BatchStatus string

const (
	BatchCompleted BatchStatus = "completed"
	BatchPartial   BatchStatus = "partial"
)

// BatchValidationResult maps each requested target to either its
// ValidationResult or a per-target error. One target's failure never
// affects its siblings.
type BatchValidationResult struct {
	Status  BatchStatus                  `json:"status"`
	Results map[string]*ValidationResult `json:"results"`
	Errors  map[string]string            `json:"errors,omitempty"`
}
