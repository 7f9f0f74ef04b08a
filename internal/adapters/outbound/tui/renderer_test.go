package tui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/tui"
	"github.com/deaffirst/deafcheck/internal/domain"
)

func completedResult() *domain.ValidationResult {
	return &domain.ValidationResult{
		ID:            "job-1",
		Target:        domain.TargetURL("https://deafschool.edu/"),
		CreatedAt:     time.Now().UTC(),
		OverallScore:  82,
		Passed:        true,
		ASLCompatible: true,
		Status:        domain.StatusCompleted,
		Breakdown: map[domain.Category]*domain.CheckerResult{
			domain.CategoryVisualClarity: {
				Category: domain.CategoryVisualClarity, Score: 21, Completed: true,
				Findings: []domain.Finding{{
					Category:       domain.CategoryVisualClarity,
					Severity:       domain.SeverityWarning,
					Message:        "text contrast below 7:1",
					PointsDeducted: 3,
					Element:        "p[2]",
					Rule:           "contrast",
				}},
			},
			domain.CategoryASLCompatibility: {
				Category: domain.CategoryASLCompatibility, Score: 20, Completed: true,
			},
			domain.CategoryAudioIndependence: {
				Category: domain.CategoryAudioIndependence, Score: 17, Completed: true,
				Findings: []domain.Finding{{
					Category:       domain.CategoryAudioIndependence,
					Severity:       domain.SeverityBlocking,
					Message:        "video has no caption track",
					PointsDeducted: 8,
					Element:        "video[0]",
					Rule:           "captions",
				}},
			},
			domain.CategoryNavigationLogic: {
				Category: domain.CategoryNavigationLogic, Score: 24, Completed: true,
			},
		},
		Recommendations: []domain.Recommendation{{
			Category: domain.CategoryAudioIndependence,
			Severity: domain.SeverityBlocking,
			Message:  "video has no caption track",
			Impact:   8,
		}},
	}
}

func TestRenderResult_CompletedLayout(t *testing.T) {
	out := tui.RenderResult(completedResult())

	assert.Contains(t, out, "deafcheck")
	assert.Contains(t, out, "82 / 100")
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "ASL-ready")
	assert.Contains(t, out, "Visual Clarity")
	assert.Contains(t, out, "Audio Independence")
	assert.Contains(t, out, "1 blocking")
	assert.Contains(t, out, "video has no caption track")
	assert.Contains(t, out, "Fix first")
}

func TestRenderResult_PartialShowsIncompleteCategory(t *testing.T) {
	result := completedResult()
	result.Status = domain.StatusPartial
	result.Passed = false
	result.Breakdown[domain.CategoryASLCompatibility].Completed = false
	result.ASLCompatible = false
	result.ASLUnknown = true

	out := tui.RenderResult(result)
	assert.Contains(t, out, "partial")
	assert.Contains(t, out, "did not complete")
	assert.Contains(t, out, "FAIL")
	assert.NotContains(t, out, "ASL gaps")
}

func TestRenderResult_CleanPage(t *testing.T) {
	result := completedResult()
	for _, checker := range result.Breakdown {
		checker.Findings = nil
		checker.Score = domain.CategoryMax
	}
	result.Recommendations = nil
	result.OverallScore = 100

	out := tui.RenderResult(result)
	assert.Contains(t, out, "No barriers found.")
	assert.NotContains(t, out, "Fix first")
}

func TestRenderHistory(t *testing.T) {
	out := tui.RenderHistory([]domain.ScoreEntry{
		{Timestamp: "2026-08-29T10:00:00Z", TargetKey: "https://deafschool.edu/", OverallScore: 64, Status: domain.StatusCompleted},
		{Timestamp: "2026-08-30T10:00:00Z", TargetKey: "https://deafschool.edu/", OverallScore: 81, Passed: true, Status: domain.StatusCompleted},
	})

	assert.Contains(t, out, "Validation History")
	assert.Contains(t, out, "2026-08-29")
	assert.Contains(t, out, "↑17")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No validation history found.")
}

func TestRenderBatch(t *testing.T) {
	failed := &domain.ValidationResult{
		Status:      domain.StatusFailed,
		ErrorReason: domain.ReasonJobTimeout,
	}
	batch := &domain.BatchValidationResult{
		Status: domain.BatchPartial,
		Results: map[string]*domain.ValidationResult{
			"https://deafschool.edu/": completedResult(),
			"https://slow.example/":   failed,
		},
		Errors: map[string]string{
			"not a url": "invalid target",
		},
	}

	out := tui.RenderBatch(batch)
	assert.Contains(t, out, "Batch Validation")
	assert.Contains(t, out, "82/100")
	assert.Contains(t, out, "https://slow.example/")
	assert.Contains(t, out, domain.ReasonJobTimeout)
	assert.Contains(t, out, "invalid target")
}
