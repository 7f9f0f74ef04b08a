package checks

import (
	"fmt"

	"github.com/deaffirst/deafcheck/internal/domain"
)

// findingSet accumulates findings for one category. It enforces the two
// deduction rules every checker shares: identical (category, element, rule)
// triples are recorded once, and each sub-rule deducts independently up to
// its own cap.
type findingSet struct {
	category domain.Category
	seen     map[string]struct{}
	ruleUsed map[string]float64
	findings []domain.Finding
}

func newFindingSet(category domain.Category) *findingSet {
	return &findingSet{
		category: category,
		seen:     make(map[string]struct{}),
		ruleUsed: make(map[string]float64),
	}
}

// add records one finding, clamping its deduction to the sub-rule cap.
// Once a rule's cap is spent, further warning/info findings for it are
// dropped; blocking findings are still recorded (with zero deduction) so
// they always surface as recommendations.
func (s *findingSet) add(severity domain.Severity, rule, element, message string, points, ruleCap float64) {
	key := fmt.Sprintf("%s|%s|%s", s.category, element, rule)
	if _, dup := s.seen[key]; dup {
		return
	}
	s.seen[key] = struct{}{}

	remaining := ruleCap - s.ruleUsed[rule]
	if remaining < 0 {
		remaining = 0
	}
	if points > remaining {
		points = remaining
	}
	if points <= 0 && severity != domain.SeverityBlocking && severity != domain.SeverityInfo {
		return
	}
	s.ruleUsed[rule] += points

	s.findings = append(s.findings, domain.Finding{
		Category:       s.category,
		Severity:       severity,
		Message:        message,
		PointsDeducted: points,
		Element:        element,
		Rule:           rule,
	})
}

// info records a zero-deduction informational finding.
func (s *findingSet) info(rule, element, message string) {
	s.add(domain.SeverityInfo, rule, element, message, 0, 0)
}

// result finalizes the accumulated findings into a completed CheckerResult.
func (s *findingSet) result() domain.CheckerResult {
	r := domain.CheckerResult{Category: s.category, Findings: s.findings}
	r.FinalizeScore()
	return r
}
