package checks

import (
	"sort"

	"github.com/deaffirst/deafcheck/internal/domain"
)

// aslCompatibleThreshold is the minimum ASL Compatibility sub-score for a
// page to count as sign-language navigable.
const aslCompatibleThreshold = 15.0

// Aggregation combines the completed checker results of one run.
type Aggregation struct {
	OverallScore    float64
	ASLCompatible   bool
	ASLUnknown      bool
	Recommendations []domain.Recommendation
}

// Aggregate renormalizes the completed sub-scores to 0-100 over whichever
// categories actually ran: missing data is excluded, never scored as zero,
// so a 3-of-4 partial run stays comparable to a full one. Results with
// Completed=false must not be passed in.
//
// topN bounds the number of warning-backed recommendations; blocking
// findings always produce one regardless of topN.
func Aggregate(results []domain.CheckerResult, topN int) Aggregation {
	agg := Aggregation{ASLUnknown: true}
	if len(results) == 0 {
		return agg
	}

	var sum, max float64
	for _, r := range results {
		sum += r.Score
		max += domain.CategoryMax
		if r.Category == domain.CategoryASLCompatibility {
			agg.ASLUnknown = false
			agg.ASLCompatible = r.Score >= aslCompatibleThreshold
		}
	}
	agg.OverallScore = sum * 100 / max
	agg.Recommendations = recommend(results, topN)
	return agg
}

// recommend ranks remediation suggestions: every blocking finding first,
// then the top-N warnings by points deducted. Ties break by canonical
// category order, then element, for reproducible output regardless of
// checker completion order.
func recommend(results []domain.CheckerResult, topN int) []domain.Recommendation {
	var blocking, warnings []domain.Finding
	for _, r := range results {
		for _, f := range r.Findings {
			switch f.Severity {
			case domain.SeverityBlocking:
				blocking = append(blocking, f)
			case domain.SeverityWarning:
				warnings = append(warnings, f)
			}
		}
	}

	byImpact := func(fs []domain.Finding) func(i, j int) bool {
		return func(i, j int) bool {
			if fs[i].PointsDeducted != fs[j].PointsDeducted {
				return fs[i].PointsDeducted > fs[j].PointsDeducted
			}
			ri, rj := domain.CategoryRank(fs[i].Category), domain.CategoryRank(fs[j].Category)
			if ri != rj {
				return ri < rj
			}
			return fs[i].Element < fs[j].Element
		}
	}
	sort.Slice(blocking, byImpact(blocking))
	sort.Slice(warnings, byImpact(warnings))

	if topN < 0 {
		topN = 0
	}
	if topN > len(warnings) {
		topN = len(warnings)
	}

	recs := make([]domain.Recommendation, 0, len(blocking)+topN)
	for _, f := range blocking {
		recs = append(recs, toRecommendation(f))
	}
	for _, f := range warnings[:topN] {
		recs = append(recs, toRecommendation(f))
	}
	return recs
}

func toRecommendation(f domain.Finding) domain.Recommendation {
	return domain.Recommendation{
		Category: f.Category,
		Severity: f.Severity,
		Message:  f.Message,
		Impact:   f.PointsDeducted,
	}
}
