// Package checks holds the Deaf-first heuristic checkers and the score
// aggregator. Every checker is a pure function of ParsedContent: the same
// content always yields the same result, and nothing here touches the
// network except the injected optional enrichment capability.
package checks

import (
	"context"
	"errors"
	"fmt"

	"github.com/deaffirst/deafcheck/internal/domain"
)

// Registry returns the full Deaf-first checker set, wired with the
// optional enrichment capability (nil is a valid, degraded wiring). New
// checkers register here; the aggregator works off whatever categories
// actually ran.
func Registry(enricher domain.Enricher) []domain.Checker {
	return []domain.Checker{
		VisualClarity{Enricher: enricher},
		ASLCompatibility{Enricher: enricher},
		AudioIndependence{},
		NavigationLogic{},
	}
}

// Baseline returns the reduced set used when Deaf-first mode is off:
// the generic visual and navigation checks without the ASL and audio
// dimensions.
func Baseline(enricher domain.Enricher) []domain.Checker {
	return []domain.Checker{
		VisualClarity{Enricher: enricher},
		NavigationLogic{},
	}
}

// enrichInfo runs the optional enrichment capability and folds its
// observations in as zero-deduction info findings. Unavailability is a
// normal outcome and leaves the checker fully completed.
func enrichInfo(ctx context.Context, enricher domain.Enricher, fs *findingSet, text string) {
	if enricher == nil || text == "" {
		return
	}
	analysis, err := enricher.Enrich(ctx, text)
	if err != nil || analysis == nil {
		if err != nil && !errors.Is(err, domain.ErrEnrichmentUnavailable) {
			fs.info("enrichment", "", "enrichment pass failed: "+err.Error())
		}
		return
	}
	if analysis.ReadingEase != "" {
		fs.info("enrichment", "", "reading ease: "+analysis.ReadingEase)
	}
	for i, obs := range analysis.Observations {
		fs.info("enrichment", fmt.Sprintf("observation[%d]", i), obs)
	}
}
