package checks

import (
	"context"
	"fmt"

	"github.com/deaffirst/deafcheck/internal/domain"
)

// Sub-rule caps for visual clarity. No single rule can zero the category
// on its own; only an accumulation across rules (or blocking contrast
// failures) can.
const (
	visualContrastCap = 10.0
	visualTextCap     = 6.0
	visualMotionCap   = 9.0
)

// VisualClarity scores color contrast, text sizing, and motion
// sensitivity. The optional enrichment capability adds informational
// plain-language observations and never deducts points.
type VisualClarity struct {
	Enricher domain.Enricher
}

func (VisualClarity) Category() domain.Category { return domain.CategoryVisualClarity }

func (c VisualClarity) Analyze(ctx context.Context, content *domain.ParsedContent) domain.CheckerResult {
	fs := newFindingSet(domain.CategoryVisualClarity)

	for _, st := range content.Styled {
		c.checkContrast(fs, st)
		c.checkTextSizing(fs, st)
	}
	c.checkMotion(fs, content)
	enrichInfo(ctx, c.Enricher, fs, content.Text)

	return fs.result()
}

func (VisualClarity) checkContrast(fs *findingSet, st domain.StyledElement) {
	if st.Color == "" || st.Background == "" {
		return
	}
	ratio, ok := contrastRatio(st.Color, st.Background)
	if !ok {
		return
	}
	switch {
	case ratio < contrastCritical:
		fs.add(domain.SeverityBlocking, "contrast", st.Element,
			fmt.Sprintf("contrast ratio %.1f:1 is below the %.1f:1 critical floor", ratio, contrastCritical),
			5, visualContrastCap)
	case ratio < contrastPreferred:
		fs.add(domain.SeverityWarning, "contrast", st.Element,
			fmt.Sprintf("contrast ratio %.1f:1 is below the Deaf-first target of %.1f:1", ratio, contrastPreferred),
			3, visualContrastCap)
	}
}

func (VisualClarity) checkTextSizing(fs *findingSet, st domain.StyledElement) {
	if st.FontSizePx > 0 && st.FontSizePx < 14 {
		fs.add(domain.SeverityWarning, "text_sizing", st.Element,
			fmt.Sprintf("font size %.0fpx is below the 14px readability floor", st.FontSizePx),
			2, visualTextCap)
		return
	}
	if st.LineHeight > 0 && st.LineHeight < 1.4 {
		fs.add(domain.SeverityWarning, "text_sizing", st.Element,
			fmt.Sprintf("line height %.2f is below the 1.4 readability floor", st.LineHeight),
			2, visualTextCap)
	}
}

func (VisualClarity) checkMotion(fs *findingSet, content *domain.ParsedContent) {
	if content.HasReducedMotionGuard {
		return
	}
	for _, el := range content.MotionElements {
		fs.add(domain.SeverityWarning, "motion", el,
			"animated element without a prefers-reduced-motion guard", 3, visualMotionCap)
	}
	for _, m := range content.Media {
		if m.Autoplay && !m.Muted {
			fs.add(domain.SeverityWarning, "motion", m.Element,
				"autoplaying media without a prefers-reduced-motion guard", 3, visualMotionCap)
		}
	}
}
