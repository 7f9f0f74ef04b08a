package checks

import (
	"context"

	"github.com/deaffirst/deafcheck/internal/domain"
)

const (
	aslSignStreamPenalty = 5.0
	aslGestureCap        = 10.0
	aslSpatialCap        = 6.0
)

// landmarkNames are the structural regions counted as spatial grouping.
var landmarkNames = []string{"header", "nav", "main", "footer", "aside", "region", "search"}

// ASLCompatibility validates that navigation and content structure
// accommodate sign-language-first interaction: a dedicated sign-language
// stream, discrete stepwise navigation, and spatial grouping over linear
// audio-narrated flow. Absence of ASL content itself is only a warning;
// the check validates compatibility, not presence.
type ASLCompatibility struct {
	Enricher domain.Enricher
}

func (ASLCompatibility) Category() domain.Category { return domain.CategoryASLCompatibility }

func (c ASLCompatibility) Analyze(ctx context.Context, content *domain.ParsedContent) domain.CheckerResult {
	fs := newFindingSet(domain.CategoryASLCompatibility)

	c.checkSignStream(fs, content)
	c.checkDiscreteNavigation(fs, content)
	c.checkSpatialGrouping(fs, content)
	enrichInfo(ctx, c.Enricher, fs, content.Text)

	return fs.result()
}

func (ASLCompatibility) checkSignStream(fs *findingSet, content *domain.ParsedContent) {
	for _, m := range content.Media {
		if m.HasSignLanguageTrack {
			return
		}
	}
	fs.add(domain.SeverityWarning, "sign_language_stream", "",
		"no dedicated sign-language video stream detected",
		aslSignStreamPenalty, aslSignStreamPenalty)
}

func (ASLCompatibility) checkDiscreteNavigation(fs *findingSet, content *domain.ParsedContent) {
	for _, ctrl := range content.Controls {
		if ctrl.GestureOnly {
			fs.add(domain.SeverityWarning, "discrete_navigation", ctrl.Element,
				"control is reachable only through continuous gestures; provide a stepwise alternative",
				4, aslGestureCap)
		}
	}
}

func (ASLCompatibility) checkSpatialGrouping(fs *findingSet, content *domain.ParsedContent) {
	distinct := 0
	for _, name := range landmarkNames {
		if content.Landmarks[name] > 0 {
			distinct++
		}
	}
	switch {
	case distinct < 2:
		fs.add(domain.SeverityWarning, "spatial_grouping", "",
			"page lacks landmark structure; spatial grouping aids sign-language navigation",
			6, aslSpatialCap)
	case distinct == 2:
		fs.add(domain.SeverityWarning, "spatial_grouping", "",
			"minimal landmark structure; consider separating header, navigation, and main regions",
			3, aslSpatialCap)
	}
}
