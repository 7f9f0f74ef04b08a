package checks

import (
	"context"
	"fmt"

	"github.com/deaffirst/deafcheck/internal/domain"
)

// audioPerElementPenalty is the fixed share deducted per element that has
// no complete visual alternative. Deductions cap at the category maximum;
// the score never goes negative.
const audioPerElementPenalty = 8.0

// AudioIndependence verifies every audio and video element carries a
// caption track or adjacent transcript. Each uncaptioned element is a
// blocking finding: the content is simply unreachable without hearing.
type AudioIndependence struct{}

func (AudioIndependence) Category() domain.Category { return domain.CategoryAudioIndependence }

func (AudioIndependence) Analyze(_ context.Context, content *domain.ParsedContent) domain.CheckerResult {
	fs := newFindingSet(domain.CategoryAudioIndependence)

	for _, m := range content.Media {
		switch m.Kind {
		case domain.MediaVideo:
			if !m.HasCaptionTrack && !m.HasTranscriptNearby {
				fs.add(domain.SeverityBlocking, "captions", m.Element,
					fmt.Sprintf("video %s has no caption track and no adjacent transcript", m.Element),
					audioPerElementPenalty, domain.CategoryMax)
			}
		case domain.MediaAudio:
			if !m.HasTranscriptNearby && !m.HasCaptionTrack {
				fs.add(domain.SeverityBlocking, "visual_alternative", m.Element,
					fmt.Sprintf("audio %s has no visual alternative (transcript or captions)", m.Element),
					audioPerElementPenalty, domain.CategoryMax)
			}
		}
	}

	return fs.result()
}
