package domain

// ParsedContent is the normalized representation of fetched or supplied
// markup. It is built once by the content source, owned exclusively by a
// single validation run, and read-only after construction; checkers never
// mutate it, so sibling checkers need no locking.
type ParsedContent struct {
	SourceURL string
	Title     string
	Language  string

	// Text is the visible body text (paragraphs, list items, headings),
	// whitespace-normalized.
	Text      string
	WordCount int

	Media    []MediaElement
	Controls []Control
	Styled   []StyledElement

	// Landmarks counts structural regions by landmark name (header, nav,
	// main, footer, aside, plus ARIA region roles).
	Landmarks map[string]int

	// MotionElements references elements with intrinsic motion: marquee,
	// blink, and inline CSS animations.
	MotionElements []string

	// HasReducedMotionGuard is true when any inline or embedded style
	// references prefers-reduced-motion.
	HasReducedMotionGuard bool

	// HasSkipLink is true when a skip-navigation link was detected near
	// the top of the document.
	HasSkipLink bool

	// MetaRefresh is true for <meta http-equiv="refresh"> redirects, a
	// hard time-limited interaction.
	MetaRefresh bool

	// CountdownMarkers lists elements whose markup suggests countdown or
	// session-timeout behavior.
	CountdownMarkers []string
}

// MediaKind discriminates media elements.
type MediaKind string

const (
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
	MediaImage MediaKind = "img"
)

// MediaElement describes one audio, video, or image element with the
// attributes the checkers care about.
type MediaElement struct {
	Kind    MediaKind
	Element string // stable document-order reference, e.g. "video[0]" or "#intro"

	Autoplay bool
	Muted    bool
	Controls bool
	Animated bool // animated image formats and autoplaying video

	HasCaptionTrack      bool // <track kind="captions"|"subtitles">
	HasSignLanguageTrack bool // track or attributes marking a sign-language stream
	HasTranscriptNearby  bool // adjacent transcript text or aria-described transcript
}

// Control describes one interactive element (link, button, form control,
// or scripted handler target).
type Control struct {
	Element     string
	Tag         string
	TabIndex    int
	HasTabIndex bool

	// GestureOnly marks controls reachable only through continuous
	// gestures (touch/drag/wheel handlers with no click or key handler).
	GestureOnly bool
}

// StyledElement carries the inline style properties relevant to visual
// clarity scoring. Zero values mean the property was not set.
type StyledElement struct {
	Element    string
	Color      string
	Background string
	FontSizePx float64
	LineHeight float64
}
