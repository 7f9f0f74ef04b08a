// Package htmlparse turns raw markup into the engine's ParsedContent.
package htmlparse

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/deaffirst/deafcheck/internal/domain"
)

// Parser builds ParsedContent from an HTML byte stream. It is stateless
// and safe for concurrent use; every Extract call produces content owned
// by exactly one validation run.
type Parser struct{}

func New() *Parser { return &Parser{} }

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	fontSizePxRe    = regexp.MustCompile(`^([\d.]+)px$`)
	fontSizePtRe    = regexp.MustCompile(`^([\d.]+)pt$`)
	lineHeightNumRe = regexp.MustCompile(`^[\d.]+$`)
	countdownRe     = regexp.MustCompile(`(?i)countdown|session[-_]?timeout|time[-_]?remaining|timer`)
	signRe          = regexp.MustCompile(`(?i)\basl\b|sign[-_]?language`)
	skipTextRe      = regexp.MustCompile(`(?i)skip|jump to`)
	transcriptRe    = regexp.MustCompile(`(?i)transcript|captions?`)
)

// landmarkRoles maps ARIA roles onto the landmark names the ASL checker
// counts.
var landmarkRoles = map[string]string{
	"banner":        "header",
	"navigation":    "nav",
	"main":          "main",
	"contentinfo":   "footer",
	"complementary": "aside",
	"region":        "region",
	"search":        "search",
}

var gestureHandlers = []string{"ontouchmove", "ontouchstart", "onwheel", "ondrag", "ondragstart", "onmousemove"}
var discreteHandlers = []string{"onclick", "onkeydown", "onkeyup", "onkeypress"}

// Extract parses markup into ParsedContent, normalizing non-UTF-8 input
// first. It fails only with *domain.ParseError.
func (p *Parser) Extract(r io.Reader, contentType, sourceURL string) (*domain.ParsedContent, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, &domain.ParseError{Detail: fmt.Sprintf("reading content: %v", err)}
	}
	data := buf.Bytes()
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &domain.ParseError{Detail: "empty document"}
	}

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return nil, &domain.ParseError{Detail: fmt.Sprintf("charset decode: %v", err)}
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return nil, &domain.ParseError{Detail: err.Error()}
	}

	rawLower := strings.ToLower(string(utf8data))

	content := &domain.ParsedContent{
		SourceURL:             sourceURL,
		Title:                 strings.TrimSpace(doc.Find("title").First().Text()),
		Language:              strings.TrimSpace(doc.Find("html").AttrOr("lang", "")),
		Landmarks:             map[string]int{},
		HasReducedMotionGuard: strings.Contains(rawLower, "prefers-reduced-motion"),
	}

	extractText(doc, content)
	extractLandmarks(doc, content)
	extractMedia(doc, content)
	extractControls(doc, content)
	extractStyled(doc, content)
	extractMotion(doc, content)
	extractTimeLimits(doc, content)

	return content, nil
}

func extractText(doc *goquery.Document, content *domain.ParsedContent) {
	var parts []string
	doc.Find("p,li,h1,h2,h3,h4,h5,h6").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	content.Text = strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.Join(parts, " "), " "))
	if content.Text != "" {
		content.WordCount = len(strings.Fields(content.Text))
	}
}

func extractLandmarks(doc *goquery.Document, content *domain.ParsedContent) {
	for _, tag := range []string{"header", "nav", "main", "footer", "aside"} {
		if n := doc.Find(tag).Length(); n > 0 {
			content.Landmarks[tag] += n
		}
	}
	doc.Find("[role]").Each(func(_ int, s *goquery.Selection) {
		role := strings.ToLower(strings.TrimSpace(s.AttrOr("role", "")))
		if name, ok := landmarkRoles[role]; ok {
			content.Landmarks[name]++
		}
	})
}

func extractMedia(doc *goquery.Document, content *domain.ParsedContent) {
	counters := map[string]int{}
	doc.Find("audio,video,img").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		ref := elementRef(s, tag, counters)

		m := domain.MediaElement{
			Kind:    domain.MediaKind(tag),
			Element: ref,
		}
		_, m.Autoplay = s.Attr("autoplay")
		_, m.Muted = s.Attr("muted")
		_, m.Controls = s.Attr("controls")

		switch tag {
		case "img":
			src := strings.ToLower(s.AttrOr("src", ""))
			m.Animated = strings.HasSuffix(src, ".gif") || strings.HasSuffix(src, ".apng")
		case "video":
			m.Animated = m.Autoplay
			fallthrough
		case "audio":
			m.HasCaptionTrack = hasTrack(s, "captions", "subtitles")
			m.HasSignLanguageTrack = hasSignStream(s)
			m.HasTranscriptNearby = hasTranscriptNearby(doc, s)
		}

		content.Media = append(content.Media, m)
	})
}

func hasTrack(s *goquery.Selection, kinds ...string) bool {
	found := false
	s.Find("track").Each(func(_ int, track *goquery.Selection) {
		kind := strings.ToLower(track.AttrOr("kind", ""))
		for _, want := range kinds {
			if kind == want {
				found = true
			}
		}
	})
	return found
}

// hasSignStream detects a dedicated sign-language rendition: a track
// flagged as sign language, or asl/sign-language markers on the element's
// class, id, or data attributes.
func hasSignStream(s *goquery.Selection) bool {
	match := false
	s.Find("track").Each(func(_ int, track *goquery.Selection) {
		if signRe.MatchString(track.AttrOr("kind", "") + " " + track.AttrOr("label", "")) {
			match = true
		}
	})
	if match {
		return true
	}
	marker := s.AttrOr("class", "") + " " + s.AttrOr("id", "") + " " + s.AttrOr("data-stream", "") + " " + s.AttrOr("title", "")
	return signRe.MatchString(marker)
}

// hasTranscriptNearby looks for a visual alternative adjacent to a media
// element: an aria-describedby target, or a sibling/parent region marked
// as transcript or caption text.
func hasTranscriptNearby(doc *goquery.Document, s *goquery.Selection) bool {
	if descID := s.AttrOr("aria-describedby", ""); descID != "" {
		if doc.Find("#"+descID).Length() > 0 {
			return true
		}
	}
	nearby := false
	s.Parent().Children().Each(func(_ int, sib *goquery.Selection) {
		if transcriptRe.MatchString(sib.AttrOr("class", "") + " " + sib.AttrOr("id", "")) {
			nearby = true
		}
	})
	if nearby {
		return true
	}
	return transcriptRe.MatchString(s.Parent().AttrOr("class", "") + " " + s.Parent().AttrOr("id", ""))
}

func extractControls(doc *goquery.Document, content *domain.ParsedContent) {
	counters := map[string]int{}
	doc.Find("a,button,input,select,textarea,[onclick],[role=button],[tabindex],[ontouchmove],[ontouchstart],[onwheel],[ondrag]").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		ctrl := domain.Control{
			Element: elementRef(s, tag, counters),
			Tag:     tag,
		}
		if raw, ok := s.Attr("tabindex"); ok {
			if idx, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				ctrl.TabIndex = idx
				ctrl.HasTabIndex = true
			}
		}
		ctrl.GestureOnly = isGestureOnly(s, tag)
		content.Controls = append(content.Controls, ctrl)

		if tag == "a" && !content.HasSkipLink {
			href := s.AttrOr("href", "")
			if strings.HasPrefix(href, "#") && skipTextRe.MatchString(s.Text()+" "+s.AttrOr("class", "")) {
				content.HasSkipLink = true
			}
		}
	})
}

// isGestureOnly reports whether an element is operable only through
// continuous gestures: it carries touch/drag/wheel handlers, has no
// discrete click or key handler, and is not a natively focusable control.
func isGestureOnly(s *goquery.Selection, tag string) bool {
	switch tag {
	case "a", "button", "input", "select", "textarea":
		return false
	}
	gesture := false
	for _, h := range gestureHandlers {
		if _, ok := s.Attr(h); ok {
			gesture = true
			break
		}
	}
	if !gesture {
		return false
	}
	for _, h := range discreteHandlers {
		if _, ok := s.Attr(h); ok {
			return false
		}
	}
	return true
}

func extractStyled(doc *goquery.Document, content *domain.ParsedContent) {
	counters := map[string]int{}
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		props := parseInlineStyle(s.AttrOr("style", ""))
		st := domain.StyledElement{
			Element:    elementRef(s, goquery.NodeName(s), counters),
			Color:      props["color"],
			Background: props["background-color"],
		}
		if st.Background == "" {
			// A plain-color background shorthand is measurable too.
			if bg := props["background"]; bg != "" && !strings.Contains(bg, " ") {
				st.Background = bg
			}
		}
		st.FontSizePx = parseFontSize(props["font-size"])
		st.LineHeight = parseLineHeight(props["line-height"], st.FontSizePx)

		if st.Color != "" || st.Background != "" || st.FontSizePx > 0 || st.LineHeight > 0 {
			content.Styled = append(content.Styled, st)
		}
	})
}

func parseInlineStyle(style string) map[string]string {
	props := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.ToLower(strings.TrimSpace(name))] = strings.ToLower(strings.TrimSpace(value))
	}
	return props
}

func parseFontSize(value string) float64 {
	if m := fontSizePxRe.FindStringSubmatch(value); m != nil {
		px, _ := strconv.ParseFloat(m[1], 64)
		return px
	}
	if m := fontSizePtRe.FindStringSubmatch(value); m != nil {
		pt, _ := strconv.ParseFloat(m[1], 64)
		return pt * 96 / 72
	}
	return 0
}

// parseLineHeight returns the unitless line height; px values are
// converted when the element's font size is known.
func parseLineHeight(value string, fontSizePx float64) float64 {
	if lineHeightNumRe.MatchString(value) {
		lh, _ := strconv.ParseFloat(value, 64)
		return lh
	}
	if m := fontSizePxRe.FindStringSubmatch(value); m != nil && fontSizePx > 0 {
		px, _ := strconv.ParseFloat(m[1], 64)
		return px / fontSizePx
	}
	return 0
}

func extractMotion(doc *goquery.Document, content *domain.ParsedContent) {
	counters := map[string]int{}
	doc.Find("marquee,blink").Each(func(_ int, s *goquery.Selection) {
		content.MotionElements = append(content.MotionElements,
			elementRef(s, goquery.NodeName(s), counters))
	})
	doc.Find("[style*=animation]").Each(func(_ int, s *goquery.Selection) {
		content.MotionElements = append(content.MotionElements,
			elementRef(s, goquery.NodeName(s), counters))
	})
}

func extractTimeLimits(doc *goquery.Document, content *domain.ParsedContent) {
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		if strings.EqualFold(strings.TrimSpace(s.AttrOr("http-equiv", "")), "refresh") {
			content.MetaRefresh = true
		}
	})
	counters := map[string]int{}
	doc.Find("[class],[id],[data-countdown],[data-timeout]").Each(func(_ int, s *goquery.Selection) {
		marker := s.AttrOr("class", "") + " " + s.AttrOr("id", "") +
			" " + s.AttrOr("data-countdown", "") + " " + s.AttrOr("data-timeout", "")
		if countdownRe.MatchString(marker) {
			content.CountdownMarkers = append(content.CountdownMarkers,
				elementRef(s, goquery.NodeName(s), counters))
		}
	})
}

// elementRef builds a stable document-order reference: "#id" when the
// element has one, otherwise "tag[n]" with a per-tag counter.
func elementRef(s *goquery.Selection, tag string, counters map[string]int) string {
	if id, ok := s.Attr("id"); ok && id != "" {
		return "#" + id
	}
	ref := fmt.Sprintf("%s[%d]", tag, counters[tag])
	counters[tag]++
	return ref
}
