package checks

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Color contrast math per the WCAG relative-luminance definition. The
// visual clarity checker holds pages to a 7.0 ratio, stricter than the
// 4.5 AA minimum, because Deaf-first interfaces lean entirely on the
// visual channel.

const (
	contrastPreferred = 7.0
	contrastCritical  = 3.0
)

var (
	rgbRe = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})`)

	// The handful of named colors that show up in real inline styles.
	namedColors = map[string][3]uint8{
		"black":  {0, 0, 0},
		"white":  {255, 255, 255},
		"red":    {255, 0, 0},
		"green":  {0, 128, 0},
		"blue":   {0, 0, 255},
		"yellow": {255, 255, 0},
		"gray":   {128, 128, 128},
		"grey":   {128, 128, 128},
		"silver": {192, 192, 192},
		"orange": {255, 165, 0},
		"purple": {128, 0, 128},
	}
)

// parseCSSColor understands #rgb, #rrggbb, rgb()/rgba() and common named
// colors. Anything else (gradients, variables, hsl) is not measurable.
func parseCSSColor(value string) (r, g, b uint8, ok bool) {
	value = strings.ToLower(strings.TrimSpace(value))

	if c, found := namedColors[value]; found {
		return c[0], c[1], c[2], true
	}

	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		switch len(hex) {
		case 3:
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		case 6:
		default:
			return 0, 0, 0, false
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, 0, 0, false
		}
		return uint8(n >> 16), uint8(n >> 8), uint8(n), true
	}

	if m := rgbRe.FindStringSubmatch(value); m != nil {
		ri, _ := strconv.Atoi(m[1])
		gi, _ := strconv.Atoi(m[2])
		bi, _ := strconv.Atoi(m[3])
		if ri > 255 || gi > 255 || bi > 255 {
			return 0, 0, 0, false
		}
		return uint8(ri), uint8(gi), uint8(bi), true
	}

	return 0, 0, 0, false
}

// relativeLuminance implements the WCAG 2.x sRGB luminance formula.
func relativeLuminance(r, g, b uint8) float64 {
	lin := func(c uint8) float64 {
		v := float64(c) / 255.0
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(r) + 0.7152*lin(g) + 0.0722*lin(b)
}

// contrastRatio returns the WCAG contrast ratio between two CSS color
// values, in [1, 21]. ok is false when either color is not measurable.
func contrastRatio(foreground, background string) (ratio float64, ok bool) {
	fr, fg, fb, ok1 := parseCSSColor(foreground)
	br, bg, bb, ok2 := parseCSSColor(background)
	if !ok1 || !ok2 {
		return 0, false
	}
	l1 := relativeLuminance(fr, fg, fb)
	l2 := relativeLuminance(br, bg, bb)
	if l2 > l1 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05), true
}
