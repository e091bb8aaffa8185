package sink

import (
	"bytes"
	"encoding/xml"
)

const (
	fontCharWidth  = 0.55
	monoCharWidth  = 0.6
	lineHeight     = 1.25
	minLabelFontPx = 6.0
)

// textWidth estimates the rendered width of s in a proportional font.
func textWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * fontCharWidth
}

// monoWidth returns the width of the longest line in a monospace font.
func monoWidth(lines []string, size float64) float64 {
	n := 0
	for _, l := range lines {
		n = max(n, len([]rune(l)))
	}
	return float64(n) * size * monoCharWidth
}

// fitFontSize shrinks size until the label fits a w×h box, or returns 0 when
// even the smallest size does not fit.
func fitFontSize(label string, size, w, h float64) float64 {
	if label == "" {
		return 0
	}
	byWidth := w * 0.9 / (float64(len([]rune(label))) * fontCharWidth)
	byHeight := h * 0.8
	s := min(size, byWidth, byHeight)
	if s < minLabelFontPx {
		return 0
	}
	return s
}

// EscapeXML escapes text and attribute values, quotes included.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

