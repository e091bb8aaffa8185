package sink

import (
	"bytes"
	"fmt"

	"github.com/desvart/qsnap/pkg/render"
)

const defaultFontFamily = "Helvetica, Arial, sans-serif"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	img        render.Image
	background string
	fontFamily string
}

func WithImage(img render.Image) SVGOption { return func(r *svgRenderer) { r.img = img.WithDefaults() } }
func WithBackground(c string) SVGOption    { return func(r *svgRenderer) { r.background = c } }
func WithFontFamily(f string) SVGOption    { return func(r *svgRenderer) { r.fontFamily = f } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		img:        render.DefaultImage(),
		background: "#FFFFFF",
		fontFamily: defaultFontFamily,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r svgRenderer) size() (w, h float64) {
	return float64(r.img.Width), float64(r.img.Height)
}

func (r svgRenderer) open(buf *bytes.Buffer) {
	w, h := r.size()
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		w, h, w, h, EscapeXML(r.fontFamily))
	fmt.Fprintf(buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(r.background))
}

func closeSVG(buf *bytes.Buffer) {
	buf.WriteString("</svg>\n")
}

// frame maps data coordinates onto the pixel rectangle of the plot area.
type frame struct {
	left, top, right, bottom float64
	xmin, xmax, ymin, ymax   float64
}

func (f frame) x(v float64) float64 {
	return f.left + (v-f.xmin)/(f.xmax-f.xmin)*(f.right-f.left)
}

func (f frame) y(v float64) float64 {
	return f.bottom - (v-f.ymin)/(f.ymax-f.ymin)*(f.bottom-f.top)
}

// =============================================================================
// Primitives
// =============================================================================

func writeLine(buf *bytes.Buffer, x1, y1, x2, y2 float64, stroke string, width float64) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x1, y1, x2, y2, EscapeXML(stroke), width)
}

func writeRect(buf *bytes.Buffer, x, y, w, h float64, fill, stroke string, width float64) {
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x, y, w, h, EscapeXML(fill), EscapeXML(stroke), width)
}

type textAttrs struct {
	size   float64
	anchor string // start, middle, end
	bold   bool
	mono   bool
	rotate float64
}

func writeText(buf *bytes.Buffer, x, y float64, s string, a textAttrs) {
	anchor := a.anchor
	if anchor == "" {
		anchor = "middle"
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s" dominant-baseline="middle" fill="#000000"`,
		x, y, a.size, anchor)
	if a.bold {
		buf.WriteString(` font-weight="bold"`)
	}
	if a.mono {
		buf.WriteString(` font-family="monospace"`)
	}
	if a.rotate != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%.0f %.2f %.2f)"`, a.rotate, x, y)
	}
	fmt.Fprintf(buf, ">%s</text>\n", EscapeXML(s))
}

func writePolygon(buf *bytes.Buffer, pts [][2]float64, fill string, opacity float64, stroke string, width float64) {
	buf.WriteString(`  <polygon points="`)
	for i, p := range pts {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.2f,%.2f", p[0], p[1])
	}
	fmt.Fprintf(buf, `" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		EscapeXML(fill), opacity, EscapeXML(stroke), width)
}

// legendItem is one swatch and caption of a horizontal legend.
type legendItem struct {
	label  string
	fill   string
	stroke string
}

const (
	swatchSize = 12.0
	swatchGap  = 4.0
	itemGap    = 16.0
)

// writeLegend draws items in one centered row around cy.
func writeLegend(buf *bytes.Buffer, items []legendItem, cx, cy, fontSize float64) {
	total := 0.0
	for i, it := range items {
		total += swatchSize + swatchGap + textWidth(it.label, fontSize)
		if i > 0 {
			total += itemGap
		}
	}
	x := cx - total/2
	for _, it := range items {
		writeRect(buf, x, cy-swatchSize/2, swatchSize, swatchSize, it.fill, it.stroke, 1)
		x += swatchSize + swatchGap
		writeText(buf, x, cy, it.label, textAttrs{size: fontSize, anchor: "start"})
		x += textWidth(it.label, fontSize) + itemGap
	}
}
