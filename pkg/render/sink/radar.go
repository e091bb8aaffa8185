package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/desvart/qsnap/pkg/chart/radar"
)

const (
	gridColor     = "#E5E7EB"
	seriesOpacity = 0.35
	labelGap      = 10.0
)

// RenderRadarSVG draws a radar layout: ring grid, one spoke per category and
// a filled polygon per year.
func RenderRadarSVG(l radar.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	st := styleOrDefault(l.Style)
	w, h := r.size()

	labelW := 0.0
	for _, c := range l.Categories {
		labelW = max(labelW, textWidth(c, st.FontSize))
	}
	top := st.TopMargin + st.TitleFontSize*2.2
	bottom := h - (st.FontSize*3 + legendReserve)
	radius := max(10, min(w-2*(labelW+labelGap+8), bottom-top-2*(st.FontSize+labelGap))/2)
	cx, cy := w/2, (top+bottom)/2
	at := func(p radar.Point) (float64, float64) { return cx + p.X*radius, cy - p.Y*radius }

	var buf bytes.Buffer
	r.open(&buf)

	writeText(&buf, w/2, (1-st.TitleY)*h+st.TitleFontSize*0.6, l.Title,
		textAttrs{size: st.TitleFontSize, bold: true})

	for _, ring := range l.Rings {
		fmt.Fprintf(&buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
			cx, cy, ring*radius, gridColor)
		writeText(&buf, cx+4, cy-ring*radius+st.FontSize*0.6, strconv.FormatFloat(ring*l.RadialMax, 'g', 4, 64),
			textAttrs{size: st.FontSize * 0.8, anchor: "start"})
	}
	for _, a := range l.Axes {
		ex, ey := at(a.End)
		writeLine(&buf, cx, cy, ex, ey, gridColor, 1)
		lx, ly := cx+math.Cos(a.Angle)*(radius+labelGap), cy-math.Sin(a.Angle)*(radius+labelGap)
		writeText(&buf, lx, ly, a.Category, textAttrs{size: st.FontSize, anchor: axisAnchor(a.Angle), bold: true})
	}

	for _, s := range l.Series {
		pts := make([][2]float64, len(s.Points))
		for i, p := range s.Points {
			x, y := at(p)
			pts[i] = [2]float64{x, y}
		}
		writePolygon(&buf, pts, s.Color, seriesOpacity, s.Color, 2)
	}

	items := make([]legendItem, len(l.Series))
	for i, s := range l.Series {
		items[i] = legendItem{label: s.Year, fill: s.Color, stroke: s.Color}
	}
	writeLegend(&buf, items, w/2, h-legendReserve-swatchSize/2, st.FontSize)

	closeSVG(&buf)
	return buf.Bytes()
}

// axisAnchor aligns a category label away from the chart center.
func axisAnchor(angle float64) string {
	c := math.Cos(angle)
	switch {
	case c > 0.1:
		return "start"
	case c < -0.1:
		return "end"
	}
	return "middle"
}
