package sink

import (
	"bytes"
	"math"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/bar"
)

const (
	// yHeadroom keeps the column totals inside the plot area.
	yHeadroom = 0.04
	// legendReserve is the space below the legend row.
	legendReserve = swatchSize + 12
)

// RenderBarSVG draws a stacked bar layout: segments with their labels,
// connectors between adjacent bars, axes, totals, callouts and the legend.
func RenderBarSVG(l bar.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	st := styleOrDefault(l.Style)
	f := barFrame(l, st, r)
	w, h := r.size()

	var buf bytes.Buffer
	r.open(&buf)

	writeText(&buf, w/2, (1-st.TitleY)*h+st.TitleFontSize*0.6, l.Title,
		textAttrs{size: st.TitleFontSize, bold: true})

	renderSegments(&buf, l, st, f)
	for _, c := range l.Connectors {
		writeLine(&buf, f.x(c.From.X), f.y(c.From.Y), f.x(c.To.X), f.y(c.To.Y), st.ConnectorColor, st.ConnectorWidth)
	}
	for _, a := range l.Axes {
		writeLine(&buf, f.x(a.From.X), f.y(a.From.Y), f.x(a.To.X), f.y(a.To.Y), st.AxisColor, st.AxisWidth)
	}
	renderBarTicks(&buf, l, st, f)
	for _, t := range l.Totals {
		writeText(&buf, f.x(t.At.X), f.y(t.At.Y), t.Text, textAttrs{size: st.TitleFontSize})
	}
	for _, c := range l.Callouts {
		renderCallout(&buf, c, st, f)
	}

	items := make([]legendItem, len(l.Legend))
	for i, e := range l.Legend {
		items[i] = legendItem{label: e.Category, fill: e.Color, stroke: st.BarBorderColor}
	}
	writeLegend(&buf, items, (f.left+f.right)/2, legendY(st, f), st.FontSize)

	closeSVG(&buf)
	return buf.Bytes()
}

func styleOrDefault(s chart.Style) chart.Style {
	if s.FontSize <= 0 || s.BarHalfWidth <= 0 {
		return chart.DefaultStyle()
	}
	return s
}

// barFrame reserves room for the title, tick labels, axis titles and legend,
// then narrows the plot area until every callout box fits on the canvas.
func barFrame(l bar.Layout, st chart.Style, r svgRenderer) frame {
	w, h := r.size()
	f := frame{
		left:  12 + st.FontSize*1.6 + textWidth("100%", st.FontSize) + 10,
		top:   st.TopMargin + st.TitleFontSize*2.2,
		right: w - 20,
		xmin:  l.XMin,
		xmax:  l.XMax,
		ymin:  l.YMin,
		ymax:  l.YMax + yHeadroom,
	}
	if f.xmax <= f.xmin {
		f.xmax = f.xmin + 1
	}
	if f.ymax <= f.ymin {
		f.ymax = f.ymin + 1
	}

	f.bottom = h - (legendOffset(st, 0) + legendReserve)
	f.bottom = h - (legendOffset(st, f.bottom-f.top) + legendReserve)

	minRight := f.left + (w-f.left)/3
	for _, c := range l.Callouts {
		boxRight := f.x(c.Anchor.X) + c.Shift + calloutBoxWidth(c.Lines, st)
		over := boxRight - (w - 8)
		frac := (c.Anchor.X - f.xmin) / (f.xmax - f.xmin)
		if over > 0 && frac > 0 {
			f.right -= over / frac
		}
	}
	f.right = max(f.right, minRight)
	return f
}

// legendOffset is the distance from the x axis to the top of the legend.
func legendOffset(st chart.Style, plotHeight float64) float64 {
	return max(-st.LegendY*plotHeight, st.FontSize*3)
}

func legendY(st chart.Style, f frame) float64 {
	return f.bottom + legendOffset(st, f.bottom-f.top) + swatchSize/2
}

func renderSegments(buf *bytes.Buffer, l bar.Layout, st chart.Style, f frame) {
	for _, s := range l.Segments {
		if s.Height() <= 0 {
			continue
		}
		x0, x1 := f.x(s.Left), f.x(s.Right)
		yTop, yBot := f.y(s.Top), f.y(s.Bottom)
		writeRect(buf, x0, yTop, x1-x0, yBot-yTop, s.Color, st.BarBorderColor, st.BarBorderWidth)
	}
	for _, s := range l.Segments {
		x0, x1 := f.x(s.Left), f.x(s.Right)
		yTop, yBot := f.y(s.Top), f.y(s.Bottom)
		if size := fitFontSize(s.Label, st.LabelFontSize, x1-x0, yBot-yTop); size > 0 {
			writeText(buf, f.x(s.CenterX()), f.y(s.CenterY()), s.Label, textAttrs{size: size})
		}
	}
}

func renderBarTicks(buf *bytes.Buffer, l bar.Layout, st chart.Style, f frame) {
	for _, t := range l.Ticks {
		writeText(buf, f.left-8, f.y(t.Value), t.Label, textAttrs{size: st.FontSize, anchor: "end", bold: true})
	}
	for j, year := range l.Years {
		writeText(buf, f.x(float64(j)), f.bottom+st.FontSize*1.1, year, textAttrs{size: st.FontSize, bold: true})
	}
	midX := (f.left + f.right) / 2
	writeText(buf, midX, f.bottom+st.FontSize*2.4, l.XLabel, textAttrs{size: st.FontSize, bold: true})
	writeText(buf, 12+st.FontSize*0.6, (f.top+f.bottom)/2, l.YLabel,
		textAttrs{size: st.FontSize, bold: true, rotate: -90})
}

func calloutStyle(kind bar.CalloutKind, st chart.Style) chart.Callout {
	if kind == bar.CalloutUnknown {
		return st.UnknownCallout
	}
	return st.FlaggedCallout
}

func calloutBoxWidth(lines []string, st chart.Style) float64 {
	return monoWidth(lines, st.CalloutFontSize) + 2*st.CalloutPad
}

func calloutBoxHeight(lines []string, st chart.Style) float64 {
	return float64(len(lines))*st.CalloutFontSize*lineHeight + 2*st.CalloutPad
}

func renderCallout(buf *bytes.Buffer, c bar.Callout, st chart.Style, f frame) {
	cs := calloutStyle(c.Kind, st)

	hx, hy := f.x(c.Head.X), f.y(c.Head.Y)
	tx, ty := f.x(c.Tail.X), f.y(c.Tail.Y)
	writeLine(buf, tx, ty, hx, hy, cs.Arrow, st.ArrowWidth)
	if pts := arrowHead(tx, ty, hx, hy, st); pts != nil {
		writePolygon(buf, pts, cs.Arrow, 1, cs.Arrow, 0)
	}

	bx, by := f.x(c.Anchor.X)+c.Shift, f.y(c.Anchor.Y)
	bw, bh := calloutBoxWidth(c.Lines, st), calloutBoxHeight(c.Lines, st)
	writeRect(buf, bx, by, bw, bh, cs.Background, cs.Border, st.CalloutBorderWidth)
	for i, line := range c.Lines {
		ly := by + st.CalloutPad + (float64(i)+0.5)*st.CalloutFontSize*lineHeight
		writeText(buf, bx+st.CalloutPad, ly, line, textAttrs{size: st.CalloutFontSize, anchor: "start", mono: true})
	}
}

// arrowHead returns the triangle at the head of a tail→head arrow, or nil
// when the arrow has no length or heads are disabled.
func arrowHead(tx, ty, hx, hy float64, st chart.Style) [][2]float64 {
	if st.ArrowHead <= 0 {
		return nil
	}
	dx, dy := hx-tx, hy-ty
	n := math.Hypot(dx, dy)
	if n == 0 {
		return nil
	}
	dx, dy = dx/n, dy/n
	size := 3 * st.ArrowSize * st.ArrowWidth
	bx, by := hx-size*dx, hy-size*dy
	px, py := -dy*size/2, dx*size/2
	return [][2]float64{{hx, hy}, {bx + px, by + py}, {bx - px, by - py}}
}
