package raster

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/bar"
	"github.com/desvart/qsnap/pkg/render"
)

const (
	yHeadroom     = 0.04
	minLabelPx    = 6.0
	plotAreaRatio = 0.8
)

type barFigure struct {
	plot   *plot.Plot
	legend []legendItem
	style  chart.Style
}

func (f *barFigure) Draw(c draw.Canvas) {
	lh := legendHeight(f.style)
	f.plot.Draw(draw.Crop(c, 0, 0, lh, 0))
	drawLegend(draw.Crop(c, 0, 0, 0, lh-(c.Max.Y-c.Min.Y)), f.legend, f.style)
}

// Bar builds the gonum figure of a stacked bar layout.
func Bar(l bar.Layout, img render.Image) (Figure, error) {
	st := styleOrDefault(l.Style)
	p := newPlot(l.Title, st)
	p.X.Label.Text = l.XLabel
	p.Y.Label.Text = l.YLabel

	xticks := make([]plot.Tick, len(l.Years))
	for j, y := range l.Years {
		xticks[j] = plot.Tick{Value: float64(j), Label: y}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	yticks := make([]plot.Tick, len(l.Ticks))
	for i, t := range l.Ticks {
		yticks[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)

	for _, s := range l.Segments {
		if s.Height() <= 0 {
			continue
		}
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: s.Left, Y: s.Bottom}, {X: s.Right, Y: s.Bottom},
			{X: s.Right, Y: s.Top}, {X: s.Left, Y: s.Top},
		})
		if err != nil {
			return nil, err
		}
		poly.Color = chart.RGBA(s.Color)
		poly.LineStyle = lineStyle(st.BarBorderColor, st.BarBorderWidth)
		p.Add(poly)
	}

	if err := addLines(p, l.Connectors, lineStyle(st.ConnectorColor, st.ConnectorWidth)); err != nil {
		return nil, err
	}
	if err := addLines(p, l.Axes, lineStyle(st.AxisColor, st.AxisWidth)); err != nil {
		return nil, err
	}

	p.Add(segmentLabels{segments: l.Segments, style: textStyle(sans, st.LabelFontSize)})

	totals := make(textItems, len(l.Totals))
	for i, t := range l.Totals {
		totals[i] = textItem{X: t.At.X, Y: t.At.Y, Text: t.Text, Style: textStyle(sans, st.TitleFontSize)}
	}
	p.Add(totals)
	p.Add(callouts{items: l.Callouts, style: st})

	p.X.Min, p.X.Max = l.XMin, fitCallouts(l, st, img)
	p.Y.Min, p.Y.Max = l.YMin, l.YMax+yHeadroom

	legend := make([]legendItem, len(l.Legend))
	for i, e := range l.Legend {
		legend[i] = legendItem{label: e.Category, fill: chart.RGBA(e.Color), border: chart.RGBA(st.BarBorderColor)}
	}
	return &barFigure{plot: p, legend: legend, style: st}, nil
}

func styleOrDefault(s chart.Style) chart.Style {
	if s.FontSize <= 0 || s.BarHalfWidth <= 0 {
		return chart.DefaultStyle()
	}
	return s
}

func addLines(p *plot.Plot, lines []bar.Line, ls draw.LineStyle) error {
	for _, ln := range lines {
		l, err := plotter.NewLine(plotter.XYs{{X: ln.From.X, Y: ln.From.Y}, {X: ln.To.X, Y: ln.To.Y}})
		if err != nil {
			return err
		}
		l.LineStyle = ls
		p.Add(l)
	}
	return nil
}

// fitCallouts widens the x range until every callout box, which is offset in
// pixels, ends inside the plot area. The plot area is estimated as a fixed
// share of the image width.
func fitCallouts(l bar.Layout, st chart.Style, img render.Image) float64 {
	xmax := l.XMax
	area := render.Px(float64(img.WithDefaults().Width) * plotAreaRatio)
	sty := textStyle(mono, st.CalloutFontSize)
	for _, c := range l.Callouts {
		need := render.Px(c.Shift) + boxWidth(sty, c.Lines, st)
		free := 1 - float64(need/area)
		if free <= 0.1 {
			free = 0.1
		}
		xmax = max(xmax, l.XMin+(c.Anchor.X-l.XMin)/free)
	}
	return xmax
}

func boxWidth(sty text.Style, lines []string, st chart.Style) vg.Length {
	var w vg.Length
	for _, line := range lines {
		w = max(w, sty.Width(line))
	}
	return w + 2*render.Px(st.CalloutPad)
}

// segmentLabels centers each label in its segment, shrinking the font to fit
// and dropping labels that would fall below a readable size.
type segmentLabels struct {
	segments []bar.Segment
	style    text.Style
}

func (sl segmentLabels) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, s := range sl.segments {
		if s.Label == "" {
			continue
		}
		w := trX(s.Right) - trX(s.Left)
		h := trY(s.Top) - trY(s.Bottom)
		sty := sl.style
		scale := math.Min(1, math.Min(float64(w*0.9/sty.Width(s.Label)), float64(h*0.8/sty.Font.Size)))
		sty.Font.Size = vg.Length(scale) * sty.Font.Size
		if sty.Font.Size < render.Px(minLabelPx) {
			continue
		}
		c.FillText(sty, vg.Point{X: trX(s.CenterX()), Y: trY(s.CenterY())}, s.Label)
	}
}

// callouts draws the arrow and annotation box of each callout.
type callouts struct {
	items []bar.Callout
	style chart.Style
}

func (co callouts) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	st := co.style
	sty := textStyle(mono, st.CalloutFontSize)
	sty.XAlign, sty.YAlign = draw.XLeft, draw.YTop
	pad := render.Px(st.CalloutPad)
	lineH := render.Px(st.CalloutFontSize * 1.25)

	for _, it := range co.items {
		cs := st.FlaggedCallout
		if it.Kind == bar.CalloutUnknown {
			cs = st.UnknownCallout
		}

		head := vg.Point{X: trX(it.Head.X), Y: trY(it.Head.Y)}
		tail := vg.Point{X: trX(it.Tail.X), Y: trY(it.Tail.Y)}
		c.StrokeLine2(lineStyle(cs.Arrow, st.ArrowWidth), tail.X, tail.Y, head.X, head.Y)
		if tri := arrowHead(tail, head, st); tri != nil {
			c.FillPolygon(chart.RGBA(cs.Arrow), tri)
		}

		bw := boxWidth(sty, it.Lines, st)
		bh := lineH*vg.Length(len(it.Lines)) + 2*pad
		x0, top := trX(it.Anchor.X)+render.Px(it.Shift), trY(it.Anchor.Y)
		box := []vg.Point{{X: x0, Y: top}, {X: x0 + bw, Y: top}, {X: x0 + bw, Y: top - bh}, {X: x0, Y: top - bh}}
		c.FillPolygon(chart.RGBA(cs.Background), box)
		c.StrokeLines(lineStyle(cs.Border, st.CalloutBorderWidth), append(box, box[0]))
		for i, line := range it.Lines {
			c.FillText(sty, vg.Point{X: x0 + pad, Y: top - pad - lineH*vg.Length(i)}, line)
		}
	}
}

// arrowHead returns the triangle at the head of a tail→head arrow.
func arrowHead(tail, head vg.Point, st chart.Style) []vg.Point {
	if st.ArrowHead <= 0 {
		return nil
	}
	dx, dy := float64(head.X-tail.X), float64(head.Y-tail.Y)
	n := math.Hypot(dx, dy)
	if n == 0 {
		return nil
	}
	dx, dy = dx/n, dy/n
	size := float64(render.Px(3 * st.ArrowSize * st.ArrowWidth))
	bx, by := float64(head.X)-size*dx, float64(head.Y)-size*dy
	px, py := -dy*size/2, dx*size/2
	return []vg.Point{
		head,
		{X: vg.Length(bx + px), Y: vg.Length(by + py)},
		{X: vg.Length(bx - px), Y: vg.Length(by - py)},
	}
}
