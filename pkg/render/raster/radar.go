package raster

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/radar"
)

const (
	radarExtent   = 1.3
	labelRadius   = 1.08
	ringSegments  = 72
	seriesAlpha   = 90
	gridColorName = "#E5E7EB"
)

type radarFigure struct {
	plot   *plot.Plot
	legend []legendItem
	style  chart.Style
}

// Draw keeps the chart square so rings stay circular.
func (f *radarFigure) Draw(c draw.Canvas) {
	lh := legendHeight(f.style)
	area := draw.Crop(c, 0, 0, lh, 0)
	w, h := area.Max.X-area.Min.X, area.Max.Y-area.Min.Y
	if w > h {
		d := (w - h) / 2
		area = draw.Crop(area, d, -d, 0, 0)
	} else if h > w {
		area = draw.Crop(area, 0, 0, h-w, 0)
	}
	f.plot.Draw(area)
	drawLegend(draw.Crop(c, 0, 0, 0, lh-(c.Max.Y-c.Min.Y)), f.legend, f.style)
}

// Radar builds the gonum figure of a radar layout.
func Radar(l radar.Layout) (Figure, error) {
	st := styleOrDefault(l.Style)
	p := newPlot(l.Title, st)
	p.HideAxes()

	grid := lineStyle(gridColorName, 1)
	for _, r := range l.Rings {
		pts := make(plotter.XYs, ringSegments+1)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / ringSegments
			pts[i] = plotter.XY{X: r * math.Cos(a), Y: r * math.Sin(a)}
		}
		ring, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		ring.LineStyle = grid
		p.Add(ring)
	}

	var annotations textItems
	for _, a := range l.Axes {
		spoke, err := plotter.NewLine(plotter.XYs{{}, {X: a.End.X, Y: a.End.Y}})
		if err != nil {
			return nil, err
		}
		spoke.LineStyle = grid
		p.Add(spoke)

		sty := textStyle(sansBold, st.FontSize)
		switch c := math.Cos(a.Angle); {
		case c > 0.1:
			sty.XAlign = draw.XLeft
		case c < -0.1:
			sty.XAlign = draw.XRight
		}
		annotations = append(annotations, textItem{
			X: labelRadius * math.Cos(a.Angle), Y: labelRadius * math.Sin(a.Angle),
			Text: a.Category, Style: sty,
		})
	}
	for _, r := range l.Rings {
		sty := textStyle(sans, st.FontSize*0.8)
		sty.XAlign = draw.XLeft
		annotations = append(annotations, textItem{
			X: 0.02, Y: r, Text: strconv.FormatFloat(r*l.RadialMax, 'g', 4, 64), Style: sty,
		})
	}

	legend := make([]legendItem, len(l.Series))
	for i, s := range l.Series {
		xys := make(plotter.XYs, len(s.Points))
		for k, pt := range s.Points {
			xys[k] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return nil, err
		}
		c := chart.RGBA(s.Color)
		poly.Color = color.NRGBA{R: c.R, G: c.G, B: c.B, A: seriesAlpha}
		poly.LineStyle = lineStyle(s.Color, 2)
		p.Add(poly)
		legend[i] = legendItem{label: s.Year, fill: c, border: c}
	}
	p.Add(annotations)

	p.X.Min, p.X.Max = -radarExtent, radarExtent
	p.Y.Min, p.Y.Max = -radarExtent, radarExtent
	return &radarFigure{plot: p, legend: legend, style: st}, nil
}

