package raster

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/render"
)

var (
	sans     = font.Font{Typeface: "Liberation", Variant: "Sans"}
	sansBold = font.Font{Typeface: "Liberation", Variant: "Sans", Weight: xfont.WeightBold}
	mono     = font.Font{Typeface: "Liberation", Variant: "Mono"}
)

// Figure is anything that can paint itself onto a gonum canvas.
type Figure interface {
	Draw(c draw.Canvas)
}

// PNG draws f on a raster canvas of img.Width×img.Height CSS pixels at
// img.Scale pixel density.
func PNG(f Figure, img render.Image) ([]byte, error) {
	img = img.WithDefaults()
	if err := img.Validate(); err != nil {
		return nil, err
	}
	w, h := img.Size()
	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(int(math.Round(img.DPI()))),
		vgimg.UseBackgroundColor(color.White),
	)
	f.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF draws f on a single page of img.Width×img.Height CSS pixels.
func PDF(f Figure, img render.Image) ([]byte, error) {
	img = img.WithDefaults()
	if err := img.Validate(); err != nil {
		return nil, err
	}
	w, h := img.Size()
	c := vgpdf.New(w, h)
	c.EmbedFonts(true)
	f.Draw(draw.New(pdfCanvas{c}))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfCanvas draws bold text with the regular face; vgpdf cannot resolve the
// bold Liberation face it embeds.
type pdfCanvas struct {
	*vgpdf.Canvas
}

func (c pdfCanvas) FillString(f font.Face, pt vg.Point, s string) {
	if f.Font.Weight != xfont.WeightNormal {
		f = font.DefaultCache.Lookup(regular(f.Font), f.Font.Size)
	}
	c.Canvas.FillString(f, pt, s)
}

func regular(f font.Font) font.Font {
	f.Weight = xfont.WeightNormal
	return f
}

// textStyle returns a centered black text style of px CSS pixels.
func textStyle(f font.Font, px float64) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(f, render.Px(px)),
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}

func lineStyle(c string, px float64) draw.LineStyle {
	return draw.LineStyle{Color: chart.RGBA(c), Width: render.Px(px)}
}

// newPlot returns a plot with the title and axis fonts of st and no axis
// lines; charts draw their own axes.
func newPlot(title string, st chart.Style) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle = textStyle(sansBold, st.TitleFontSize)
	p.Title.Padding = render.Px(st.TopMargin)

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.LineStyle.Width = 0
		ax.Tick.LineStyle.Width = 0
		ax.Tick.Length = 0
		ax.Tick.Label = textStyle(sansBold, st.FontSize)
		ax.Label.TextStyle = textStyle(sansBold, st.FontSize)
	}
	return p
}

// =============================================================================
// Legend
// =============================================================================

type legendItem struct {
	label  string
	fill   color.Color
	border color.Color
}

const (
	swatchPx = 12.0
	gapPx    = 4.0
	itemPx   = 16.0
)

// legendHeight is the strip reserved below the plot for a one-row legend.
func legendHeight(st chart.Style) vg.Length {
	return render.Px(max(swatchPx, st.FontSize) + 16)
}

// drawLegend paints items in one centered row across c.
func drawLegend(c draw.Canvas, items []legendItem, st chart.Style) {
	sty := textStyle(sans, st.FontSize)
	sty.XAlign = draw.XLeft
	sw, gap, item := render.Px(swatchPx), render.Px(gapPx), render.Px(itemPx)

	var total vg.Length
	for i, it := range items {
		total += sw + gap + sty.Width(it.label)
		if i > 0 {
			total += item
		}
	}

	x := (c.Min.X+c.Max.X)/2 - total/2
	y := (c.Min.Y + c.Max.Y) / 2
	for _, it := range items {
		box := []vg.Point{{X: x, Y: y - sw/2}, {X: x + sw, Y: y - sw/2}, {X: x + sw, Y: y + sw/2}, {X: x, Y: y + sw/2}}
		c.FillPolygon(it.fill, box)
		c.StrokeLines(draw.LineStyle{Color: it.border, Width: render.Px(1)}, append(box, box[0]))
		x += sw + gap
		c.FillText(sty, vg.Point{X: x, Y: y}, it.label)
		x += sty.Width(it.label) + item
	}
}

// =============================================================================
// Text plotter
// =============================================================================

// textItem is a piece of text anchored at a data coordinate.
type textItem struct {
	X, Y  float64
	Text  string
	Style text.Style
}

// textItems implements plot.Plotter for free-standing text.
type textItems []textItem

func (ls textItems) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, l := range ls {
		c.FillText(l.Style, vg.Point{X: trX(l.X), Y: trY(l.Y)}, l.Text)
	}
}
