package bar

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/extents"
	"github.com/desvart/qsnap/pkg/chart/labels"
	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/table"
)

// arrowHeadInset is how far right of the bar center callout arrows point.
// It sits just inside the bar edge so the head touches the border.
const arrowHeadInset = 0.45

// TickValues are the labeled y-axis positions.
var TickValues = []float64{0, 0.25, 0.5, 0.75, 1}

// Input gathers the outputs of the earlier pipeline stages.
type Input struct {
	Absolute *table.Table
	Relative *table.Table
	Labels   labels.Table
	Extents  extents.Extents
	Metadata chart.Metadata
}

// Build assembles the stacked bar layout. Absolute and relative tables must
// be set; labels and extents must have been computed from them.
func Build(in Input, style chart.Style) (Layout, error) {
	if in.Absolute == nil {
		return Layout{}, qerrors.Sequence("bar layout", "SetData")
	}
	if in.Relative == nil {
		return Layout{}, qerrors.Sequence("bar layout", "Normalize")
	}
	if err := checkShape(in); err != nil {
		return Layout{}, err
	}

	years := in.Relative.Years()
	cats := in.Relative.Categories()

	l := Layout{
		Title:      in.Metadata.Title,
		XLabel:     XAxisTitle,
		YLabel:     in.Metadata.YLabel,
		Years:      years,
		Categories: cats,
		Style:      style,
	}

	l.Segments = buildSegments(in, style)
	l.Connectors = buildConnectors(in.Extents, style.BarHalfWidth)
	l.Axes = buildAxes(len(years))
	l.Totals = buildTotals(in.Absolute, style.TotalsY)
	l.Ticks = buildTicks()
	l.Callouts = buildCallouts(in, style)
	l.Legend = buildLegend(cats, style)

	l.XMin, l.XMax = -0.5, float64(len(years))-0.5
	l.YMin, l.YMax = 0, style.TotalsY
	for _, c := range l.Callouts {
		l.XMax = max(l.XMax, c.Tail.X)
	}
	return l, nil
}

func checkShape(in Input) error {
	cats, years := in.Relative.Categories(), in.Relative.Years()
	if !slices.Equal(in.Absolute.Categories(), cats) || !slices.Equal(in.Absolute.Years(), years) {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "absolute and relative tables differ in shape")
	}
	if len(in.Labels.Years) == 0 {
		return qerrors.Sequence("bar layout", "labels.Build")
	}
	if !slices.Equal(in.Labels.Categories, cats) || !slices.Equal(in.Labels.Years, years) {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "label table does not match the relative table")
	}
	if len(in.Extents.Years) == 0 {
		return qerrors.Sequence("bar layout", "extents.Compute")
	}
	if !slices.Equal(in.Extents.Categories, cats) || !slices.Equal(in.Extents.Years, years) {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "extents do not match the relative table")
	}
	return nil
}

func buildSegments(in Input, style chart.Style) []Segment {
	cats := in.Extents.Categories
	segs := make([]Segment, 0, len(cats)*len(in.Extents.Years))
	for j, year := range in.Extents.Years {
		x := float64(j)
		for i, cat := range cats {
			e := in.Extents.Spans[j][i]
			segs = append(segs, Segment{
				Category: cat,
				Year:     year,
				Left:     x - style.BarHalfWidth,
				Right:    x + style.BarHalfWidth,
				Bottom:   e.Bottom,
				Top:      e.Top,
				Count:    in.Absolute.At(i, j),
				Percent:  in.Labels.Percent[i][j],
				Label:    in.Labels.Text[i][j],
				Color:    style.Color(cat),
			})
		}
	}
	return segs
}

// buildConnectors links the top and bottom of every category band between
// adjacent bars.
func buildConnectors(x extents.Extents, halfWidth float64) []Line {
	if len(x.Years) < 2 {
		return nil
	}
	lines := make([]Line, 0, 2*len(x.Categories)*(len(x.Years)-1))
	for j := 0; j < len(x.Years)-1; j++ {
		from, to := float64(j)+halfWidth, float64(j+1)-halfWidth
		for i, cat := range x.Categories {
			a, b := x.Spans[j][i], x.Spans[j+1][i]
			lines = append(lines,
				Line{From: Point{from, a.Top}, To: Point{to, b.Top}, Category: cat, Edge: EdgeTop},
				Line{From: Point{from, a.Bottom}, To: Point{to, b.Bottom}, Category: cat, Edge: EdgeBottom},
			)
		}
	}
	return lines
}

func buildAxes(numYears int) []Line {
	return []Line{
		{From: Point{-0.5, 0}, To: Point{-0.5, 1}},
		{From: Point{-0.5, 0}, To: Point{float64(numYears) - 0.5, 0}},
	}
}

func buildTotals(abs *table.Table, y float64) []Total {
	years := abs.Years()
	out := make([]Total, len(years))
	for j, year := range years {
		total := floats.Sum(abs.ColumnAt(j))
		out[j] = Total{
			Year:  year,
			At:    Point{float64(j), y},
			Count: total,
			Text:  fmt.Sprintf("(%d)", int(total)),
		}
	}
	return out
}

func buildTicks() []Tick {
	ticks := make([]Tick, len(TickValues))
	for i, v := range TickValues {
		ticks[i] = Tick{Value: v, Label: fmt.Sprintf("%d%%", int(v*100))}
	}
	return ticks
}

func buildLegend(cats []string, style chart.Style) []LegendEntry {
	out := make([]LegendEntry, len(cats))
	for i, c := range cats {
		out[i] = LegendEntry{Category: c, Color: style.Color(c)}
	}
	return out
}

// buildCallouts annotates the last bar: Unknown when present, then None if
// present or else Bad. A category whose last value is zero gets no callout.
func buildCallouts(in Input, style chart.Style) []Callout {
	rel := in.Relative
	var out []Callout

	if rel.HasCategory(table.Unknown) {
		if c, ok := newCallout(in, table.Unknown, CalloutUnknown, style.UnknownCallout); ok {
			out = append(out, c)
		}
	}

	target := ""
	switch {
	case rel.HasCategory(table.None):
		target = table.None
	case rel.HasCategory(table.Bad):
		target = table.Bad
	}
	if target != "" {
		if c, ok := newCallout(in, target, CalloutFlagged, style.FlaggedCallout); ok {
			out = append(out, c)
		}
	}
	return out
}

func newCallout(in Input, category string, kind CalloutKind, cs chart.Callout) (Callout, bool) {
	year := in.Relative.LastYear()
	if v, _ := in.Relative.Value(category, year); v <= 0 {
		return Callout{}, false
	}
	e, ok := in.Extents.At(year, category)
	if !ok {
		return Callout{}, false
	}

	last := float64(in.Relative.NumYears() - 1)
	lines := in.Metadata.Trigrams.Lookup(year, category)
	if len(lines) == 0 {
		lines = []string{category}
	}

	return Callout{
		Kind:     kind,
		Category: category,
		Year:     year,
		Lines:    slices.Clone(lines),
		Head:     Point{last + arrowHeadInset, e.Mid()},
		Tail:     Point{last + arrowHeadInset + cs.ArrowLength, e.Mid()},
		Anchor:   Point{last, e.Top},
		Shift:    cs.BoxShift,
	}, true
}
