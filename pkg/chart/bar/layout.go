package bar

import (
	"strings"

	"github.com/desvart/qsnap/pkg/chart"
)

// XAxisTitle is the title of the horizontal axis.
const XAxisTitle = "Year"

// Point is a position in data coordinates: x in bar slots (bar i is centered
// on x = i), y in fractions of the year total.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one category's rectangle inside one bar.
type Segment struct {
	Category string  `json:"category"`
	Year     string  `json:"year"`
	Left     float64 `json:"left"`
	Right    float64 `json:"right"`
	Bottom   float64 `json:"bottom"`
	Top      float64 `json:"top"`
	Count    float64 `json:"count"`
	Percent  int     `json:"percent"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
}

// Width returns the horizontal span of the segment.
func (s Segment) Width() float64 { return s.Right - s.Left }

// Height returns the vertical span of the segment.
func (s Segment) Height() float64 { return s.Top - s.Bottom }

// CenterX returns the horizontal center point of the segment.
func (s Segment) CenterX() float64 { return (s.Left + s.Right) / 2 }

// CenterY returns the vertical center point of the segment.
func (s Segment) CenterY() float64 { return (s.Bottom + s.Top) / 2 }

// Edge names the boundary of a segment a connector follows.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// Line is a straight line in data coordinates. Connectors carry the category
// and edge they track; axis lines leave both empty.
type Line struct {
	From     Point  `json:"from"`
	To       Point  `json:"to"`
	Category string `json:"category,omitempty"`
	Edge     Edge   `json:"edge,omitempty"`
}

// Total is the "(count)" annotation above a bar.
type Total struct {
	Year  string  `json:"year"`
	At    Point   `json:"at"`
	Count float64 `json:"count"`
	Text  string  `json:"text"`
}

// Tick is a labeled y-axis position.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// CalloutKind selects the callout palette.
type CalloutKind string

const (
	// CalloutUnknown marks the items whose quality is not known.
	CalloutUnknown CalloutKind = "unknown"
	// CalloutFlagged marks the items rated None or Bad.
	CalloutFlagged CalloutKind = "flagged"
)

// Callout is an annotation box next to the last bar with an arrow pointing
// at the middle of a segment.
type Callout struct {
	Kind     CalloutKind `json:"kind"`
	Category string      `json:"category"`
	Year     string      `json:"year"`
	Lines    []string    `json:"lines"`
	// Head is where the arrow points: the right edge of the segment, at its midpoint.
	Head Point `json:"head"`
	// Tail is the other end of the arrow, on the box side.
	Tail Point `json:"tail"`
	// Anchor is the top-left corner of the box before the pixel shift.
	Anchor Point `json:"anchor"`
	// Shift moves the box right of Anchor, in pixels.
	Shift float64 `json:"shift"`
}

// Text returns the box content, one entry per line.
func (c Callout) Text() string { return strings.Join(c.Lines, "\n") }

// LegendEntry pairs a category with its fill color.
type LegendEntry struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

// Layout is the fully computed stacked bar chart. It contains every
// coordinate a sink needs; sinks only map data coordinates to their canvas.
type Layout struct {
	Title      string        `json:"title"`
	XLabel     string        `json:"x_label"`
	YLabel     string        `json:"y_label"`
	Years      []string      `json:"years"`
	Categories []string      `json:"categories"`
	Segments   []Segment     `json:"segments"`
	Connectors []Line        `json:"connectors,omitempty"`
	Axes       []Line        `json:"axes"`
	Totals     []Total       `json:"totals"`
	Ticks      []Tick        `json:"ticks"`
	Callouts   []Callout     `json:"callouts,omitempty"`
	Legend     []LegendEntry `json:"legend"`

	// Data ranges covered by the chart, including totals and callouts.
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`

	Style chart.Style `json:"-"`
}

// SegmentsOf returns the segments of a year, bottom to top.
func (l Layout) SegmentsOf(year string) []Segment {
	var out []Segment
	for _, s := range l.Segments {
		if s.Year == year {
			out = append(out, s)
		}
	}
	return out
}

// Callout returns the callout attached to a category, if any.
func (l Layout) Callout(category string) (Callout, bool) {
	for _, c := range l.Callouts {
		if c.Category == category {
			return c, true
		}
	}
	return Callout{}, false
}
