package radar

import (
	"math"

	"github.com/desvart/qsnap/pkg/chart"
	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/table"
)

// MinCategories is the smallest number of axes that encloses an area.
const MinCategories = 3

// DefaultRings are the radial grid circles, as fractions of the radial range.
var DefaultRings = []float64{0.2, 0.4, 0.6, 0.8, 1}

// Point is a position in the unit disc, y pointing up.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Axis is one category spoke. Angle is in radians, counter-clockwise from
// the positive x axis; the first axis points straight up and the others
// follow clockwise.
type Axis struct {
	Category string  `json:"category"`
	Angle    float64 `json:"angle"`
	End      Point   `json:"end"`
}

// Series is the closed polygon of one year.
type Series struct {
	Year   string    `json:"year"`
	Values []float64 `json:"values"`
	Points []Point   `json:"points"`
	Color  string    `json:"color"`
}

// Layout is the fully computed radar chart.
type Layout struct {
	Title      string    `json:"title"`
	Categories []string  `json:"categories"`
	Axes       []Axis    `json:"axes"`
	Series     []Series  `json:"series"`
	Rings      []float64 `json:"rings"`
	RadialMax  float64   `json:"radial_max"`

	Style chart.Style `json:"-"`
}

// Options controls which years are drawn and the radial scale.
type Options struct {
	// SkipYears drops the first n years, keeping the chart readable when
	// long histories overlap.
	SkipYears int
	// RadialMax is the value mapped to the outer ring. Zero means 1.
	RadialMax float64
}

// Build lays out one polygon per year over the category axes. Values must lie
// in [0, RadialMax]; scores are plotted as given, without normalization.
func Build(t *table.Table, meta chart.Metadata, opts Options, style chart.Style) (Layout, error) {
	if t == nil {
		return Layout{}, qerrors.Sequence("radar layout", "SetData")
	}
	if t.NumCategories() < MinCategories {
		return Layout{}, qerrors.New(qerrors.ErrCodeInvalidSchema,
			"radar chart needs at least %d categories, got %d", MinCategories, t.NumCategories())
	}

	rmax := opts.RadialMax
	if rmax == 0 {
		rmax = 1
	}
	if rmax < 0 || math.IsNaN(rmax) || math.IsInf(rmax, 0) {
		return Layout{}, qerrors.New(qerrors.ErrCodeInvalidInput, "radial max must be positive, got %g", rmax)
	}

	shown, err := t.Tail(opts.SkipYears)
	if err != nil {
		return Layout{}, err
	}

	cats := shown.Categories()
	l := Layout{
		Title:      meta.Title,
		Categories: cats,
		Axes:       make([]Axis, len(cats)),
		Rings:      DefaultRings,
		RadialMax:  rmax,
		Style:      style,
	}
	for k, c := range cats {
		a := angle(k, len(cats))
		l.Axes[k] = Axis{Category: c, Angle: a, End: polar(1, a)}
	}

	for j, year := range shown.Years() {
		vals := shown.ColumnAt(j)
		pts := make([]Point, len(vals))
		for k, v := range vals {
			if v > rmax {
				return Layout{}, qerrors.New(qerrors.ErrCodeInvalidSchema,
					"value %g of %s/%s exceeds the radial range [0, %g]", v, cats[k], year, rmax)
			}
			pts[k] = polar(v/rmax, l.Axes[k].Angle)
		}
		l.Series = append(l.Series, Series{
			Year:   year,
			Values: vals,
			Points: pts,
			Color:  style.SeriesColor(j),
		})
	}
	return l, nil
}

// angle returns the direction of axis k of n: starting at 90° and going
// clockwise.
func angle(k, n int) float64 {
	return math.Pi/2 - 2*math.Pi*float64(k)/float64(n)
}

func polar(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}
