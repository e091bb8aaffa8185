package extents

import (
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/desvart/qsnap/pkg/table"
)

// Extent is the vertical span of one stacked segment, in the units of the
// source values (fractions of the year total for normalized tables).
type Extent struct {
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

// Height returns the vertical span of the segment.
func (e Extent) Height() float64 { return e.Top - e.Bottom }

// Mid returns the vertical midpoint of the segment.
func (e Extent) Mid() float64 { return (e.Bottom + e.Top) / 2 }

// Stack turns one year's values into cumulative extents in stacking order.
// The first segment starts at zero and each segment starts where the
// previous one ends. Zero values yield zero-height extents and are kept.
func Stack(values []float64) []Extent {
	if len(values) == 0 {
		return nil
	}
	tops := floats.CumSum(make([]float64, len(values)), values)

	out := make([]Extent, len(values))
	var bottom float64
	for i, top := range tops {
		out[i] = Extent{Bottom: bottom, Top: top}
		bottom = top
	}
	return out
}

// Extents holds the stacked extents of every year of a table.
type Extents struct {
	Categories []string   `json:"categories"`
	Years      []string   `json:"years"`
	Spans      [][]Extent `json:"spans"` // [year][category]
}

// Compute stacks every year column of t independently.
func Compute(t *table.Table) Extents {
	x := Extents{
		Categories: t.Categories(),
		Years:      t.Years(),
		Spans:      make([][]Extent, t.NumYears()),
	}
	for j := range x.Years {
		x.Spans[j] = Stack(t.ColumnAt(j))
	}
	return x
}

// Year returns the extents of a year, in stacking order.
func (x Extents) Year(year string) ([]Extent, bool) {
	j := slices.Index(x.Years, year)
	if j < 0 {
		return nil, false
	}
	return x.Spans[j], true
}

// At returns the extent of a category in a year.
func (x Extents) At(year, category string) (Extent, bool) {
	j := slices.Index(x.Years, year)
	i := slices.Index(x.Categories, category)
	if i < 0 || j < 0 {
		return Extent{}, false
	}
	return x.Spans[j][i], true
}

// Last returns the extent of a category in the right-most year.
func (x Extents) Last(category string) (Extent, bool) {
	if len(x.Years) == 0 {
		return Extent{}, false
	}
	return x.At(x.Years[len(x.Years)-1], category)
}
