package labels

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/table"
)

// Hundred is the total every reconciled year sums to.
const Hundred = 100

// ErrNoData is returned when there is nothing to turn into percentages.
var ErrNoData = qerrors.New(qerrors.ErrCodeNoData, "no data: percentages need at least one positive value")

// Reconcile converts the relative values of one year into integer
// percentages that sum to exactly 100.
//
// Each value is scaled to a percentage and rounded half to even. The
// difference between 100 and the rounded sum (the drift) is added in full to
// the first index with the largest rounding error. The drift is never split
// across categories and the corrected value is not clamped, so a drift larger
// than one point lands on a single label.
//
// Reconcile returns [ErrNoData] for an empty input or one that sums to zero,
// and an INVALID_INPUT error for negative or non-finite values.
func Reconcile(relative []float64) ([]int, error) {
	if len(relative) == 0 {
		return nil, ErrNoData
	}
	for i, r := range relative {
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return nil, qerrors.New(qerrors.ErrCodeInvalidInput, "relative value %d is %g, want a non-negative number", i, r)
		}
	}
	if floats.Sum(relative) <= 0 {
		return nil, ErrNoData
	}

	exact := make([]float64, len(relative))
	floats.ScaleTo(exact, Hundred, relative)

	pct := make([]int, len(exact))
	sum := 0
	for i, e := range exact {
		pct[i] = int(math.RoundToEven(e))
		sum += pct[i]
	}

	drift := Hundred - sum
	if drift == 0 {
		return pct, nil
	}

	errs := make([]float64, len(exact))
	for i, e := range exact {
		errs[i] = math.Abs(e - float64(pct[i]))
	}
	pct[floats.MaxIdx(errs)] += drift
	return pct, nil
}

// Format renders a segment label: the percentage followed by the absolute
// count in parentheses, e.g. "46% (12)".
func Format(pct int, count float64) string {
	return fmt.Sprintf("%d%% (%d)", pct, int(count))
}

// Table holds reconciled percentages and display labels for every category
// and year, in the stacking and year order of the source table.
type Table struct {
	Categories []string   `json:"categories"`
	Years      []string   `json:"years"`
	Percent    [][]int    `json:"percent"` // [category][year]
	Text       [][]string `json:"text"`    // [category][year]
}

// Build reconciles every year of rel and pairs the percentages with the
// absolute counts of abs. Both tables must have the same categories and
// years in the same order, as produced by [table.Table.Normalize].
func Build(abs, rel *table.Table) (Table, error) {
	if abs == nil || rel == nil {
		return Table{}, qerrors.Sequence("label computation", "Normalize")
	}
	if !slices.Equal(abs.Categories(), rel.Categories()) || !slices.Equal(abs.Years(), rel.Years()) {
		return Table{}, qerrors.New(qerrors.ErrCodeInvalidInput, "absolute and relative tables differ in shape")
	}

	nc, ny := abs.NumCategories(), abs.NumYears()
	out := Table{
		Categories: abs.Categories(),
		Years:      abs.Years(),
		Percent:    make([][]int, nc),
		Text:       make([][]string, nc),
	}
	for i := range nc {
		out.Percent[i] = make([]int, ny)
		out.Text[i] = make([]string, ny)
	}

	for j, year := range out.Years {
		pct, err := Reconcile(rel.ColumnAt(j))
		if err != nil {
			return Table{}, qerrors.Wrap(qerrors.GetCode(err), err, "year %s", year)
		}
		for i := range nc {
			out.Percent[i][j] = pct[i]
			out.Text[i][j] = Format(pct[i], abs.At(i, j))
		}
	}
	return out, nil
}

// Labels returns the display strings of a category, one per year.
func (t Table) Labels(category string) ([]string, bool) {
	i := slices.Index(t.Categories, category)
	if i < 0 {
		return nil, false
	}
	return t.Text[i], true
}

// Percentages returns the reconciled percentages of a year, in stacking order.
func (t Table) Percentages(year string) ([]int, bool) {
	j := slices.Index(t.Years, year)
	if j < 0 {
		return nil, false
	}
	col := make([]int, len(t.Categories))
	for i := range t.Categories {
		col[i] = t.Percent[i][j]
	}
	return col, true
}

// Label returns the display string of a category in a year.
func (t Table) Label(category, year string) (string, bool) {
	i := slices.Index(t.Categories, category)
	j := slices.Index(t.Years, year)
	if i < 0 || j < 0 {
		return "", false
	}
	return t.Text[i][j], true
}
