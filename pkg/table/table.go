package table

import (
	"encoding/json"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	qerrors "github.com/desvart/qsnap/pkg/errors"
)

// CategoryColumn is the name of the column holding category labels in
// tabular sources (JSON datasets, spreadsheets).
const CategoryColumn = "Category"

// RelativePrecision is the number of decimal places kept by [Table.Normalize].
const RelativePrecision = 4

// Well-known quality categories. The vocabulary is open: any label is a
// valid category, these are the ones the chart styles know about.
const (
	Full    = "Full"
	Good    = "Good"
	Average = "Average"
	Low     = "Low"
	Bad     = "Bad"
	None    = "None"
	Unknown = "Unknown"
)

// Row is one category with a value for every year, in year order.
type Row struct {
	Category string
	Values   []float64
}

// Column is one year with a value for every category, in stacking order.
type Column struct {
	Year   string
	Values []float64
}

// Table is a dense category × year matrix of non-negative values.
//
// Category order is the stacking order (bottom to top) and year order is the
// horizontal order of the chart. Both are fixed at construction and every
// accessor iterates in that order. A Table is immutable: methods that derive
// new values, such as [Table.Normalize], return a new Table.
//
// The zero value is an empty table; use [New] or [FromColumns] to build one.
type Table struct {
	categories []string
	years      []string
	values     [][]float64 // [category][year]

	catIndex  map[string]int
	yearIndex map[string]int
}

// New builds a table from rows. Each row must carry exactly one value per
// year. New returns an INVALID_SCHEMA error when:
//   - no year or no row is given
//   - a category or year label is empty, duplicated or malformed
//   - a row has the wrong number of values
//   - a value is negative, NaN or infinite
func New(years []string, rows ...Row) (*Table, error) {
	if len(years) == 0 {
		return nil, qerrors.New(qerrors.ErrCodeInvalidSchema, "table must contain at least one year column besides %q", CategoryColumn)
	}
	if len(rows) == 0 {
		return nil, qerrors.New(qerrors.ErrCodeInvalidSchema, "table must contain at least one category row")
	}

	t := &Table{
		categories: make([]string, 0, len(rows)),
		years:      slices.Clone(years),
		values:     make([][]float64, 0, len(rows)),
		catIndex:   make(map[string]int, len(rows)),
		yearIndex:  make(map[string]int, len(years)),
	}

	for j, y := range years {
		if err := qerrors.ValidateLabel("year", y); err != nil {
			return nil, err
		}
		if _, dup := t.yearIndex[y]; dup {
			return nil, qerrors.New(qerrors.ErrCodeInvalidSchema, "duplicate year column %q", y)
		}
		t.yearIndex[y] = j
	}

	for _, r := range rows {
		if err := qerrors.ValidateLabel("category", r.Category); err != nil {
			return nil, err
		}
		if _, dup := t.catIndex[r.Category]; dup {
			return nil, qerrors.New(qerrors.ErrCodeInvalidSchema, "duplicate category %q", r.Category)
		}
		if len(r.Values) != len(years) {
			return nil, qerrors.New(qerrors.ErrCodeInvalidSchema,
				"category %q has %d values, want one per year (%d)", r.Category, len(r.Values), len(years))
		}
		for j, v := range r.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, qerrors.New(qerrors.ErrCodeInvalidSchema,
					"year column %q must contain numeric values (category %q)", years[j], r.Category)
			}
			if v < 0 {
				return nil, qerrors.New(qerrors.ErrCodeInvalidSchema,
					"year column %q contains negative value %g (category %q)", years[j], v, r.Category)
			}
		}
		t.catIndex[r.Category] = len(t.categories)
		t.categories = append(t.categories, r.Category)
		t.values = append(t.values, slices.Clone(r.Values))
	}

	return t, nil
}

// FromColumns builds a table from the column-oriented shape used by
// spreadsheet exports: a category column plus one column per year.
func FromColumns(categories []string, columns ...Column) (*Table, error) {
	years := make([]string, len(columns))
	for j, c := range columns {
		years[j] = c.Year
		if len(c.Values) != len(categories) {
			return nil, qerrors.New(qerrors.ErrCodeInvalidSchema,
				"year column %q has %d values, want one per category (%d)", c.Year, len(c.Values), len(categories))
		}
	}

	rows := make([]Row, len(categories))
	for i, cat := range categories {
		vals := make([]float64, len(columns))
		for j, c := range columns {
			vals[j] = c.Values[i]
		}
		rows[i] = Row{Category: cat, Values: vals}
	}
	return New(years, rows...)
}

// Categories returns the category labels in stacking order.
func (t *Table) Categories() []string { return slices.Clone(t.categories) }

// Years returns the year labels in chart order.
func (t *Table) Years() []string { return slices.Clone(t.years) }

// NumCategories returns the number of category rows.
func (t *Table) NumCategories() int { return len(t.categories) }

// NumYears returns the number of year columns.
func (t *Table) NumYears() int { return len(t.years) }

// LastYear returns the right-most year label, or "" for an empty table.
func (t *Table) LastYear() string {
	if len(t.years) == 0 {
		return ""
	}
	return t.years[len(t.years)-1]
}

// HasCategory reports whether the table contains the category.
func (t *Table) HasCategory(category string) bool {
	_, ok := t.catIndex[category]
	return ok
}

// CategoryIndex returns the stacking position of category.
func (t *Table) CategoryIndex(category string) (int, bool) {
	i, ok := t.catIndex[category]
	return i, ok
}

// YearIndex returns the horizontal position of year.
func (t *Table) YearIndex(year string) (int, bool) {
	j, ok := t.yearIndex[year]
	return j, ok
}

// At returns the value at category index i and year index j.
// It panics if either index is out of range.
func (t *Table) At(i, j int) float64 { return t.values[i][j] }

// Value returns the value for a category and year.
func (t *Table) Value(category, year string) (float64, bool) {
	i, ok := t.catIndex[category]
	if !ok {
		return 0, false
	}
	j, ok := t.yearIndex[year]
	if !ok {
		return 0, false
	}
	return t.values[i][j], true
}

// Row returns a copy of the values of a category, in year order.
func (t *Table) Row(category string) ([]float64, bool) {
	i, ok := t.catIndex[category]
	if !ok {
		return nil, false
	}
	return slices.Clone(t.values[i]), true
}

// ColumnAt returns a copy of the values of year index j, in stacking order.
func (t *Table) ColumnAt(j int) []float64 {
	col := make([]float64, len(t.categories))
	for i := range t.categories {
		col[i] = t.values[i][j]
	}
	return col
}

// Column returns a copy of the values of a year, in stacking order.
func (t *Table) Column(year string) ([]float64, bool) {
	j, ok := t.yearIndex[year]
	if !ok {
		return nil, false
	}
	return t.ColumnAt(j), true
}

// Total returns the sum over all categories for a year.
func (t *Table) Total(year string) (float64, bool) {
	col, ok := t.Column(year)
	if !ok {
		return 0, false
	}
	return floats.Sum(col), true
}

// Totals returns the per-year totals in year order.
func (t *Table) Totals() []float64 {
	totals := make([]float64, len(t.years))
	for j := range t.years {
		totals[j] = floats.Sum(t.ColumnAt(j))
	}
	return totals
}

// Normalize divides every value by its year's total and rounds the result to
// [RelativePrecision] decimal places (half to even). A year whose total is
// zero makes normalization undefined and fails with EMPTY_YEAR.
func (t *Table) Normalize() (*Table, error) {
	totals := t.Totals()
	for j, total := range totals {
		if total <= 0 {
			return nil, qerrors.New(qerrors.ErrCodeEmptyYear, "year %q has a zero total; cannot compute relative values", t.years[j])
		}
	}

	rows := make([]Row, len(t.categories))
	for i, cat := range t.categories {
		vals := make([]float64, len(t.years))
		for j, total := range totals {
			vals[j] = scalar.RoundEven(t.values[i][j]/total, RelativePrecision)
		}
		rows[i] = Row{Category: cat, Values: vals}
	}
	return New(t.years, rows...)
}

// Tail returns a table with the first n years removed. It returns the table
// unchanged when n <= 0 and an INVALID_INPUT error when no year would remain.
func (t *Table) Tail(n int) (*Table, error) {
	if n <= 0 {
		return t, nil
	}
	if n >= len(t.years) {
		return nil, qerrors.New(qerrors.ErrCodeInvalidInput, "cannot skip %d of %d years", n, len(t.years))
	}
	rows := make([]Row, len(t.categories))
	for i, cat := range t.categories {
		rows[i] = Row{Category: cat, Values: slices.Clone(t.values[i][n:])}
	}
	return New(t.years[n:], rows...)
}

// wireTable is the JSON shape of a Table. Slices keep the ordering explicit.
type wireTable struct {
	Categories []string    `json:"categories"`
	Years      []string    `json:"years"`
	Values     [][]float64 `json:"values"`
}

// MarshalJSON encodes the table with explicit category and year order.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTable{Categories: t.categories, Years: t.years, Values: t.values})
}

// UnmarshalJSON decodes a table produced by [Table.MarshalJSON] and validates it.
func (t *Table) UnmarshalJSON(data []byte) error {
	var w wireTable
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if len(w.Values) != len(w.Categories) {
		return qerrors.New(qerrors.ErrCodeInvalidSchema, "table has %d categories but %d value rows", len(w.Categories), len(w.Values))
	}
	rows := make([]Row, len(w.Categories))
	for i, cat := range w.Categories {
		rows[i] = Row{Category: cat, Values: w.Values[i]}
	}
	parsed, err := New(w.Years, rows...)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}
