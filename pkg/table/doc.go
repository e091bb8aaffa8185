// Package table provides the metric table behind every qsnap chart.
//
// # Overview
//
// A [Table] holds non-negative counts indexed by category (rows) and year
// (columns). It corresponds to the spreadsheet exports the charts are built
// from:
//
//	Category | 2022 | 2023 | 2024
//	Good     |   12 |   22 |   34
//	Average  |   12 |   18 |   12
//	Bad      |    2 |    9 |    5
//
// The table is dense (every category has a value for every year) and ordered:
// category order is the bottom-to-top stacking order of the bars, year order
// is the left-to-right order of the chart. Go maps are only used as indexes;
// iteration always follows the construction order.
//
// # Normalization
//
// [Table.Normalize] turns counts into fractions of each year's total, rounded
// to four decimal places. The result feeds the percentage reconciler
// (package labels) and the segment coordinate engine (package extents).
//
//	abs, _ := table.New([]string{"2022"},
//	    table.Row{Category: "Good", Values: []float64{12}},
//	    table.Row{Category: "Bad", Values: []float64{2}},
//	)
//	rel, err := abs.Normalize() // Good 0.8571, Bad 0.1429
//
// A year with a zero total cannot be normalized and yields an EMPTY_YEAR
// error rather than NaN values.
package table
