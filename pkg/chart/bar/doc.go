// Package bar assembles the stacked bar chart of yearly category shares.
//
// # Coordinates
//
// Layouts are expressed in data coordinates. Bar i (year i) is centered on
// x = i and spans [i-w, i+w] where w is Style.BarHalfWidth (0.4 by default).
// The y axis runs from 0 to 1, the share of the year total; column totals
// sit slightly above at Style.TotalsY.
//
// # Elements
//
//   - Segments: one rectangle per category and year, labeled "46% (12)"
//   - Connectors: for every adjacent pair of years and every category, one
//     line joining the tops and one joining the bottoms of the category band
//   - Axes: a left axis at x = -0.5 and a base line along y = 0
//   - Totals: "(count)" above each bar
//   - Callouts: boxes right of the last bar for the Unknown segment and for
//     None (or Bad when None is absent), each with an arrow pointing at the
//     segment midpoint; zero-height segments get no callout
//
// [Build] consumes the outputs of the label and extent stages. Sinks in
// package render map the layout onto SVG, PNG, PDF or JSON.
package bar
