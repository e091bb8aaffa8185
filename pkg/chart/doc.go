// Package chart holds the presentation inputs shared by every chart kind.
//
// [Metadata] carries the title, the y-axis label and the optional trigrams
// shown in callout boxes. [Style] is the named-field configuration record
// behind colors, line widths, font sizes and callout offsets; [DefaultStyle]
// returns the house style and a TOML file can override any field (see
// package config).
//
// The computations themselves live in subpackages:
//
//   - labels: percentage reconciliation and "<pct>% (<count>)" labels
//   - extents: cumulative segment extents per year
//   - bar: stacked bar layout (segments, connectors, totals, callouts)
//   - radar: spider chart layout
package chart
