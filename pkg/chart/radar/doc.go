// Package radar lays out spider charts of per-category scores.
//
// Each category is an axis. The first axis points up and the rest follow
// clockwise at equal angles. Every year becomes a closed polygon whose vertex
// on axis k sits at distance value/RadialMax from the center. Scores are
// expected in [0, 1] by default; unlike the bar chart nothing is normalized.
//
// Options.SkipYears drops leading years when only the recent ones matter.
package radar
