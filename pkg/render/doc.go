// Package render turns computed chart layouts into output files.
//
// # Overview
//
// Layouts produced by package chart/bar and chart/radar are pure data: every
// coordinate is in chart units (bar slots and fractions of a year total, or
// the unit disc for radar charts). The subpackages map those coordinates to
// a canvas:
//
//   - [sink]: hand-written SVG and the JSON layout document
//   - [plot]: gonum/plot figures for PNG and PDF export
//   - [flow]: Graphviz diagram of category bands flowing across years
//
// # Image Size
//
// [Image] carries the export size shared by every raster sink. Width and
// Height are CSS pixels; Scale multiplies the pixel density of PNG output,
// so the default 600×600 image at scale 2 is written as 1200×1200 pixels.
//
//	img := render.DefaultImage()
//	img.Width = 800
//	if err := img.Validate(); err != nil { ... }
package render
