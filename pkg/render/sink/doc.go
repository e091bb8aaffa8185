// Package sink writes chart layouts as SVG.
//
// # Overview
//
// A "sink" maps a computed layout onto a canvas. The layouts carry data
// coordinates only; [RenderBarSVG] and [RenderRadarSVG] choose the margins,
// fit the callout boxes and legend, and write self-contained SVG markup:
//
//	svg := sink.RenderBarSVG(layout,
//	    sink.WithImage(render.Image{Width: 800, Height: 600, Scale: 1}),
//	    sink.WithFontFamily("Inter, sans-serif"),
//	)
//
// # SVG Options
//
//   - [WithImage]: canvas size in CSS pixels (default 600×600)
//   - [WithBackground]: page color (default white)
//   - [WithFontFamily]: font stack for all text
//
// Raster formats are drawn by package render/plot; the SVG output here needs
// no external tools.
package sink
