// Package raster draws chart layouts with gonum/plot and encodes them as PNG
// or PDF.
//
// [Bar] and [Radar] turn a layout into a [Figure]: a gonum plot plus the
// pieces gonum does not draw itself (horizontal legend, callout boxes with
// arrows). [PNG] and [PDF] size the canvas from a [render.Image]:
//
//	fig, err := raster.Bar(layout, img)
//	if err != nil { ... }
//	png, err := raster.PNG(fig, img) // img.Width*img.Scale pixels wide
//
// Text uses the Liberation fonts bundled with gonum, so no system fonts or
// external converters are needed.
package raster
