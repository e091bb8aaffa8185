package render

import (
	"math"

	"gonum.org/v1/plot/vg"

	qerrors "github.com/desvart/qsnap/pkg/errors"
)

// Default export size.
const (
	DefaultWidth  = 600
	DefaultHeight = 600
	DefaultScale  = 2.0
)

// BaseDPI is the resolution of one CSS pixel.
const BaseDPI = 96

// MaxSide bounds either side of an exported image, in pixels after scaling.
const MaxSide = 16384

// Image is the size of an exported chart.
type Image struct {
	Width  int     `json:"width" toml:"width"`
	Height int     `json:"height" toml:"height"`
	Scale  float64 `json:"scale" toml:"scale"`
}

// DefaultImage returns a 600×600 image at scale 2.
func DefaultImage() Image {
	return Image{Width: DefaultWidth, Height: DefaultHeight, Scale: DefaultScale}
}

// WithDefaults fills zero fields from [DefaultImage].
func (i Image) WithDefaults() Image {
	if i.Width == 0 {
		i.Width = DefaultWidth
	}
	if i.Height == 0 {
		i.Height = DefaultHeight
	}
	if i.Scale == 0 {
		i.Scale = DefaultScale
	}
	return i
}

// Validate checks that the image has a positive, bounded size.
func (i Image) Validate() error {
	if i.Width <= 0 || i.Height <= 0 {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "image size must be positive, got %dx%d", i.Width, i.Height)
	}
	if i.Scale <= 0 || math.IsNaN(i.Scale) || math.IsInf(i.Scale, 0) {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "image scale must be positive, got %g", i.Scale)
	}
	w, h := i.Pixels()
	if w > MaxSide || h > MaxSide {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "scaled image %dx%d exceeds %d pixels per side", w, h, MaxSide)
	}
	return nil
}

// Pixels returns the raster size after scaling.
func (i Image) Pixels() (w, h int) {
	return int(math.Round(float64(i.Width) * i.Scale)), int(math.Round(float64(i.Height) * i.Scale))
}

// Size returns the image size as vector lengths.
func (i Image) Size() (w, h vg.Length) {
	return Px(float64(i.Width)), Px(float64(i.Height))
}

// DPI returns the raster resolution that yields [Image.Pixels].
func (i Image) DPI() float64 { return BaseDPI * i.Scale }

// Px converts CSS pixels to a vector length.
func Px(px float64) vg.Length {
	return vg.Length(px) * vg.Inch / BaseDPI
}
