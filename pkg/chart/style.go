package chart

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/table"
)

// Callout styles one kind of annotation box attached to the last bar.
type Callout struct {
	Background string `json:"background" toml:"background"`
	Border     string `json:"border" toml:"border"`
	Arrow      string `json:"arrow" toml:"arrow"`
	// BoxShift is the horizontal offset of the box from the last bar, in pixels.
	BoxShift float64 `json:"box_shift" toml:"box_shift"`
	// ArrowLength is the length of the connector, in category-axis units.
	ArrowLength float64 `json:"arrow_length" toml:"arrow_length"`
}

// Style is the visual configuration shared by all chart kinds. Every field
// has a default in [DefaultStyle]; a loaded configuration only overrides what
// it names.
type Style struct {
	Colors       map[string]string `json:"colors" toml:"colors"`
	DefaultColor string            `json:"default_color" toml:"default_color"`
	SeriesColors []string          `json:"series_colors" toml:"series_colors"`

	BarHalfWidth   float64 `json:"bar_half_width" toml:"bar_half_width"`
	BarBorderColor string  `json:"bar_border_color" toml:"bar_border_color"`
	BarBorderWidth float64 `json:"bar_border_width" toml:"bar_border_width"`
	ConnectorColor string  `json:"connector_color" toml:"connector_color"`
	ConnectorWidth float64 `json:"connector_width" toml:"connector_width"`
	AxisColor      string  `json:"axis_color" toml:"axis_color"`
	AxisWidth      float64 `json:"axis_width" toml:"axis_width"`

	FontSize        float64 `json:"font_size" toml:"font_size"`
	TitleFontSize   float64 `json:"title_font_size" toml:"title_font_size"`
	LabelFontSize   float64 `json:"label_font_size" toml:"label_font_size"`
	CalloutFontSize float64 `json:"callout_font_size" toml:"callout_font_size"`

	TitleY    float64 `json:"title_y" toml:"title_y"`
	LegendY   float64 `json:"legend_y" toml:"legend_y"`
	TotalsY   float64 `json:"totals_y" toml:"totals_y"`
	TopMargin float64 `json:"top_margin" toml:"top_margin"`

	UnknownCallout     Callout `json:"unknown_callout" toml:"unknown_callout"`
	FlaggedCallout     Callout `json:"flagged_callout" toml:"flagged_callout"`
	CalloutBorderWidth float64 `json:"callout_border_width" toml:"callout_border_width"`
	CalloutPad         float64 `json:"callout_pad" toml:"callout_pad"`
	ArrowHead          int     `json:"arrow_head" toml:"arrow_head"`
	ArrowSize          float64 `json:"arrow_size" toml:"arrow_size"`
	ArrowWidth         float64 `json:"arrow_width" toml:"arrow_width"`
}

// DefaultStyle returns the house style of the quality snapshot charts.
func DefaultStyle() Style {
	return Style{
		Colors: map[string]string{
			table.Full:    "#4ADE80",
			table.Good:    "#86EFAC",
			table.Average: "#D1D5DB",
			table.Low:     "#FDE047",
			table.Bad:     "#FCA5A5",
			table.None:    "#FCA5A5",
			table.Unknown: "#FFFFFF",
		},
		DefaultColor: "#CCCCCC",
		SeriesColors: []string{
			"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
			"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
		},

		BarHalfWidth:   0.4,
		BarBorderColor: "#9CA3AF",
		BarBorderWidth: 2,
		ConnectorColor: "#9CA3AF",
		ConnectorWidth: 1.5,
		AxisColor:      "#000000",
		AxisWidth:      2,

		FontSize:        12,
		TitleFontSize:   14,
		LabelFontSize:   14,
		CalloutFontSize: 11,

		TitleY:    0.99,
		LegendY:   -0.08,
		TotalsY:   1.02,
		TopMargin: 10,

		UnknownCallout: Callout{
			Background:  "#F3F4F6",
			Border:      "#6B7280",
			Arrow:       "#6B7280",
			BoxShift:    120,
			ArrowLength: 0.75,
		},
		FlaggedCallout: Callout{
			Background:  "#FEE2E2",
			Border:      "#DC2626",
			Arrow:       "#DC2626",
			BoxShift:    70,
			ArrowLength: 0.25,
		},
		CalloutBorderWidth: 2,
		CalloutPad:         8,
		ArrowHead:          2,
		ArrowSize:          1,
		ArrowWidth:         2,
	}
}

// Color returns the fill color of a category, or DefaultColor for
// categories outside the palette.
func (s Style) Color(category string) string {
	if c, ok := s.Colors[category]; ok {
		return c
	}
	return s.DefaultColor
}

// SeriesColor returns the i-th series color, cycling through the palette.
func (s Style) SeriesColor(i int) string {
	if len(s.SeriesColors) == 0 {
		return s.DefaultColor
	}
	return s.SeriesColors[i%len(s.SeriesColors)]
}

// Validate checks every color and size of the style.
func (s Style) Validate() error {
	colors := map[string]string{
		"default_color":              s.DefaultColor,
		"bar_border_color":           s.BarBorderColor,
		"connector_color":            s.ConnectorColor,
		"axis_color":                 s.AxisColor,
		"unknown_callout.background": s.UnknownCallout.Background,
		"unknown_callout.border":     s.UnknownCallout.Border,
		"unknown_callout.arrow":      s.UnknownCallout.Arrow,
		"flagged_callout.background": s.FlaggedCallout.Background,
		"flagged_callout.border":     s.FlaggedCallout.Border,
		"flagged_callout.arrow":      s.FlaggedCallout.Arrow,
	}
	for cat, c := range s.Colors {
		colors["colors."+cat] = c
	}
	for name, c := range colors {
		if _, err := ParseColor(c); err != nil {
			return qerrors.Wrap(qerrors.ErrCodeInvalidStyle, err, "%s", name)
		}
	}
	for _, c := range s.SeriesColors {
		if _, err := ParseColor(c); err != nil {
			return qerrors.Wrap(qerrors.ErrCodeInvalidStyle, err, "series_colors")
		}
	}
	if s.BarHalfWidth <= 0 || s.BarHalfWidth >= 0.5 {
		return qerrors.New(qerrors.ErrCodeInvalidStyle, "bar_half_width must be in (0, 0.5), got %g", s.BarHalfWidth)
	}
	if s.FontSize <= 0 || s.TitleFontSize <= 0 || s.LabelFontSize <= 0 || s.CalloutFontSize <= 0 {
		return qerrors.New(qerrors.ErrCodeInvalidStyle, "font sizes must be positive")
	}
	return nil
}

// ParseColor parses a "#RRGGBB" hex color.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.RGBA{}, qerrors.New(qerrors.ErrCodeInvalidStyle, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// RGBA is like [ParseColor] but falls back to opaque black.
func RGBA(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
