// Package pipeline turns a metric table into rendered charts.
//
// The pipeline is an explicit chain of pure stages:
//
//  1. Validate: check the table and metadata
//  2. Normalize: divide every value by its year total
//  3. ComputeLabels: reconcile percentages to 100 and format labels
//  4. ComputeExtents: stack relative values into segment extents
//  5. Assemble: build the bar, radar or flow layout as a [render.Document]
//  6. Render: produce SVG, PNG, PDF, JSON or DOT bytes
//
// Radar charts plot raw scores and skip stages 2 to 4; flow diagrams skip
// stage 4. Each stage can be called on its own, [Layout] runs 1 to 5 and the
// [Runner] runs everything with caching:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, ds, pipeline.Options{
//	    Kind:    pipeline.KindBar,
//	    Formats: []string{pipeline.FormatPNG, pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts[pipeline.FormatPNG]
//
// [Builder] keeps the set-data, set-metadata, build, export call sequence on
// top of the same stages.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desvart/qsnap/pkg/cache"
	"github.com/desvart/qsnap/pkg/chart"
	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/render"
)

// =============================================================================
// Kinds and Formats
// =============================================================================

// Chart kinds.
const (
	KindBar   = render.KindBar
	KindRadar = render.KindRadar
	KindFlow  = render.KindFlow
)

// DefaultKind is the chart drawn when Options.Kind is empty.
const DefaultKind = KindBar

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// DefaultFormat is rendered when Options.Formats is empty.
const DefaultFormat = FormatPNG

// kindFormats lists the formats each kind can render. Flow diagrams come
// from Graphviz, which qsnap drives for SVG and PNG only.
var kindFormats = map[string][]string{
	KindBar:   {FormatSVG, FormatPNG, FormatPDF, FormatJSON},
	KindRadar: {FormatSVG, FormatPNG, FormatPDF, FormatJSON},
	KindFlow:  {FormatSVG, FormatPNG, FormatJSON, FormatDOT},
}

// Kinds returns the supported chart kinds.
func Kinds() []string { return []string{KindBar, KindRadar, KindFlow} }

// Formats returns the formats a kind can render.
func Formats(kind string) []string { return slices.Clone(kindFormats[kind]) }

// ValidateKind checks that a chart kind is supported.
func ValidateKind(kind string) error {
	if _, ok := kindFormats[kind]; !ok {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "invalid chart kind %q (must be one of: %s)",
			kind, strings.Join(Kinds(), ", "))
	}
	return nil
}

// ValidateFormat checks that kind can render format.
func ValidateFormat(kind, format string) error {
	valid := kindFormats[kind]
	if !slices.Contains(valid, format) {
		return qerrors.New(qerrors.ErrCodeInvalidFormat, "invalid format %q for %s charts (must be one of: %s)",
			format, kind, strings.Join(valid, ", "))
	}
	return nil
}

// ValidateFormats checks every format against kind.
func ValidateFormats(kind string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(kind, f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	Kind    string       `json:"kind"`
	Formats []string     `json:"formats,omitempty"`
	Image   render.Image `json:"image"`
	// Style defaults to [chart.DefaultStyle] when nil.
	Style *chart.Style `json:"style,omitempty"`

	// SkipYears drops the oldest years from radar charts.
	SkipYears int `json:"skip_years,omitempty"`
	// RadialMax is the score at the outer radar ring; zero means 1.
	RadialMax float64 `json:"radial_max,omitempty"`
	// Detailed adds percentage labels to flow diagram nodes.
	Detailed bool `json:"detailed,omitempty"`
	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults fills defaults and validates every field. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if err := ValidateFormats(o.Kind, o.Formats); err != nil {
		return err
	}
	if err := o.Image.Validate(); err != nil {
		return err
	}
	if err := o.Style.Validate(); err != nil {
		return err
	}
	if o.SkipYears < 0 {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "skip years must not be negative, got %d", o.SkipYears)
	}
	if o.RadialMax < 0 {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "radial max must not be negative, got %g", o.RadialMax)
	}
	o.validated = true
	return nil
}

// SetDefaults fills every zero field.
func (o *Options) SetDefaults() {
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Image = o.Image.WithDefaults()
	if o.Style == nil {
		st := chart.DefaultStyle()
		o.Style = &st
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns the cache key options of the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	styleHash, _ := cache.HashJSON(o.Style)
	k := cache.LayoutKeyOpts{Kind: o.Kind, StyleHash: styleHash}
	switch o.Kind {
	case KindRadar:
		k.SkipYears, k.RadialMax = o.SkipYears, o.RadialMax
	case KindFlow:
		if o.Detailed {
			k.StyleHash += ":detailed"
		}
	}
	return k
}

// ArtifactKeyOpts returns the cache key options of one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  o.Image.Width,
		Height: o.Image.Height,
		Scale:  o.Image.Scale,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result holds the outputs of a run.
type Result struct {
	// RunID correlates log lines and the JSON artifact of one run.
	RunID string

	// Document is the assembled layout.
	Document render.Document

	// Artifacts maps each requested format to its bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records the size of the input and the time spent per phase.
type Stats struct {
	Categories int
	Years      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which phases were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}
