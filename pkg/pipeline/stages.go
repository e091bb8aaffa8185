package pipeline

import (
	"context"
	"time"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/bar"
	"github.com/desvart/qsnap/pkg/chart/extents"
	"github.com/desvart/qsnap/pkg/chart/labels"
	"github.com/desvart/qsnap/pkg/chart/radar"
	qerrors "github.com/desvart/qsnap/pkg/errors"
	qio "github.com/desvart/qsnap/pkg/io"
	"github.com/desvart/qsnap/pkg/observability"
	"github.com/desvart/qsnap/pkg/render"
	"github.com/desvart/qsnap/pkg/render/flow"
	"github.com/desvart/qsnap/pkg/table"
)

// Stage names reported to [observability.PipelineHooks].
const (
	StageValidate  = "validate"
	StageNormalize = "normalize"
	StageLabels    = "labels"
	StageExtents   = "extents"
	StageAssemble  = "assemble"
	StageRender    = "render"
)

// Validate checks that the dataset has a table and usable metadata whose
// trigrams refer to the table's years and categories.
func Validate(ds qio.Dataset) error {
	if ds.Table == nil {
		return qerrors.Sequence("validation", "SetData")
	}
	if err := ds.Metadata.Validate(); err != nil {
		return err
	}
	return ds.Metadata.ValidateAgainst(ds.Table)
}

// Normalize divides every value by its year total. A year summing to zero
// fails with EMPTY_YEAR.
func Normalize(t *table.Table) (*table.Table, error) {
	if t == nil {
		return nil, qerrors.Sequence("normalization", "SetData")
	}
	return t.Normalize()
}

// ComputeLabels reconciles the percentages of every year.
func ComputeLabels(abs, rel *table.Table) (labels.Table, error) {
	return labels.Build(abs, rel)
}

// ComputeExtents stacks relative values into segment extents.
func ComputeExtents(rel *table.Table) (extents.Extents, error) {
	if rel == nil {
		return extents.Extents{}, qerrors.Sequence("extent computation", "Normalize")
	}
	return extents.Compute(rel), nil
}

// Layout runs every stage up to assembly and returns the chart document.
func Layout(ctx context.Context, runID string, ds qio.Dataset, opts Options) (render.Document, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return render.Document{}, err
	}
	st := *opts.Style

	if err := stage(ctx, runID, StageValidate, func() error { return Validate(ds) }); err != nil {
		return render.Document{}, err
	}

	if opts.Kind == KindRadar {
		var l radar.Layout
		err := stage(ctx, runID, StageAssemble, func() (err error) {
			l, err = radar.Build(ds.Table, ds.Metadata, radar.Options{SkipYears: opts.SkipYears, RadialMax: opts.RadialMax}, st)
			return err
		})
		if err != nil {
			return render.Document{}, err
		}
		return render.NewRadarDocument(l, opts.Image), nil
	}

	var rel *table.Table
	if err := stage(ctx, runID, StageNormalize, func() (err error) {
		rel, err = Normalize(ds.Table)
		return err
	}); err != nil {
		return render.Document{}, err
	}

	var lt labels.Table
	if err := stage(ctx, runID, StageLabels, func() (err error) {
		lt, err = ComputeLabels(ds.Table, rel)
		return err
	}); err != nil {
		return render.Document{}, err
	}

	if opts.Kind == KindFlow {
		var dot string
		if err := stage(ctx, runID, StageAssemble, func() error {
			dot = flow.ToDOT(lt, st, flow.Options{Title: ds.Metadata.Title, Detailed: opts.Detailed})
			return nil
		}); err != nil {
			return render.Document{}, err
		}
		return render.NewFlowDocument(dot, opts.Image, st), nil
	}

	var x extents.Extents
	if err := stage(ctx, runID, StageExtents, func() (err error) {
		x, err = ComputeExtents(rel)
		return err
	}); err != nil {
		return render.Document{}, err
	}

	var l bar.Layout
	if err := stage(ctx, runID, StageAssemble, func() (err error) {
		l, err = AssembleBar(ds, rel, lt, x, st)
		return err
	}); err != nil {
		return render.Document{}, err
	}
	return render.NewBarDocument(l, opts.Image), nil
}

// AssembleBar builds the stacked bar layout from the outputs of the earlier
// stages.
func AssembleBar(ds qio.Dataset, rel *table.Table, lt labels.Table, x extents.Extents, st chart.Style) (bar.Layout, error) {
	return bar.Build(bar.Input{
		Absolute: ds.Table,
		Relative: rel,
		Labels:   lt,
		Extents:  x,
		Metadata: ds.Metadata,
	}, st)
}

// stage runs fn between the start and complete hooks.
func stage(ctx context.Context, runID, name string, fn func() error) error {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, runID, name)
	start := time.Now()
	err := fn()
	hooks.OnStageComplete(ctx, runID, name, time.Since(start), err)
	return err
}
