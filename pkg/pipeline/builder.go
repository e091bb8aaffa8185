package pipeline

import (
	"context"
	"slices"

	"github.com/desvart/qsnap/pkg/chart"
	qerrors "github.com/desvart/qsnap/pkg/errors"
	qio "github.com/desvart/qsnap/pkg/io"
	"github.com/desvart/qsnap/pkg/render"
	"github.com/desvart/qsnap/pkg/table"
)

// Builder offers the step-by-step API: set the data and the metadata,
// optionally the image size, build, then export. Calling a step before its
// prerequisite returns a SEQUENCE error naming the missing call. A builder
// can be reused: setting new data or metadata discards the previous build.
type Builder struct {
	runner *Runner
	opts   Options

	data   *table.Table
	meta   *chart.Metadata
	result *Result
}

// NewBuilder returns a builder that runs through r with the given options.
// A nil runner runs without cache.
func NewBuilder(r *Runner, opts Options) *Builder {
	if r == nil {
		r = NewRunner(nil, nil, opts.Logger)
	}
	return &Builder{runner: r, opts: opts}
}

// SetData sets the absolute counts to chart.
func (b *Builder) SetData(t *table.Table) error {
	if t == nil || t.NumCategories() == 0 || t.NumYears() == 0 {
		return qerrors.New(qerrors.ErrCodeInvalidSchema, "data must have at least one category and one year")
	}
	b.data = t
	b.result = nil
	return nil
}

// SetMetadata sets and validates the chart metadata.
func (b *Builder) SetMetadata(m chart.Metadata) error {
	if err := m.Validate(); err != nil {
		return err
	}
	b.meta = &m
	b.result = nil
	return nil
}

// SetImageSize overrides the export size. Zero fields keep their defaults.
func (b *Builder) SetImageSize(width, height int, scale float64) error {
	img := render.Image{Width: width, Height: height, Scale: scale}.WithDefaults()
	if err := img.Validate(); err != nil {
		return err
	}
	b.opts.Image = img
	b.opts.validated = false
	b.result = nil
	return nil
}

// Build runs the pipeline.
func (b *Builder) Build(ctx context.Context) error {
	if b.data == nil {
		return qerrors.Sequence("Build", "SetData")
	}
	if b.meta == nil {
		return qerrors.Sequence("Build", "SetMetadata")
	}
	res, err := b.runner.Execute(ctx, qio.Dataset{Table: b.data, Metadata: *b.meta}, b.opts)
	if err != nil {
		return err
	}
	b.result = res
	return nil
}

// Result returns the last build, or nil.
func (b *Builder) Result() *Result { return b.result }

// Export writes every built artifact to dir as <name>.<format> and returns
// the written paths sorted by format. An empty name falls back to the chart
// title.
func (b *Builder) Export(dir, name string) ([]string, error) {
	if b.result == nil {
		return nil, qerrors.Sequence("Export", "Build")
	}
	if name == "" {
		name = b.meta.Title
	}
	return WriteArtifacts(b.result, dir, name)
}

// WriteArtifacts writes the artifacts of a result to dir as <name>.<format>.
func WriteArtifacts(res *Result, dir, name string) ([]string, error) {
	formats := make([]string, 0, len(res.Artifacts))
	for f := range res.Artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path, err := qio.OutputPath(dir, name, f)
		if err != nil {
			return nil, err
		}
		if err := qio.WriteFile(path, res.Artifacts[f]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
