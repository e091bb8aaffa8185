// Package pkg provides the libraries behind qsnap, a renderer for yearly
// quality snapshots.
//
// # Overview
//
// A quality snapshot is a table of counts per category (Full, Good, Average,
// Low, Bad, None, Unknown or any custom label) and per year. qsnap turns it
// into a stacked bar chart whose segment labels read "<pct>% (<count>)" with
// percentages that add up to exactly 100 in every year. Radar charts and
// Graphviz flow diagrams are drawn from the same input.
//
// # Architecture
//
//	dataset JSON / Excel workbook + TOML metadata
//	         ↓
//	    [io] package (import, sanitize, export)
//	         ↓
//	    [table] package (category × year matrix, normalization)
//	         ↓
//	    [chart] packages (labels, extents, bar and radar layouts)
//	         ↓
//	    [render] packages (SVG, PNG, PDF, DOT)
//
// [pipeline] chains these stages, caches layouts and artifacts through
// [cache] and reports progress through [observability].
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/desvart/qsnap/pkg/io"
//	    "github.com/desvart/qsnap/pkg/pipeline"
//	)
//
//	// 1. Read the table and its metadata
//	ds, _ := io.ImportDataset("quality.json")
//
//	// 2. Run the pipeline
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(context.Background(), ds, pipeline.Options{
//	    Formats: []string{pipeline.FormatPNG, pipeline.FormatSVG},
//	})
//
//	// 3. Write code_quality.png and code_quality.svg
//	paths, _ := pipeline.WriteArtifacts(res, "out", ds.Metadata.Title)
//
// The same run through the step-by-step API:
//
//	b := pipeline.NewBuilder(nil, pipeline.Options{})
//	_ = b.SetData(ds.Table)
//	_ = b.SetMetadata(ds.Metadata)
//	_ = b.Build(ctx)
//	paths, _ := b.Export("out", "") // named after the title
//
// # Main Packages
//
// [table] - The metric table: ordered categories and years, validation of
// labels and counts, normalization to shares.
//
// [chart] - Metadata, style and the layout computations: label
// reconciliation, segment extents, stacked bars with connectors and
// callouts, radar polygons.
//
// [render] - The JSON layout document and its renderers: sink (SVG),
// raster (PNG and PDF through gonum/plot) and flow (Graphviz).
//
// [io] - Dataset JSON, Excel workbooks, TOML metadata and export file names.
//
// [config] - The TOML configuration file behind the CLI.
//
// [cache] - Null, file and Redis caches with TTLs and content-hash keys.
//
// # Testing
//
//	go test ./pkg/...         # All tests
//	go test ./pkg/chart/...   # Specific package
//	go test -run Example      # Examples only
//
// [io]: https://pkg.go.dev/github.com/desvart/qsnap/pkg/io
// [table]: https://pkg.go.dev/github.com/desvart/qsnap/pkg/table
// [chart]: https://pkg.go.dev/github.com/desvart/qsnap/pkg/chart
// [render]: https://pkg.go.dev/github.com/desvart/qsnap/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/desvart/qsnap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/desvart/qsnap/pkg/cache
// [observability]: https://pkg.go.dev/github.com/desvart/qsnap/pkg/observability
// [config]: https://pkg.go.dev/github.com/desvart/qsnap/pkg/config
package pkg
