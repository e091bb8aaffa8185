package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	qio "github.com/desvart/qsnap/pkg/io"
	"github.com/desvart/qsnap/pkg/pipeline"
	"github.com/desvart/qsnap/pkg/render"
)

// chartFlags holds the flags shared by the bar, radar, flow and render
// commands. Kind-specific fields are only registered on their command.
type chartFlags struct {
	meta    string
	sheet   string
	output  string
	formats string
	name    string
	width   int
	height  int
	scale   float64
	noCache bool
	refresh bool

	skipYears int
	radialMax float64
	detailed  bool
}

var chartHelp = map[string][2]string{
	pipeline.KindBar: {
		"Draw a stacked bar chart of category shares per year",
		`Draw one stacked bar per year. Segments are labeled "<pct>% (<count>)"
with percentages that always add up to 100, connectors join the category
boundaries of neighboring years and trigram callouts annotate the last year.`,
	},
	pipeline.KindRadar: {
		"Draw a radar chart of scores per category",
		`Draw one polygon per year on a spider chart whose axes are the
categories. Values are plotted as given, so the input should hold scores
rather than counts.`,
	},
	pipeline.KindFlow: {
		"Draw a flow diagram of category shares across years",
		`Draw the categories of each year as ranked Graphviz nodes linked by
flows whose width follows the category share.`,
	},
}

// chartCommand creates the command that draws one chart kind.
func (c *CLI) chartCommand(kind string) *cobra.Command {
	var f chartFlags
	help := chartHelp[kind]

	cmd := &cobra.Command{
		Use:   kind + " <input.json|input.xlsx>",
		Short: help[0],
		Long:  help[1],
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runChart(cmd.Context(), kind, args[0], f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.meta, "meta", "", "TOML metadata file (required for workbooks)")
	fl.StringVar(&f.sheet, "sheet", "", "workbook sheet (default: first, or pick interactively)")
	fl.StringVar(&f.name, "name", "", "output base name (default: chart title)")
	c.addRenderFlags(cmd, kind, &f)

	switch kind {
	case pipeline.KindRadar:
		fl.IntVar(&f.skipYears, "skip-years", 0, "drop the oldest years")
		fl.Float64Var(&f.radialMax, "radial-max", 0, "score at the outer ring (default 1)")
	case pipeline.KindFlow:
		fl.BoolVar(&f.detailed, "detailed", false, "add percentage labels to nodes")
	}

	return cmd
}

// addRenderFlags registers the output, size and cache flags.
func (c *CLI) addRenderFlags(cmd *cobra.Command, kind string, f *chartFlags) {
	formats := "bar/radar: svg, png, pdf, json; flow: svg, png, json, dot"
	if kind != "" {
		formats = strings.Join(pipeline.Formats(kind), ", ")
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output directory (default from config)")
	fl.StringVarP(&f.formats, "format", "f", "", "comma-separated formats ("+formats+")")
	fl.IntVar(&f.width, "width", 0, "image width in pixels")
	fl.IntVar(&f.height, "height", 0, "image height in pixels")
	fl.Float64Var(&f.scale, "scale", 0, "raster scale factor")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results and render again")
}

func (c *CLI) runChart(ctx context.Context, kind, input string, f chartFlags) error {
	src := pipeline.Source{Path: input, Sheet: f.sheet, MetadataPath: f.meta}
	if err := c.resolveSheet(&src); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	ds, err := pipeline.Load(src)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %s", filepath.Base(input)))

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := c.spinner(ctx, fmt.Sprintf("Drawing %s chart...", kind))
	res, err := runner.Execute(ctx, ds, c.options(kind, c.Config.Image, f))
	spin.Stop()
	if err != nil {
		if spin.Cancelled() {
			return ctx.Err()
		}
		return err
	}

	name := f.name
	if name == "" {
		name = ds.Metadata.Title
	}
	return c.writeResult(res, f.output, name, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
}

// resolveSheet asks which sheet to read when a multi-sheet workbook is
// given without --sheet on an interactive terminal.
func (c *CLI) resolveSheet(src *pipeline.Source) error {
	if !src.IsWorkbook() || src.Sheet != "" || !c.interactive {
		return nil
	}
	sheets, err := qio.Sheets(src.Path)
	if err != nil {
		return err
	}
	if len(sheets) < 2 {
		return nil
	}
	sheet, err := pickSheet(filepath.Base(src.Path), sheets)
	if err != nil {
		return err
	}
	src.Sheet = sheet
	return nil
}

// options overlays the command flags on the configuration.
func (c *CLI) options(kind string, img render.Image, f chartFlags) pipeline.Options {
	if f.width != 0 {
		img.Width = f.width
	}
	if f.height != 0 {
		img.Height = f.height
	}
	if f.scale != 0 {
		img.Scale = f.scale
	}
	style := c.Config.Style

	return pipeline.Options{
		Kind:      kind,
		Formats:   parseFormats(f.formats, c.Config.Output.Formats),
		Image:     img,
		Style:     &style,
		SkipYears: f.skipYears,
		RadialMax: f.radialMax,
		Detailed:  f.detailed,
		Refresh:   f.refresh,
		Logger:    c.Logger,
	}
}

// writeResult writes every artifact and reports the written files.
func (c *CLI) writeResult(res *pipeline.Result, dir, name string, cached bool) error {
	if dir == "" {
		dir = c.Config.Output.Dir
	}
	paths, err := pipeline.WriteArtifacts(res, dir, name)
	if err != nil {
		return err
	}

	c.ui.success("%s chart %s", res.Document.Kind, styleValue.Render(name))
	c.ui.stats(res.Stats.Categories, res.Stats.Years, cached)
	for _, p := range paths {
		c.ui.file(p)
	}
	return nil
}
