package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/desvart/qsnap/pkg/pipeline"
	"github.com/desvart/qsnap/pkg/render"
)

// renderCommand creates the command that re-renders a saved JSON layout.
func (c *CLI) renderCommand() *cobra.Command {
	var f chartFlags

	cmd := &cobra.Command{
		Use:   "render <layout.json>",
		Short: "Render a saved chart layout to other formats",
		Long: `Render a layout written with "-f json" again, without the source data.
The image size stored in the layout is used unless --width, --height or
--scale override it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.name, "name", "", "output base name (default: chart title)")
	c.addRenderFlags(cmd, "", &f)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, f chartFlags) error {
	doc, err := render.ReadDocumentFile(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.options(doc.Kind, doc.Image, f)
	opts.Style = &doc.Style

	spin := c.spinner(ctx, "Rendering...")
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, doc, opts)
	spin.Stop()
	if err != nil {
		if spin.Cancelled() {
			return ctx.Err()
		}
		return err
	}

	name := f.name
	if name == "" {
		name = doc.Title()
	}
	res := &pipeline.Result{RunID: doc.RunID, Document: doc, Artifacts: artifacts}
	return c.writeResult(res, f.output, name, cached)
}
