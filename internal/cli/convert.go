package cli

import (
	"os"

	"github.com/spf13/cobra"

	qerrors "github.com/desvart/qsnap/pkg/errors"
	qio "github.com/desvart/qsnap/pkg/io"
	"github.com/desvart/qsnap/pkg/pipeline"
)

// convertCommand creates the command that turns a workbook and its metadata
// into a single dataset JSON document.
func (c *CLI) convertCommand() *cobra.Command {
	var meta, sheet, output, name string

	cmd := &cobra.Command{
		Use:   "convert <input.xlsx|input.json>",
		Short: "Write an input as a dataset JSON document",
		Long: `Write the table and metadata of an input as one dataset JSON document, the
format every chart command reads without a separate metadata file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := pipeline.Source{Path: args[0], Sheet: sheet, MetadataPath: meta}
			if err := c.resolveSheet(&src); err != nil {
				return err
			}
			ds, err := pipeline.Load(src)
			if err != nil {
				return err
			}
			if err := pipeline.Validate(ds); err != nil {
				return err
			}

			if output == "" {
				output = c.Config.Output.Dir
			}
			if name == "" {
				name = ds.Metadata.Title
			}
			path, err := qio.OutputPath(output, name, pipeline.FormatJSON)
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.MkdirAll(output, 0o755); err != nil {
					return qerrors.Wrap(qerrors.ErrCodeInvalidPath, err, "create %s", output)
				}
			}
			if err := qio.ExportDataset(ds, path); err != nil {
				return err
			}

			c.ui.success("Converted %s", args[0])
			c.ui.stats(ds.Table.NumCategories(), ds.Table.NumYears(), false)
			c.ui.file(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&meta, "meta", "", "TOML metadata file (required for workbooks)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet (default: first, or pick interactively)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&name, "name", "", "output base name (default: chart title)")
	return cmd
}
