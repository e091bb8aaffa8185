package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/labels"
	"github.com/desvart/qsnap/pkg/pipeline"
)

// inspectCommand creates the command that prints the bar chart labels.
func (c *CLI) inspectCommand() *cobra.Command {
	var meta, sheet string

	cmd := &cobra.Command{
		Use:   "inspect <input.json|input.xlsx>",
		Short: "Print the percentage labels of every category and year",
		Long: `Print the labels a bar chart would show, without drawing it. Every year's
percentages add up to exactly 100.`,
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
			rel, err := pipeline.Normalize(ds.Table)
			if err != nil {
				return err
			}
			lt, err := pipeline.ComputeLabels(ds.Table, rel)
			if err != nil {
				return err
			}

			c.ui.title(ds.Metadata.Title)
			c.ui.keyValue("y-axis", ds.Metadata.YLabel)
			c.ui.keyValue("totals", formatTotals(ds.Table.Years(), ds.Table.Totals()))
			c.ui.println(labelTable(lt, c.Config.Style).Render())
			c.printTrigrams(ds.Metadata.Trigrams, ds.Table.LastYear(), lt.Categories)
			return nil
		},
	}

	cmd.Flags().StringVar(&meta, "meta", "", "TOML metadata file (required for workbooks)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet (default: first, or pick interactively)")
	return cmd
}

// labelTable lays out one row per category and one column per year, with
// the category name in its chart color.
func labelTable(lt labels.Table, style chart.Style) *table.Table {
	headers := append([]string{"Category"}, lt.Years...)
	rows := make([][]string, len(lt.Categories))
	for i, cat := range lt.Categories {
		rows[i] = append([]string{cat}, lt.Text[i]...)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cell.Foreground(lipgloss.Color(style.Color(lt.Categories[row])))
			default:
				return cell.Align(lipgloss.Right)
			}
		})
}

func formatTotals(years []string, totals []float64) string {
	parts := make([]string, len(years))
	for j, y := range years {
		parts[j] = fmt.Sprintf("%s: %g", y, totals[j])
	}
	return strings.Join(parts, "  ")
}

// printTrigrams lists the callout codes of the last year, in stacking order.
func (c *CLI) printTrigrams(tg chart.Trigrams, year string, categories []string) {
	printed := false
	for _, cat := range categories {
		codes := tg.Lookup(year, cat)
		if len(codes) == 0 {
			continue
		}
		if !printed {
			c.ui.info("Callouts %s", year)
			printed = true
		}
		c.ui.detail("%s: %s", cat, strings.Join(codes, ", "))
	}
}
