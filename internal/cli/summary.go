package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/trimworks/flashing/pkg/core/metrics"
)

// summaryCommand creates the summary command.
func (c *CLI) summaryCommand() *cobra.Command {
	var (
		input   inputFlags
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "summary [order.json]",
		Short: "Print the property table of an order",
		Long: `Print one row per diagram (folds, girth, quantity x length) followed by
the order totals.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, _, err := c.load(ctx, input, args)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			summary, err := runner.Summarize(ctx, set, c.pipelineOptions())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			title := set.ID
			if title == "" {
				title = "Diagrams"
			}
			fmt.Fprintln(out, StyleTitle.Render(title))
			fmt.Fprintln(out, summaryTable(summary))
			printTotals(out, summary)
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// summaryTable renders the per-diagram rows as a bordered table.
func summaryTable(s metrics.Summary) string {
	rows := make([][]string, len(s.Rows))
	for i, r := range s.Rows {
		folds := strconv.Itoa(r.Folds)
		if r.Invalid {
			folds = "—"
		}
		rows[i] = []string{strconv.Itoa(r.Index), r.Name, r.Color, r.Code, folds, r.GirthText, r.QuantityLength}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	numStyle := lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Name", "Color", "Code", "Folds", "Girth", "Q×L").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row < len(s.Rows) && s.Rows[row].Invalid:
				return lipgloss.NewStyle().Foreground(colorYellow)
			case col == 4 || col == 5:
				return numStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

func printTotals(w io.Writer, s metrics.Summary) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	line := func(k, v string) { fmt.Fprintln(w, keyStyle.Render(k)+" "+StyleNumber.Render(v)) }
	line("Folds", strconv.Itoa(s.TotalFolds))
	line("Girth", metrics.FormatGirth(s.TotalGirth))
	line("Pieces", strconv.Itoa(s.TotalPieces))
	line("Length", s.LengthText)
}
