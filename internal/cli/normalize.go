package cli

import (
	"github.com/spf13/cobra"

	orderio "github.com/trimworks/flashing/pkg/io"
)

// normalizeCommand creates the normalize command.
func (c *CLI) normalizeCommand() *cobra.Command {
	var (
		input  inputFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "normalize [order.json]",
		Short: "Write an order with its data repairs applied",
		Long: `Read an order, apply the same repairs the renderer does (fold defaults,
numeric coordinates, one segment per edge) and write the result as JSON.

Repairs are logged as warnings. Without -o the order is printed to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, _, err := c.load(cmd.Context(), input, args)
			if err != nil {
				return err
			}
			if output == "" {
				return orderio.WriteJSON(set, cmd.OutOrStdout())
			}
			if err := orderio.ExportJSON(set, output); err != nil {
				return err
			}
			printSuccess("Normalized %d diagrams", len(set.Paths))
			printFile(output)
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
