package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/pipeline"
)

// renderOpts holds the render command flags.
type renderOpts struct {
	input     inputFlags
	formats   string
	output    string
	diagrams  []int
	embedFont bool
	pngScale  float64
	workers   int
	refresh   bool
	noCache   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [order.json]",
		Short: "Render every diagram of an order",
		Long: `Render the diagrams of an order file, or of an order loaded from a store.

Each diagram is written as <name>-<index>.<format> in the output directory.

Examples:
  flashing render order.json
  flashing render order.json -f svg,pdf -o out/
  flashing render --order A-1001 --store mongodb://localhost:27017 --diagram 0,2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, base, err := c.load(cmd.Context(), opts.input, args)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), set, base, opts)
		},
	}

	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats: svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().IntSliceVar(&opts.diagrams, "diagram", nil, "render only these diagram indices")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG rasterization scale")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent renders (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runRender executes the pipeline and writes one file per artifact.
func (c *CLI) runRender(ctx context.Context, set profile.DiagramSet, base string, opts renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions()
	popts.Formats = parseFormats(opts.formats)
	popts.Indices = opts.diagrams
	popts.EmbedFont = opts.embedFont
	popts.PNGScale = opts.pngScale
	popts.Workers = opts.workers
	popts.Refresh = opts.refresh

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %d diagrams...", len(set.Paths)))
	spinner.Start()
	result, err := runner.Execute(ctx, set, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}

	spinner.Update("Writing files...")
	var files []string
	for _, d := range result.Diagrams {
		for _, format := range popts.Formats {
			path := filepath.Join(opts.output, fmt.Sprintf("%s-%d.%s", base, d.Index, format))
			if err := os.WriteFile(path, d.Artifacts[format], 0o644); err != nil {
				spinner.StopWithError("Write failed")
				return fmt.Errorf("write %s: %w", path, err)
			}
			files = append(files, path)
		}
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", base))

	for _, f := range files {
		printFile(f)
	}
	printStats(result.Stats.Diagrams, result.Stats.Invalid, result.Stats.CacheHits, result.Stats.Artifacts)
	for _, d := range result.Diagrams {
		if d.Invalid {
			printWarning("diagram %d (%s) has invalid geometry; drew a placeholder", d.Index, d.Name)
		}
	}
	prog.done(fmt.Sprintf("Rendered %d diagrams", len(result.Diagrams)))
	return nil
}
