package cli

import (
	"github.com/spf13/cobra"

	"github.com/trimworks/flashing/pkg/buildinfo"
	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Flashing draws sheet-metal trim diagrams",
		Long: `Flashing renders sheet-metal flashing profiles as dimensioned diagrams:
the bent profile on a grid, segment lengths, fold markers and joint angles,
ready to print on an order sheet.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.preset, "preset", "", "TOML drawing preset")
	root.PersistentFlags().StringVar(&c.cacheSpec, "cache", cacheFile, "artifact cache: file, none, or a redis:// URL")
	root.PersistentFlags().StringVar(&c.cachePrefix, "cache-prefix", "", "namespace for cache keys (e.g. staging:)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies the persistent flags.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.RegisterLogHooks(c.Logger)
	}
	if c.preset != "" {
		cfg, err := config.Load(c.preset)
		if err != nil {
			return err
		}
		c.cfg = cfg
		c.Logger.Debug("loaded preset", "path", c.preset)
	}
	return nil
}
