package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/trimworks/flashing/internal/server"
	"github.com/trimworks/flashing/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		orders  string
		maxBody int64
		timeout time.Duration
		workers int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve POST /v1/render and, when --orders is set, the /v1/orders routes.

--orders takes a directory of JSON order files or a mongodb:// URI. Pair it
with --cache redis://... to share rendered artifacts between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			popts := c.pipelineOptions()
			popts.Workers = workers
			opts := []server.Option{
				server.WithOptions(popts),
				server.WithMaxBody(maxBody),
				server.WithRequestTimeout(timeout),
			}

			if orders != "" {
				var st store.Store
				if st, err = openStore(ctx, orders); err != nil {
					return err
				}
				defer st.Close(context.WithoutCancel(ctx))
				opts = append(opts, server.WithStore(st))
				c.Logger.Info("serving orders", "store", orders)
			}

			return server.New(runner, c.Logger, opts...).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&orders, "orders", "", "order store: a directory of JSON files or a mongodb:// URI")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBody, "largest accepted request body in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRequestTimeout, "per-request time limit")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent renders per request (default: number of CPUs)")
	return cmd
}
