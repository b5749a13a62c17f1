package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/errors"
	orderio "github.com/trimworks/flashing/pkg/io"
)

// inputFlags selects where a command reads its diagram set from: a JSON
// file argument, or an order ID in a store.
type inputFlags struct {
	order string
	store string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.order, "order", "", "order ID to load from --store")
	cmd.Flags().StringVar(&f.store, "store", "orders", "order store: a directory of JSON files or a mongodb:// URI")
}

// load returns the set and a base name for output files.
func (c *CLI) load(ctx context.Context, f inputFlags, args []string) (profile.DiagramSet, string, error) {
	var (
		set      profile.DiagramSet
		warnings []orderio.Warning
		base     string
		err      error
	)
	switch {
	case len(args) == 1 && f.order != "":
		return set, "", errors.New(errors.ErrCodeInvalidInput, "give either a file or --order, not both")
	case len(args) == 1:
		base = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		set, warnings, err = orderio.ImportJSON(args[0])
	case f.order != "":
		base = f.order
		set, warnings, err = c.loadOrder(ctx, f)
	default:
		return set, "", errors.New(errors.ErrCodeInvalidInput, "need an order file or --order")
	}
	if err != nil {
		return set, "", err
	}

	for _, w := range warnings {
		c.Logger.Warn(w.String())
	}
	if set.ID != "" && f.order == "" {
		c.Logger.Debug("loaded order", "id", set.ID, "paths", len(set.Paths))
	}
	return set, base, nil
}

func (c *CLI) loadOrder(ctx context.Context, f inputFlags) (profile.DiagramSet, []orderio.Warning, error) {
	st, err := openStore(ctx, f.store)
	if err != nil {
		return profile.DiagramSet{}, nil, err
	}
	defer st.Close(context.WithoutCancel(ctx))
	return st.Load(ctx, f.order)
}
