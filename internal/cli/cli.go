// Package cli implements the flashing command-line interface.
//
// This package provides commands for rendering flashing diagrams from order
// files or an order store, printing their property tables, browsing them
// interactively, serving them over HTTP and managing the artifact cache.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, PDF or JSON for every diagram of an order
//   - summary: Print the per-diagram property table and order totals
//   - browse: Pick a diagram from an interactive list and render it
//   - serve: Run the HTTP render service
//   - normalize: Write an order back out with ingestion repairs applied
//   - cache: Inspect, prune or clear the local artifact cache
//
// # Global flags
//
// --verbose (-v) switches to debug logging and reports pipeline and cache
// events. --preset loads a TOML drawing preset over the defaults. --cache
// selects the artifact cache: "file" (default), "none", or a redis:// URL,
// and --cache-prefix namespaces its keys.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/trimworks/flashing/pkg/cache"
	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/errors"
	"github.com/trimworks/flashing/pkg/pipeline"
	"github.com/trimworks/flashing/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completion.
	appName = "flashing"

	cacheFile = "file"
	cacheNone = "none"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Set from persistent flags before any command runs.
	verbose     bool
	preset      string
	cacheSpec   string
	cachePrefix string
	cfg         config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		cacheSpec: cacheFile,
		cfg:       config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	spec := c.cacheSpec
	if noCache {
		spec = cacheNone
	}
	ch, err := openCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.cachePrefix)
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// openCache opens the cache named by spec: "file", "none", or a redis URL.
func openCache(ctx context.Context, spec string) (cache.Cache, error) {
	switch {
	case spec == cacheNone:
		return cache.NewNullCache(), nil
	case spec == "" || spec == cacheFile:
		dir, err := cache.DefaultDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case strings.HasPrefix(spec, "redis://"), strings.HasPrefix(spec, "rediss://"):
		return cache.NewRedisCache(ctx, spec)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache %q (use file, none or a redis:// URL)", spec)
	}
}

// openStore opens an order store: a mongodb:// URI or a directory of JSON
// order files.
func openStore(ctx context.Context, spec string) (store.Store, error) {
	if strings.HasPrefix(spec, "mongodb://") || strings.HasPrefix(spec, "mongodb+srv://") {
		return store.NewMongoStore(ctx, spec, store.MongoOptions{})
	}
	return store.NewFileStore(spec)
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions returns the base pipeline options for a command.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Config: c.cfg,
		Logger: c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
