package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/trimworks/flashing/pkg/cache"
	"github.com/trimworks/flashing/pkg/core/metrics"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/core/scene"
	"github.com/trimworks/flashing/pkg/errors"
	"github.com/trimworks/flashing/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute renders the selected paths of set in every requested format.
// Paths are rendered concurrently, at most opts.Workers at a time; the result
// lists them in index order regardless of completion order.
func (r *Runner) Execute(ctx context.Context, set profile.DiagramSet, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	indices, err := opts.indices(set)
	if err != nil {
		return nil, err
	}

	result := &Result{
		BatchID:  uuid.NewString(),
		Diagrams: make([]Diagram, len(indices)),
		Summary:  metrics.Summarize(set, opts.Config.Policies.QuantityFormat),
	}
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnBatchStart(ctx, result.BatchID, len(indices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for slot, index := range indices {
		g.Go(func() error {
			d, err := r.renderDiagram(gctx, set, index, result.Summary.Rows[index], opts)
			if err != nil {
				return fmt.Errorf("diagram %d: %w", index, err)
			}
			result.Diagrams[slot] = d
			return nil
		})
	}
	err = g.Wait()

	for _, d := range result.Diagrams {
		result.Stats.Artifacts += len(d.Artifacts)
		result.Stats.CacheHits += d.CacheHits
		if d.Invalid {
			result.Stats.Invalid++
		}
	}
	result.Stats.Diagrams = len(indices)
	result.Stats.Duration = time.Since(start)
	hooks.OnBatchComplete(ctx, result.BatchID, result.Stats.Diagrams, result.Stats.Invalid, result.Stats.Duration, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("rendered set",
		"id", set.ID,
		"diagrams", result.Stats.Diagrams,
		"invalid", result.Stats.Invalid,
		"cached", result.Stats.CacheHits,
		"duration", result.Stats.Duration)

	return result, nil
}

// renderDiagram produces every format for one path. The scene is built at
// most once, and only when some format misses the cache.
func (r *Runner) renderDiagram(ctx context.Context, set profile.DiagramSet, index int, row metrics.Row, opts Options) (Diagram, error) {
	p := set.Paths[index]
	d := Diagram{
		Index:     index,
		PathIndex: p.PathIndex,
		Name:      p.Name,
		Invalid:   !p.Valid(),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Row:       row,
	}
	start := time.Now()

	var s *scene.Scene
	build := func() scene.Scene {
		if s == nil {
			v := Scene(set, index, opts.Config)
			s = &v
		}
		return *s
	}

	for _, format := range opts.Formats {
		data, hit, err := r.artifact(ctx, set, index, format, row, build, opts)
		if err != nil {
			return Diagram{}, err
		}
		if hit {
			d.CacheHits++
		}
		d.Artifacts[format] = data
	}
	d.Duration = time.Since(start)

	if d.Invalid {
		opts.Logger.Warn("invalid path, drew placeholder", "index", index, "name", p.Name)
	}
	opts.Logger.Debug("rendered diagram",
		"index", index,
		"formats", opts.Formats,
		"cached", d.CacheHits,
		"duration", d.Duration)
	return d, nil
}

// artifact returns one encoded diagram, from the cache when possible.
func (r *Runner) artifact(ctx context.Context, set profile.DiagramSet, index int, format string, row metrics.Row, build func() scene.Scene, opts Options) ([]byte, bool, error) {
	key := r.Keyer.DiagramKey(set.Paths[index], opts.DiagramKeyOpts(set, index, format))
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "diagram")
			return data, true, nil
		} else if err != nil {
			opts.Logger.Debug("cache read failed", "key", key, "error", err)
		}
		cacheHooks.OnCacheMiss(ctx, "diagram")
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, index, format)
	data, err := Encode(ctx, build(), format, row, set.Paths[index].Name, opts)
	hooks.OnRenderComplete(ctx, index, format, time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", format, err)
	}

	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		opts.Logger.Debug("cache write failed", "key", key, "error", err)
	} else {
		cacheHooks.OnCacheSet(ctx, "diagram", len(data))
	}
	return data, false, nil
}

// RenderOne renders a single diagram in a single format. It reports whether
// the artifact came from the cache.
func (r *Runner) RenderOne(ctx context.Context, set profile.DiagramSet, index int, format string, opts Options) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}
	opts.Formats = []string{format}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if index < 0 || index >= len(set.Paths) {
		return nil, false, errors.New(errors.ErrCodeNotFound, "diagram %d not found (set has %d)", index, len(set.Paths))
	}

	row := metrics.RowFor(index, set.Paths[index], opts.Config.Policies.QuantityFormat)
	build := func() scene.Scene { return Scene(set, index, opts.Config) }
	return r.artifact(ctx, set, index, format, row, build, opts)
}

// Summarize computes the metrics summary of set, caching the result.
func (r *Runner) Summarize(ctx context.Context, set profile.DiagramSet, opts Options) (metrics.Summary, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return metrics.Summary{}, err
	}

	qf := opts.Config.Policies.QuantityFormat
	key := r.Keyer.SummaryKey(set, qf.String())
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var s metrics.Summary
			if err := json.Unmarshal(data, &s); err == nil {
				cacheHooks.OnCacheHit(ctx, "summary")
				return s, nil
			}
		}
		cacheHooks.OnCacheMiss(ctx, "summary")
	}

	s := metrics.Summarize(set, qf)
	if data, err := json.Marshal(s); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err == nil {
			cacheHooks.OnCacheSet(ctx, "summary", len(data))
		}
	}
	return s, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
