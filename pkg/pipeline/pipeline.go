// Package pipeline renders whole diagram sets: every path of an order, in
// every requested format, with caching.
//
// # Overview
//
// The engine in pkg/core renders one path into a scene and never fails. This
// package adds the batch layer around it:
//
//  1. Validate [Options] and apply defaults
//  2. Fan the set's paths out over a bounded worker group
//  3. For each path and format, serve the artifact from the cache or render
//     and encode it (SVG, PNG, PDF or JSON)
//  4. Re-assemble the results by index and attach the metrics summary
//
// # Usage
//
// The [Runner] is the main entry point for both the CLI and the HTTP server:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, set, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//	for _, d := range result.Diagrams {
//	    os.WriteFile(fmt.Sprintf("%d.svg", d.Index), d.Artifacts["svg"], 0o644)
//	}
//
// # Invalid paths
//
// A path that cannot be drawn still produces artifacts (the placeholder
// scene). Its [Diagram.Invalid] flag is set and the runner logs a warning, so
// one bad path never fails an order.
package pipeline

import (
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/trimworks/flashing/pkg/cache"
	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/metrics"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/errors"
)

// =============================================================================
// Format Constants
// =============================================================================

const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats contains all valid output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// AllFormats lists the output formats in their canonical order.
var AllFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultPNGScale = 2.0
	MaxWorkers      = 32
)

// DefaultWorkers is the worker count used when Options.Workers is zero.
func DefaultWorkers() int {
	return min(runtime.GOMAXPROCS(0), MaxWorkers)
}

// =============================================================================
// Types
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Formats to produce for every diagram. Defaults to svg.
	Formats []string `json:"formats,omitempty"`
	// Indices restricts the run to these positions in the set. Empty means
	// every path.
	Indices []int `json:"indices,omitempty"`

	Workers   int     `json:"workers,omitempty"`
	PNGScale  float64 `json:"png_scale,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
	Indent    bool    `json:"indent,omitempty"` // indent JSON artifacts
	Refresh   bool    `json:"refresh,omitempty"`

	// Config is the drawing preset. A zero value means config.Default().
	Config config.Config `json:"-"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Diagram is the output for one path of the set.
type Diagram struct {
	Index     int               // position in the set
	PathIndex int               // the path's own index, used by override keys
	Name      string            // path name, may be empty
	Invalid   bool              // the placeholder was drawn
	Artifacts map[string][]byte // keyed by format
	Row       metrics.Row
	CacheHits int
	Duration  time.Duration
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// BatchID identifies the run in logs and hooks.
	BatchID string

	// Diagrams holds one entry per rendered path, ordered by Index.
	Diagrams []Diagram

	// Summary covers the whole set, including paths not rendered.
	Summary metrics.Summary

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Diagrams  int
	Invalid   int
	Artifacts int
	CacheHits int
	Duration  time.Duration
}

// Diagram returns the entry for set position index.
func (r *Result) Diagram(index int) (Diagram, bool) {
	for _, d := range r.Diagrams {
		if d.Index == index {
			return d, true
		}
	}
	return Diagram{}, false
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must not be negative: %d", o.Workers)
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive: %v", o.PNGScale)
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers()
	}
	if o.Workers > MaxWorkers {
		o.Workers = MaxWorkers
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Config.CanvasSize == 0 {
		o.Config = config.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// indices returns the set positions selected by the options.
func (o *Options) indices(set profile.DiagramSet) ([]int, error) {
	if len(o.Indices) == 0 {
		all := make([]int, len(set.Paths))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	seen := make(map[int]bool, len(o.Indices))
	out := make([]int, 0, len(o.Indices))
	for _, i := range o.Indices {
		if i < 0 || i >= len(set.Paths) {
			return nil, errors.New(errors.ErrCodeNotFound, "diagram %d not found (set has %d)", i, len(set.Paths))
		}
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return out, nil
}

// DiagramKeyOpts returns cache key options for one artifact.
func (o *Options) DiagramKeyOpts(set profile.DiagramSet, index int, format string) cache.DiagramKeyOpts {
	k := cache.DiagramOptsFromSet(set, index, format, o.Config)
	switch format {
	case FormatPNG:
		k.PNGScale = o.PNGScale
		k.EmbedFont = true
	case FormatPDF:
		k.EmbedFont = true
	case FormatSVG:
		k.EmbedFont = o.EmbedFont
	}
	return k
}
