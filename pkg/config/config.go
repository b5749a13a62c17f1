// Package config holds the drawing constants and presentation policies used
// by the diagram renderer.
//
// A [Config] is a plain value: callers obtain one from [Default] or [Load],
// optionally tweak fields, and pass it by value into the renderer. Nothing in
// the render packages reads global state, so renders with different presets
// can run concurrently.
//
// Presets are TOML files. Every key is optional and overrides the matching
// default:
//
//	canvas_size = 1600
//	grid_size = 25
//
//	[label]
//	min_width = 48
//
//	[policies]
//	angle_skip = "legacy"
//	quantity_format = "sorted"
//
// Sizes are in model units (millimetres at scale 1) unless noted otherwise;
// the renderer multiplies them by the viewport scale factor before emission.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/errors"
)

// Config is the complete set of drawing constants.
type Config struct {
	CanvasSize   float64 `json:"canvas_size" toml:"canvas_size"`     // square canvas side, canvas units
	ViewportFill float64 `json:"viewport_fill" toml:"viewport_fill"` // fraction of the canvas the bounds may occupy
	GridSize     float64 `json:"grid_size" toml:"grid_size"`
	MaxGridLines int     `json:"max_grid_lines" toml:"max_grid_lines"` // per tier and axis

	Padding PaddingConfig `json:"padding" toml:"padding"`
	Label   LabelConfig   `json:"label" toml:"label"`
	Fold    FoldConfig    `json:"fold" toml:"fold"`
	Border  BorderConfig  `json:"border" toml:"border"`
	Stroke  StrokeConfig  `json:"stroke" toml:"stroke"`
	Colors  ColorConfig   `json:"colors" toml:"colors"`

	Policies Policies `json:"policies" toml:"policies"`
}

// PaddingConfig controls how far the view window extends past the geometry.
type PaddingConfig struct {
	Small          float64 `json:"small" toml:"small"`
	LargeMin       float64 `json:"large_min" toml:"large_min"`
	LargeRatio     float64 `json:"large_ratio" toml:"large_ratio"`
	LargeThreshold float64 `json:"large_threshold" toml:"large_threshold"`
	InvalidSize    float64 `json:"invalid_size" toml:"invalid_size"`
}

// LabelConfig sizes callout boxes and their pointers.
type LabelConfig struct {
	MinWidth      float64 `json:"min_width" toml:"min_width"`
	Height        float64 `json:"height" toml:"height"`
	Padding       float64 `json:"padding" toml:"padding"`
	CharWidth     float64 `json:"char_width" toml:"char_width"`
	FontSize      float64 `json:"font_size" toml:"font_size"`
	CornerRadius  float64 `json:"corner_radius" toml:"corner_radius"`
	ArrowSize     float64 `json:"arrow_size" toml:"arrow_size"` // tail length
	TailHalfWidth float64 `json:"tail_half_width" toml:"tail_half_width"`
	MarginX       float64 `json:"margin_x" toml:"margin_x"`
	MarginTop     float64 `json:"margin_top" toml:"margin_top"`
	MarginBottom  float64 `json:"margin_bottom" toml:"margin_bottom"`
}

// FoldConfig shapes the fold glyphs.
type FoldConfig struct {
	Defaults        profile.FoldDefaults `json:"defaults" toml:"defaults"`
	LabelDistanceMM float64              `json:"label_distance_mm" toml:"label_distance_mm"`
	LabelFactor     float64              `json:"label_factor" toml:"label_factor"`
	BreakOffset     float64              `json:"break_offset" toml:"break_offset"` // zig-zag amplitude, fraction of fold length
	CrushWidth      float64              `json:"crush_width" toml:"crush_width"`   // fraction of fold length
	CrushHeight     float64              `json:"crush_height" toml:"crush_height"` // fraction of fold length
	HookRadius      float64              `json:"hook_radius" toml:"hook_radius"`   // fraction of fold length
}

// BorderConfig shapes the offset border and its direction chevron.
type BorderConfig struct {
	Offset      float64 `json:"offset" toml:"offset"`
	ChevronSize float64 `json:"chevron_size" toml:"chevron_size"`
}

// StrokeConfig holds line weights and marker sizes.
type StrokeConfig struct {
	Path        float64 `json:"path" toml:"path"`
	PointRadius float64 `json:"point_radius" toml:"point_radius"`
	GridMinor   float64 `json:"grid_minor" toml:"grid_minor"`
	GridMajor   float64 `json:"grid_major" toml:"grid_major"`
	Border      float64 `json:"border" toml:"border"`
	Fold        float64 `json:"fold" toml:"fold"`
	Label       float64 `json:"label" toml:"label"`
}

// ColorConfig holds CSS colors.
type ColorConfig struct {
	Background  string `json:"background" toml:"background"`
	Path        string `json:"path" toml:"path"`
	Point       string `json:"point" toml:"point"`
	GridMinor   string `json:"grid_minor" toml:"grid_minor"`
	GridMajor   string `json:"grid_major" toml:"grid_major"`
	Border      string `json:"border" toml:"border"`
	Fold        string `json:"fold" toml:"fold"`
	LabelFill   string `json:"label_fill" toml:"label_fill"`
	LabelStroke string `json:"label_stroke" toml:"label_stroke"`
	LabelText   string `json:"label_text" toml:"label_text"`
}

// Default returns the reference preset.
func Default() Config {
	return Config{
		CanvasSize:   1200,
		ViewportFill: 0.95,
		GridSize:     20,
		MaxGridLines: 200,
		Padding: PaddingConfig{
			Small:          40,
			LargeMin:       50,
			LargeRatio:     0.05,
			LargeThreshold: 10000,
			InvalidSize:    100,
		},
		Label: LabelConfig{
			MinWidth:      36,
			Height:        14,
			Padding:       8,
			CharWidth:     5.5,
			FontSize:      8,
			CornerRadius:  3,
			ArrowSize:     6,
			TailHalfWidth: 3,
			MarginX:       50,
			MarginTop:     30,
			MarginBottom:  30,
		},
		Fold: FoldConfig{
			Defaults:        profile.DefaultFoldDefaults(),
			LabelDistanceMM: 20,
			LabelFactor:     1.5,
			BreakOffset:     0.25,
			CrushWidth:      0.8,
			CrushHeight:     0.6,
			HookRadius:      0.25,
		},
		Border: BorderConfig{
			Offset:      15,
			ChevronSize: 8,
		},
		Stroke: StrokeConfig{
			Path:        1,
			PointRadius: 1.5,
			GridMinor:   0.15,
			GridMajor:   0.3,
			Border:      0.75,
			Fold:        1,
			Label:       0.4,
		},
		Colors: ColorConfig{
			Background:  "#ffffff",
			Path:        "#1f2937",
			Point:       "#1f2937",
			GridMinor:   "#eef2f7",
			GridMajor:   "#d5dde8",
			Border:      "#2563eb",
			Fold:        "#dc2626",
			LabelFill:   "#ffffff",
			LabelStroke: "#374151",
			LabelText:   "#111827",
		},
	}
}

// Load reads a TOML preset from path on top of [Default]. Unknown keys are
// rejected so that typos in presets do not silently fall back to defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset %s", path)
		}
		return Config{}, fmt.Errorf("read preset %s: %w", path, err)
	}
	return decode(string(data), path)
}

// Decode parses a TOML preset held in memory on top of [Default].
func Decode(data string) (Config, error) {
	return decode(data, "preset")
}

func decode(data, name string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "decode %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidPreset, "unknown keys in %s: %s", name, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every size the renderer divides by or loops over is
// positive.
func (c Config) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"canvas_size", c.CanvasSize},
		{"viewport_fill", c.ViewportFill},
		{"grid_size", c.GridSize},
		{"max_grid_lines", float64(c.MaxGridLines)},
		{"label.height", c.Label.Height},
		{"label.font_size", c.Label.FontSize},
		{"border.offset", c.Border.Offset},
		{"border.chevron_size", c.Border.ChevronSize},
		{"padding.small", c.Padding.Small},
		{"padding.invalid_size", c.Padding.InvalidSize},
	}
	for _, ch := range checks {
		if !(ch.v > 0) {
			return errors.New(errors.ErrCodeInvalidPreset, "%s must be positive, got %v", ch.name, ch.v)
		}
	}
	if c.ViewportFill > 1 {
		return errors.New(errors.ErrCodeInvalidPreset, "viewport_fill must be at most 1, got %v", c.ViewportFill)
	}
	return nil
}

// String renders the config as TOML, the same format [Load] accepts.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
