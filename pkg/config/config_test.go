package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/trimworks/flashing/pkg/errors"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	p := Default().Policies
	if p.AngleSkip != AngleSkipQuad || p.FoldLabelDistance != FoldLabelFixed || p.QuantityFormat != QuantityGrouped {
		t.Errorf("default policies = %+v", p)
	}
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(`
canvas_size = 1600

[label]
min_width = 48

[policies]
angle_skip = "legacy"
quantity_format = "sorted"
`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cfg.CanvasSize != 1600 {
		t.Errorf("CanvasSize = %v, want 1600", cfg.CanvasSize)
	}
	if cfg.Label.MinWidth != 48 {
		t.Errorf("Label.MinWidth = %v, want 48", cfg.Label.MinWidth)
	}
	if cfg.Label.Height != Default().Label.Height {
		t.Errorf("unset key should keep default, got Label.Height = %v", cfg.Label.Height)
	}
	if cfg.Policies.AngleSkip != AngleSkipLegacy || cfg.Policies.QuantityFormat != QuantitySorted {
		t.Errorf("policies = %+v", cfg.Policies)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "canvas_sise = 10"},
		{"unknown nested key", "[label]\nwidth = 3"},
		{"bad policy", `[policies]` + "\n" + `angle_skip = "all"`},
		{"negative size", "grid_size = -5"},
		{"fill above one", "viewport_fill = 1.5"},
		{"syntax", "canvas_size = "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidPreset) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPreset)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.toml")
	if err := os.WriteFile(path, []byte("[border]\noffset = 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Border.Offset != 25 {
		t.Errorf("Border.Offset = %v, want 25", cfg.Border.Offset)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing preset error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.GridSize = 10
	cfg.Policies.FoldLabelDistance = FoldLabelProportional

	got, err := Decode(cfg.String())
	if err != nil {
		t.Fatalf("Decode(String()) error = %v", err)
	}
	if got != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestAngleSkip(t *testing.T) {
	tests := []struct {
		policy AngleSkipPolicy
		deg    int
		want   bool
	}{
		{AngleSkipQuad, 90, true},
		{AngleSkipQuad, 270, true},
		{AngleSkipQuad, 45, true},
		{AngleSkipQuad, 315, true},
		{AngleSkipQuad, 135, false},
		{AngleSkipLegacy, 90, true},
		{AngleSkipLegacy, 45, false},
		{AngleSkipLegacy, 315, false},
	}
	for _, tt := range tests {
		if got := tt.policy.Skips(tt.deg); got != tt.want {
			t.Errorf("%v.Skips(%d) = %v, want %v", tt.policy, tt.deg, got, tt.want)
		}
	}
}
