package io

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/errors"
)

const orderJSON = `{
  "id": "A-1001",
  "scale": "2.5",
  "showBorder": true,
  "borderOffsetDirection": "inside",
  "labelPositionOverrides": {"fold-0-1": {"x": 60, "y": "130"}},
  "paths": [{
    "name": "Barge",
    "color": "Monument",
    "code": "BG1",
    "points": [{"x": 0, "y": 0}, {"x": "100", "y": 0}, {"x": 100, "y": " 100 "}],
    "segments": [
      {"length": "1.00 m", "labelPosition": {"x": 50, "y": -20}},
      {"length": "1,200 mm", "fold": {"type": "Crush", "length": 14, "angle": 0, "tailLength": 20}}
    ],
    "angles": [{"angle": "135°", "vertexIndex": 1, "labelPosition": {"x": 120, "y": -20}}],
    "quantities": [{"quantity": 2, "length": 1500}]
  }]
}`

func TestReadJSON(t *testing.T) {
	set, warnings, err := ReadJSON(strings.NewReader(orderJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if set.ID != "A-1001" || set.Scale != 2.5 || !set.ShowBorder || set.BorderDirection != profile.BorderInside {
		t.Errorf("set flags = %+v", set)
	}
	if o, ok := set.Override(0, 1); !ok || o != geom.Pt(60, 130) {
		t.Errorf("override = %v, %v", o, ok)
	}

	p := set.Paths[0]
	if !p.Valid() || p.Points[2] != geom.Pt(100, 100) {
		t.Errorf("points = %v", p.Points)
	}
	if p.Segments[0].LengthValue != 1 || p.Segments[1].LengthValue != 1200 {
		t.Errorf("length values = %v, %v", p.Segments[0].LengthValue, p.Segments[1].LengthValue)
	}
	f := p.Segments[1].Fold
	if f == nil || f.Kind != profile.FoldCrush || f.TailLength != 20 {
		t.Errorf("fold = %+v", f)
	}
	if len(p.Angles) != 1 || p.Angles[0].Degrees != 135 {
		t.Errorf("angles = %+v", p.Angles)
	}
	if len(p.Quantities) != 1 || p.Quantities[0] != (profile.QuantityLength{Quantity: 2, Length: 1500}) {
		t.Errorf("quantities = %+v", p.Quantities)
	}
}

func TestReadJSONWarnings(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		check func(t *testing.T, p profile.Path)
		want  string
	}{
		{
			name: "bad fold values use defaults",
			path: `{"points":[{"x":0,"y":0},{"x":1,"y":0}],"segments":[{"length":"1","fold":{"type":"Break","length":"abc","angle":"x","tailLength":true}}]}`,
			check: func(t *testing.T, p profile.Path) {
				f := p.Segments[0].Fold
				if f.Length != 14 || f.Angle != 0 || f.TailLength != 20 {
					t.Errorf("fold = %+v, want defaults", f)
				}
			},
			want: "fold length is not numeric",
		},
		{
			name: "unknown fold type",
			path: `{"points":[{"x":0,"y":0},{"x":1,"y":0}],"segments":[{"length":"1","fold":{"type":"Roll"}}]}`,
			check: func(t *testing.T, p profile.Path) {
				if p.Segments[0].Fold != nil {
					t.Error("unknown fold should be dropped")
				}
			},
			want: "unknown fold type",
		},
		{
			name: "non-numeric point",
			path: `{"points":[{"x":0,"y":0},{"x":"abc","y":0}],"segments":[{}]}`,
			check: func(t *testing.T, p profile.Path) {
				if p.Valid() {
					t.Error("path with non-numeric point should be invalid")
				}
			},
			want: "non-numeric point",
		},
		{
			name: "bad angle dropped",
			path: `{"points":[{"x":0,"y":0},{"x":1,"y":0},{"x":1,"y":1}],"segments":[{},{}],"angles":[{"angle":"obtuse","vertexIndex":1}]}`,
			check: func(t *testing.T, p profile.Path) {
				if len(p.Angles) != 0 {
					t.Errorf("angles = %+v", p.Angles)
				}
			},
			want: "angle at vertex 1",
		},
		{
			name: "segments normalized",
			path: `{"points":[{"x":0,"y":0},{"x":1,"y":0},{"x":1,"y":1}],"segments":[{"length":"5"}]}`,
			check: func(t *testing.T, p profile.Path) {
				if len(p.Segments) != 2 || p.Segments[0].Length != "5" {
					t.Errorf("segments = %+v", p.Segments)
				}
			},
			want: "normalized",
		},
		{
			name: "non-numeric length",
			path: `{"points":[{"x":0,"y":0},{"x":1,"y":0}],"segments":[{"length":"tbc"}]}`,
			check: func(t *testing.T, p profile.Path) {
				if !math.IsNaN(p.Segments[0].LengthValue) || p.Segments[0].Length != "tbc" {
					t.Errorf("segment = %+v", p.Segments[0])
				}
			},
			want: `length "tbc" is not numeric`,
		},
		{
			name: "bad label position omitted",
			path: `{"points":[{"x":0,"y":0},{"x":1,"y":0}],"segments":[{"length":"1","labelPosition":{"x":"left","y":0}}]}`,
			check: func(t *testing.T, p profile.Path) {
				if p.Segments[0].LabelPosition != nil {
					t.Error("label position should be dropped")
				}
			},
			want: "label omitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, warnings, err := ReadJSON(strings.NewReader(`{"paths":[` + tt.path + `]}`))
			if err != nil {
				t.Fatalf("ReadJSON() error: %v", err)
			}
			tt.check(t, set.Paths[0])

			found := false
			for _, w := range warnings {
				if strings.Contains(w.String(), tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("warnings %v do not mention %q", warnings, tt.want)
			}
		})
	}
}

func TestReadJSONTrailingDotLength(t *testing.T) {
	in := `{"paths":[{"points":[{"x":0,"y":0},{"x":1,"y":0}],"segments":[{"length":"1.20 m."}]}]}`
	set, warnings, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if got := set.Paths[0].Segments[0].LengthValue; got != 1.2 {
		t.Errorf("length value = %v, want 1.2", got)
	}
}

func TestReadJSONSyntaxError(t *testing.T) {
	_, _, err := ReadJSON(strings.NewReader(`{"paths": [`))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`12.5`, 12.5},
		{`"12.5"`, 12.5},
		{`" -3 "`, -3},
		{`"1e400"`, math.NaN()},
		{`"abc"`, math.NaN()},
		{`null`, math.NaN()},
		{`true`, math.NaN()},
	}
	for _, tt := range tests {
		var n Number
		if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", tt.in, err)
		}
		got := n.Float()
		if math.IsNaN(tt.want) != math.IsNaN(got) || (!math.IsNaN(got) && got != tt.want) {
			t.Errorf("Number(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}

	var d Degrees
	if err := json.Unmarshal([]byte(`"270°"`), &d); err != nil || d != 270 {
		t.Errorf("Degrees = %v, %v", d, err)
	}
}

func TestParseLength(t *testing.T) {
	tests := map[string]float64{
		"1.20 m":        1.2,
		"1,500mm":       1500,
		"350":           350,
		"approx 7":      7,
		"1.20 m.":       1.2,
		"2.5 ft.":       2.5,
		"approx. 1.5 m": 1.5,
		"1.2.3":         1.2,
		"12.":           12,
	}
	for in, want := range tests {
		if got := ParseLength(in); got != want {
			t.Errorf("ParseLength(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "n/a", "...", "m."} {
		if got := ParseLength(in); !math.IsNaN(got) {
			t.Errorf("ParseLength(%q) = %v, want NaN", in, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	set, _, err := ReadJSON(strings.NewReader(orderJSON))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(set, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	again, warnings, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings after round trip: %v", warnings)
	}
	if !reflect.DeepEqual(set, again) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", again, set)
	}
}

func TestImportExportFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "order.json")
	if err := os.WriteFile(src, []byte(orderJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	set, _, err := ImportJSON(src)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	out := filepath.Join(dir, "out.json")
	if err := ExportJSON(set, out); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	if _, _, err := ImportJSON(out); err != nil {
		t.Errorf("re-import error: %v", err)
	}

	_, _, err = ImportJSON(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
