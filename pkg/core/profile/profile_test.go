package profile

import (
	"math"
	"testing"

	"github.com/trimworks/flashing/pkg/core/geom"
)

func TestIsValidPath(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Point
		want   bool
	}{
		{"empty", nil, false},
		{"single point", []geom.Point{{X: 1, Y: 2}}, true},
		{"polyline", []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, true},
		{"nan point", []geom.Point{{X: 0, Y: 0}, {X: math.NaN(), Y: 0}}, false},
		{"inf point", []geom.Point{{X: math.Inf(1), Y: 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPath(tt.points); got != tt.want {
				t.Errorf("IsValidPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsEndSegment(t *testing.T) {
	p := Path{Points: make([]geom.Point, 5)} // segments 0..3
	want := map[int]bool{0: true, 1: false, 2: false, 3: true}
	for i, w := range want {
		if got := p.IsEndSegment(i); got != w {
			t.Errorf("IsEndSegment(%d) = %v, want %v", i, got, w)
		}
	}

	single := Path{Points: make([]geom.Point, 1)}
	if single.IsEndSegment(0) {
		t.Error("single-point path has no segments")
	}
}

func TestNormalize(t *testing.T) {
	p := Path{
		Points:   make([]geom.Point, 4),
		Segments: []Segment{{Length: "a"}},
	}
	got, changed := Normalize(p)
	if !changed {
		t.Error("Normalize should report a change")
	}
	if len(got.Segments) != 3 {
		t.Fatalf("len(Segments) = %d, want 3", len(got.Segments))
	}
	if got.Segments[0].Length != "a" {
		t.Errorf("existing segment lost: %+v", got.Segments[0])
	}
	if len(p.Segments) != 1 {
		t.Error("Normalize must not modify its input")
	}

	p.Segments = make([]Segment, 7)
	got, _ = Normalize(p)
	if len(got.Segments) != 3 {
		t.Errorf("surplus segments: len = %d, want 3", len(got.Segments))
	}

	if _, changed := Normalize(Path{}); changed {
		t.Error("empty path needs no change")
	}
}

func TestParseFoldKind(t *testing.T) {
	tests := []struct {
		in      string
		want    FoldKind
		wantErr bool
	}{
		{"", FoldNone, false},
		{"None", FoldNone, false},
		{"open", FoldOpen, false},
		{"Break", FoldBreak, false},
		{"CRUSH", FoldCrush, false},
		{"CrushHook", FoldCrushHook, false},
		{"crush hook", FoldCrushHook, false},
		{"crush_hook", FoldCrushHook, false},
		{"zigzag", FoldNone, true},
	}

	for _, tt := range tests {
		got, err := ParseFoldKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFoldKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFoldKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngleRounded(t *testing.T) {
	tests := []struct {
		deg  float64
		want int
	}{
		{90, 90},
		{89.6, 90},
		{315.2, 315},
		{360, 0},
		{-45, 315},
		{135.5, 136},
	}
	for _, tt := range tests {
		if got := (Angle{Degrees: tt.deg}).Rounded(); got != tt.want {
			t.Errorf("Angle{%v}.Rounded() = %d, want %d", tt.deg, got, tt.want)
		}
	}
}

func TestAngleText(t *testing.T) {
	if got := (Angle{Degrees: 135}).Text(); got != "135°" {
		t.Errorf("Text() = %q, want 135°", got)
	}
	if got := (Angle{Degrees: 22.5}).Text(); got != "22.5°" {
		t.Errorf("Text() = %q, want 22.5°", got)
	}
}

func TestDiagramSetOverride(t *testing.T) {
	set := DiagramSet{LabelOverrides: map[string]geom.Point{
		"fold-2-0": {X: 5, Y: 6},
	}}
	if p, ok := set.Override(2, 0); !ok || p != (geom.Point{X: 5, Y: 6}) {
		t.Errorf("Override(2, 0) = %v, %v", p, ok)
	}
	if _, ok := set.Override(0, 2); ok {
		t.Error("Override(0, 2) should not exist")
	}
	if set.EffectiveScale() != 1 {
		t.Errorf("EffectiveScale() = %v, want 1", set.EffectiveScale())
	}
}
