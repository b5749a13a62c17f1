package callout

import (
	"math"
	"testing"

	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/scene"
)

func TestPlaceWidth(t *testing.T) {
	s := SizingFrom(config.Default().Label)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"short text uses min width", "90°", 36},
		{"long text grows", "1.20 m  x  1,500", 16*5.5 + 8},
		{"empty text", "", 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Place(geom.Pt(0, 0), geom.Pt(0, 100), tt.text, s)
			if math.Abs(c.Width-tt.want) > 1e-9 {
				t.Errorf("Width = %v, want %v", c.Width, tt.want)
			}
			if c.Height != s.Height {
				t.Errorf("Height = %v, want %v", c.Height, s.Height)
			}
			if c.Box.Width() != c.Width || c.Box.Height() != c.Height {
				t.Errorf("Box = %+v does not match %vx%v", c.Box, c.Width, c.Height)
			}
		})
	}
}

func TestPlaceEdge(t *testing.T) {
	s := SizingFrom(config.Default().Label)
	a := geom.Pt(100, 100)

	tests := []struct {
		target geom.Point
		want   Edge
	}{
		{geom.Pt(200, 110), EdgeRight},
		{geom.Pt(0, 90), EdgeLeft},
		{geom.Pt(110, 0), EdgeTop},
		{geom.Pt(90, 200), EdgeBottom},
		{geom.Pt(150, 150), EdgeBottom}, // tie goes vertical
		{a, EdgeBottom},
	}

	for _, tt := range tests {
		c := Place(a, tt.target, "1.00 m", s)
		if c.Edge != tt.want {
			t.Errorf("target %v: Edge = %v, want %v", tt.target, c.Edge, tt.want)
		}
	}
}

func TestTailGeometry(t *testing.T) {
	s := SizingFrom(config.Default().Label)
	c := Place(geom.Pt(0, 0), geom.Pt(500, 0), "OPEN", s)

	if c.Edge != EdgeRight {
		t.Fatalf("Edge = %v, want right", c.Edge)
	}
	tip := c.Tail[2]
	if tip.X != c.Box.MaxX+s.TailLength || tip.Y != 0 {
		t.Errorf("tip = %v, want (%v, 0)", tip, c.Box.MaxX+s.TailLength)
	}
	// base points straddle the attach point on the edge
	for _, p := range c.Tail[:2] {
		if p.X != c.Box.MaxX {
			t.Errorf("tail base %v not on right edge x=%v", p, c.Box.MaxX)
		}
	}
	if c.Tail[0].Y != -c.Tail[1].Y || math.Abs(c.Tail[0].Y) != s.TailHalfWidth {
		t.Errorf("tail base = %v %v", c.Tail[0], c.Tail[1])
	}

	b := c.Bounds()
	if !b.Contains(tip) || !b.ContainsRect(c.Box) {
		t.Errorf("Bounds() = %+v misses tip or box", b)
	}
}

func TestScaledAndMeasure(t *testing.T) {
	s := SizingFrom(config.Default().Label).Scaled(2)
	if s.MinWidth != 72 || s.Height != 28 || s.TailLength != 12 {
		t.Errorf("Scaled(2) = %+v", s)
	}

	s.Measure = func(text string, size float64) float64 { return float64(len(text)) * size }
	c := Place(geom.Pt(0, 0), geom.Pt(0, 1), "ABCDEFGHIJ", s)
	if want := 10*s.FontSize + s.Padding; c.Width != want {
		t.Errorf("measured Width = %v, want %v", c.Width, want)
	}
}

func TestElements(t *testing.T) {
	c := Place(geom.Pt(10, 10), geom.Pt(10, 50), "135°", SizingFrom(config.Default().Label))
	els := c.Elements(Paint{Fill: "#fff", Stroke: "#000", TextColor: "#111", StrokeWidth: 1, Filter: "shadow"})

	if len(els) != 3 {
		t.Fatalf("len(Elements) = %d, want 3", len(els))
	}
	kinds := []scene.Kind{scene.KindRect, scene.KindPolygon, scene.KindText}
	for i, k := range kinds {
		if els[i].Kind != k {
			t.Errorf("element %d kind = %v, want %v", i, els[i].Kind, k)
		}
	}
	if els[0].Style.Filter != "shadow" {
		t.Error("box should carry the shadow filter")
	}
	if els[2].Text != "135°" || els[2].Center != c.Anchor {
		t.Errorf("text element = %+v", els[2])
	}
}
