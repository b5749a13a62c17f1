package scene

import (
	"testing"

	"github.com/trimworks/flashing/pkg/core/geom"
)

func TestFindAndCount(t *testing.T) {
	s := Scene{
		Size: 100,
		Elements: []Element{
			Line(geom.Pt(0, 0), geom.Pt(1, 1), Style{}).WithClass("grid-minor"),
			Line(geom.Pt(0, 2), geom.Pt(1, 2), Style{}).WithClass("grid-minor"),
			Group("segment-label",
				Rect(geom.Rect{MaxX: 10, MaxY: 5}, 1, Style{}),
				Text(geom.Pt(5, 2.5), "1.00 m", 8, Style{}),
				Group("fold-glyph", Path(NewPath().MoveTo(geom.Pt(0, 0)).LineTo(geom.Pt(3, 3)).Ops(), Style{})),
			),
		},
	}

	if got := s.Count("grid-minor"); got != 2 {
		t.Errorf("Count(grid-minor) = %d, want 2", got)
	}
	if got := s.Count("fold-glyph"); got != 1 {
		t.Errorf("nested Count(fold-glyph) = %d, want 1", got)
	}
	labels := s.Find("segment-label")
	if len(labels) != 1 || len(labels[0].Children) != 3 {
		t.Fatalf("Find(segment-label) = %+v", labels)
	}
	if got := s.Count("missing"); got != 0 {
		t.Errorf("Count(missing) = %d", got)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	s := Scene{Elements: []Element{
		Group("outer", Circle(geom.Pt(0, 0), 1, Style{}).WithClass("inner")),
	}}
	var seen []string
	s.Walk(func(e Element) bool {
		seen = append(seen, e.Class)
		return false
	})
	if len(seen) != 1 || seen[0] != "outer" {
		t.Errorf("Walk visited %v, want [outer]", seen)
	}
}

func TestElementBounds(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want geom.Rect
	}{
		{"circle", Circle(geom.Pt(5, 5), 2, Style{}), geom.Rect{MinX: 3, MinY: 3, MaxX: 7, MaxY: 7}},
		{"polyline", Polyline([]geom.Point{{X: 1, Y: 4}, {X: -2, Y: 0}}, Style{}), geom.Rect{MinX: -2, MinY: 0, MaxX: 1, MaxY: 4}},
		{"path", Path(NewPath().MoveTo(geom.Pt(0, 0)).CubicTo(geom.Pt(10, 0), geom.Pt(10, 5), geom.Pt(0, 5)).Ops(), Style{}),
			geom.Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}},
		{"group", Group("g",
			Line(geom.Pt(0, 0), geom.Pt(1, 1), Style{}),
			Rect(geom.Rect{MinX: 4, MinY: 4, MaxX: 6, MaxY: 9}, 0, Style{}),
		), geom.Rect{MinX: 0, MinY: 0, MaxX: 6, MaxY: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.Bounds(); got != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMapOps(t *testing.T) {
	ops := NewPath().MoveTo(geom.Pt(1, 1)).CubicTo(geom.Pt(2, 1), geom.Pt(2, 2), geom.Pt(1, 2)).Close().Ops()
	double := func(p geom.Point) geom.Point { return p.Mul(2) }

	got := MapOps(ops, double)
	if got[1].Points[2] != geom.Pt(2, 4) {
		t.Errorf("mapped end point = %v, want (2,4)", got[1].Points[2])
	}
	if ops[1].Points[2] != geom.Pt(1, 2) {
		t.Error("MapOps must not modify its input")
	}
	if got[2].Op != OpClose || len(got[2].Points) != 0 {
		t.Errorf("close op = %+v", got[2])
	}
}
