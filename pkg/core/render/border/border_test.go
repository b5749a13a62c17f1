package border

import (
	"math"
	"testing"

	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/profile"
)

const eps = 1e-9

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestOffsetTwoPointInside(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}
	segs := Offset(pts, profile.BorderInside, 15)

	if len(segs) != 1 {
		t.Fatalf("len(segs) = %d, want 1", len(segs))
	}
	s := segs[0]
	// inside: +90° of (1,0) is (0,1)
	if !near(s.A, geom.Pt(0, 15)) || !near(s.B, geom.Pt(100, 15)) {
		t.Errorf("segment = %+v, want (0,15)-(100,15)", s)
	}

	// parallel at the fixed distance
	orig := pts[1].Sub(pts[0])
	off := s.B.Sub(s.A)
	if cross := orig.X*off.Y - orig.Y*off.X; math.Abs(cross) > eps {
		t.Errorf("offset segment not parallel, cross = %v", cross)
	}
	if d := s.A.Dist(pts[0]); math.Abs(d-15) > eps {
		t.Errorf("offset distance = %v, want 15", d)
	}
}

func TestOffsetOutside(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 50}}
	segs := Offset(pts, profile.BorderOutside, 10)
	// outside: -90° of (0,1) is (1,0)
	if len(segs) != 1 || !near(segs[0].A, geom.Pt(10, 0)) || !near(segs[0].B, geom.Pt(10, 50)) {
		t.Errorf("Offset() = %+v", segs)
	}
}

func TestOffsetSkipsDegenerate(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	segs := Offset(pts, profile.BorderOutside, 15)
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2", len(segs))
	}
	for _, s := range segs {
		if s.A == s.B {
			t.Errorf("degenerate segment emitted: %+v", s)
		}
	}

	if got := Offset([]geom.Point{{X: 1, Y: 1}}, profile.BorderInside, 15); got != nil {
		t.Errorf("single point Offset() = %v, want nil", got)
	}
}

func TestChevron(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 100, Y: 0}}
	tri, ok := Chevron(pts, profile.BorderInside, 8)
	if !ok {
		t.Fatal("Chevron() ok = false")
	}
	if len(tri) != 3 {
		t.Fatalf("len(tri) = %d, want 3", len(tri))
	}
	// first non-degenerate segment midpoint is (50,0); inside normal is
	// (0,1), so the tip points to -y.
	if !near(tri[0], geom.Pt(50, -4)) {
		t.Errorf("tip = %v, want (50,-4)", tri[0])
	}
	if !near(tri[1], geom.Pt(54, 4)) || !near(tri[2], geom.Pt(46, 4)) {
		t.Errorf("base = %v %v", tri[1], tri[2])
	}

	box := ChevronBox(pts, profile.BorderInside, 8)
	if box != (geom.Rect{MinX: 46, MinY: -4, MaxX: 54, MaxY: 4}) {
		t.Errorf("ChevronBox() = %+v", box)
	}

	// chevron size does not depend on segment length
	long := []geom.Point{{X: 0, Y: 0}, {X: 10000, Y: 0}}
	lt, _ := Chevron(long, profile.BorderInside, 8)
	if d := lt[1].Dist(lt[2]); math.Abs(d-8) > eps {
		t.Errorf("chevron base width = %v, want 8", d)
	}

	if _, ok := Chevron([]geom.Point{{X: 3, Y: 3}, {X: 3, Y: 3}}, profile.BorderInside, 8); ok {
		t.Error("all-degenerate path should have no chevron")
	}
	if !ChevronBox(nil, profile.BorderInside, 8).IsEmpty() {
		t.Error("ChevronBox(nil) should be empty")
	}
}
