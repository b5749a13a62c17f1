// Package border computes the offset border drawn parallel to a flashing
// path and the chevron that marks which side of the sheet it represents.
//
// Both functions work in model space and return plain geometry; the diagram
// assembler maps the result to canvas coordinates.
package border

import (
	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/profile"
)

// Segment is one offset border edge.
type Segment struct {
	A geom.Point `json:"a"`
	B geom.Point `json:"b"`
}

// normal returns the unit offset normal for direction d.
func normal(d geom.Point, dir profile.BorderDirection) geom.Point {
	if dir == profile.BorderInside {
		return d.Rot90()
	}
	return d.RotNeg90()
}

// Offset returns one edge per non-degenerate consecutive point pair, moved
// dist units along the side selected by dir. Zero-length pairs contribute
// nothing.
func Offset(points []geom.Point, dir profile.BorderDirection, dist float64) []Segment {
	if len(points) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		d, ok := b.Sub(a).Unit()
		if !ok {
			continue
		}
		n := normal(d, dir).Mul(dist)
		out = append(out, Segment{A: a.Add(n), B: b.Add(n)})
	}
	return out
}

// Points flattens segs into the list of their endpoints.
func Points(segs []Segment) []geom.Point {
	pts := make([]geom.Point, 0, 2*len(segs))
	for _, s := range segs {
		pts = append(pts, s.A, s.B)
	}
	return pts
}

// Chevron returns the direction marker: a solid triangle of side size
// centered on the midpoint of the first non-degenerate segment, pointing
// away from the border side. ok is false when no segment has length.
func Chevron(points []geom.Point, dir profile.BorderDirection, size float64) (tri []geom.Point, ok bool) {
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		d, nonzero := b.Sub(a).Unit()
		if !nonzero {
			continue
		}
		mid := a.Mid(b)
		point := normal(d, dir).Neg()
		half := size / 2
		tip := mid.Along(point, half)
		back := mid.Along(point, -half)
		return []geom.Point{tip, back.Along(d, half), back.Along(d, -half)}, true
	}
	return nil, false
}

// ChevronBox returns the bounding box of the chevron, or an empty Rect when
// there is none.
func ChevronBox(points []geom.Point, dir profile.BorderDirection, size float64) geom.Rect {
	tri, _ := Chevron(points, dir, size)
	return geom.BoundsOf(tri...)
}
