// Package geom provides the small amount of 2-D vector math shared by the
// diagram packages: points, direction vectors, rotations and axis-aligned
// rectangles.
//
// Coordinates are plain float64 values. Model space and canvas space use the
// same types; which space a value lives in is a matter of convention at the
// call site (see [github.com/trimworks/flashing/pkg/core/render/layout.Viewport]).
package geom

import "math"

// Point is a 2-D coordinate or direction vector.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point    { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point    { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point  { return Point{p.X * k, p.Y * k} }
func (p Point) Neg() Point           { return Point{-p.X, -p.Y} }
func (p Point) Dot(q Point) float64  { return p.X*q.X + p.Y*q.Y }
func (p Point) Len() float64         { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }
func (p Point) Mid(q Point) Point    { return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2} }

// Along returns p moved k units along direction d.
func (p Point) Along(d Point, k float64) Point { return p.Add(d.Mul(k)) }

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Unit returns p scaled to length 1. The second result is false for a
// zero-length (or non-finite) vector, in which case the zero Point is returned.
func (p Point) Unit() (Point, bool) {
	l := p.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Point{}, false
	}
	return Point{p.X / l, p.Y / l}, true
}

// Rot90 rotates p by +90 degrees: (x, y) -> (-y, x).
func (p Point) Rot90() Point { return Point{-p.Y, p.X} }

// RotNeg90 rotates p by -90 degrees: (x, y) -> (y, -x).
func (p Point) RotNeg90() Point { return Point{p.Y, -p.X} }

// Rotate rotates p counter-clockwise (in a y-up frame) by deg degrees.
func (p Point) Rotate(deg float64) Point {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

// Rect is an axis-aligned rectangle. The zero Rect is the degenerate box at
// the origin; use [EmptyRect] as the identity for [Rect.Extend].
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// EmptyRect returns a rectangle that any call to Extend will replace.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// RectAround returns the rectangle spanning x in [p.X-left, p.X+right] and
// y in [p.Y-top, p.Y+bottom].
func RectAround(p Point, left, top, right, bottom float64) Rect {
	return Rect{MinX: p.X - left, MinY: p.Y - top, MaxX: p.X + right, MaxY: p.Y + bottom}
}

// IsEmpty reports whether r has never been extended.
func (r Rect) IsEmpty() bool { return r.MinX > r.MaxX || r.MinY > r.MaxY }

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Extend grows r to include p. Non-finite points are ignored.
func (r Rect) Extend(pts ...Point) Rect {
	for _, p := range pts {
		if !p.IsFinite() {
			continue
		}
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}

// Union grows r to include o.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	return r.Extend(Point{o.MinX, o.MinY}, Point{o.MaxX, o.MaxY})
}

// Pad grows r by d on every side.
func (r Rect) Pad(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(Point{o.MinX, o.MinY}) && r.Contains(Point{o.MaxX, o.MaxY})
}

// BoundsOf returns the bounding rectangle of pts, or an empty Rect.
func BoundsOf(pts ...Point) Rect { return EmptyRect().Extend(pts...) }
