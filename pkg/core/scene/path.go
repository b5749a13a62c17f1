package scene

import "github.com/trimworks/flashing/pkg/core/geom"

// Op is a path drawing command.
type Op string

const (
	OpMove  Op = "M"
	OpLine  Op = "L"
	OpCubic Op = "C" // two control points then the end point
	OpClose Op = "Z"
)

// PathOp is one command of a path element.
type PathOp struct {
	Op     Op           `json:"op"`
	Points []geom.Point `json:"points,omitempty"`
}

// PathBuilder accumulates path commands.
//
//	ops := scene.NewPath().MoveTo(a).CubicTo(c1, c2, b).LineTo(c).Ops()
type PathBuilder struct {
	ops []PathOp
}

func NewPath() *PathBuilder { return &PathBuilder{} }

func (b *PathBuilder) MoveTo(p geom.Point) *PathBuilder {
	b.ops = append(b.ops, PathOp{Op: OpMove, Points: []geom.Point{p}})
	return b
}

func (b *PathBuilder) LineTo(p geom.Point) *PathBuilder {
	b.ops = append(b.ops, PathOp{Op: OpLine, Points: []geom.Point{p}})
	return b
}

func (b *PathBuilder) CubicTo(c1, c2, p geom.Point) *PathBuilder {
	b.ops = append(b.ops, PathOp{Op: OpCubic, Points: []geom.Point{c1, c2, p}})
	return b
}

func (b *PathBuilder) Close() *PathBuilder {
	b.ops = append(b.ops, PathOp{Op: OpClose})
	return b
}

// Ops returns the accumulated commands.
func (b *PathBuilder) Ops() []PathOp { return b.ops }

// MapOps applies f to every point of ops and returns the result as a new
// slice. Cubic Bézier curves are preserved by affine maps, so mapping the
// control points is enough to move a curve between coordinate spaces.
func MapOps(ops []PathOp, f func(geom.Point) geom.Point) []PathOp {
	out := make([]PathOp, len(ops))
	for i, op := range ops {
		pts := make([]geom.Point, len(op.Points))
		for j, p := range op.Points {
			pts[j] = f(p)
		}
		out[i] = PathOp{Op: op.Op, Points: pts}
	}
	return out
}

// MapPoints applies f to every point.
func MapPoints(pts []geom.Point, f func(geom.Point) geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = f(p)
	}
	return out
}
