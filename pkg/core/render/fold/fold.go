package fold

import (
	"fmt"
	"strconv"

	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/core/scene"
)

// kappa is the control-point distance, as a fraction of the radius, of a
// cubic Bézier approximating a quarter circle.
const kappa = 0.5522847498

// Glyph is the model-space geometry of one end fold.
type Glyph struct {
	Kind    profile.FoldKind `json:"kind"`
	Segment int              `json:"segment"`
	Base    geom.Point       `json:"base"`    // where the fold leaves the path
	Ops     []scene.PathOp   `json:"ops"`     // glyph outline
	Outward geom.Point       `json:"outward"` // unit direction the label sits in
	Tail    float64          `json:"tail"`    // crush tail length, zero otherwise
	Length  float64          `json:"length"`
}

// Points returns every point of the glyph outline, control points included.
// A cubic curve lies inside the hull of its control points, so the bounding
// box of Points contains the drawn glyph.
func (g Glyph) Points() []geom.Point {
	var pts []geom.Point
	for _, op := range g.Ops {
		pts = append(pts, op.Points...)
	}
	return pts
}

// Geometry returns the glyph for the fold of segment seg. ok is false when
// nothing is drawn: the segment is interior, has no fold, is zero-length or
// out of range.
//
// On the first segment the fold starts at Points[0] and leaves away from
// Points[1]; on the last segment it starts at the final point and leaves away
// from the one before. A two-point path is treated as its first segment.
func Geometry(p profile.Path, seg int, cfg config.FoldConfig) (g Glyph, ok bool) {
	if !p.IsEndSegment(seg) || seg >= len(p.Segments) {
		return Glyph{}, false
	}
	spec := p.Segments[seg].Fold
	if spec == nil || spec.Kind == profile.FoldNone {
		return Glyph{}, false
	}

	p1, p2 := p.SegmentEnds(seg)
	along, nonzero := p2.Sub(p1).Unit()
	if !nonzero {
		return Glyph{}, false
	}

	first := seg == 0
	base, out := p2, along
	if first {
		base, out = p1, along.Neg()
	}

	g = Glyph{Kind: spec.Kind, Segment: seg, Base: base, Length: spec.Length}
	L := spec.Length

	switch spec.Kind {
	case profile.FoldOpen:
		dir := turn(out, spec)
		g.Outward = dir
		g.Ops = scene.NewPath().MoveTo(base).LineTo(base.Along(dir, L)).Ops()

	case profile.FoldBreak:
		dir := turn(out, spec)
		n := side(dir.Rot90(), spec)
		knee := base.Along(dir, L/2).Along(n, cfg.BreakOffset*L)
		g.Outward = dir
		g.Ops = scene.NewPath().MoveTo(base).LineTo(knee).LineTo(base.Along(dir, L)).Ops()

	case profile.FoldCrushHook:
		dir := turn(out, spec)
		n := side(dir.Rot90(), spec)
		end := base.Along(dir, L)
		r := cfg.HookRadius * L
		c := end.Along(n, r)
		mid := c.Along(dir, r)
		top := c.Along(n, r)
		k := kappa * r
		g.Outward = dir
		g.Ops = scene.NewPath().
			MoveTo(base).LineTo(end).
			CubicTo(end.Along(dir, k), mid.Along(n, -k), mid).
			CubicTo(mid.Along(n, k), top.Along(dir, k), top).
			Ops()

	case profile.FoldCrush:
		n := along.Rot90()
		if first {
			n = n.Neg()
		}
		n = side(n.Rotate(spec.Angle), spec)
		w, h := cfg.CrushWidth*L, cfg.CrushHeight*L
		end := base.Along(n, h)
		g.Outward = n
		g.Tail = spec.TailLength
		g.Ops = scene.NewPath().
			MoveTo(base).
			CubicTo(base.Along(out, w), base.Along(out, w).Along(n, h), end).
			LineTo(end.Along(out, -spec.TailLength)).
			Ops()

	default:
		return Glyph{}, false
	}
	return g, true
}

// turn rotates the outward direction by the fold angle; a flipped fold turns
// the other way round.
func turn(out geom.Point, spec *profile.FoldSpec) geom.Point {
	a := spec.Angle
	if spec.Flipped {
		a = 360 - a
	}
	return out.Rotate(a)
}

func side(n geom.Point, spec *profile.FoldSpec) geom.Point {
	if spec.Flipped {
		return n.Neg()
	}
	return n
}

// LabelAnchor returns the model-space point the fold callout is centered on.
// Under [config.FoldLabelFixed] it sits LabelDistanceMM real-world
// millimetres from the base, converted with scale (model units per mm);
// under [config.FoldLabelProportional] it sits LabelFactor fold lengths away.
func LabelAnchor(g Glyph, cfg config.FoldConfig, policy config.FoldLabelPolicy, scale float64) geom.Point {
	dist := cfg.LabelDistanceMM * scale
	if policy == config.FoldLabelProportional {
		dist = cfg.LabelFactor * g.Length
	}
	return g.Base.Along(g.Outward, dist)
}

// LabelText returns the callout text: "CRUSH {tail}" for crush folds, the
// kind label otherwise.
func LabelText(g Glyph) string {
	if g.Kind == profile.FoldCrush {
		return fmt.Sprintf("%s %s", g.Kind.Label(), strconv.FormatFloat(g.Tail, 'f', -1, 64))
	}
	return g.Kind.Label()
}
