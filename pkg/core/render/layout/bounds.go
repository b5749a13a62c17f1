package layout

import (
	"math"

	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/core/render/border"
	"github.com/trimworks/flashing/pkg/core/render/fold"
)

// BoundsInput carries the per-set flags that influence the view window.
type BoundsInput struct {
	ShowBorder      bool
	BorderDirection profile.BorderDirection
	Overrides       map[string]geom.Point // keyed by profile.FoldLabelKey
	Scale           float64               // model units per millimetre
}

// InputFromSet returns the BoundsInput for paths of set.
func InputFromSet(set profile.DiagramSet) BoundsInput {
	return BoundsInput{
		ShowBorder:      set.ShowBorder,
		BorderDirection: set.BorderDirection,
		Overrides:       set.LabelOverrides,
		Scale:           set.EffectiveScale(),
	}
}

// InvalidBounds is the fixed box used for paths that cannot be rendered.
func InvalidBounds(cfg config.Config) geom.Rect {
	return geom.Rect{MaxX: cfg.Padding.InvalidSize, MaxY: cfg.Padding.InvalidSize}
}

// ComputeBounds returns the padded model-space window for p: the points,
// a label margin box around every callout anchor, every fold glyph, and the
// offset border with its chevron when requested. The result always has a
// positive width and height.
func ComputeBounds(p profile.Path, in BoundsInput, cfg config.Config) geom.Rect {
	if !p.Valid() {
		return InvalidBounds(cfg)
	}

	b := geom.BoundsOf(p.Points...)
	margin := func(anchor geom.Point) {
		lc := cfg.Label
		b = b.Union(geom.RectAround(anchor, lc.MarginX, lc.MarginTop, lc.MarginX, lc.ArrowSize+lc.MarginBottom))
	}

	for i, seg := range p.Segments {
		if seg.LabelPosition != nil {
			margin(*seg.LabelPosition)
		}
		if o, ok := in.Overrides[profile.FoldLabelKey(p.PathIndex, i)]; ok {
			margin(o)
		}
		if g, ok := fold.Geometry(p, i, cfg.Fold); ok {
			b = b.Extend(g.Points()...)
			margin(FoldLabelAnchor(p, g, in, cfg))
		}
	}

	for _, a := range LabeledAngles(p, cfg.Policies.AngleSkip) {
		margin(*a.LabelPosition)
	}

	if in.ShowBorder && len(p.Points) >= 2 {
		b = b.Extend(border.Points(border.Offset(p.Points, in.BorderDirection, cfg.Border.Offset))...)
		b = b.Union(border.ChevronBox(p.Points, in.BorderDirection, cfg.Border.ChevronSize))
	}

	return b.Pad(padding(b, cfg.Padding))
}

func padding(raw geom.Rect, pc config.PaddingConfig) float64 {
	w, h := raw.Width(), raw.Height()
	if w > pc.LargeThreshold || h > pc.LargeThreshold {
		return math.Max(pc.LargeMin, pc.LargeRatio*math.Max(w, h))
	}
	return pc.Small
}

// FoldLabelAnchor returns where the fold label of g is centered: the
// externally supplied override when one exists, the computed position
// otherwise.
func FoldLabelAnchor(p profile.Path, g fold.Glyph, in BoundsInput, cfg config.Config) geom.Point {
	if o, ok := in.Overrides[profile.FoldLabelKey(p.PathIndex, g.Segment)]; ok {
		return o
	}
	scale := in.Scale
	if scale <= 0 {
		scale = 1
	}
	return fold.LabelAnchor(g, cfg.Fold, cfg.Policies.FoldLabelDistance, scale)
}

// LabeledAngles returns the angles that get a callout: those with a label
// position and a vertex on the path whose rounded value is not skipped by
// the policy.
func LabeledAngles(p profile.Path, policy config.AngleSkipPolicy) []profile.Angle {
	var out []profile.Angle
	for _, a := range p.Angles {
		if a.LabelPosition == nil || a.VertexIndex < 0 || a.VertexIndex >= len(p.Points) {
			continue
		}
		if policy.Skips(a.Rounded()) {
			continue
		}
		out = append(out, a)
	}
	return out
}
