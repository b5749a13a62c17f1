package diagram

import (
	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/core/render/border"
	"github.com/trimworks/flashing/pkg/core/render/callout"
	"github.com/trimworks/flashing/pkg/core/render/fold"
	"github.com/trimworks/flashing/pkg/core/render/layout"
	"github.com/trimworks/flashing/pkg/core/scene"
	"github.com/trimworks/flashing/pkg/fonts"
)

// Element classes.
const (
	ClassGridMinor    = "grid-minor"
	ClassGridMajor    = "grid-major"
	ClassPathLine     = "path-line"
	ClassPathPoint    = "path-point"
	ClassBorder       = "border"
	ClassChevron      = "chevron"
	ClassSegment      = "segment"
	ClassSegmentLabel = "segment-label"
	ClassFoldGlyph    = "fold-glyph"
	ClassFoldLabel    = "fold-label"
	ClassAngleLabel   = "angle-label"
	ClassPlaceholder  = "placeholder"
)

// PlaceholderText is shown on the scene returned for invalid paths.
const PlaceholderText = "INVALID PATH"

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	cfg    config.Config
	bounds layout.BoundsInput
}

// WithConfig sets the drawing preset. The default is [config.Default].
func WithConfig(cfg config.Config) Option { return func(r *renderer) { r.cfg = cfg } }

// WithBorder draws the offset border on the given side.
func WithBorder(dir profile.BorderDirection) Option {
	return func(r *renderer) { r.bounds.ShowBorder = true; r.bounds.BorderDirection = dir }
}

// WithOverrides supplies externally edited fold-label positions keyed by
// [profile.FoldLabelKey].
func WithOverrides(m map[string]geom.Point) Option {
	return func(r *renderer) { r.bounds.Overrides = m }
}

// WithScale sets the real-world scale in model units per millimetre.
func WithScale(s float64) Option { return func(r *renderer) { r.bounds.Scale = s } }

// WithSet applies the per-set flags of set: border, overrides and scale.
func WithSet(set profile.DiagramSet) Option {
	return func(r *renderer) { r.bounds = layout.InputFromSet(set) }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{cfg: config.Default(), bounds: layout.BoundsInput{Scale: 1}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render draws p. The result depends only on p and the options; p is never
// modified. An invalid path yields [Placeholder] instead of an error.
func Render(p profile.Path, opts ...Option) scene.Scene {
	r := newRenderer(opts...)
	if !p.Valid() {
		return Placeholder(r.cfg)
	}
	p, _ = profile.Normalize(p)

	b := layout.ComputeBounds(p, r.bounds, r.cfg)
	vp := layout.NewViewport(b, r.cfg.CanvasSize, r.cfg.ViewportFill)
	d := drawing{cfg: r.cfg, in: r.bounds, vp: vp, path: p}

	var els []scene.Element
	els = append(els, d.grid(b)...)
	els = append(els, d.line()...)
	if r.bounds.ShowBorder && len(p.Points) >= 2 {
		els = append(els, d.border()...)
	}
	for i := range p.Segments {
		if g, ok := d.segment(i); ok {
			els = append(els, g)
		}
	}
	for _, a := range layout.LabeledAngles(p, r.cfg.Policies.AngleSkip) {
		els = append(els, d.angle(a))
	}

	return scene.Scene{Size: r.cfg.CanvasSize, Background: r.cfg.Colors.Background, Elements: els}
}

// Placeholder is the fixed scene drawn for a path that cannot be rendered.
func Placeholder(cfg config.Config) scene.Scene {
	vp := layout.NewViewport(layout.InvalidBounds(cfg), cfg.CanvasSize, cfg.ViewportFill)
	box := geom.Rect{MaxX: cfg.Padding.InvalidSize, MaxY: cfg.Padding.InvalidSize}
	lo, hi := vp.Transform(geom.Pt(box.MinX, box.MinY)), vp.Transform(geom.Pt(box.MaxX, box.MaxY))
	frame := geom.Rect{MinX: lo.X, MinY: lo.Y, MaxX: hi.X, MaxY: hi.Y}
	center := lo.Mid(hi)

	return scene.Scene{
		Size:       cfg.CanvasSize,
		Background: cfg.Colors.Background,
		Elements: []scene.Element{
			scene.Group(ClassPlaceholder,
				scene.Rect(frame, 0, scene.Style{Stroke: cfg.Colors.LabelStroke, StrokeWidth: vp.Len(cfg.Stroke.Border)}),
				scene.Text(center, PlaceholderText, vp.Len(cfg.Label.FontSize), scene.Style{Fill: cfg.Colors.LabelText}),
			),
		},
	}
}

// drawing holds the per-call state of one render.
type drawing struct {
	cfg  config.Config
	in   layout.BoundsInput
	vp   layout.Viewport
	path profile.Path
}

func (d drawing) t(p geom.Point) geom.Point { return d.vp.Transform(p) }

func (d drawing) grid(b geom.Rect) []scene.Element {
	minor, major := layout.Grid(b, d.cfg.GridSize, d.cfg.MaxGridLines)
	els := make([]scene.Element, 0, len(minor)+len(major))
	minorStyle := scene.Style{Stroke: d.cfg.Colors.GridMinor, StrokeWidth: d.vp.Len(d.cfg.Stroke.GridMinor)}
	majorStyle := scene.Style{Stroke: d.cfg.Colors.GridMajor, StrokeWidth: d.vp.Len(d.cfg.Stroke.GridMajor)}
	for _, l := range minor {
		els = append(els, scene.Line(d.t(l.A), d.t(l.B), minorStyle).WithClass(ClassGridMinor))
	}
	for _, l := range major {
		els = append(els, scene.Line(d.t(l.A), d.t(l.B), majorStyle).WithClass(ClassGridMajor))
	}
	return els
}

func (d drawing) line() []scene.Element {
	pts := scene.MapPoints(d.path.Points, d.t)
	var els []scene.Element
	if len(pts) >= 2 {
		line := scene.Style{Stroke: d.cfg.Colors.Path, StrokeWidth: d.vp.Len(d.cfg.Stroke.Path)}
		els = append(els, scene.Polyline(pts, line).WithClass(ClassPathLine))
	}
	marker := scene.Style{Fill: d.cfg.Colors.Point}
	r := d.vp.Len(d.cfg.Stroke.PointRadius)
	for _, p := range pts {
		els = append(els, scene.Circle(p, r, marker).WithClass(ClassPathPoint))
	}
	return els
}

func (d drawing) border() []scene.Element {
	style := scene.Style{Stroke: d.cfg.Colors.Border, StrokeWidth: d.vp.Len(d.cfg.Stroke.Border)}
	var els []scene.Element
	for _, s := range border.Offset(d.path.Points, d.in.BorderDirection, d.cfg.Border.Offset) {
		els = append(els, scene.Line(d.t(s.A), d.t(s.B), style).WithClass(ClassBorder))
	}
	if tri, ok := border.Chevron(d.path.Points, d.in.BorderDirection, d.cfg.Border.ChevronSize); ok {
		els = append(els, scene.Polygon(scene.MapPoints(tri, d.t), scene.Style{Fill: d.cfg.Colors.Border}).WithClass(ClassChevron))
	}
	return els
}

func (d drawing) sizing() callout.Sizing {
	s := callout.SizingFrom(d.cfg.Label).Scaled(d.vp.Scale)
	if d.cfg.Policies.FontMetrics {
		s.Measure = fonts.Measure
	}
	return s
}

func (d drawing) paint() callout.Paint {
	return callout.Paint{
		Fill:        d.cfg.Colors.LabelFill,
		Stroke:      d.cfg.Colors.LabelStroke,
		TextColor:   d.cfg.Colors.LabelText,
		StrokeWidth: d.vp.Len(d.cfg.Stroke.Label),
		Filter:      scene.FilterShadow,
	}
}

// label places a callout in model space and returns its elements as a group.
func (d drawing) label(class string, anchor, target geom.Point, text string) scene.Element {
	c := callout.Place(d.t(anchor), d.t(target), text, d.sizing())
	return scene.Group(class, c.Elements(d.paint())...)
}

// segment returns the group for segment i: its length label, then its fold
// glyph and fold label. ok is false when the segment draws nothing.
func (d drawing) segment(i int) (scene.Element, bool) {
	s := d.path.Segments[i]
	var children []scene.Element

	if s.LabelPosition != nil && s.Length != "" {
		a, b := d.path.SegmentEnds(i)
		children = append(children, d.label(ClassSegmentLabel, *s.LabelPosition, a.Mid(b), s.Length))
	}

	if g, ok := fold.Geometry(d.path, i, d.cfg.Fold); ok {
		style := scene.Style{Stroke: d.cfg.Colors.Fold, StrokeWidth: d.vp.Len(d.cfg.Stroke.Fold)}
		children = append(children, scene.Path(scene.MapOps(g.Ops, d.t), style).WithClass(ClassFoldGlyph))
		anchor := layout.FoldLabelAnchor(d.path, g, d.in, d.cfg)
		children = append(children, d.label(ClassFoldLabel, anchor, g.Base, fold.LabelText(g)))
	}

	if len(children) == 0 {
		return scene.Element{}, false
	}
	return scene.Group(ClassSegment, children...), true
}

func (d drawing) angle(a profile.Angle) scene.Element {
	return d.label(ClassAngleLabel, *a.LabelPosition, d.path.Points[a.VertexIndex], a.Text())
}
