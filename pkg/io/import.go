package io

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/errors"
)

// RawSet is the stored form of a diagram set. Field names follow the order
// documents; the same struct decodes from JSON files and from MongoDB.
type RawSet struct {
	ID              string              `json:"id,omitempty" bson:"orderId,omitempty"`
	Scale           Number              `json:"scale,omitempty" bson:"scale,omitempty"`
	ShowBorder      bool                `json:"showBorder,omitempty" bson:"showBorder,omitempty"`
	BorderDirection string              `json:"borderOffsetDirection,omitempty" bson:"borderOffsetDirection,omitempty"`
	Overrides       map[string]RawPoint `json:"labelPositionOverrides,omitempty" bson:"labelPositionOverrides,omitempty"`
	Paths           []RawPath           `json:"paths" bson:"paths"`
}

type RawPoint struct {
	X Number `json:"x" bson:"x"`
	Y Number `json:"y" bson:"y"`
}

type RawPath struct {
	PathIndex  *int                `json:"pathIndex,omitempty" bson:"pathIndex,omitempty"`
	Name       string              `json:"name,omitempty" bson:"name,omitempty"`
	Color      string              `json:"color,omitempty" bson:"color,omitempty"`
	Code       string              `json:"code,omitempty" bson:"code,omitempty"`
	Points     []RawPoint          `json:"points" bson:"points"`
	Segments   []RawSegment        `json:"segments" bson:"segments"`
	Angles     []RawAngle          `json:"angles,omitempty" bson:"angles,omitempty"`
	Quantities []RawQuantityLength `json:"quantities,omitempty" bson:"quantities,omitempty"`
}

type RawSegment struct {
	Length        Text      `json:"length" bson:"length"`
	LabelPosition *RawPoint `json:"labelPosition,omitempty" bson:"labelPosition,omitempty"`
	Fold          *RawFold  `json:"fold,omitempty" bson:"fold,omitempty"`
}

type RawFold struct {
	Type       string  `json:"type" bson:"type"`
	Length     *Number `json:"length,omitempty" bson:"length,omitempty"`
	Angle      *Number `json:"angle,omitempty" bson:"angle,omitempty"`
	TailLength *Number `json:"tailLength,omitempty" bson:"tailLength,omitempty"`
	Flipped    bool    `json:"flipped,omitempty" bson:"flipped,omitempty"`
}

type RawAngle struct {
	Angle         Degrees   `json:"angle" bson:"angle"`
	VertexIndex   int       `json:"vertexIndex" bson:"vertexIndex"`
	LabelPosition *RawPoint `json:"labelPosition,omitempty" bson:"labelPosition,omitempty"`
}

type RawQuantityLength struct {
	Quantity int    `json:"quantity" bson:"quantity"`
	Length   Number `json:"length" bson:"length"`
}

// Warning records a recoverable problem found while converting raw data.
// Path and Segment are -1 when they do not apply.
type Warning struct {
	Path    int
	Segment int
	Message string
}

func (w Warning) String() string {
	switch {
	case w.Path < 0:
		return w.Message
	case w.Segment < 0:
		return fmt.Sprintf("path %d: %s", w.Path, w.Message)
	default:
		return fmt.Sprintf("path %d segment %d: %s", w.Path, w.Segment, w.Message)
	}
}

// Option configures conversion.
type Option func(*converter)

// WithFoldDefaults sets the fallbacks applied to unparseable fold values.
func WithFoldDefaults(d profile.FoldDefaults) Option {
	return func(c *converter) { c.defaults = d }
}

type converter struct {
	defaults profile.FoldDefaults
	warnings []Warning
}

func (c *converter) warn(path, seg int, format string, args ...any) {
	c.warnings = append(c.warnings, Warning{Path: path, Segment: seg, Message: fmt.Sprintf(format, args...)})
}

// Convert turns a raw set into the typed model. It never fails: malformed
// values are replaced by defaults or dropped, and each such decision is
// reported as a Warning. Invalid points are kept as NaN so the renderer can
// substitute its placeholder.
func Convert(raw RawSet, opts ...Option) (profile.DiagramSet, []Warning) {
	c := converter{defaults: profile.DefaultFoldDefaults()}
	for _, opt := range opts {
		opt(&c)
	}

	set := profile.DiagramSet{
		ID:         raw.ID,
		ShowBorder: raw.ShowBorder,
		Paths:      make([]profile.Path, len(raw.Paths)),
	}
	if raw.Scale.Valid() && raw.Scale > 0 {
		set.Scale = raw.Scale.Float()
	}
	if raw.BorderDirection != "" {
		dir, err := profile.ParseBorderDirection(raw.BorderDirection)
		if err != nil {
			c.warn(-1, -1, "%v; using %s", err, dir)
		}
		set.BorderDirection = dir
	}
	if len(raw.Overrides) > 0 {
		set.LabelOverrides = make(map[string]geom.Point, len(raw.Overrides))
		for k, rp := range raw.Overrides {
			if p, ok := rp.point(); ok {
				set.LabelOverrides[k] = p
			} else {
				c.warn(-1, -1, "label override %q is not numeric; ignored", k)
			}
		}
	}
	for i, rp := range raw.Paths {
		set.Paths[i] = c.path(i, rp)
	}
	return set, c.warnings
}

func (rp RawPoint) point() (geom.Point, bool) {
	return geom.Pt(rp.X.Float(), rp.Y.Float()), rp.X.Valid() && rp.Y.Valid()
}

// labelPosition converts an optional anchor; unusable anchors become nil.
func (c *converter) labelPosition(rp *RawPoint, path, seg int, what string) *geom.Point {
	if rp == nil {
		return nil
	}
	p, ok := rp.point()
	if !ok {
		c.warn(path, seg, "%s label position is not numeric; label omitted", what)
		return nil
	}
	return &p
}

func (c *converter) path(i int, rp RawPath) profile.Path {
	p := profile.Path{
		PathIndex: i,
		Name:      rp.Name,
		Color:     rp.Color,
		Code:      rp.Code,
		Points:    make([]geom.Point, len(rp.Points)),
		Segments:  make([]profile.Segment, len(rp.Segments)),
	}
	if rp.PathIndex != nil {
		p.PathIndex = *rp.PathIndex
	}

	bad := 0
	for j, pt := range rp.Points {
		p.Points[j] = geom.Pt(pt.X.Float(), pt.Y.Float())
		if !p.Points[j].IsFinite() {
			p.Points[j] = geom.Pt(math.NaN(), math.NaN())
			bad++
		}
	}
	switch {
	case len(rp.Points) == 0:
		c.warn(i, -1, "no points; rendering placeholder")
	case bad > 0:
		c.warn(i, -1, "%d non-numeric point(s); rendering placeholder", bad)
	}

	for j, rs := range rp.Segments {
		p.Segments[j] = c.segment(i, j, rs)
	}

	for _, ra := range rp.Angles {
		if !Number(ra.Angle).Valid() {
			c.warn(i, -1, "angle at vertex %d is not numeric; dropped", ra.VertexIndex)
			continue
		}
		p.Angles = append(p.Angles, profile.Angle{
			Degrees:       float64(ra.Angle),
			VertexIndex:   ra.VertexIndex,
			LabelPosition: c.labelPosition(ra.LabelPosition, i, -1, "angle"),
		})
	}

	for _, q := range rp.Quantities {
		if !q.Length.Valid() || q.Quantity <= 0 {
			c.warn(i, -1, "quantity %d x %v ignored", q.Quantity, q.Length.Float())
			continue
		}
		p.Quantities = append(p.Quantities, profile.QuantityLength{Quantity: q.Quantity, Length: q.Length.Float()})
	}

	if n, changed := profile.Normalize(p); changed {
		c.warn(i, -1, "%d segment(s) for %d point(s); normalized", len(p.Segments), len(p.Points))
		p = n
	}
	return p
}

func (c *converter) segment(path, seg int, rs RawSegment) profile.Segment {
	s := profile.Segment{
		Length:        string(rs.Length),
		LengthValue:   ParseLength(string(rs.Length)),
		LabelPosition: c.labelPosition(rs.LabelPosition, path, seg, "segment"),
	}
	if s.Length != "" && math.IsNaN(s.LengthValue) {
		c.warn(path, seg, "length %q is not numeric; excluded from girth", s.Length)
	}
	if rs.Fold == nil {
		return s
	}

	kind, err := profile.ParseFoldKind(rs.Fold.Type)
	if err != nil {
		c.warn(path, seg, "%v; fold ignored", err)
		return s
	}
	if kind == profile.FoldNone {
		return s
	}

	value := func(n *Number, def float64, name string) float64 {
		if n == nil {
			return def
		}
		if !n.Valid() {
			c.warn(path, seg, "fold %s is not numeric; using %v", name, def)
			return def
		}
		return n.Float()
	}
	s.Fold = &profile.FoldSpec{
		Kind:       kind,
		Length:     value(rs.Fold.Length, c.defaults.Length, "length"),
		Angle:      value(rs.Fold.Angle, c.defaults.Angle, "angle"),
		TailLength: value(rs.Fold.TailLength, c.defaults.TailLength, "tail length"),
		Flipped:    rs.Fold.Flipped,
	}
	return s
}

// ReadJSON decodes a diagram set from r.
//
// The input is a JSON object with a "paths" array:
//
//	{
//	  "scale": 2.5,
//	  "showBorder": true,
//	  "borderOffsetDirection": "inside",
//	  "paths": [{
//	    "points": [{"x": 0, "y": 0}, {"x": "100", "y": 0}],
//	    "segments": [{"length": "1.00 m", "fold": {"type": "Crush", "tailLength": 20}}],
//	    "angles": [{"angle": "135°", "vertexIndex": 1, "labelPosition": {"x": 90, "y": 10}}]
//	  }]
//	}
//
// Only syntax errors fail; data problems are returned as warnings. ReadJSON
// does not close r.
func ReadJSON(r io.Reader, opts ...Option) (profile.DiagramSet, []Warning, error) {
	var raw RawSet
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return profile.DiagramSet{}, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode diagram set")
	}
	set, warnings := Convert(raw, opts...)
	return set, warnings, nil
}

// ImportJSON reads a diagram set from the JSON file at path.
func ImportJSON(path string, opts ...Option) (profile.DiagramSet, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return profile.DiagramSet{}, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return profile.DiagramSet{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts...)
}
