// Package callout places text labels with a directional pointer.
//
// A callout is a rounded box centered on an anchor plus a small triangular
// tail on the box edge facing a target point. The same primitive serves
// segment lengths, joint angles and fold names; only the text and the sizing
// differ.
//
// All inputs are canvas coordinates: the caller transforms the anchor and the
// target and scales [Sizing] with the viewport before calling [Place].
package callout

import (
	"math"
	"unicode/utf8"

	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/scene"
)

// Edge is the side of the box the tail is attached to.
type Edge uint8

const (
	EdgeBottom Edge = iota
	EdgeTop
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "bottom"
	}
}

// Measurer returns the rendered width of text at the given font size.
type Measurer func(text string, fontSize float64) float64

// Sizing holds the box and tail dimensions.
type Sizing struct {
	MinWidth      float64
	Height        float64
	Padding       float64 // horizontal, added to the text width
	CharWidth     float64 // per-rune width used when Measure is nil
	FontSize      float64
	CornerRadius  float64
	TailLength    float64
	TailHalfWidth float64
	Measure       Measurer
}

// SizingFrom builds model-unit sizing from the label config.
func SizingFrom(c config.LabelConfig) Sizing {
	return Sizing{
		MinWidth:      c.MinWidth,
		Height:        c.Height,
		Padding:       c.Padding,
		CharWidth:     c.CharWidth,
		FontSize:      c.FontSize,
		CornerRadius:  c.CornerRadius,
		TailLength:    c.ArrowSize,
		TailHalfWidth: c.TailHalfWidth,
	}
}

// Scaled returns s with every length multiplied by k.
func (s Sizing) Scaled(k float64) Sizing {
	s.MinWidth *= k
	s.Height *= k
	s.Padding *= k
	s.CharWidth *= k
	s.FontSize *= k
	s.CornerRadius *= k
	s.TailLength *= k
	s.TailHalfWidth *= k
	return s
}

// TextWidth estimates the width of text.
func (s Sizing) TextWidth(text string) float64 {
	if s.Measure != nil {
		return s.Measure(text, s.FontSize)
	}
	return float64(utf8.RuneCountInString(text)) * s.CharWidth
}

// Callout is a placed label.
type Callout struct {
	Text     string       `json:"text"`
	Anchor   geom.Point   `json:"anchor"`
	Target   geom.Point   `json:"target"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Box      geom.Rect    `json:"box"`
	Edge     Edge         `json:"edge"`
	Tail     []geom.Point `json:"tail"` // base, base, tip
	FontSize float64      `json:"font_size"`
	Radius   float64      `json:"radius"`
}

// Place sizes a box for text centered on anchor and attaches the tail to the
// edge facing target: left or right when the horizontal distance dominates,
// top or bottom otherwise.
func Place(anchor, target geom.Point, text string, s Sizing) Callout {
	w := math.Max(s.MinWidth, s.TextWidth(text)+s.Padding)
	h := s.Height
	box := geom.RectAround(anchor, w/2, h/2, w/2, h/2)

	dx, dy := target.X-anchor.X, target.Y-anchor.Y
	var (
		edge        Edge
		attach, out geom.Point
	)
	switch {
	case math.Abs(dx) > math.Abs(dy) && dx > 0:
		edge, attach, out = EdgeRight, geom.Pt(box.MaxX, anchor.Y), geom.Pt(1, 0)
	case math.Abs(dx) > math.Abs(dy):
		edge, attach, out = EdgeLeft, geom.Pt(box.MinX, anchor.Y), geom.Pt(-1, 0)
	case dy < 0:
		edge, attach, out = EdgeTop, geom.Pt(anchor.X, box.MinY), geom.Pt(0, -1)
	default:
		edge, attach, out = EdgeBottom, geom.Pt(anchor.X, box.MaxY), geom.Pt(0, 1)
	}

	across := out.Rot90()
	tail := []geom.Point{
		attach.Along(across, s.TailHalfWidth),
		attach.Along(across, -s.TailHalfWidth),
		attach.Along(out, s.TailLength),
	}

	return Callout{
		Text:     text,
		Anchor:   anchor,
		Target:   target,
		Width:    w,
		Height:   h,
		Box:      box,
		Edge:     edge,
		Tail:     tail,
		FontSize: s.FontSize,
		Radius:   s.CornerRadius,
	}
}

// Bounds returns the box extended by the tail.
func (c Callout) Bounds() geom.Rect {
	return c.Box.Extend(c.Tail...)
}

// Paint styles a callout.
type Paint struct {
	Fill        string
	Stroke      string
	TextColor   string
	StrokeWidth float64
	Filter      string
}

// Elements returns the box, the tail and the text, in draw order.
func (c Callout) Elements(p Paint) []scene.Element {
	shape := scene.Style{Fill: p.Fill, Stroke: p.Stroke, StrokeWidth: p.StrokeWidth, Filter: p.Filter}
	return []scene.Element{
		scene.Rect(c.Box, c.Radius, shape),
		scene.Polygon(c.Tail, shape),
		scene.Text(c.Anchor, c.Text, c.FontSize, scene.Style{Fill: p.TextColor}),
	}
}
