package scene

import "github.com/trimworks/flashing/pkg/core/geom"

// Kind identifies the primitive an [Element] describes.
type Kind string

const (
	KindCircle   Kind = "circle"
	KindLine     Kind = "line"
	KindPolyline Kind = "polyline"
	KindPolygon  Kind = "polygon"
	KindPath     Kind = "path"
	KindRect     Kind = "rect"
	KindText     Kind = "text"
	KindGroup    Kind = "group"
)

// FilterShadow is the drop-shadow filter every sink defines.
const FilterShadow = "shadow"

// Style carries the paint attributes of an element. Empty colors mean "none".
type Style struct {
	Stroke      string  `json:"stroke,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Filter      string  `json:"filter,omitempty"` // named filter, e.g. "shadow"
}

// WithFilter returns a copy of s with the given filter tag.
func (s Style) WithFilter(name string) Style {
	s.Filter = name
	return s
}

// Element is one node of the scene. Which geometry fields are meaningful
// depends on Kind:
//
//	circle            Center, Radius
//	line              Points[0], Points[1]
//	polyline/polygon  Points
//	path              Ops
//	rect              Rect, Radius (corner radius)
//	text              Center (anchor point), Text, FontSize
//	group             Children
type Element struct {
	Kind     Kind         `json:"kind"`
	Class    string       `json:"class,omitempty"`
	Style    Style        `json:"style,omitempty"`
	Points   []geom.Point `json:"points,omitempty"`
	Center   geom.Point   `json:"center,omitempty"`
	Radius   float64      `json:"radius,omitempty"`
	Rect     geom.Rect    `json:"rect,omitempty"`
	Ops      []PathOp     `json:"ops,omitempty"`
	Text     string       `json:"text,omitempty"`
	FontSize float64      `json:"font_size,omitempty"`
	Children []Element    `json:"children,omitempty"`
}

// Scene is a complete diagram: a square canvas of side Size and the ordered
// draw list. Elements later in the list paint over earlier ones.
type Scene struct {
	Size       float64   `json:"size"`
	Background string    `json:"background,omitempty"`
	Elements   []Element `json:"elements"`
}

func Circle(c geom.Point, r float64, s Style) Element {
	return Element{Kind: KindCircle, Center: c, Radius: r, Style: s}
}

func Line(a, b geom.Point, s Style) Element {
	return Element{Kind: KindLine, Points: []geom.Point{a, b}, Style: s}
}

func Polyline(pts []geom.Point, s Style) Element {
	return Element{Kind: KindPolyline, Points: clonePoints(pts), Style: s}
}

func Polygon(pts []geom.Point, s Style) Element {
	return Element{Kind: KindPolygon, Points: clonePoints(pts), Style: s}
}

func Path(ops []PathOp, s Style) Element {
	return Element{Kind: KindPath, Ops: ops, Style: s}
}

// Rect returns a rectangle with corner radius rx.
func Rect(r geom.Rect, rx float64, s Style) Element {
	return Element{Kind: KindRect, Rect: r, Radius: rx, Style: s}
}

// Text returns a label centered on at.
func Text(at geom.Point, text string, size float64, s Style) Element {
	return Element{Kind: KindText, Center: at, Text: text, FontSize: size, Style: s}
}

// Group returns a group node with the given class.
func Group(class string, children ...Element) Element {
	return Element{Kind: KindGroup, Class: class, Children: children}
}

// WithClass returns a copy of e tagged with class.
func (e Element) WithClass(class string) Element {
	e.Class = class
	return e
}

// Bounds returns the axis-aligned box covering the element's geometry. Text
// is approximated by its anchor point; strokes are not included.
func (e Element) Bounds() geom.Rect {
	b := geom.EmptyRect()
	switch e.Kind {
	case KindCircle:
		b = b.Union(geom.RectAround(e.Center, e.Radius, e.Radius, e.Radius, e.Radius))
	case KindLine, KindPolyline, KindPolygon:
		b = b.Extend(e.Points...)
	case KindPath:
		for _, op := range e.Ops {
			b = b.Extend(op.Points...)
		}
	case KindRect:
		b = b.Union(e.Rect)
	case KindText:
		b = b.Extend(e.Center)
	case KindGroup:
		for _, c := range e.Children {
			b = b.Union(c.Bounds())
		}
	}
	return b
}

// Walk calls fn for every element in draw order, descending into groups
// (parents before children). Returning false from fn skips the children.
func (s Scene) Walk(fn func(Element) bool) {
	walk(s.Elements, fn)
}

func walk(els []Element, fn func(Element) bool) {
	for _, e := range els {
		if fn(e) && e.Kind == KindGroup {
			walk(e.Children, fn)
		}
	}
}

// Find returns every element or group with the given class, in draw order.
func (s Scene) Find(class string) []Element {
	var out []Element
	s.Walk(func(e Element) bool {
		if e.Class == class {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Count returns len(s.Find(class)).
func (s Scene) Count(class string) int {
	n := 0
	s.Walk(func(e Element) bool {
		if e.Class == class {
			n++
		}
		return true
	})
	return n
}

func clonePoints(pts []geom.Point) []geom.Point {
	return append([]geom.Point(nil), pts...)
}
