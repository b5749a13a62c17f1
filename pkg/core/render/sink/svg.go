package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/scene"
	"github.com/trimworks/flashing/pkg/fonts"
)

const shadowFilter = `    <filter id="` + scene.FilterShadow + `" x="-20%" y="-20%" width="140%" height="140%">
      <feDropShadow dx="1" dy="1.5" stdDeviation="1.5" flood-color="#000000" flood-opacity="0.25"/>
    </filter>
`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title     string
	embedFont bool
	precision int
}

// WithTitle adds a <title> element, shown as a tooltip by most viewers.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithEmbeddedFont inlines the label font as a base64 @font-face rule so the
// file renders identically without the font installed.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithPrecision sets the number of decimals written for coordinates (default 2).
func WithPrecision(n int) SVGOption {
	return func(r *svgRenderer) { r.precision = max(0, n) }
}

// RenderSVG writes s as a standalone SVG document. Elements are emitted in
// draw order, each tagged with its class.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{precision: 2}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	size := r.num(s.Size)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		size, size, size, size)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(r.title))
	}
	r.defs(&buf)
	if s.Background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" width="%s" height="%s" fill="%s"/>`+"\n", size, size, EscapeXML(s.Background))
	}
	for _, e := range s.Elements {
		r.element(&buf, e, 1)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) defs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(shadowFilter)
	buf.WriteString("    <style>\n")
	if r.embedFont {
		fmt.Fprintf(buf, "      @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.GoRegularTTFBase64())
	}
	fmt.Fprintf(buf, "      text { font-family: %s; }\n", fonts.FallbackFontFamily)
	buf.WriteString("    </style>\n")
	buf.WriteString("  </defs>\n")
}

func (r svgRenderer) element(buf *bytes.Buffer, e scene.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	attrs := r.common(e)

	switch e.Kind {
	case scene.KindCircle:
		fmt.Fprintf(buf, `%s<circle cx="%s" cy="%s" r="%s"%s/>`+"\n", indent, r.num(e.Center.X), r.num(e.Center.Y), r.num(e.Radius), attrs)
	case scene.KindLine:
		if len(e.Points) < 2 {
			return
		}
		a, b := e.Points[0], e.Points[1]
		fmt.Fprintf(buf, `%s<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n", indent, r.num(a.X), r.num(a.Y), r.num(b.X), r.num(b.Y), attrs)
	case scene.KindPolyline:
		fmt.Fprintf(buf, `%s<polyline points="%s"%s/>`+"\n", indent, r.points(e.Points), attrs)
	case scene.KindPolygon:
		fmt.Fprintf(buf, `%s<polygon points="%s"%s/>`+"\n", indent, r.points(e.Points), attrs)
	case scene.KindPath:
		fmt.Fprintf(buf, `%s<path d="%s"%s/>`+"\n", indent, r.pathData(e.Ops), attrs)
	case scene.KindRect:
		rx := ""
		if e.Radius > 0 {
			rx = fmt.Sprintf(` rx="%s"`, r.num(e.Radius))
		}
		fmt.Fprintf(buf, `%s<rect x="%s" y="%s" width="%s" height="%s"%s%s/>`+"\n", indent,
			r.num(e.Rect.MinX), r.num(e.Rect.MinY), r.num(e.Rect.Width()), r.num(e.Rect.Height()), rx, attrs)
	case scene.KindText:
		fmt.Fprintf(buf, `%s<text x="%s" y="%s" font-size="%s" text-anchor="middle" dominant-baseline="central"%s>%s</text>`+"\n",
			indent, r.num(e.Center.X), r.num(e.Center.Y), r.num(e.FontSize), attrs, EscapeXML(e.Text))
	case scene.KindGroup:
		fmt.Fprintf(buf, "%s<g%s>\n", indent, attrs)
		for _, c := range e.Children {
			r.element(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</g>\n", indent)
	}
}

// common renders the class and paint attributes shared by every element.
func (r svgRenderer) common(e scene.Element) string {
	var b strings.Builder
	if e.Class != "" {
		fmt.Fprintf(&b, ` class="%s"`, EscapeXML(e.Class))
	}
	if e.Kind == scene.KindGroup {
		return b.String()
	}

	st := e.Style
	fmt.Fprintf(&b, ` fill="%s"`, paint(st.Fill))
	if e.Kind != scene.KindText || st.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, paint(st.Stroke))
	}
	if st.Stroke != "" && st.StrokeWidth > 0 {
		fmt.Fprintf(&b, ` stroke-width="%s"`, r.num(st.StrokeWidth))
	}
	if e.Kind == scene.KindPolyline || e.Kind == scene.KindPath {
		b.WriteString(` stroke-linejoin="round" stroke-linecap="round"`)
	}
	if st.Filter != "" {
		fmt.Fprintf(&b, ` filter="url(#%s)"`, EscapeXML(st.Filter))
	}
	return b.String()
}

func paint(c string) string {
	if c == "" {
		return "none"
	}
	return EscapeXML(c)
}

func (r svgRenderer) points(pts []geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = r.num(p.X) + "," + r.num(p.Y)
	}
	return strings.Join(parts, " ")
}

func (r svgRenderer) pathData(ops []scene.PathOp) string {
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		seg := string(op.Op)
		for _, p := range op.Points {
			seg += " " + r.num(p.X) + " " + r.num(p.Y)
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, " ")
}

// num formats v with at most r.precision decimals and no trailing zeros.
func (r svgRenderer) num(v float64) string {
	k := math.Pow(10, float64(r.precision))
	v = math.Round(v*k) / k
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
