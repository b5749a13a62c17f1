package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/metrics"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/core/render"
	"github.com/trimworks/flashing/pkg/core/render/diagram"
	"github.com/trimworks/flashing/pkg/core/scene"
)

func testScene() scene.Scene {
	label := geom.Pt(50, -20)
	p := profile.Path{
		Points: []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}},
		Segments: []profile.Segment{
			{Length: "1.00 m", LabelPosition: &label},
			{Length: "1.00 m", Fold: &profile.FoldSpec{Kind: profile.FoldCrush, Length: 14, TailLength: 20}},
		},
	}
	return diagram.Render(p, diagram.WithBorder(profile.BorderInside))
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1200 1200"`,
		`<filter id="shadow"`,
		`class="grid-minor"`,
		`class="grid-major"`,
		`class="path-line"`,
		`class="border"`,
		`class="chevron"`,
		`class="fold-glyph"`,
		`filter="url(#shadow)"`,
		`>CRUSH 20</text>`,
		"</svg>\n",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("font embedded without WithEmbeddedFont")
	}
}

func TestRenderSVGWellFormed(t *testing.T) {
	s := testScene()
	s.Elements = append(s.Elements, scene.Text(geom.Pt(1, 1), `<a & "b">`, 10, scene.Style{Fill: "#000"}))

	dec := xml.NewDecoder(bytes.NewReader(RenderSVG(s, WithTitle("R&D <1>"))))
	for {
		_, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("SVG is not well-formed XML: %v", err)
		}
	}
}

func TestRenderSVGPath(t *testing.T) {
	ops := scene.NewPath().MoveTo(geom.Pt(0, 0)).CubicTo(geom.Pt(1, 2), geom.Pt(3.456, 4), geom.Pt(-0.001, 6)).Close().Ops()
	s := scene.Scene{Size: 10, Elements: []scene.Element{scene.Path(ops, scene.Style{Stroke: "#111", StrokeWidth: 1})}}

	svg := string(RenderSVG(s))
	if !strings.Contains(svg, `d="M 0 0 C 1 2 3.46 4 0 6 Z"`) {
		t.Errorf("unexpected path data in:\n%s", svg)
	}
	if !strings.Contains(svg, `fill="none"`) {
		t.Error("unfilled path should have fill=none")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	s := scene.Scene{Size: 100, Elements: []scene.Element{scene.Circle(geom.Pt(1.23456, 0), 2, scene.Style{Fill: "red"})}}

	svg := string(RenderSVG(s, WithEmbeddedFont(), WithPrecision(3), WithTitle("Gutter")))
	for _, want := range []string{"@font-face", "base64,", `cx="1.235"`, "<title>Gutter</title>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testScene())
	b := RenderSVG(testScene())
	if !bytes.Equal(a, b) {
		t.Error("same scene produced different SVG")
	}
}

func TestRenderJSON(t *testing.T) {
	s := testScene()
	row := metrics.Row{Index: 0, Folds: 2, Girth: 2, GirthText: "2.00"}

	data, err := RenderJSON(s, WithJSONMetrics(row), WithJSONName("Barge"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Size != s.Size {
		t.Errorf("Size = %v, want %v", out.Size, s.Size)
	}
	if out.Name != "Barge" {
		t.Errorf("Name = %q", out.Name)
	}
	if len(out.Elements) != len(s.Elements) {
		t.Errorf("Elements = %d, want %d", len(out.Elements), len(s.Elements))
	}
	if out.Metrics == nil || out.Metrics.Folds != 2 {
		t.Errorf("Metrics = %+v", out.Metrics)
	}

	again, _ := RenderJSON(s, WithJSONMetrics(row), WithJSONName("Barge"))
	if !bytes.Equal(data, again) {
		t.Error("RenderJSON is not deterministic")
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(scene.Scene{Size: 10}, WithJSONIndent())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"elements": []`) {
		t.Errorf("empty scene should encode elements as []:\n%s", data)
	}
}

func TestRenderPNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	data, err := RenderPNG(context.Background(), testScene(), WithScale(0.5))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	data, err := RenderPDF(context.Background(), testScene())
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestRenderPNGBadScale(t *testing.T) {
	if _, err := RenderPNG(context.Background(), testScene(), WithScale(0)); err == nil {
		t.Error("expected error for zero scale")
	}
}
