package pipeline

import (
	"context"
	"fmt"

	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/metrics"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/core/render/diagram"
	"github.com/trimworks/flashing/pkg/core/render/sink"
	"github.com/trimworks/flashing/pkg/core/scene"
)

// Scene draws path index of set with the set's flags applied.
func Scene(set profile.DiagramSet, index int, cfg config.Config) scene.Scene {
	return diagram.Render(set.Paths[index], diagram.WithSet(set), diagram.WithConfig(cfg))
}

// Encode writes s in the given format. row is attached to JSON output; name
// becomes the SVG title and the JSON name.
func Encode(ctx context.Context, s scene.Scene, format string, row metrics.Row, name string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(name, opts)

	switch format {
	case FormatSVG:
		return sink.RenderSVG(s, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, s, sink.WithScale(opts.PNGScale), sink.WithPNGSVGOptions(svgOpts...))
	case FormatPDF:
		return sink.RenderPDF(ctx, s, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONMetrics(row), sink.WithJSONName(name)}
		if opts.Indent {
			jsonOpts = append(jsonOpts, sink.WithJSONIndent())
		}
		return sink.RenderJSON(s, jsonOpts...)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// buildSVGOptions constructs SVG render options. Raster and PDF sinks embed
// the font themselves.
func buildSVGOptions(name string, opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if name != "" {
		out = append(out, sink.WithTitle(name))
	}
	if opts.EmbedFont {
		out = append(out, sink.WithEmbeddedFont())
	}
	return out
}
