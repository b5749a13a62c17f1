// Package sink serializes a [scene.Scene] into output formats.
//
// # Formats
//
//   - [RenderSVG]: a standalone SVG document. Callout shapes reference the
//     shared drop-shadow filter defined once in <defs>.
//   - [RenderJSON]: the scene graph itself, optionally with the diagram's
//     property row attached.
//   - [RenderPNG] and [RenderPDF]: SVG piped through rsvg-convert.
//
// Sinks never change geometry; two calls with the same scene and options
// produce identical bytes.
//
// # Example
//
//	s := diagram.Render(path, diagram.WithSet(set))
//	svg := sink.RenderSVG(s, sink.WithTitle(path.Name))
//	png, err := sink.RenderPNG(ctx, s, sink.WithScale(3))
package sink
