// Package scene defines the flat vector scene graph produced by the diagram
// renderer.
//
// # Overview
//
// A [Scene] is a square canvas and an ordered list of [Element] values.
// Elements are plain data: circles, lines, polylines, polygons, paths made of
// line and cubic Bézier commands, rounded rectangles, text and groups. Every
// coordinate is an absolute canvas coordinate and every element carries its
// own [Style]; there is no inherited state and no behavior.
//
// Output formats live in [github.com/trimworks/flashing/pkg/core/render/sink],
// which folds over the element list to write SVG or JSON.
//
// # Classes
//
// Elements and groups carry a class naming their role in the diagram
// ("path-line", "segment-label", "fold-glyph", ...). Sinks emit the class as
// an attribute, and [Scene.Find] / [Scene.Count] use it to query a scene.
package scene
