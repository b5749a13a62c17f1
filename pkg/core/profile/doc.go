// Package profile defines the flashing path model consumed by the renderer.
//
// # Overview
//
// A flashing profile is the cross-section of a folded sheet-metal trim. It is
// described by an ordered list of points ([Path.Points]); segment i is the
// straight edge between Points[i] and Points[i+1] and carries display and fold
// metadata ([Segment]). Joint angles that need a callout are listed separately
// ([Angle]).
//
// All numeric fields are already parsed: decorated input such as "1.20 m" or
// "135°" is converted once at ingestion (see [github.com/trimworks/flashing/pkg/io])
// and the render packages only ever see numbers.
//
// # Folds
//
// [FoldKind] is a closed enum (None, Open, Break, Crush, CrushHook). Folds are
// data on every segment but are only drawn on the first and the last segment
// of a path; [Path.IsEndSegment] is the single place that rule lives.
//
// # Diagram sets
//
// A [DiagramSet] groups the paths of one order together with the per-set
// render flags: real-world scale, border visibility and direction, and the
// externally edited fold-label positions keyed by [FoldLabelKey].
package profile
