// Package diagram turns one flashing profile into a [scene.Scene].
//
// # Pipeline
//
// [Render] runs the whole layout for a single path:
//
//  1. Normalize the segment list to one entry per edge.
//  2. Compute the model-space bounds (points, label margins, fold glyphs,
//     the optional border) and fit them into the square canvas.
//  3. Emit elements in a fixed order: grid (minor then major), the profile
//     line and its points, the offset border and chevron, one group per
//     segment (length label, fold glyph, fold label), then angle labels.
//
// Every element carries a class (see the Class constants) so sinks and tests
// can address tiers without knowing their geometry.
//
// # Invalid paths
//
// A path with no points or with a non-finite coordinate renders as
// [Placeholder]: a framed "INVALID PATH" notice on the normal canvas. Render
// never fails.
//
// # Options
//
// Per-set flags arrive through [WithSet], or individually through
// [WithBorder], [WithOverrides] and [WithScale]. [WithConfig] swaps the
// drawing preset.
package diagram
