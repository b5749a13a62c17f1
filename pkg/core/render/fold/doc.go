// Package fold computes the glyphs drawn for end folds of a flashing profile.
//
// # Variants
//
// [Geometry] switches over [profile.FoldKind]:
//
//   - None: nothing is drawn.
//   - Open: a straight line of the fold length.
//   - Break: a two-segment zig-zag whose knee sits half way out, offset
//     sideways by BreakOffset fold lengths.
//   - CrushHook: a straight line ending in a semicircular hook built from two
//     cubic quarter arcs.
//   - Crush: a cubic curl CrushWidth fold lengths wide and CrushHeight fold
//     lengths high, followed by a straight tail running back along the
//     segment.
//
// Every variant except Crush turns the outward direction by the fold angle
// before drawing; a flipped fold turns by 360 minus the angle and mirrors its
// sideways offset. Crush instead turns the segment normal by the fold angle
// and curls toward it, mirrored when flipped.
//
// Only the first and the last segment of a path carry a glyph; interior
// segments are skipped whatever their fold data says.
//
// # Labels
//
// [LabelAnchor] places the fold callout along the glyph's outward direction,
// either at a fixed real-world distance or proportionally to the fold length
// depending on [config.FoldLabelPolicy]. [LabelText] yields "OPEN", "BREAK",
// "CRUSH HOOK" or "CRUSH {tail}".
package fold
