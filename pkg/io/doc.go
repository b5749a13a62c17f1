// Package io reads and writes diagram sets in the order-document format.
//
// # Parse at the boundary
//
// Order data is loosely typed: coordinates arrive as numbers or numeric
// strings, lengths as display text ("1.20 m"), angles as "135°". This
// package turns all of it into [profile.DiagramSet] once, so the renderer
// only ever sees numbers:
//
//   - [Number] decodes numbers and numeric strings; anything else is NaN.
//   - [ParseLength] extracts the numeric part of a length label.
//   - Fold values that do not parse fall back to the fold defaults
//     (length 14, angle 0, tail 20).
//   - Segment lists are normalized to one entry per edge.
//
// Every such repair is reported as a [Warning]; only malformed JSON is an
// error. A path with bad points is kept (with NaN coordinates) so the
// renderer can draw its placeholder and the rest of the batch continues.
//
// # Import and export
//
//	set, warnings, err := io.ImportJSON("order.json")
//	...
//	err = io.ExportJSON(set, "normalized.json")
//
// The raw types carry bson tags as well, so [store.MongoStore] decodes
// documents straight into [RawSet] and shares [Convert].
//
// [store.MongoStore]: github.com/trimworks/flashing/pkg/store.MongoStore
package io
