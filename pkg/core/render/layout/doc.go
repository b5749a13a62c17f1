// Package layout computes the view window of a flashing diagram and maps it
// onto the canvas.
//
// # Bounds
//
// [ComputeBounds] starts from the path points and grows the box for
// everything that will be drawn around them: a fixed margin around each
// callout anchor (segment labels, fold labels and their overrides, angle
// labels not skipped by the policy), every fold glyph point, and the offset
// border with its chevron. The result is padded by a flat amount, or by a
// share of the larger side for very large diagrams. Invalid paths get a fixed
// placeholder box.
//
// # Viewport
//
// [NewViewport] scales the window uniformly into a square canvas and centers
// it. [Viewport.Transform] maps points and [Viewport.Len] maps lengths, so
// stroke widths and label sizes given in model units keep their proportions
// at every diagram size.
//
// # Grid
//
// [Grid] generates the two-tier background grid. Its size is bounded by the
// window, never by iteration count: the cell doubles until each tier fits the
// configured line budget.
package layout
