package layout

import (
	"math"

	"github.com/trimworks/flashing/pkg/core/geom"
)

// GridLine is one background grid line in model space.
type GridLine struct {
	A     geom.Point `json:"a"`
	B     geom.Point `json:"b"`
	Major bool       `json:"major"`
}

// maxDoublings caps the spacing search; 2^64 cells exceed any finite window
// a float64 can describe usefully.
const maxDoublings = 64

// Grid returns the minor (half-cell) and major (full-cell) lines covering b.
// Lines sit on multiples of the spacing so the grid does not move when the
// window does. The cell doubles until neither tier has more than maxLines
// lines per axis, so the output is bounded whatever the window size.
func Grid(b geom.Rect, cell float64, maxLines int) (minor, major []GridLine) {
	if !(cell > 0) || maxLines <= 0 || b.IsEmpty() {
		return nil, nil
	}
	for i := 0; i < maxDoublings && !gridFits(b, cell, maxLines); i++ {
		cell *= 2
	}
	if !gridFits(b, cell, maxLines) {
		return nil, nil
	}

	half := cell / 2
	for _, x := range ticks(b.MinX, b.MaxX, half) {
		l := GridLine{A: geom.Pt(x.v, b.MinY), B: geom.Pt(x.v, b.MaxY), Major: x.k%2 == 0}
		if l.Major {
			major = append(major, l)
		} else {
			minor = append(minor, l)
		}
	}
	for _, y := range ticks(b.MinY, b.MaxY, half) {
		l := GridLine{A: geom.Pt(b.MinX, y.v), B: geom.Pt(b.MaxX, y.v), Major: y.k%2 == 0}
		if l.Major {
			major = append(major, l)
		} else {
			minor = append(minor, l)
		}
	}
	return minor, major
}

type tick struct {
	k int64
	v float64
}

// ticks returns the multiples of step inside [lo, hi].
func ticks(lo, hi, step float64) []tick {
	first := int64(math.Ceil(lo / step))
	last := int64(math.Floor(hi / step))
	if last < first {
		return nil
	}
	out := make([]tick, 0, last-first+1)
	for k := first; k <= last; k++ {
		out = append(out, tick{k: k, v: float64(k) * step})
	}
	return out
}

// gridFits reports whether both tiers have at most maxLines lines on each
// axis at the given cell size.
func gridFits(b geom.Rect, cell float64, maxLines int) bool {
	for _, span := range [][2]float64{{b.MinX, b.MaxX}, {b.MinY, b.MaxY}} {
		halves := math.Floor(span[1]/(cell/2)) - math.Ceil(span[0]/(cell/2)) + 1
		fulls := math.Floor(span[1]/cell) - math.Ceil(span[0]/cell) + 1
		if fulls > float64(maxLines) || halves-fulls > float64(maxLines) {
			return false
		}
	}
	return true
}
