package layout

import (
	"math"

	"github.com/trimworks/flashing/pkg/core/geom"
)

// Viewport maps a model-space window onto a square canvas of side Size.
type Viewport struct {
	Bounds  geom.Rect `json:"bounds"`
	Size    float64   `json:"size"`
	Scale   float64   `json:"scale"`
	OffsetX float64   `json:"offset_x"`
	OffsetY float64   `json:"offset_y"`
}

// NewViewport fits b into a size x size canvas, using the fraction fill of
// the canvas along the larger dimension and centering the other.
func NewViewport(b geom.Rect, size, fill float64) Viewport {
	w, h := b.Width(), b.Height()
	scale := fill * size / math.Max(math.Max(w, h), 1)
	return Viewport{
		Bounds:  b,
		Size:    size,
		Scale:   scale,
		OffsetX: (size - w*scale) / 2,
		OffsetY: (size - h*scale) / 2,
	}
}

// Transform maps a model-space point to canvas space.
func (v Viewport) Transform(p geom.Point) geom.Point {
	return geom.Point{
		X: (p.X-v.Bounds.MinX)*v.Scale + v.OffsetX,
		Y: (p.Y-v.Bounds.MinY)*v.Scale + v.OffsetY,
	}
}

// Len converts a model-space length to canvas units.
func (v Viewport) Len(d float64) float64 { return d * v.Scale }
