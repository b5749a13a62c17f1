package profile

import (
	"fmt"
	"math"
	"strconv"

	"github.com/trimworks/flashing/pkg/core/geom"
)

// Default fold attributes applied when a fold spec carries a value that does
// not parse as a number.
const (
	DefaultFoldLength = 14.0
	DefaultFoldAngle  = 0.0
	DefaultTailLength = 20.0
)

// FoldDefaults holds the fallbacks used for malformed fold specs.
type FoldDefaults struct {
	Length     float64 `json:"length" toml:"length"`
	Angle      float64 `json:"angle" toml:"angle"`
	TailLength float64 `json:"tail_length" toml:"tail_length"`
}

// DefaultFoldDefaults returns the built-in fold fallbacks (14, 0°, 20).
func DefaultFoldDefaults() FoldDefaults {
	return FoldDefaults{Length: DefaultFoldLength, Angle: DefaultFoldAngle, TailLength: DefaultTailLength}
}

// FoldSpec describes the end fold of a segment.
type FoldSpec struct {
	Kind       FoldKind `json:"kind"`
	Length     float64  `json:"length"`
	Angle      float64  `json:"angle"` // degrees
	TailLength float64  `json:"tail_length"`
	Flipped    bool     `json:"flipped,omitempty"`
}

// Segment is the edge between Points[i] and Points[i+1].
type Segment struct {
	Length        string      `json:"length"`       // display text, e.g. "1.20 m"
	LengthValue   float64     `json:"length_value"` // numeric part of Length
	LabelPosition *geom.Point `json:"label_position,omitempty"`
	Fold          *FoldSpec   `json:"fold,omitempty"`
}

// FoldKind returns the segment's fold kind, FoldNone when it has no fold.
func (s Segment) FoldKind() FoldKind {
	if s.Fold == nil {
		return FoldNone
	}
	return s.Fold.Kind
}

// Angle is a joint angle that may need a callout.
type Angle struct {
	Degrees       float64     `json:"degrees"`
	VertexIndex   int         `json:"vertex_index"`
	LabelPosition *geom.Point `json:"label_position,omitempty"`
}

// Rounded returns the angle rounded to whole degrees and normalized to [0, 360).
func (a Angle) Rounded() int {
	r := int(math.Round(a.Degrees)) % 360
	if r < 0 {
		r += 360
	}
	return r
}

// Text returns the callout text, e.g. "135°".
func (a Angle) Text() string {
	return strconv.FormatFloat(a.Degrees, 'f', -1, 64) + "°"
}

// QuantityLength is one "quantity by length" entry of a diagram.
type QuantityLength struct {
	Quantity int     `json:"quantity"`
	Length   float64 `json:"length"`
}

// Path is one flashing profile: an ordered polyline with per-segment
// metadata and joint angle annotations. A Path is owned by the caller and is
// never modified by the rendering packages.
type Path struct {
	Points     []geom.Point     `json:"points"`
	Segments   []Segment        `json:"segments"`
	Angles     []Angle          `json:"angles,omitempty"`
	PathIndex  int              `json:"path_index"`
	Name       string           `json:"name,omitempty"`
	Color      string           `json:"color,omitempty"`
	Code       string           `json:"code,omitempty"`
	Quantities []QuantityLength `json:"quantities,omitempty"`
}

// IsValidPath reports whether points is non-empty and every point has finite
// coordinates.
func IsValidPath(points []geom.Point) bool {
	if len(points) == 0 {
		return false
	}
	for _, p := range points {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

// Valid reports whether the path can be rendered.
func (p Path) Valid() bool { return IsValidPath(p.Points) }

// LastSegment returns the index of the last segment, or -1 when the path has
// fewer than two points.
func (p Path) LastSegment() int { return len(p.Points) - 2 }

// IsEndSegment reports whether segment i is the first or the last segment.
// Folds are only drawn on end segments.
func (p Path) IsEndSegment(i int) bool {
	last := p.LastSegment()
	return last >= 0 && (i == 0 || i == last)
}

// SegmentEnds returns the two points bounding segment i.
func (p Path) SegmentEnds(i int) (geom.Point, geom.Point) {
	return p.Points[i], p.Points[i+1]
}

// Normalize returns a copy of p whose Segments slice has exactly
// max(len(Points)-1, 0) entries. Missing segments are appended empty and
// surplus segments are dropped. The second result reports whether anything
// had to change.
func Normalize(p Path) (Path, bool) {
	want := max(len(p.Points)-1, 0)
	if len(p.Segments) == want {
		return p, false
	}
	segs := make([]Segment, want)
	copy(segs, p.Segments)
	p.Segments = segs
	return p, true
}

// FoldLabelKey returns the label-override key for the fold label of segment
// seg on path pathIndex.
func FoldLabelKey(pathIndex, seg int) string {
	return fmt.Sprintf("fold-%d-%d", pathIndex, seg)
}
