package profile

import "github.com/trimworks/flashing/pkg/core/geom"

// DiagramSet is the per-order render input: every path of the order plus the
// flags that apply to all of them.
type DiagramSet struct {
	ID              string                `json:"id,omitempty"`
	Scale           float64               `json:"scale"` // model units per millimetre
	ShowBorder      bool                  `json:"show_border,omitempty"`
	BorderDirection BorderDirection       `json:"border_direction"`
	LabelOverrides  map[string]geom.Point `json:"label_overrides,omitempty"`
	Paths           []Path                `json:"paths"`
}

// Override returns the externally supplied fold-label position for segment
// seg of path pathIndex, if any.
func (s DiagramSet) Override(pathIndex, seg int) (geom.Point, bool) {
	p, ok := s.LabelOverrides[FoldLabelKey(pathIndex, seg)]
	return p, ok
}

// EffectiveScale returns Scale, or 1 when Scale is unset or not positive.
func (s DiagramSet) EffectiveScale() float64 {
	if s.Scale > 0 {
		return s.Scale
	}
	return 1
}
