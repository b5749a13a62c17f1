package cache

import (
	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/profile"
)

// Keyer derives cache keys.
type Keyer interface {
	// DiagramKey addresses one rendered diagram artifact.
	DiagramKey(p profile.Path, opts DiagramKeyOpts) string
	// SummaryKey addresses the metrics summary of a whole set.
	SummaryKey(set profile.DiagramSet, format string) string
}

// DiagramKeyOpts lists everything besides the path that changes the bytes of
// a rendered diagram.
type DiagramKeyOpts struct {
	Format          string                `json:"format"`
	Scale           float64               `json:"scale"`
	ShowBorder      bool                  `json:"show_border"`
	BorderDirection string                `json:"border_direction"`
	Overrides       map[string]geom.Point `json:"overrides,omitempty"`
	PNGScale        float64               `json:"png_scale,omitempty"`
	EmbedFont       bool                  `json:"embed_font,omitempty"`
	Config          config.Config         `json:"config"`
}

// DiagramOptsFromSet fills the per-set fields of DiagramKeyOpts. Only the
// overrides that belong to path pathIndex are kept, so editing one diagram's
// label does not invalidate its siblings.
func DiagramOptsFromSet(set profile.DiagramSet, pathIndex int, format string, cfg config.Config) DiagramKeyOpts {
	opts := DiagramKeyOpts{
		Format:          format,
		Scale:           set.EffectiveScale(),
		ShowBorder:      set.ShowBorder,
		BorderDirection: set.BorderDirection.String(),
		Config:          cfg,
	}
	if pathIndex >= 0 && pathIndex < len(set.Paths) {
		p := set.Paths[pathIndex]
		for seg := range p.Segments {
			if o, ok := set.Override(p.PathIndex, seg); ok {
				if opts.Overrides == nil {
					opts.Overrides = make(map[string]geom.Point)
				}
				opts.Overrides[profile.FoldLabelKey(p.PathIndex, seg)] = o
			}
		}
	}
	return opts
}

// DefaultKeyer is the standard content-addressed keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DiagramKey(p profile.Path, opts DiagramKeyOpts) string {
	return hashKey("diagram", HashJSON(p), opts)
}

func (DefaultKeyer) SummaryKey(set profile.DiagramSet, format string) string {
	return hashKey("summary", HashJSON(set.Paths), format)
}
