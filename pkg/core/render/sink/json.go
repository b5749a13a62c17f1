package sink

import (
	"encoding/json"

	"github.com/trimworks/flashing/pkg/core/metrics"
	"github.com/trimworks/flashing/pkg/core/scene"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
	row    *metrics.Row
	name   string
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithJSONMetrics attaches the diagram's property row (folds, girth, Q×L).
func WithJSONMetrics(row metrics.Row) JSONOption {
	return func(r *jsonRenderer) { r.row = &row }
}

// WithJSONName records the diagram name in the output.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

type jsonOutput struct {
	Name       string          `json:"name,omitempty"`
	Size       float64         `json:"size"`
	Background string          `json:"background,omitempty"`
	Elements   []scene.Element `json:"elements"`
	Metrics    *metrics.Row    `json:"metrics,omitempty"`
}

// RenderJSON serializes s. Field order and element order are fixed, so the
// same scene always produces the same bytes.
func RenderJSON(s scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Name:       r.name,
		Size:       s.Size,
		Background: s.Background,
		Elements:   s.Elements,
		Metrics:    r.row,
	}
	if out.Elements == nil {
		out.Elements = []scene.Element{}
	}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
