package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/profile"
)

// ToRaw converts a typed set back to its stored form. Converting the result
// with [Convert] yields an equal set.
func ToRaw(set profile.DiagramSet) RawSet {
	raw := RawSet{
		ID:         set.ID,
		Scale:      Number(set.Scale),
		ShowBorder: set.ShowBorder,
		Paths:      make([]RawPath, len(set.Paths)),
	}
	if set.BorderDirection != profile.BorderOutside {
		raw.BorderDirection = set.BorderDirection.String()
	}
	if len(set.LabelOverrides) > 0 {
		raw.Overrides = make(map[string]RawPoint, len(set.LabelOverrides))
		for k, p := range set.LabelOverrides {
			raw.Overrides[k] = rawPoint(p)
		}
	}
	for i, p := range set.Paths {
		raw.Paths[i] = toRawPath(p)
	}
	return raw
}

func rawPoint(p geom.Point) RawPoint { return RawPoint{X: Number(p.X), Y: Number(p.Y)} }

func rawPointPtr(p *geom.Point) *RawPoint {
	if p == nil {
		return nil
	}
	rp := rawPoint(*p)
	return &rp
}

func toRawPath(p profile.Path) RawPath {
	idx := p.PathIndex
	rp := RawPath{
		PathIndex: &idx,
		Name:      p.Name,
		Color:     p.Color,
		Code:      p.Code,
		Points:    make([]RawPoint, len(p.Points)),
		Segments:  make([]RawSegment, len(p.Segments)),
	}
	for i, pt := range p.Points {
		rp.Points[i] = rawPoint(pt)
	}
	for i, s := range p.Segments {
		rs := RawSegment{Length: Text(s.Length), LabelPosition: rawPointPtr(s.LabelPosition)}
		if f := s.Fold; f != nil {
			length, angle, tail := Number(f.Length), Number(f.Angle), Number(f.TailLength)
			rs.Fold = &RawFold{Type: f.Kind.String(), Length: &length, Angle: &angle, TailLength: &tail, Flipped: f.Flipped}
		}
		rp.Segments[i] = rs
	}
	for _, a := range p.Angles {
		rp.Angles = append(rp.Angles, RawAngle{
			Angle:         Degrees(a.Degrees),
			VertexIndex:   a.VertexIndex,
			LabelPosition: rawPointPtr(a.LabelPosition),
		})
	}
	for _, q := range p.Quantities {
		rp.Quantities = append(rp.Quantities, RawQuantityLength{Quantity: q.Quantity, Length: Number(q.Length)})
	}
	return rp
}

// WriteJSON encodes set in the format [ReadJSON] accepts.
func WriteJSON(set profile.DiagramSet, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToRaw(set)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes set to a JSON file at path.
func ExportJSON(set profile.DiagramSet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(set, f)
}
