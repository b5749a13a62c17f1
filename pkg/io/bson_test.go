package io

import (
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/trimworks/flashing/pkg/core/profile"
)

func TestRawSetFromBSON(t *testing.T) {
	doc := bson.M{
		"orderId":               "A-7",
		"scale":                 "2",
		"showBorder":            true,
		"borderOffsetDirection": "outside",
		"paths": bson.A{
			bson.M{
				"name": "Valley",
				"points": bson.A{
					bson.M{"x": int32(0), "y": 0.0},
					bson.M{"x": "150", "y": int64(0)},
					bson.M{"x": 150, "y": "n/a"},
				},
				"segments": bson.A{
					bson.M{"length": 150},
					bson.M{"length": "0.80 m", "fold": bson.M{"type": "Open", "angle": "45"}},
				},
				"angles": bson.A{bson.M{"angle": "90°", "vertexIndex": int32(1)}},
			},
		},
	}
	data, err := bson.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	var raw RawSet
	if err := bson.Unmarshal(data, &raw); err != nil {
		t.Fatalf("bson.Unmarshal() error: %v", err)
	}
	set, warnings := Convert(raw)

	if set.ID != "A-7" || set.Scale != 2 || set.BorderDirection != profile.BorderOutside {
		t.Errorf("set = %+v", set)
	}
	p := set.Paths[0]
	if p.Points[1].X != 150 {
		t.Errorf("string coordinate = %v, want 150", p.Points[1].X)
	}
	if !math.IsNaN(p.Points[2].Y) || p.Valid() {
		t.Error("non-numeric coordinate should invalidate the path")
	}
	if len(warnings) == 0 {
		t.Error("expected a warning for the non-numeric coordinate")
	}
	if p.Segments[0].Length != "150" || p.Segments[0].LengthValue != 150 {
		t.Errorf("numeric length = %+v", p.Segments[0])
	}
	f := p.Segments[1].Fold
	if f == nil || f.Kind != profile.FoldOpen || f.Angle != 45 || f.Length != profile.DefaultFoldLength {
		t.Errorf("fold = %+v", f)
	}
	if len(p.Angles) != 1 || p.Angles[0].Degrees != 90 {
		t.Errorf("angles = %+v", p.Angles)
	}
}
