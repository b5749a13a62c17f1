package config

import (
	"fmt"
	"strings"
)

// AngleSkipPolicy selects which joint angles are considered default and
// therefore never get a callout.
type AngleSkipPolicy uint8

const (
	// AngleSkipQuad skips 45°, 90°, 270° and 315°.
	AngleSkipQuad AngleSkipPolicy = iota
	// AngleSkipLegacy skips only 90° and 270°.
	AngleSkipLegacy
)

var (
	quadSkip   = map[int]bool{45: true, 90: true, 270: true, 315: true}
	legacySkip = map[int]bool{90: true, 270: true}
)

// Skips reports whether an angle rounded to whole degrees (0..359) is a
// default angle under this policy.
func (p AngleSkipPolicy) Skips(rounded int) bool {
	if p == AngleSkipLegacy {
		return legacySkip[rounded]
	}
	return quadSkip[rounded]
}

func (p AngleSkipPolicy) String() string {
	if p == AngleSkipLegacy {
		return "legacy"
	}
	return "quad"
}

func (p AngleSkipPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *AngleSkipPolicy) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "", "quad":
		*p = AngleSkipQuad
	case "legacy":
		*p = AngleSkipLegacy
	default:
		return fmt.Errorf("invalid angle_skip %q (must be 'quad' or 'legacy')", b)
	}
	return nil
}

// FoldLabelPolicy selects how far a fold callout sits from the fold base.
type FoldLabelPolicy uint8

const (
	// FoldLabelFixed places the label a fixed real-world distance away.
	FoldLabelFixed FoldLabelPolicy = iota
	// FoldLabelProportional places it at a multiple of the fold length.
	FoldLabelProportional
)

func (p FoldLabelPolicy) String() string {
	if p == FoldLabelProportional {
		return "proportional"
	}
	return "fixed"
}

func (p FoldLabelPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *FoldLabelPolicy) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "", "fixed":
		*p = FoldLabelFixed
	case "proportional":
		*p = FoldLabelProportional
	default:
		return fmt.Errorf("invalid fold_label_distance %q (must be 'fixed' or 'proportional')", b)
	}
	return nil
}

// QuantityFormat selects the "quantity x length" presentation.
type QuantityFormat uint8

const (
	// QuantityGrouped keeps input order, thousands-separates lengths and
	// joins entries with three spaces: "2 x 1,500   1 x 350".
	QuantityGrouped QuantityFormat = iota
	// QuantitySorted sorts by length descending and comma-joins plain
	// numbers: "2 x 1500, 1 x 350".
	QuantitySorted
)

func (f QuantityFormat) String() string {
	if f == QuantitySorted {
		return "sorted"
	}
	return "grouped"
}

func (f QuantityFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *QuantityFormat) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "", "grouped":
		*f = QuantityGrouped
	case "sorted":
		*f = QuantitySorted
	default:
		return fmt.Errorf("invalid quantity_format %q (must be 'grouped' or 'sorted')", b)
	}
	return nil
}

// Policies collects the presentation choices on which known renderers of
// this diagram type disagree.
type Policies struct {
	AngleSkip         AngleSkipPolicy `json:"angle_skip" toml:"angle_skip"`
	FoldLabelDistance FoldLabelPolicy `json:"fold_label_distance" toml:"fold_label_distance"`
	QuantityFormat    QuantityFormat  `json:"quantity_format" toml:"quantity_format"`
	// FontMetrics measures callout text with the embedded Go Regular font
	// instead of a fixed per-character width.
	FontMetrics bool `json:"font_metrics" toml:"font_metrics"`
}
