// Package metrics derives the scalar summaries printed next to a diagram:
// fold count, girth and the "quantity x length" line.
//
// Everything here reads the same [profile.Path] the renderer draws and never
// looks at rendered geometry, so summaries can be produced without rendering.
package metrics

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/profile"
)

// TotalFolds counts the bends of a path: one per listed angle, plus one per
// folded segment, two for a crush fold.
func TotalFolds(p profile.Path) int {
	n := len(p.Angles)
	for _, s := range p.Segments {
		n += foldWeight(s.FoldKind())
	}
	return n
}

func foldWeight(k profile.FoldKind) int {
	switch k {
	case profile.FoldNone:
		return 0
	case profile.FoldCrush:
		return 2
	case profile.FoldOpen, profile.FoldBreak, profile.FoldCrushHook:
		return 1
	default:
		return 0
	}
}

// Girth is the sum of the numeric segment lengths.
func Girth(p profile.Path) float64 {
	var g float64
	for _, s := range p.Segments {
		if !math.IsNaN(s.LengthValue) {
			g += s.LengthValue
		}
	}
	return g
}

// FormatGirth renders a girth with two decimals.
func FormatGirth(g float64) string {
	return strconv.FormatFloat(g, 'f', 2, 64)
}

// FormatQuantityLength renders the "quantity x length" line.
//
// QuantityGrouped keeps input order, rounds lengths to whole numbers with
// thousands separators (quantities stay plain) and joins entries with three
// spaces:
//
//	2 x 1,500   1 x 350
//
// QuantitySorted orders entries by length, longest first, and comma-joins
// plain numbers:
//
//	2 x 1500, 1 x 350
func FormatQuantityLength(items []profile.QuantityLength, f config.QuantityFormat) string {
	if f == config.QuantitySorted {
		sorted := slices.Clone(items)
		slices.SortStableFunc(sorted, func(a, b profile.QuantityLength) int {
			return cmp.Compare(b.Length, a.Length)
		})
		parts := make([]string, len(sorted))
		for i, it := range sorted {
			parts[i] = fmt.Sprintf("%d x %s", it.Quantity, strconv.FormatFloat(it.Length, 'f', -1, 64))
		}
		return strings.Join(parts, ", ")
	}

	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = strconv.Itoa(it.Quantity) + " x " + FormatLength(it.Length)
	}
	return strings.Join(parts, "   ")
}

// FormatLength renders a length rounded to a whole number with thousands
// separators.
func FormatLength(l float64) string {
	return message.NewPrinter(language.English).Sprintf("%d", int64(math.Round(l)))
}
