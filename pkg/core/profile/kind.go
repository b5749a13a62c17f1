package profile

import (
	"fmt"
	"strings"
)

// FoldKind is the closed set of fold variants.
type FoldKind uint8

const (
	FoldNone FoldKind = iota
	FoldOpen
	FoldBreak
	FoldCrush
	FoldCrushHook
)

var foldKindNames = [...]string{
	FoldNone:      "None",
	FoldOpen:      "Open",
	FoldBreak:     "Break",
	FoldCrush:     "Crush",
	FoldCrushHook: "CrushHook",
}

func (k FoldKind) String() string {
	if int(k) < len(foldKindNames) {
		return foldKindNames[k]
	}
	return fmt.Sprintf("FoldKind(%d)", k)
}

// Label returns the upper-case name used in fold callouts.
func (k FoldKind) Label() string {
	switch k {
	case FoldOpen:
		return "OPEN"
	case FoldBreak:
		return "BREAK"
	case FoldCrush:
		return "CRUSH"
	case FoldCrushHook:
		return "CRUSH HOOK"
	default:
		return ""
	}
}

// ParseFoldKind parses a fold type tag. Matching ignores case, spaces,
// dashes and underscores, so "Crush Hook", "crush-hook" and "CrushHook" are
// equivalent. The empty string parses as FoldNone.
func ParseFoldKind(s string) (FoldKind, error) {
	norm := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))

	switch norm {
	case "", "none":
		return FoldNone, nil
	case "open":
		return FoldOpen, nil
	case "break":
		return FoldBreak, nil
	case "crush":
		return FoldCrush, nil
	case "crushhook", "hook":
		return FoldCrushHook, nil
	}
	return FoldNone, fmt.Errorf("unknown fold type %q", s)
}

func (k FoldKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *FoldKind) UnmarshalText(b []byte) error {
	v, err := ParseFoldKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// BorderDirection selects which side of the path the offset border is drawn on.
type BorderDirection uint8

const (
	BorderOutside BorderDirection = iota
	BorderInside
)

func (d BorderDirection) String() string {
	if d == BorderInside {
		return "inside"
	}
	return "outside"
}

// ParseBorderDirection parses "inside" or "outside" (case-insensitive). The
// empty string parses as BorderOutside.
func ParseBorderDirection(s string) (BorderDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "outside":
		return BorderOutside, nil
	case "inside":
		return BorderInside, nil
	}
	return BorderOutside, fmt.Errorf("invalid border direction %q (must be 'inside' or 'outside')", s)
}

func (d BorderDirection) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *BorderDirection) UnmarshalText(b []byte) error {
	v, err := ParseBorderDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
