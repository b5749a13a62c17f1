// Package fonts provides the label font used in diagrams and a read-only
// advance-width table for estimating text widths.
//
// The font is Go Regular from golang.org/x/image/font/gofont, compiled into
// the binary, so measuring and embedding work without system fonts.
package fonts

import (
	"encoding/base64"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontFamily is the CSS font-family name of the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers that ignore embedded fonts.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// GoRegularTTF returns the TTF font data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// GoRegularTTFBase64 returns the TTF font data as a base64 string, for
// data: URLs in SVG @font-face rules.
func GoRegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// measureSize is the face size the table is built at; advances are divided
// by it to get widths per unit of font size.
const measureSize = 1000

// fallbackEm is the per-rune width, in ems, used when the table cannot be
// built or a rune is missing from it.
const fallbackEm = 0.55

// Metrics holds advance widths in ems. It is immutable after construction
// and safe for concurrent use.
type Metrics struct {
	advance map[rune]float64
	average float64
}

var (
	defaultMetrics     *Metrics
	defaultMetricsErr  error
	defaultMetricsOnce sync.Once
)

// Default returns the table for Go Regular, built on first use.
func Default() (*Metrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = NewMetrics(goregular.TTF)
	})
	return defaultMetrics, defaultMetricsErr
}

// NewMetrics parses an OpenType font and records the advance of printable
// ASCII plus the few symbols diagrams use.
func NewMetrics(ttf []byte) (*Metrics, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    measureSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	m := &Metrics{advance: make(map[rune]float64)}
	var sum float64
	add := func(r rune) {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			return
		}
		em := toFloat(adv) / measureSize
		m.advance[r] = em
		sum += em
	}
	for r := rune(0x20); r <= 0x7e; r++ {
		add(r)
	}
	for _, r := range "°×±½¼¾" {
		add(r)
	}
	m.average = fallbackEm
	if len(m.advance) > 0 {
		m.average = sum / float64(len(m.advance))
	}
	return m, nil
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// Width returns the advance width of text at the given font size.
func (m *Metrics) Width(text string, size float64) float64 {
	var em float64
	for _, r := range text {
		if a, ok := m.advance[r]; ok {
			em += a
		} else {
			em += m.average
		}
	}
	return em * size
}

// Measure returns the width of text in Go Regular at size, falling back to a
// fixed per-rune estimate if the font cannot be parsed.
func Measure(text string, size float64) float64 {
	m, err := Default()
	if err != nil {
		return float64(utf8.RuneCountInString(text)) * fallbackEm * size
	}
	return m.Width(text, size)
}
