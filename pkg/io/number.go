package io

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Number is a lenient float for order data, which stores numbers either as
// numbers or as numeric strings. Anything that does not parse to a finite
// float decodes as NaN rather than failing the whole document.
type Number float64

// Float returns n as a float64.
func (n Number) Float() float64 { return float64(n) }

// Valid reports whether n is finite.
func (n Number) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number(parseJSONNumber(data, ""))
	return nil
}

// MarshalJSON writes non-finite values as null, which decodes back to NaN.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(n), 'f', -1, 64)), nil
}

func (n *Number) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*n = Number(parseBSONNumber(t, data, ""))
	return nil
}

// Degrees is a Number that also accepts a trailing degree sign, as in "135°".
type Degrees float64

func (d *Degrees) UnmarshalJSON(data []byte) error {
	*d = Degrees(parseJSONNumber(data, "°"))
	return nil
}

func (d Degrees) MarshalJSON() ([]byte, error) {
	if !Number(d).Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(strconv.FormatFloat(float64(d), 'f', -1, 64) + "°")), nil
}

func (d *Degrees) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*d = Degrees(parseBSONNumber(t, data, "°"))
	return nil
}

// Text is a display string that also accepts a bare number.
type Text string

func (s *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Text(v)
	default:
		*s = Text(data)
	}
	return nil
}

func (s *Text) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*s = Text(rv.StringValue())
	case bsontype.Double, bsontype.Int32, bsontype.Int64:
		*s = Text(strconv.FormatFloat(parseBSONNumber(t, data, ""), 'f', -1, 64))
	default:
		*s = ""
	}
	return nil
}

func parseJSONNumber(data []byte, suffix string) float64 {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return math.NaN()
		}
		return parseNumeric(s, suffix)
	}
	return parseNumeric(string(data), "")
}

func parseBSONNumber(t bsontype.Type, data []byte, suffix string) float64 {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		return rv.Double()
	case bsontype.Int32:
		return float64(rv.Int32())
	case bsontype.Int64:
		return float64(rv.Int64())
	case bsontype.String:
		return parseNumeric(rv.StringValue(), suffix)
	default:
		return math.NaN()
	}
}

// parseNumeric parses s after trimming spaces and an optional suffix.
func parseNumeric(s, suffix string) float64 {
	s = strings.TrimSpace(s)
	if suffix != "" {
		s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// ParseLength extracts the numeric part of a decorated length such as
// "1.20 m" or "1,500mm" by dropping every rune that is not a digit or a dot,
// then reading the leading number: leading dots are skipped and the value
// ends at the second dot ("approx. 1.5 m." reads as 1.5). It returns NaN
// when no digit remains.
func ParseLength(s string) float64 {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	digits = strings.TrimLeft(digits, ".")
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		if j := strings.IndexByte(digits[i+1:], '.'); j >= 0 {
			digits = digits[:i+1+j]
		}
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
