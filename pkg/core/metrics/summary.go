package metrics

import (
	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/profile"
)

// Row is the property-table line of one diagram.
type Row struct {
	Index          int     `json:"index"`
	Name           string  `json:"name,omitempty"`
	Color          string  `json:"color,omitempty"`
	Code           string  `json:"code,omitempty"`
	Folds          int     `json:"folds"`
	Girth          float64 `json:"girth"`
	GirthText      string  `json:"girth_text"`
	QuantityLength string  `json:"quantity_length"`
	Pieces         int     `json:"pieces"`
	RunLength      float64 `json:"run_length"` // sum of quantity * length
	Invalid        bool    `json:"invalid,omitempty"`
}

// Summary aggregates the rows of an order.
type Summary struct {
	Rows        []Row   `json:"rows"`
	TotalFolds  int     `json:"total_folds"`
	TotalGirth  float64 `json:"total_girth"`
	TotalPieces int     `json:"total_pieces"`
	TotalLength float64 `json:"total_length"`
	LengthText  string  `json:"length_text"`
}

// RowFor computes the row of a single path.
func RowFor(index int, p profile.Path, f config.QuantityFormat) Row {
	r := Row{
		Index:          index,
		Name:           p.Name,
		Color:          p.Color,
		Code:           p.Code,
		Folds:          TotalFolds(p),
		Girth:          Girth(p),
		QuantityLength: FormatQuantityLength(p.Quantities, f),
		Invalid:        !p.Valid(),
	}
	r.GirthText = FormatGirth(r.Girth)
	for _, q := range p.Quantities {
		r.Pieces += q.Quantity
		r.RunLength += float64(q.Quantity) * q.Length
	}
	return r
}

// Summarize builds the per-diagram rows of set and the order totals.
func Summarize(set profile.DiagramSet, f config.QuantityFormat) Summary {
	s := Summary{Rows: make([]Row, len(set.Paths))}
	for i, p := range set.Paths {
		r := RowFor(i, p, f)
		s.Rows[i] = r
		s.TotalFolds += r.Folds
		s.TotalGirth += r.Girth
		s.TotalPieces += r.Pieces
		s.TotalLength += r.RunLength
	}
	s.LengthText = FormatLength(s.TotalLength)
	return s
}
