package finance

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChartPoint is one record projected onto the requested fields.
// Y[i] holds the value of the i-th requested field.
type ChartPoint struct {
	X        time.Time
	Currency string
	Y        []float64
}

// MarshalJSON flattens the point to {"x": ..., "currency": ..., "y0": ..., "y1": ...}
func (p ChartPoint) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Y)+2)
	m["x"] = p.X
	m["currency"] = p.Currency
	for i, y := range p.Y {
		m[fmt.Sprintf("y%d", i)] = y
	}
	return json.Marshal(m)
}

// BarData describes the bars a chart draws for a window
type BarData struct {
	Count      int      `json:"count"`
	Categories []string `json:"categories"`
}

// ChartWindow is the chart-ready projection of a series
type ChartWindow struct {
	Data    []ChartPoint `json:"data"`
	BarData BarData      `json:"barData"`
}

// Window projects the series onto fields, one point per record. labels name the
// bars; a missing label falls back to "dataset N".
func (s *ChartSeries) Window(fields []Field, labels []string) (ChartWindow, error) {
	columns := make([][]float64, len(fields))
	for i, f := range fields {
		values, ok := s.Values(f)
		if !ok {
			return ChartWindow{}, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		columns[i] = values
	}

	points := make([]ChartPoint, s.Len())
	for idx := range points {
		y := make([]float64, len(columns))
		for i, col := range columns {
			y[i] = col[idx]
		}
		points[idx] = ChartPoint{X: s.Dates[idx], Currency: s.Currency[idx], Y: y}
	}

	categories := make([]string, len(fields))
	for i := range fields {
		if i < len(labels) && labels[i] != "" {
			categories[i] = labels[i]
		} else {
			categories[i] = fmt.Sprintf("dataset %d", i+1)
		}
	}

	return ChartWindow{
		Data:    points,
		BarData: BarData{Count: len(fields), Categories: categories},
	}, nil
}
