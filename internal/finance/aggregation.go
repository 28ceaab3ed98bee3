package finance

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"moneytrail/internal/domain"
)

// ErrUnknownField is returned when a window requests a series that does not exist
var ErrUnknownField = errors.New("unknown chart field")

// Field names a numeric series of a ChartSeries
type Field string

const (
	FieldGrossIncomeYtd    Field = "grossIncomeYtd"
	FieldTaxesPaidYtd      Field = "taxesPaidYtd"
	FieldAssetsExCash      Field = "assetsExCash"
	FieldCash              Field = "cash"
	FieldTotalAssets       Field = "totalAssets"
	FieldDebt              Field = "debt"
	FieldNetWorth          Field = "netWorth"
	FieldDebtToTotalAssets Field = "debtToTotalAssets"
	FieldDebtToNetWorth    Field = "debtToNetWorth"
)

// ParseField converts a series name to a Field
func ParseField(name string) (Field, error) {
	f := Field(name)
	switch f {
	case FieldGrossIncomeYtd, FieldTaxesPaidYtd, FieldAssetsExCash, FieldCash,
		FieldTotalAssets, FieldDebt, FieldNetWorth, FieldDebtToTotalAssets, FieldDebtToNetWorth:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// ChartSeries holds parallel, chronologically ordered sequences derived from a
// user's records. Index i of every slice describes the same record.
type ChartSeries struct {
	Dates             []time.Time `json:"dates"`
	GrossIncomeYtd    []float64   `json:"grossIncomeYtd"`
	TaxesPaidYtd      []float64   `json:"taxesPaidYtd"`
	AssetsExCash      []float64   `json:"assetsExCash"`
	Cash              []float64   `json:"cash"`
	TotalAssets       []float64   `json:"totalAssets"`
	Debt              []float64   `json:"debt"`
	NetWorth          []float64   `json:"netWorth"`
	DebtToTotalAssets []float64   `json:"debtToTotalAssets"`
	DebtToNetWorth    []float64   `json:"debtToNetWorth"`
	Currency          []string    `json:"currency"`
	DatasetCurrency   string      `json:"datasetCurrency"`
}

// Len returns the number of points in the series
func (s *ChartSeries) Len() int {
	return len(s.Dates)
}

// Values returns the sequence for a field
func (s *ChartSeries) Values(f Field) ([]float64, bool) {
	switch f {
	case FieldGrossIncomeYtd:
		return s.GrossIncomeYtd, true
	case FieldTaxesPaidYtd:
		return s.TaxesPaidYtd, true
	case FieldAssetsExCash:
		return s.AssetsExCash, true
	case FieldCash:
		return s.Cash, true
	case FieldTotalAssets:
		return s.TotalAssets, true
	case FieldDebt:
		return s.Debt, true
	case FieldNetWorth:
		return s.NetWorth, true
	case FieldDebtToTotalAssets:
		return s.DebtToTotalAssets, true
	case FieldDebtToNetWorth:
		return s.DebtToNetWorth, true
	}
	return nil, false
}

// SortByDate returns a copy of records ordered by date. Records sharing a date
// keep their original order.
func SortByDate(records []*domain.FinancialRecord) []*domain.FinancialRecord {
	sorted := make([]*domain.FinancialRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// Aggregate builds the chart series for one user's records. defaultCurrency is
// used as the dataset currency when there are no records.
func Aggregate(records []*domain.FinancialRecord, defaultCurrency string) ChartSeries {
	sorted := SortByDate(records)
	n := len(sorted)

	s := ChartSeries{
		Dates:             make([]time.Time, 0, n),
		GrossIncomeYtd:    make([]float64, 0, n),
		TaxesPaidYtd:      make([]float64, 0, n),
		AssetsExCash:      make([]float64, 0, n),
		Cash:              make([]float64, 0, n),
		TotalAssets:       make([]float64, 0, n),
		Debt:              make([]float64, 0, n),
		NetWorth:          make([]float64, 0, n),
		DebtToTotalAssets: make([]float64, 0, n),
		DebtToNetWorth:    make([]float64, 0, n),
		Currency:          make([]string, 0, n),
	}

	for _, r := range sorted {
		m := DeriveMetrics(r.RecordValues)
		toAssets, toNetWorth := DebtRatios(r.Debt, m)

		s.Dates = append(s.Dates, r.Date)
		s.GrossIncomeYtd = append(s.GrossIncomeYtd, r.GrossIncomeYtd)
		s.TaxesPaidYtd = append(s.TaxesPaidYtd, r.TaxesPaidYtd)
		s.AssetsExCash = append(s.AssetsExCash, r.AssetsExCash)
		s.Cash = append(s.Cash, r.Cash)
		s.TotalAssets = append(s.TotalAssets, m.TotalAssets)
		s.Debt = append(s.Debt, r.Debt)
		s.NetWorth = append(s.NetWorth, m.NetWorth)
		s.DebtToTotalAssets = append(s.DebtToTotalAssets, toAssets)
		s.DebtToNetWorth = append(s.DebtToNetWorth, toNetWorth)
		s.Currency = append(s.Currency, r.Currency)
	}

	s.DatasetCurrency = MostCommon(s.Currency, defaultCurrency)
	return s
}

// MostCommon returns the most frequent value. A value only replaces the current
// leader when its count strictly exceeds it, so among ties the one that reached
// the maximum first wins. fallback is returned for an empty slice.
func MostCommon(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}

	counts := make(map[string]int, len(values))
	leader, best := values[0], 1
	for _, v := range values {
		counts[v]++
		if counts[v] > best {
			leader, best = v, counts[v]
		}
	}
	return leader
}
