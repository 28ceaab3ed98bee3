package finance

import "moneytrail/internal/domain"

// Metrics are the values derived from a single record
type Metrics struct {
	TotalAssets float64 `json:"totalAssets"`
	NetWorth    float64 `json:"netWorth"`
}

// DeriveMetrics computes total assets and net worth for one record.
// Table rows and chart series both go through this function.
func DeriveMetrics(v domain.RecordValues) Metrics {
	totalAssets := v.AssetsExCash + v.Cash
	return Metrics{
		TotalAssets: totalAssets,
		NetWorth:    totalAssets - v.Debt,
	}
}

// DebtRatios returns debt as a percentage of total assets and of net worth.
// A zero denominator yields 0.
func DebtRatios(debt float64, m Metrics) (debtToTotalAssets, debtToNetWorth float64) {
	return percentOf(debt, m.TotalAssets), percentOf(debt, m.NetWorth)
}

func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
