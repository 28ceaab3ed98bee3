package dto

import (
	"time"

	"moneytrail/internal/finance"
	"moneytrail/internal/format"
	"moneytrail/internal/utils"
)

// RecordOutput is one row of the records table
type RecordOutput struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	Date           time.Time     `json:"date"`
	Currency       string        `json:"currency"`
	GrossIncomeYtd float64       `json:"grossIncomeYtd"`
	TaxesPaidYtd   float64       `json:"taxesPaidYtd"`
	AssetsExCash   float64       `json:"assetsExCash"`
	Cash           float64       `json:"cash"`
	Debt           float64       `json:"debt"`
	TotalAssets    float64       `json:"totalAssets"`
	NetWorth       float64       `json:"netWorth"`
	Display        RecordDisplay `json:"display"`
}

// RecordDisplay holds the amounts formatted in the record's currency
type RecordDisplay struct {
	Date           string `json:"date"`
	GrossIncomeYtd string `json:"grossIncomeYtd"`
	TaxesPaidYtd   string `json:"taxesPaidYtd"`
	AssetsExCash   string `json:"assetsExCash"`
	Cash           string `json:"cash"`
	Debt           string `json:"debt"`
	TotalAssets    string `json:"totalAssets"`
	NetWorth       string `json:"netWorth"`
}

// NewRecordOutput converts a table row to its API shape
func NewRecordOutput(row finance.Row) RecordOutput {
	r := row.Record
	cur := r.Currency
	return RecordOutput{
		ID:             r.ID.String(),
		UserID:         r.UserID.String(),
		Date:           r.Date,
		Currency:       cur,
		GrossIncomeYtd: r.GrossIncomeYtd,
		TaxesPaidYtd:   r.TaxesPaidYtd,
		AssetsExCash:   r.AssetsExCash,
		Cash:           r.Cash,
		Debt:           r.Debt,
		TotalAssets:    row.Metrics.TotalAssets,
		NetWorth:       row.Metrics.NetWorth,
		Display: RecordDisplay{
			Date:           utils.DisplayDate(r.Date),
			GrossIncomeYtd: format.Amount(r.GrossIncomeYtd, cur),
			TaxesPaidYtd:   format.Amount(r.TaxesPaidYtd, cur),
			AssetsExCash:   format.Amount(r.AssetsExCash, cur),
			Cash:           format.Amount(r.Cash, cur),
			Debt:           format.Amount(r.Debt, cur),
			TotalAssets:    format.Amount(row.Metrics.TotalAssets, cur),
			NetWorth:       format.Amount(row.Metrics.NetWorth, cur),
		},
	}
}
