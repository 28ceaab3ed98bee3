package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecordValues holds the user-editable fields of a financial record.
// Values reaching a repository have already passed validation.
type RecordValues struct {
	Date           time.Time `json:"date"`
	Currency       string    `json:"currency"`
	GrossIncomeYtd float64   `json:"grossIncomeYtd"`
	TaxesPaidYtd   float64   `json:"taxesPaidYtd"`
	AssetsExCash   float64   `json:"assetsExCash"`
	Cash           float64   `json:"cash"`
	Debt           float64   `json:"debt"`
}

// FinancialRecord is one dated snapshot of a user's finances
type FinancialRecord struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	RecordValues
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
