package finance

import "moneytrail/internal/domain"

// Row is one line of the records table
type Row struct {
	Record  *domain.FinancialRecord
	Metrics Metrics
}

// Rows returns the user's records ordered by date, each with its metrics
func Rows(records []*domain.FinancialRecord) []Row {
	sorted := SortByDate(records)
	rows := make([]Row, len(sorted))
	for i, r := range sorted {
		rows[i] = Row{Record: r, Metrics: DeriveMetrics(r.RecordValues)}
	}
	return rows
}
