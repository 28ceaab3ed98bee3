package finance

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"moneytrail/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func record(date time.Time, currency string, assetsExCash, cash, debt float64) *domain.FinancialRecord {
	return &domain.FinancialRecord{
		ID: uuid.New(),
		RecordValues: domain.RecordValues{
			Date:         date,
			Currency:     currency,
			AssetsExCash: assetsExCash,
			Cash:         cash,
			Debt:         debt,
		},
	}
}

func TestAggregate_EndToEnd(t *testing.T) {
	records := []*domain.FinancialRecord{
		record(day(2023, 6, 1), "usd", 0, 200, 0),
		record(day(2023, 1, 1), "usd", 0, 100, 50),
	}

	s := Aggregate(records, "eur")

	wantNetWorth := []float64{50, 200}
	wantDebtToNetWorth := []float64{100, 0}
	for i := range wantNetWorth {
		if s.NetWorth[i] != wantNetWorth[i] {
			t.Errorf("NetWorth[%d] = %v, want %v", i, s.NetWorth[i], wantNetWorth[i])
		}
		if s.DebtToNetWorth[i] != wantDebtToNetWorth[i] {
			t.Errorf("DebtToNetWorth[%d] = %v, want %v", i, s.DebtToNetWorth[i], wantDebtToNetWorth[i])
		}
	}
	if s.DatasetCurrency != "usd" {
		t.Errorf("DatasetCurrency = %q, want usd", s.DatasetCurrency)
	}
}

func TestAggregate_SequencesAlignedAndOrdered(t *testing.T) {
	records := []*domain.FinancialRecord{
		record(day(2024, 3, 1), "eur", 10, 10, 5),
		record(day(2022, 1, 1), "eur", 20, 0, 0),
		record(day(2023, 7, 15), "usd", 0, 0, 0),
		record(day(2023, 7, 15), "gbp", 1, 1, 1),
	}

	s := Aggregate(records, "eur")

	n := len(records)
	lengths := map[string]int{
		"dates":             len(s.Dates),
		"grossIncomeYtd":    len(s.GrossIncomeYtd),
		"taxesPaidYtd":      len(s.TaxesPaidYtd),
		"assetsExCash":      len(s.AssetsExCash),
		"cash":              len(s.Cash),
		"totalAssets":       len(s.TotalAssets),
		"debt":              len(s.Debt),
		"netWorth":          len(s.NetWorth),
		"debtToTotalAssets": len(s.DebtToTotalAssets),
		"debtToNetWorth":    len(s.DebtToNetWorth),
		"currency":          len(s.Currency),
	}
	for name, l := range lengths {
		if l != n {
			t.Errorf("len(%s) = %d, want %d", name, l, n)
		}
	}

	for i := 0; i+1 < s.Len(); i++ {
		if s.Dates[i].After(s.Dates[i+1]) {
			t.Errorf("dates out of order at %d: %v > %v", i, s.Dates[i], s.Dates[i+1])
		}
	}

	// equal dates keep store order
	if s.Currency[1] != "usd" || s.Currency[2] != "gbp" {
		t.Errorf("tie order = %v, want usd before gbp", s.Currency[1:3])
	}
}

func TestAggregate_DoesNotReorderInput(t *testing.T) {
	records := []*domain.FinancialRecord{
		record(day(2024, 1, 1), "usd", 0, 0, 0),
		record(day(2020, 1, 1), "usd", 0, 0, 0),
	}
	first := records[0].ID

	Aggregate(records, "usd")

	if records[0].ID != first {
		t.Error("Aggregate must not sort the caller's slice in place")
	}
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil, "jpy")

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if s.DatasetCurrency != "jpy" {
		t.Errorf("DatasetCurrency = %q, want fallback jpy", s.DatasetCurrency)
	}
}

func TestMostCommon(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"tie keeps first to reach max", []string{"usd", "eur", "usd", "eur"}, "usd"},
		{"later majority wins", []string{"usd", "eur", "eur"}, "eur"},
		{"all distinct keeps first", []string{"gbp", "usd", "eur"}, "gbp"},
		{"single", []string{"inr"}, "inr"},
		{"empty uses fallback", nil, "eur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MostCommon(tt.values, "eur"); got != tt.want {
				t.Errorf("MostCommon(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestWindow_FieldOrderPreserved(t *testing.T) {
	s := Aggregate([]*domain.FinancialRecord{record(day(2023, 1, 1), "usd", 50, 100, 0)}, "usd")

	w, err := s.Window([]Field{FieldCash, FieldAssetsExCash}, []string{"Cash", "Assets ex cash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(w.Data) != 1 {
		t.Fatalf("len(Data) = %d, want 1", len(w.Data))
	}
	p := w.Data[0]
	if len(p.Y) != 2 || p.Y[0] != 100 || p.Y[1] != 50 {
		t.Errorf("Y = %v, want [100 50]", p.Y)
	}
	if w.BarData.Count != 2 {
		t.Errorf("BarData.Count = %d, want 2", w.BarData.Count)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["y0"] != 100.0 || decoded["y1"] != 50.0 {
		t.Errorf("json = %s, want y0=100 y1=50", raw)
	}
	if decoded["currency"] != "usd" {
		t.Errorf("json currency = %v, want usd", decoded["currency"])
	}
}

func TestWindow_LabelFallbackAndUnknownField(t *testing.T) {
	s := Aggregate([]*domain.FinancialRecord{record(day(2023, 1, 1), "usd", 1, 2, 3)}, "usd")

	w, err := s.Window([]Field{FieldDebt, FieldNetWorth}, []string{"Debt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.BarData.Categories; got[0] != "Debt" || got[1] != "dataset 2" {
		t.Errorf("Categories = %v", got)
	}

	if _, err := s.Window([]Field{"currency"}, nil); !errors.Is(err, ErrUnknownField) {
		t.Errorf("err = %v, want ErrUnknownField", err)
	}
}

func TestParseField(t *testing.T) {
	if f, err := ParseField("debtToNetWorth"); err != nil || f != FieldDebtToNetWorth {
		t.Errorf("ParseField(debtToNetWorth) = %q, %v", f, err)
	}
	if _, err := ParseField("dates"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("ParseField(dates) err = %v, want ErrUnknownField", err)
	}
}

func TestDashboardLayout_WindowsEveryChart(t *testing.T) {
	s := Aggregate([]*domain.FinancialRecord{record(day(2023, 1, 1), "usd", 1, 2, 3)}, "usd")

	for _, group := range DashboardLayout {
		for _, chart := range group.Charts {
			w, err := s.Window(chart.Fields, chart.Labels)
			if err != nil {
				t.Errorf("%s/%s: %v", group.Title, chart.Title, err)
				continue
			}
			if w.BarData.Count != len(chart.Fields) {
				t.Errorf("%s: Count = %d, want %d", chart.Title, w.BarData.Count, len(chart.Fields))
			}
		}
	}
}

func TestBuildDashboard(t *testing.T) {
	s := Aggregate([]*domain.FinancialRecord{record(day(2023, 1, 1), "gbp", 1, 2, 3)}, "eur")

	d, err := BuildDashboard(&s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.DatasetCurrency != "gbp" {
		t.Errorf("DatasetCurrency = %q, want gbp", d.DatasetCurrency)
	}
	if len(d.Groups) != len(DashboardLayout) {
		t.Fatalf("len(Groups) = %d, want %d", len(d.Groups), len(DashboardLayout))
	}
	debt := d.Groups[2]
	if debt.Title != "Debt" || debt.Charts[1].DataType != DataTypePercentage {
		t.Errorf("unexpected debt group: %+v", debt)
	}
}

func TestRows_SortedWithMetrics(t *testing.T) {
	rows := Rows([]*domain.FinancialRecord{
		record(day(2024, 1, 1), "usd", 10, 5, 20),
		record(day(2023, 1, 1), "usd", 1, 1, 0),
	})

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if !rows[0].Record.Date.Equal(day(2023, 1, 1)) {
		t.Errorf("first row date = %v, want 2023-01-01", rows[0].Record.Date)
	}
	if rows[1].Metrics.TotalAssets != 15 || rows[1].Metrics.NetWorth != -5 {
		t.Errorf("metrics = %+v, want total 15, net -5", rows[1].Metrics)
	}
}
