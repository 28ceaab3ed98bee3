package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"moneytrail/internal/domain"
	"moneytrail/internal/finance"
)

func TestFileName(t *testing.T) {
	got := FileName(time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC))
	if got != "money-breakdown-2024-03-09.xlsx" {
		t.Errorf("FileName = %q", got)
	}
}

func TestWriteWorkbook(t *testing.T) {
	records := []*domain.FinancialRecord{
		{RecordValues: domain.RecordValues{Date: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Currency: "usd", Cash: 200, AssetsExCash: 0.555}},
		{RecordValues: domain.RecordValues{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Currency: "usd", Cash: 100, Debt: 50}},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, finance.Rows(records)); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][7] != "Net Worth" {
		t.Errorf("header = %v", rows[0])
	}
	// first data row is the earliest record; net worth 100 - 50
	if rows[1][7] != "50" {
		t.Errorf("net worth cell = %q, want 50", rows[1][7])
	}
	if rows[2][3] != "0.56" {
		t.Errorf("assets ex cash cell = %q, want 0.56", rows[2][3])
	}
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, nil); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected a workbook with a header row")
	}
}
