package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"moneytrail/internal/finance"
	"moneytrail/internal/format"
)

// ContentType is the MIME type of an xlsx workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the name of the only sheet in the workbook
const SheetName = "Money Breakdown"

// Columns are the header cells of the sheet, in order
var Columns = []string{
	"Date",
	"Gross Income YTD",
	"Taxes Paid YTD",
	"Assets Ex Cash",
	"Total Cash",
	"Total Assets",
	"Total Debt",
	"Net Worth",
}

// FileName returns the download name for an export made on day
func FileName(day time.Time) string {
	return fmt.Sprintf("money-breakdown-%s.xlsx", day.Format("2006-01-02"))
}

// WriteWorkbook writes the records table as an xlsx workbook
func WriteWorkbook(w io.Writer, rows []finance.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}
	amountFormat := "0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFormat})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	for i, row := range rows {
		r := row.Record
		line := []any{
			r.Date,
			format.Fixed(r.GrossIncomeYtd),
			format.Fixed(r.TaxesPaidYtd),
			format.Fixed(r.AssetsExCash),
			format.Fixed(r.Cash),
			format.Fixed(row.Metrics.TotalAssets),
			format.Fixed(r.Debt),
			format.Fixed(row.Metrics.NetWorth),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &line); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		last := len(rows) + 1
		if err := f.SetCellStyle(SheetName, "A2", fmt.Sprintf("A%d", last), dateStyle); err != nil {
			return fmt.Errorf("failed to style dates: %w", err)
		}
		if err := f.SetCellStyle(SheetName, "B2", fmt.Sprintf("H%d", last), amountStyle); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
