package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"restopos-backend/internal/analytics"
	"restopos-backend/internal/domain"
)

// DailyReport holds the figures rendered into the end-of-day workbook.
type DailyReport struct {
	Date           time.Time
	TotalSales     float64
	Comparison     analytics.Comparison
	Reconciliation analytics.Reconciliation
	VAT            analytics.VATBreakdown
	PeakHours      []analytics.PeakHour
	TopItems       []domain.ItemSales
}

// DailyReportXLSX renders the report as an Excel workbook with a summary
// sheet and a top-items sheet.
func DailyReportXLSX(rep DailyReport) ([]byte, error) {
	f := excelize.NewFile()
	summary := "Summary"
	index, err := f.NewSheet(summary)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	rows := [][]any{
		{"Date", rep.Date.Format("2006-01-02")},
		{"Total Sales", rep.TotalSales},
		{"Vs Yesterday", rep.Comparison.Change},
		{"Change %", rep.Comparison.ChangePercent},
		{"Cash", rep.Reconciliation.ExpectedCash},
		{"Card", rep.Reconciliation.ExpectedCard},
		{"Mobile", rep.Reconciliation.ExpectedMobile},
		{"Total Expected", rep.Reconciliation.TotalExpected},
		{"Net Subtotal", rep.VAT.Subtotal},
		{"VAT", rep.VAT.VAT},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(summary, cell, v)
		}
	}
	_ = f.SetColWidth(summary, "A", "A", 18)
	_ = f.SetColWidth(summary, "B", "B", 14)

	peakRow := len(rows) + 2
	_ = f.SetCellValue(summary, fmt.Sprintf("A%d", peakRow), "Peak Hours")
	for i, ph := range rep.PeakHours {
		r := peakRow + 1 + i
		_ = f.SetCellValue(summary, fmt.Sprintf("A%d", r), ph.Hour)
		_ = f.SetCellValue(summary, fmt.Sprintf("B%d", r), ph.Orders)
		_ = f.SetCellValue(summary, fmt.Sprintf("C%d", r), ph.Revenue)
	}

	items := "Top Items"
	if _, err := f.NewSheet(items); err != nil {
		return nil, err
	}
	header := []string{"Item", "Quantity", "Revenue"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(items, cell, v)
	}
	for r, it := range rep.TopItems {
		row := r + 2
		values := []any{it.Name, it.Quantity, it.Revenue}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(items, cell, v)
		}
	}
	_ = f.SetColWidth(items, "A", "A", 28)

	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(items, "A1", "C1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
