// Package export renders finance reports for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/SamHez/bodymax-gym/internal/domain"
)

// FinanceCSV renders the monthly series plus totals as CSV.
func FinanceCSV(stats domain.FinanceStats) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"month", "revenue_k", "expenses_k", "profit_k"})
	for _, b := range stats.MonthlyData {
		_ = w.Write([]string{
			b.Month,
			strconv.FormatFloat(b.Revenue, 'f', 1, 64),
			strconv.FormatFloat(b.Expenses, 'f', 1, 64),
			strconv.FormatFloat(b.Profit, 'f', 1, 64),
		})
	}
	_ = w.Write(nil)
	_ = w.Write([]string{"total_revenue", strconv.FormatInt(stats.Revenue, 10)})
	_ = w.Write([]string{"total_expenses", strconv.FormatInt(stats.Expenses, 10)})
	_ = w.Write([]string{"net_profit", strconv.FormatInt(stats.NetProfit, 10)})
	w.Flush()
	return buf.Bytes(), w.Error()
}

// FinanceXLSX renders the report as a styled workbook: a summary block, the
// monthly series, and the expense category split.
func FinanceXLSX(stats domain.FinanceStats) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Finance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	summary := [][]any{
		{"Total Revenue (RWF)", stats.Revenue},
		{"Total Expenses (RWF)", stats.Expenses},
		{"Net Profit (RWF)", stats.NetProfit},
		{"Transactions", stats.Transactions},
		{"Mobile Money Revenue", stats.MobileRevenue},
		{"Cash Revenue", stats.CashRevenue},
	}
	for r, row := range summary {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	headerRow := len(summary) + 2
	header := []string{"Month", "Revenue (k)", "Expenses (k)", "Profit (k)"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, headerRow)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, b := range stats.MonthlyData {
		row := headerRow + 1 + r
		values := []any{b.Month, b.Revenue, b.Expenses, b.Profit}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	catRow := headerRow + len(stats.MonthlyData) + 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", catRow), "Expense Category")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", catRow), "Amount (RWF)")
	r := catRow + 1
	for _, cat := range domain.ExpenseCategories {
		amount, ok := stats.ExpenseCategories[cat]
		if !ok {
			continue
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), cat)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), amount)
		r++
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "D", 14)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("D%d", headerRow), style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
