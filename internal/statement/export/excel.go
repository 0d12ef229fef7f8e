package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/kennedy-ak/expense/internal/statement"
	"github.com/kennedy-ak/expense/internal/statement/summary"
)

const (
	transactionsSheet = "Transactions"
	summarySheet      = "Summary"
)

var xlsxHeaders = []string{
	"Date", "Payment Type", "Counterparty Name", "Counterparty Phone",
	"Amount", "Direction", "Transaction ID", "Fees", "Tax",
	"Balance After", "Reference", "Category", "Duplicate",
}

// WriteXLSX writes the batch and its summary as a two-sheet workbook.
func WriteXLSX(w io.Writer, txs []statement.Transaction, sum *summary.Summary, currency string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(transactionsSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i := range txs {
		row := toRow(&txs[i])
		values := []interface{}{
			row.Date, row.PaymentType, row.CounterpartyName, row.CounterpartyPhone,
			row.Amount, row.Direction, row.ExternalID, row.Fees, row.Tax,
			row.BalanceAfter, row.Reference, row.Category, row.IsDuplicate,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(transactionsSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	if sum != nil {
		if err := writeSummarySheet(f, sum, currency); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sum *summary.Summary, currency string) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	totals := sum.Display(currency)
	lines := [][2]interface{}{
		{"Total Transactions", sum.Total},
		{"New Transactions", sum.NewTransactions},
		{"Duplicates", sum.Duplicates},
		{"Total Income", totals.Income},
		{"Total Expense", totals.Expense},
		{"Total Fees", totals.Fees},
		{"Total Tax", totals.Tax},
		{"Final Balance", totals.FinalBalance},
	}

	rowNum := 1
	for _, line := range lines {
		keyCell, _ := excelize.CoordinatesToCellName(1, rowNum)
		valCell, _ := excelize.CoordinatesToCellName(2, rowNum)
		if err := f.SetCellValue(summarySheet, keyCell, line[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, valCell, line[1]); err != nil {
			return err
		}
		rowNum++
	}

	rowNum++
	header, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetCellValue(summarySheet, header, "Category Breakdown"); err != nil {
		return err
	}
	rowNum++
	for _, name := range sortedCategoryNames(sum) {
		stat := sum.Categories[name]
		nameCell, _ := excelize.CoordinatesToCellName(1, rowNum)
		countCell, _ := excelize.CoordinatesToCellName(2, rowNum)
		amountCell, _ := excelize.CoordinatesToCellName(3, rowNum)
		if err := f.SetCellValue(summarySheet, nameCell, name); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, countCell, stat.Count); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, amountCell, stat.Amount.StringFixed(2)); err != nil {
			return err
		}
		rowNum++
	}
	return nil
}

// sortedCategoryNames gives the breakdown a stable row order.
func sortedCategoryNames(sum *summary.Summary) []string {
	names := make([]string, 0, len(sum.Categories))
	for name := range sum.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
