// Package summary aggregates a processed batch into totals, category
// breakdowns, and a final balance snapshot.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/kennedy-ak/expense/internal/statement"
	"github.com/kennedy-ak/expense/pkg/money"
)

// CategoryStat is the per-category slice of a batch.
type CategoryStat struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary holds the aggregate statistics for one import batch.
type Summary struct {
	Total           int             `json:"total"`
	NewTransactions int             `json:"new_transactions"`
	Duplicates      int             `json:"duplicates"`
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpense    decimal.Decimal `json:"total_expense"`
	TotalFees       decimal.Decimal `json:"total_fees"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	// FinalBalance is the balance_after of the last transaction in
	// input order. Statements are emitted chronologically, so input
	// order is treated as authoritative.
	FinalBalance decimal.Decimal         `json:"final_balance"`
	Categories   map[string]CategoryStat `json:"categories"`
}

// Build aggregates the batch in a single pass. The accumulations are
// commutative sums, so the result does not depend on how the caller
// produced the slice, except for FinalBalance which reads the last
// element. The input is not mutated.
func Build(txs []statement.Transaction) *Summary {
	s := &Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		TotalFees:    decimal.Zero,
		TotalTax:     decimal.Zero,
		FinalBalance: decimal.Zero,
		Categories:   make(map[string]CategoryStat),
	}

	for i := range txs {
		tx := &txs[i]
		s.Total++
		if tx.IsDuplicate {
			s.Duplicates++
		}

		switch tx.Direction {
		case statement.DirectionIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case statement.DirectionExpense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
		}
		s.TotalFees = s.TotalFees.Add(tx.Fees)
		s.TotalTax = s.TotalTax.Add(tx.Tax)

		cat := tx.Category
		if cat == "" {
			cat = "Other"
		}
		stat := s.Categories[cat]
		stat.Count++
		stat.Amount = stat.Amount.Add(tx.Amount)
		s.Categories[cat] = stat
	}

	s.NewTransactions = s.Total - s.Duplicates
	if len(txs) > 0 {
		s.FinalBalance = txs[len(txs)-1].BalanceAfter
	}
	return s
}

// DisplayTotals formats the monetary totals for human-readable output
// in the given currency.
type DisplayTotals struct {
	Income       string
	Expense      string
	Fees         string
	Tax          string
	FinalBalance string
}

// Display renders the summary's totals with currency formatting.
func (s *Summary) Display(currency string) DisplayTotals {
	return DisplayTotals{
		Income:       money.FromDecimal(s.TotalIncome, currency).Display(),
		Expense:      money.FromDecimal(s.TotalExpense, currency).Display(),
		Fees:         money.FromDecimal(s.TotalFees, currency).Display(),
		Tax:          money.FromDecimal(s.TotalTax, currency).Display(),
		FinalBalance: money.FromDecimal(s.FinalBalance, currency).Display(),
	}
}
