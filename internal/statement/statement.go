// Package statement defines the core types produced by the mobile-money
// statement ingestion pipeline: parsed transactions, row-level errors,
// and the direction taxonomy shared by every stage.
package statement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies a transaction relative to the account holder.
type Direction string

const (
	DirectionIncome   Direction = "income"
	DirectionExpense  Direction = "expense"
	DirectionTransfer Direction = "transfer"
)

// Transaction is one fully normalized statement row. Category and
// IsDuplicate are assigned after normalization, in that order; every
// emitted transaction has a non-zero timestamp, a non-zero amount, and
// a direction.
type Transaction struct {
	Timestamp         time.Time       `json:"timestamp"`
	PaymentType       string          `json:"payment_type,omitempty"`
	CounterpartyName  string          `json:"counterparty_name,omitempty"`
	CounterpartyPhone string          `json:"counterparty_phone,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Direction         Direction       `json:"direction"`
	ExternalID        string          `json:"external_id,omitempty"`
	Fees              decimal.Decimal `json:"fees"`
	Tax               decimal.Decimal `json:"tax"`
	BalanceAfter      decimal.Decimal `json:"balance_after"`
	Reference         string          `json:"reference,omitempty"`

	// Assigned post-parse.
	Category    string `json:"category,omitempty"`
	IsDuplicate bool   `json:"is_duplicate"`

	// CategoryGuess holds a fuzzy near-miss suggestion when the
	// transaction fell through to the fallback category. Advisory only.
	CategoryGuess string `json:"category_guess,omitempty"`

	// Provenance within the source document, for diagnostics only.
	Page int `json:"page"`
	Row  int `json:"row"`
}

// Counterparty returns the best available label for the other party:
// the name when present, otherwise the phone number.
func (t *Transaction) Counterparty() string {
	if t.CounterpartyName != "" {
		return t.CounterpartyName
	}
	return t.CounterpartyPhone
}

// RowError records a row that failed normalization. Captured instead of
// aborting so one corrupt row never sinks the batch.
type RowError struct {
	Page    int      `json:"page"`
	Row     int      `json:"row"`
	Message string   `json:"error"`
	Raw     []string `json:"data,omitempty"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("page %d, row %d: %s", e.Page, e.Row, e.Message)
}
