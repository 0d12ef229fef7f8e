// Package export renders a processed batch to CSV and XLSX for the
// caller to hand to the user.
package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/kennedy-ak/expense/internal/statement"
)

// transactionRow is the flat CSV shape of one transaction.
type transactionRow struct {
	Date              string `csv:"date"`
	PaymentType       string `csv:"payment_type"`
	CounterpartyName  string `csv:"counterparty_name"`
	CounterpartyPhone string `csv:"counterparty_phone"`
	Amount            string `csv:"amount"`
	Direction         string `csv:"direction"`
	ExternalID        string `csv:"transaction_id"`
	Fees              string `csv:"fees"`
	Tax               string `csv:"tax"`
	BalanceAfter      string `csv:"balance_after"`
	Reference         string `csv:"reference"`
	Category          string `csv:"category"`
	IsDuplicate       bool   `csv:"is_duplicate"`
}

const dateLayout = "2006-01-02 15:04"

func toRow(tx *statement.Transaction) transactionRow {
	return transactionRow{
		Date:              tx.Timestamp.Format(dateLayout),
		PaymentType:       tx.PaymentType,
		CounterpartyName:  tx.CounterpartyName,
		CounterpartyPhone: tx.CounterpartyPhone,
		Amount:            tx.Amount.StringFixed(2),
		Direction:         string(tx.Direction),
		ExternalID:        tx.ExternalID,
		Fees:              tx.Fees.StringFixed(2),
		Tax:               tx.Tax.StringFixed(2),
		BalanceAfter:      tx.BalanceAfter.StringFixed(2),
		Reference:         tx.Reference,
		Category:          tx.Category,
		IsDuplicate:       tx.IsDuplicate,
	}
}

// WriteCSV writes the batch as CSV with a header row, preserving
// input order.
func WriteCSV(w io.Writer, txs []statement.Transaction) error {
	rows := make([]transactionRow, len(txs))
	for i := range txs {
		rows[i] = toRow(&txs[i])
	}
	return gocsv.Marshal(&rows, w)
}
