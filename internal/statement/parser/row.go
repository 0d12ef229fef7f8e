package parser

import (
	"errors"
	"regexp"
	"strings"

	"github.com/kennedy-ak/expense/internal/statement"
)

// ErrNotDataRow marks a row classified as non-data (header, spacer,
// decoration). Skipping these is expected, not an error.
var ErrNotDataRow = errors.New("not a data row")

// ErrRowSkipped marks a data-looking row that was soft-rejected: its
// date was unparsable or its amount was zero. No transaction and no
// diagnostic are produced; callers may count these for auditing.
var ErrRowSkipped = errors.New("row skipped")

// dateLike is the cheap classification check for data rows, matching
// strings such as "20 Nov 2025" anywhere in the first cell.
var dateLike = regexp.MustCompile(`\d{1,2}\s+\w+\s+\d{4}`)

// ColumnSchema maps transaction fields to cell indices. An index of -1
// means the column is absent from the source table.
type ColumnSchema struct {
	Date         int
	PaymentType  int
	Counterparty int
	Amount       int
	ExternalID   int
	Fees         int
	Tax          int
	Balance      int
	Reference    int
}

// DefaultSchema returns the positional layout of MTN MoMo statement
// tables: date, payment type, to/from, amount, transaction id, fees,
// tax, balance, reference.
func DefaultSchema() ColumnSchema {
	return ColumnSchema{
		Date:         0,
		PaymentType:  1,
		Counterparty: 2,
		Amount:       3,
		ExternalID:   4,
		Fees:         5,
		Tax:          6,
		Balance:      7,
		Reference:    8,
	}
}

// SchemaFromHeader derives a schema from a detected header row by cell
// name, falling back to the default position for any field the header
// does not name. Bounds are re-checked at extraction time, so a default
// position past the end of a short row safely reads as empty.
func SchemaFromHeader(header []string) ColumnSchema {
	schema := ColumnSchema{
		Date: -1, PaymentType: -1, Counterparty: -1, Amount: -1,
		ExternalID: -1, Fees: -1, Tax: -1, Balance: -1, Reference: -1,
	}

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case schema.ExternalID < 0 && strings.Contains(name, "transaction id"):
			schema.ExternalID = i
		case schema.Date < 0 && strings.Contains(name, "date"):
			schema.Date = i
		case schema.PaymentType < 0 && strings.Contains(name, "payment"):
			schema.PaymentType = i
		case schema.Counterparty < 0 && (strings.Contains(name, "to/from") || strings.Contains(name, "account name")):
			schema.Counterparty = i
		case schema.Amount < 0 && strings.Contains(name, "amount"):
			schema.Amount = i
		case schema.Fees < 0 && strings.Contains(name, "fee"):
			schema.Fees = i
		case schema.Tax < 0 && strings.Contains(name, "tax"):
			schema.Tax = i
		case schema.Balance < 0 && strings.Contains(name, "balance"):
			schema.Balance = i
		case schema.Reference < 0 && strings.Contains(name, "reference"):
			schema.Reference = i
		}
	}

	// Positional fallback for anything the header did not name.
	def := DefaultSchema()
	if schema.Date < 0 {
		schema.Date = def.Date
	}
	if schema.PaymentType < 0 {
		schema.PaymentType = def.PaymentType
	}
	if schema.Counterparty < 0 {
		schema.Counterparty = def.Counterparty
	}
	if schema.Amount < 0 {
		schema.Amount = def.Amount
	}
	if schema.ExternalID < 0 {
		schema.ExternalID = def.ExternalID
	}
	if schema.Fees < 0 {
		schema.Fees = def.Fees
	}
	if schema.Tax < 0 {
		schema.Tax = def.Tax
	}
	if schema.Balance < 0 {
		schema.Balance = def.Balance
	}
	if schema.Reference < 0 {
		schema.Reference = def.Reference
	}
	return schema
}

// RowNormalizer turns one raw table row into a transaction using a
// fixed column schema. It is stateless and safe for concurrent use.
type RowNormalizer struct {
	schema ColumnSchema
}

// NewRowNormalizer creates a normalizer for the given schema.
func NewRowNormalizer(schema ColumnSchema) *RowNormalizer {
	return &RowNormalizer{schema: schema}
}

// Normalize converts a raw row into a transaction. Exactly one outcome
// per row:
//   - (tx, nil) for a fully parsed data row;
//   - (nil, ErrNotDataRow) for headers, spacers, and rows with fewer
//     than four populated cells;
//   - (nil, ErrRowSkipped) for data rows with an unparsable date or a
//     zero amount;
//   - (nil, err) for anything else, which the caller records as a
//     row-level error.
//
// The input slice is never mutated.
func (n *RowNormalizer) Normalize(row []string, page, rowNum int) (*statement.Transaction, error) {
	if len(row) == 0 || populatedCells(row) < 4 {
		return nil, ErrNotDataRow
	}

	cell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	first := cell(n.schema.Date)
	if !dateLike.MatchString(first) {
		return nil, ErrNotDataRow
	}

	timestamp, err := ParseDate(first)
	if err != nil {
		return nil, ErrRowSkipped
	}

	amount, isExpense := ParseAmount(cell(n.schema.Amount))
	if amount.IsZero() {
		return nil, ErrRowSkipped
	}

	paymentType := cell(n.schema.PaymentType)
	phone, name := SplitCounterparty(cell(n.schema.Counterparty))

	return &statement.Transaction{
		Timestamp:         timestamp,
		PaymentType:       paymentType,
		CounterpartyName:  name,
		CounterpartyPhone: phone,
		Amount:            amount,
		Direction:         ClassifyDirection(paymentType, isExpense),
		ExternalID:        cell(n.schema.ExternalID),
		Fees:              ParseFeeOrTax(cell(n.schema.Fees)),
		Tax:               ParseFeeOrTax(cell(n.schema.Tax)),
		BalanceAfter:      ParseBalance(cell(n.schema.Balance)),
		Reference:         cell(n.schema.Reference),
		Page:              page,
		Row:               rowNum,
	}, nil
}

func populatedCells(row []string) int {
	count := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			count++
		}
	}
	return count
}
