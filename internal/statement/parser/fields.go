// Package parser converts raw statement cells into typed values and
// normalizes whole table rows into transactions.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kennedy-ak/expense/internal/statement"
)

// ErrUnparsableDate is returned when a cell matches none of the known
// statement date formats.
var ErrUnparsableDate = errors.New("unrecognized date format")

// dateFormats are tried in order; the first successful parse wins.
// The primary MoMo export format is "20 Nov 2025 18:18".
var dateFormats = []string{
	"2 Jan 2006 15:04",
	"2 January 2006 15:04",
	"2/1/2006 15:04",
	"2006-01-02 15:04:05",
	"2 Jan 2006",
}

// currencyNoise strips the GHS currency marker, whitespace, and
// thousands separators from numeric cells.
var currencyNoise = regexp.MustCompile(`[GHS\s,]`)

// ParseDate parses a statement timestamp cell. It never panics; input
// that matches no known format yields ErrUnparsableDate.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsableDate, s)
}

// ParseAmount parses an amount cell like "-25.00", "+50.00" or
// "GHS 1,234.56" into a non-negative magnitude and an expense flag.
// A leading '-' marks an expense; '+' or no sign marks the opposite.
// Empty or unparsable input yields (0, false) — callers must treat a
// zero magnitude as "reject this row", not as a valid zero amount.
func ParseAmount(s string) (decimal.Decimal, bool) {
	cleaned := currencyNoise.ReplaceAllString(s, "")
	if cleaned == "" {
		return decimal.Zero, false
	}

	isExpense := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimLeft(cleaned, "+-")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, isExpense
}

// ParseFeeOrTax parses a fee or tax cell like "GHS 0.50" into a
// non-negative magnitude. Sign is not tracked; fees are always
// deducted. Unparsable input yields zero.
func ParseFeeOrTax(s string) decimal.Decimal {
	return parseNumeric(s).Abs()
}

// ParseBalance parses a balance cell, preserving sign as reported by
// the source. Unparsable input yields zero.
func ParseBalance(s string) decimal.Decimal {
	return parseNumeric(s)
}

func parseNumeric(s string) decimal.Decimal {
	cleaned := currencyNoise.ReplaceAllString(s, "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SplitCounterparty splits a combined To/From cell like
// "+233 54 86 74 41 0, JAMES F. TORI VENTURES" into phone and name.
// When the first segment contains no digit or '+', the source omitted
// the phone and the whole segment is the name.
func SplitCounterparty(s string) (phone, name string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}

	parts := strings.SplitN(s, ",", 2)
	phone = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		name = strings.TrimSpace(parts[1])
	}

	if phone != "" && !strings.ContainsAny(phone, "0123456789+") {
		name = phone
		phone = ""
	}
	return phone, name
}

// transferKeywords identify rail labels that mean a transfer regardless
// of the amount's sign.
var transferKeywords = []string{"TRANSFER", "BANKPUSH", "BANK PUSH"}

// ClassifyDirection derives the transaction direction from the payment
// type label and the expense flag produced by ParseAmount. A transfer
// keyword in the label takes priority over the sign.
func ClassifyDirection(paymentType string, isExpense bool) statement.Direction {
	upper := strings.ToUpper(paymentType)
	for _, kw := range transferKeywords {
		if strings.Contains(upper, kw) {
			return statement.DirectionTransfer
		}
	}
	if isExpense {
		return statement.DirectionExpense
	}
	return statement.DirectionIncome
}
