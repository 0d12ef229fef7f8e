// Package money provides currency-safe monetary values for statement
// amounts. It wraps go-money for safe arithmetic and display and
// shopspring/decimal for precise conversion from parsed statement cells.
package money

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// GHS is the Ghanaian cedi, the currency MoMo statements are denominated in.
const GHS = "GHS"

// Money represents a monetary value with currency.
type Money struct {
	m *money.Money
}

// New creates a Money value from minor units (pesewas for GHS).
func New(minorUnits int64, currencyCode string) *Money {
	return &Money{m: money.New(minorUnits, currencyCode)}
}

// Zero returns a zero Money value for the given currency.
func Zero(currencyCode string) *Money {
	return New(0, currencyCode)
}

// FromDecimal converts a decimal amount (major units) to Money.
// This is the bridge from parsed statement values to display values.
func FromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		currency = money.GetCurrency(GHS)
	}
	multiplier := decimal.New(1, int32(currency.Fraction))
	minor := amount.Mul(multiplier).Round(0).IntPart()
	return New(minor, currencyCode)
}

// FromString parses an amount string like "1,234.56" or "GHS 32.46".
func FromString(amount, currencyCode string) (*Money, error) {
	amount = strings.TrimSpace(amount)
	amount = strings.ReplaceAll(amount, ",", "")
	if code := money.GetCurrency(currencyCode); code != nil {
		amount = strings.TrimSpace(strings.TrimPrefix(amount, code.Code))
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return FromDecimal(d, currencyCode), nil
}

// Amount returns the value in minor units.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 currency code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// IsZero reports whether the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// Add adds two Money values. Returns an error if currencies don't match.
func (m *Money) Add(other *Money) (*Money, error) {
	if m == nil || m.m == nil {
		return other, nil
	}
	if other == nil || other.m == nil {
		return m, nil
	}
	result, err := m.m.Add(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: result}, nil
}

// Display returns a formatted string for display (e.g., "GH₵1,234.56").
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return money.New(0, GHS).Display()
	}
	return m.m.Display()
}

// String returns the amount as a plain decimal string (e.g., "1234.56").
func (m *Money) String() string {
	return m.ToDecimal().StringFixed(2)
}

// ToDecimal converts to decimal.Decimal in major units.
func (m *Money) ToDecimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	d := decimal.NewFromInt(m.m.Amount())
	divisor := decimal.New(1, int32(m.m.Currency().Fraction))
	return d.Div(divisor)
}
