package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennedy-ak/expense/internal/statement"
)

func TestParseDate(t *testing.T) {
	t.Run("parses primary statement format", func(t *testing.T) {
		ts, err := ParseDate("20 Nov 2025 18:18")
		require.NoError(t, err)
		assert.Equal(t, 2025, ts.Year())
		assert.Equal(t, time.November, ts.Month())
		assert.Equal(t, 20, ts.Day())
		assert.Equal(t, 18, ts.Hour())
		assert.Equal(t, 18, ts.Minute())
	})

	t.Run("falls back through alternative formats", func(t *testing.T) {
		cases := map[string]string{
			"full month name": "20 November 2025 18:18",
			"slash numeric":   "20/11/2025 18:18",
			"iso with time":   "2025-11-20 18:18:00",
			"date only":       "20 Nov 2025",
		}
		for name, input := range cases {
			t.Run(name, func(t *testing.T) {
				ts, err := ParseDate(input)
				require.NoError(t, err)
				assert.Equal(t, 20, ts.Day())
				assert.Equal(t, time.November, ts.Month())
				assert.Equal(t, 2025, ts.Year())
			})
		}
	})

	t.Run("accepts single digit day", func(t *testing.T) {
		ts, err := ParseDate("5 Jan 2025 09:07")
		require.NoError(t, err)
		assert.Equal(t, 5, ts.Day())
	})

	t.Run("slash numeric accepts unpadded day and month", func(t *testing.T) {
		ts, err := ParseDate("5/11/2025 10:00")
		require.NoError(t, err)
		assert.Equal(t, 5, ts.Day())
		assert.Equal(t, time.November, ts.Month())
		assert.Equal(t, 2025, ts.Year())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		_, err := ParseDate("  20 Nov 2025 18:18  ")
		assert.NoError(t, err)
	})

	t.Run("unparsable input returns sentinel error", func(t *testing.T) {
		for _, input := range []string{"", "not a date", "Balance", "20-13-2025"} {
			_, err := ParseDate(input)
			assert.ErrorIs(t, err, ErrUnparsableDate, "input %q", input)
		}
	})
}

func TestParseAmount(t *testing.T) {
	t.Run("leading minus marks expense", func(t *testing.T) {
		amount, isExpense := ParseAmount("-25.00")
		assert.True(t, amount.Equal(decimal.RequireFromString("25.00")))
		assert.True(t, isExpense)
	})

	t.Run("leading plus is not expense", func(t *testing.T) {
		amount, isExpense := ParseAmount("+50.00")
		assert.True(t, amount.Equal(decimal.RequireFromString("50.00")))
		assert.False(t, isExpense)
	})

	t.Run("bare amount is not expense", func(t *testing.T) {
		amount, isExpense := ParseAmount("32.46")
		assert.True(t, amount.Equal(decimal.RequireFromString("32.46")))
		assert.False(t, isExpense)
	})

	t.Run("strips currency marker and thousands separators", func(t *testing.T) {
		amount, isExpense := ParseAmount("GHS 1,234.56")
		assert.True(t, amount.Equal(decimal.RequireFromString("1234.56")))
		assert.False(t, isExpense)
	})

	t.Run("negative with currency marker", func(t *testing.T) {
		amount, isExpense := ParseAmount("-GHS 2,500.00")
		assert.True(t, amount.Equal(decimal.RequireFromString("2500.00")))
		assert.True(t, isExpense)
	})

	t.Run("unparsable input yields zero and no expense flag", func(t *testing.T) {
		for _, input := range []string{"", "abc", "--", "12.3.4"} {
			amount, isExpense := ParseAmount(input)
			assert.True(t, amount.IsZero(), "input %q", input)
			assert.False(t, isExpense, "input %q", input)
		}
	})
}

func TestParseFeeOrTax(t *testing.T) {
	assert.True(t, ParseFeeOrTax("GHS 0.50").Equal(decimal.RequireFromString("0.50")))
	assert.True(t, ParseFeeOrTax("0.00").IsZero())
	assert.True(t, ParseFeeOrTax("").IsZero())
	assert.True(t, ParseFeeOrTax("n/a").IsZero())

	t.Run("sign is discarded", func(t *testing.T) {
		assert.True(t, ParseFeeOrTax("-0.50").Equal(decimal.RequireFromString("0.50")))
	})
}

func TestParseBalance(t *testing.T) {
	assert.True(t, ParseBalance("GHS 32.46").Equal(decimal.RequireFromString("32.46")))
	assert.True(t, ParseBalance("garbage").IsZero())

	t.Run("sign is preserved as reported", func(t *testing.T) {
		assert.True(t, ParseBalance("-10.00").Equal(decimal.RequireFromString("-10.00")))
	})
}

func TestSplitCounterparty(t *testing.T) {
	t.Run("splits phone and name on first comma", func(t *testing.T) {
		phone, name := SplitCounterparty("+233541234567, JAMES TORI")
		assert.Equal(t, "+233541234567", phone)
		assert.Equal(t, "JAMES TORI", name)
	})

	t.Run("name may itself contain commas", func(t *testing.T) {
		phone, name := SplitCounterparty("+233 54 86 74 41 0, TORI, VENTURES LTD")
		assert.Equal(t, "+233 54 86 74 41 0", phone)
		assert.Equal(t, "TORI, VENTURES LTD", name)
	})

	t.Run("first segment without digits is the name", func(t *testing.T) {
		phone, name := SplitCounterparty("KOFI MENSAH")
		assert.Empty(t, phone)
		assert.Equal(t, "KOFI MENSAH", name)
	})

	t.Run("empty input", func(t *testing.T) {
		phone, name := SplitCounterparty("")
		assert.Empty(t, phone)
		assert.Empty(t, name)
	})
}

func TestClassifyDirection(t *testing.T) {
	t.Run("transfer keyword beats sign", func(t *testing.T) {
		assert.Equal(t, statement.DirectionTransfer, ClassifyDirection("BANK PUSH", true))
		assert.Equal(t, statement.DirectionTransfer, ClassifyDirection("bankpush", false))
		assert.Equal(t, statement.DirectionTransfer, ClassifyDirection("Wallet Transfer", true))
	})

	t.Run("sign decides when no keyword matches", func(t *testing.T) {
		assert.Equal(t, statement.DirectionExpense, ClassifyDirection("CASH OUT", true))
		assert.Equal(t, statement.DirectionIncome, ClassifyDirection("CASH IN", false))
		assert.Equal(t, statement.DirectionIncome, ClassifyDirection("", false))
	})
}
