package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDecimal(t *testing.T) {
	t.Run("converts major units to pesewas", func(t *testing.T) {
		m := FromDecimal(decimal.RequireFromString("32.46"), GHS)
		assert.Equal(t, int64(3246), m.Amount())
		assert.Equal(t, GHS, m.Currency())
	})

	t.Run("unknown currency falls back to GHS", func(t *testing.T) {
		m := FromDecimal(decimal.RequireFromString("1.00"), "NOPE")
		assert.Equal(t, int64(100), m.Amount())
	})

	t.Run("round trips through ToDecimal", func(t *testing.T) {
		d := decimal.RequireFromString("1234.56")
		assert.True(t, d.Equal(FromDecimal(d, GHS).ToDecimal()))
	})
}

func TestFromString(t *testing.T) {
	t.Run("parses plain amount", func(t *testing.T) {
		m, err := FromString("25.00", GHS)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), m.Amount())
	})

	t.Run("strips currency code and thousands separators", func(t *testing.T) {
		m, err := FromString("GHS 1,234.56", GHS)
		require.NoError(t, err)
		assert.Equal(t, int64(123456), m.Amount())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := FromString("not money", GHS)
		assert.Error(t, err)
	})
}

func TestAdd(t *testing.T) {
	a := New(150, GHS)
	b := New(50, GHS)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(200), sum.Amount())

	t.Run("nil operands are treated as zero", func(t *testing.T) {
		var nilMoney *Money
		sum, err := nilMoney.Add(b)
		require.NoError(t, err)
		assert.Equal(t, int64(50), sum.Amount())
	})

	t.Run("currency mismatch is an error", func(t *testing.T) {
		_, err := a.Add(New(100, "USD"))
		assert.Error(t, err)
	})
}

func TestString(t *testing.T) {
	assert.Equal(t, "32.46", New(3246, GHS).String())
	assert.Equal(t, "0.00", Zero(GHS).String())
	var nilMoney *Money
	assert.Equal(t, "0.00", nilMoney.String())
}
