package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		m, err := New(decimal.NewFromInt(50000), JPY)
		require.NoError(t, err)
		assert.Equal(t, JPY, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(50000)))
	})

	t.Run("ZeroAmountAllowed", func(t *testing.T) {
		m, err := New(decimal.Zero, "USD")
		require.NoError(t, err)
		assert.True(t, m.IsZero())
		assert.False(t, m.IsPositive())
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		_, err := New(decimal.NewFromInt(-1), JPY)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("MissingCurrency", func(t *testing.T) {
		_, err := New(decimal.NewFromInt(1), "")
		assert.ErrorIs(t, err, ErrCurrencyRequired)
	})

	t.Run("InvalidCurrency", func(t *testing.T) {
		for _, code := range []Currency{"jpy", "YENS", "J1Y", "¥¥¥"} {
			_, err := New(decimal.NewFromInt(1), code)
			assert.ErrorIs(t, err, ErrInvalidCurrencyCode, "code %q", code)
		}
	})
}

func TestNewFromString(t *testing.T) {
	t.Run("DecimalString", func(t *testing.T) {
		m, err := NewFromString("12.50", "USD")
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("12.50")))
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := NewFromString("twelve", "USD")
		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("SameCurrency", func(t *testing.T) {
		sum, err := Yen(50000).Add(Yen(12000))
		require.NoError(t, err)
		assert.True(t, sum.Equal(Yen(62000)))
	})

	t.Run("CurrencyMismatch", func(t *testing.T) {
		usd, err := New(decimal.NewFromInt(10), "USD")
		require.NoError(t, err)

		_, err = Yen(100).Add(usd)
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})
}

func TestMoney_Subtract(t *testing.T) {
	t.Run("SameCurrency", func(t *testing.T) {
		diff, err := Yen(50000).Subtract(Yen(12000))
		require.NoError(t, err)
		assert.True(t, diff.Equal(Yen(38000)))
	})

	t.Run("ResultWouldGoNegative", func(t *testing.T) {
		_, err := Yen(100).Subtract(Yen(500))
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("CurrencyMismatch", func(t *testing.T) {
		eur, err := New(decimal.NewFromInt(10), "EUR")
		require.NoError(t, err)

		_, err = Yen(100).Subtract(eur)
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})
}

func TestMoney_Equal(t *testing.T) {
	usd, err := New(decimal.NewFromInt(100), "USD")
	require.NoError(t, err)

	assert.True(t, Yen(100).Equal(Yen(100)))
	assert.False(t, Yen(100).Equal(Yen(101)))
	assert.False(t, Yen(100).Equal(usd), "same amount, different currency")
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "500 JPY", Yen(500).String())
}
