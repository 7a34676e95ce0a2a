// Package money provides the immutable monetary value used everywhere an
// amount appears in the ledger. Amounts are exact decimals, never floats.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrNegativeAmount      = errors.New("amount must be zero or positive")
	ErrCurrencyRequired    = errors.New("currency is required")
	ErrInvalidCurrencyCode = errors.New("currency must be a 3-letter uppercase code")
	ErrCurrencyMismatch    = errors.New("cannot operate on different currencies")
)

// Currency is an ISO 4217 currency code.
type Currency string

// JPY is the default currency for accounts with no transaction history.
const JPY Currency = "JPY"

// Valid reports whether the code is a 3-letter uppercase currency code.
func (c Currency) Valid() bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Money is a non-negative amount tagged with a currency. The zero value is
// not a valid Money; construct through New or Zero.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value. It fails on a negative amount or a
// missing/invalid currency code.
func New(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if currency == "" {
		return Money{}, ErrCurrencyRequired
	}
	if !currency.Valid() {
		return Money{}, ErrInvalidCurrencyCode
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewFromString creates a Money value from a decimal string such as "1500"
// or "12.50".
func NewFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return New(d, currency)
}

// Zero returns a zero amount in the given currency.
func Zero(currency Currency) (Money, error) {
	return New(decimal.Zero, currency)
}

// Yen creates a JPY Money value from an integer amount.
func Yen(amount int64) Money {
	return Money{amount: decimal.NewFromInt(amount), currency: JPY}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency code.
func (m Money) Currency() Currency { return m.currency }

// Add returns the sum of both amounts. Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of both amounts. Currencies must match,
// and a result below zero fails with ErrNegativeAmount: a Money can never
// hold a negative amount, so callers that need signed arithmetic (the
// balance fold) work on raw decimals instead.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: result, currency: m.currency}, nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// Equal reports whether both values have the same currency and amount.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.String() + " " + string(m.currency)
}
