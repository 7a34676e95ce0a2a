// Package transaction holds the immutable transaction record, its
// validation service, and the balance derivation over transaction history.
package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/solveza-payment-ledger/internal/domain/money"
	"github.com/solveza-payment-ledger/internal/domain/shared"
)

// Common errors
var (
	ErrAmountRequired      = errors.New("amount is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrAccountIDRequired   = errors.New("account id is required")
	ErrIDRequired          = errors.New("transaction id is required")
	ErrTimestampsRequired  = errors.New("executed and created timestamps are required")
)

// Type distinguishes the two monetary movements recorded in the ledger.
type Type string

const (
	TypeDeposit Type = "DEPOSIT"
	TypePayment Type = "PAYMENT"
)

// Valid reports whether the value is one of the defined variants.
func (t Type) Valid() bool {
	return t == TypeDeposit || t == TypePayment
}

// Transaction is a single monetary movement against one account. It is
// immutable once created: there is no update operation, only create and
// delete. ExecutedAt is the business timestamp, CreatedAt the record
// timestamp; factories stamp both from one instant.
type Transaction struct {
	ID          shared.TransactionID
	AccountID   shared.AccountID
	Type        Type
	Amount      money.Money
	Description string
	ExecutedAt  time.Time
	CreatedAt   time.Time
}

// NewDeposit records money handed over to the payer for safekeeping.
func NewDeposit(accountID shared.AccountID, amount money.Money, description string) (*Transaction, error) {
	return newTransaction(accountID, TypeDeposit, amount, description)
}

// NewPayment records money paid out on the requester's behalf.
func NewPayment(accountID shared.AccountID, amount money.Money, description string) (*Transaction, error) {
	return newTransaction(accountID, TypePayment, amount, description)
}

func newTransaction(accountID shared.AccountID, t Type, amount money.Money, description string) (*Transaction, error) {
	if accountID.IsZero() {
		return nil, ErrAccountIDRequired
	}
	if amount.Currency() == "" {
		return nil, ErrAmountRequired
	}
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return nil, ErrDescriptionRequired
	}

	// One instant for both timestamps; two clock reads could skew.
	now := time.Now().UTC()
	return &Transaction{
		ID:          shared.NewTransactionID(),
		AccountID:   accountID,
		Type:        t,
		Amount:      amount,
		Description: trimmed,
		ExecutedAt:  now,
		CreatedAt:   now,
	}, nil
}

// Reconstruct rehydrates a transaction from persisted state. The stored
// description is trusted as already trimmed.
func Reconstruct(id shared.TransactionID, accountID shared.AccountID, t Type, amount money.Money, description string, executedAt, createdAt time.Time) (*Transaction, error) {
	if id.IsZero() {
		return nil, ErrIDRequired
	}
	if executedAt.IsZero() || createdAt.IsZero() {
		return nil, ErrTimestampsRequired
	}

	return &Transaction{
		ID:          id,
		AccountID:   accountID,
		Type:        t,
		Amount:      amount,
		Description: description,
		ExecutedAt:  executedAt,
		CreatedAt:   createdAt,
	}, nil
}

// IsDeposit reports whether the transaction increases the balance.
func (t *Transaction) IsDeposit() bool {
	return t.Type == TypeDeposit
}

// IsPayment reports whether the transaction decreases the balance.
func (t *Transaction) IsPayment() bool {
	return t.Type == TypePayment
}
