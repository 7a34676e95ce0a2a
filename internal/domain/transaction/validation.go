package transaction

import (
	"context"

	"github.com/solveza-payment-ledger/internal/domain/account"
	"github.com/solveza-payment-ledger/internal/domain/money"
	"github.com/solveza-payment-ledger/internal/domain/shared"
)

// ErrInvalidTransaction reports a business-rule violation on transaction
// input, with a human-readable reason.
type ErrInvalidTransaction struct {
	Reason string
}

func (e ErrInvalidTransaction) Error() string {
	return "invalid transaction: " + e.Reason
}

// ValidationService enforces transaction invariants at the use-case
// boundary, before the entity is constructed and persisted.
type ValidationService struct {
	accounts account.Repository
}

// NewValidationService creates a new transaction validation service.
func NewValidationService(accounts account.Repository) *ValidationService {
	return &ValidationService{accounts: accounts}
}

// ValidateAccountExists fails with account.ErrAccountNotFound when the
// target account is unknown. Referential integrity lives here, not in the
// entity.
func (s *ValidationService) ValidateAccountExists(ctx context.Context, accountID shared.AccountID) error {
	return shared.CheckExists(ctx,
		func(ctx context.Context) (bool, error) { return s.accounts.ExistsByID(ctx, accountID) },
		account.ErrAccountNotFound{AccountID: accountID},
	)
}

// ValidateAmount requires a present, strictly positive amount. This is
// stricter than Money's own invariant: a zero Money is valid, a
// zero-amount transaction is not.
func (s *ValidationService) ValidateAmount(amount money.Money) error {
	if amount.Currency() == "" {
		return ErrInvalidTransaction{Reason: "amount is required"}
	}
	if !amount.IsPositive() {
		return ErrInvalidTransaction{Reason: "amount must be positive"}
	}
	return nil
}

// ValidateType requires one of the defined transaction types.
func (s *ValidationService) ValidateType(t Type) error {
	if t == "" {
		return ErrInvalidTransaction{Reason: "type is required"}
	}
	if !t.Valid() {
		return ErrInvalidTransaction{Reason: "unknown transaction type: " + string(t)}
	}
	return nil
}
