package account

import (
	"context"

	"github.com/solveza-payment-ledger/internal/domain/shared"
)

// Repository defines account persistence operations.
// Save is an upsert keyed by the account id; the storage layer must hold a
// unique constraint on the ordered (requester_id, payer_id) pair so that
// concurrent creators cannot both win the uniqueness check performed by the
// validation service.
type Repository interface {
	Save(ctx context.Context, acc *Account) error
	FindByID(ctx context.Context, id shared.AccountID) (*Account, error)
	FindByUserID(ctx context.Context, userID shared.UserID) ([]*Account, error)
	FindByRequesterID(ctx context.Context, requesterID shared.UserID) ([]*Account, error)
	FindByPayerID(ctx context.Context, payerID shared.UserID) ([]*Account, error)
	Delete(ctx context.Context, id shared.AccountID) error
	ExistsByID(ctx context.Context, id shared.AccountID) (bool, error)
	ExistsByRequesterAndPayer(ctx context.Context, requesterID, payerID shared.UserID) (bool, error)
}

// ErrAccountNotFound indicates a missing account
type ErrAccountNotFound struct {
	AccountID shared.AccountID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.AccountID.String()
}

// ErrDuplicateAccount indicates an account already exists for the ordered
// (requester, payer) pair. The reversed pair is a distinct account.
type ErrDuplicateAccount struct {
	RequesterID shared.UserID
	PayerID     shared.UserID
}

func (e ErrDuplicateAccount) Error() string {
	return "account already exists for requester " + e.RequesterID.String() + " and payer " + e.PayerID.String()
}
