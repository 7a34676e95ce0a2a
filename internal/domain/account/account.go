package account

import (
	"errors"
	"time"

	"github.com/solveza-payment-ledger/internal/domain/shared"
)

// Common errors
var (
	ErrRequesterRequired  = errors.New("requester id is required")
	ErrPayerRequired      = errors.New("payer id is required")
	ErrSameParticipant    = errors.New("requester and payer must be different users")
	ErrIDRequired         = errors.New("account id is required")
	ErrTimestampsRequired = errors.New("created and updated timestamps are required")
)

// Account is a standing relationship between a requesting user and a paying
// user. The participant pair is fixed for the account's lifetime; there is
// no reassign operation.
type Account struct {
	ID          shared.AccountID
	RequesterID shared.UserID
	PayerID     shared.UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates an account between two distinct users. Both timestamps are
// stamped with the same instant.
func New(requesterID, payerID shared.UserID) (*Account, error) {
	if requesterID.IsZero() {
		return nil, ErrRequesterRequired
	}
	if payerID.IsZero() {
		return nil, ErrPayerRequired
	}
	if requesterID == payerID {
		return nil, ErrSameParticipant
	}

	now := time.Now().UTC()
	return &Account{
		ID:          shared.NewAccountID(),
		RequesterID: requesterID,
		PayerID:     payerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Reconstruct rehydrates an account from persisted state. Identity
// invariants are not re-derived; only structurally required fields are
// checked.
func Reconstruct(id shared.AccountID, createdAt, updatedAt time.Time, requesterID, payerID shared.UserID) (*Account, error) {
	if id.IsZero() {
		return nil, ErrIDRequired
	}
	if createdAt.IsZero() || updatedAt.IsZero() {
		return nil, ErrTimestampsRequired
	}

	return &Account{
		ID:          id,
		RequesterID: requesterID,
		PayerID:     payerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// IsRequester reports whether the user is the requesting side of the account.
func (a *Account) IsRequester(userID shared.UserID) bool {
	return a.RequesterID == userID
}

// IsPayer reports whether the user is the paying side of the account.
func (a *Account) IsPayer(userID shared.UserID) bool {
	return a.PayerID == userID
}

// IsParticipant reports whether the user is on either side of the account.
func (a *Account) IsParticipant(userID shared.UserID) bool {
	return a.IsRequester(userID) || a.IsPayer(userID)
}
