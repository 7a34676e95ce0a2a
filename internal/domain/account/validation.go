package account

import (
	"context"

	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/user"
)

// ValidationService enforces referential and uniqueness invariants before
// account mutation. It is stateless and reads through the repositories.
type ValidationService struct {
	accounts Repository
	users    user.Repository
}

// NewValidationService creates a new account validation service.
func NewValidationService(accounts Repository, users user.Repository) *ValidationService {
	return &ValidationService{
		accounts: accounts,
		users:    users,
	}
}

// ValidateUsersExist checks that both participants are known users. The
// requester is checked first, then the payer; the first missing user fails
// the validation.
func (s *ValidationService) ValidateUsersExist(ctx context.Context, requesterID, payerID shared.UserID) error {
	if err := shared.CheckExists(ctx,
		func(ctx context.Context) (bool, error) { return s.users.ExistsByID(ctx, requesterID) },
		user.ErrUserNotFound{UserID: requesterID},
	); err != nil {
		return err
	}
	return shared.CheckExists(ctx,
		func(ctx context.Context) (bool, error) { return s.users.ExistsByID(ctx, payerID) },
		user.ErrUserNotFound{UserID: payerID},
	)
}

// ValidateUniquePair fails with ErrDuplicateAccount when an account with
// exactly this ordered (requester, payer) pair already exists.
func (s *ValidationService) ValidateUniquePair(ctx context.Context, requesterID, payerID shared.UserID) error {
	exists, err := s.accounts.ExistsByRequesterAndPayer(ctx, requesterID, payerID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateAccount{RequesterID: requesterID, PayerID: payerID}
	}
	return nil
}

// ValidateAccountExists fails with ErrAccountNotFound when the account is
// unknown.
func (s *ValidationService) ValidateAccountExists(ctx context.Context, accountID shared.AccountID) error {
	return shared.CheckExists(ctx,
		func(ctx context.Context) (bool, error) { return s.accounts.ExistsByID(ctx, accountID) },
		ErrAccountNotFound{AccountID: accountID},
	)
}
