package service

import (
	"context"
	"log/slog"

	"github.com/solveza-payment-ledger/internal/domain/account"
	"github.com/solveza-payment-ledger/internal/domain/shared"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accounts  account.Repository
	validator *account.ValidationService
	logger    *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(logger *slog.Logger, accounts account.Repository, validator *account.ValidationService) AccountService {
	return &AccountServiceImpl{
		accounts:  accounts,
		validator: validator,
		logger:    logger,
	}
}

// CreateAccount validates both participants and the pair's uniqueness, then
// persists a fresh account. The unique index on (requester_id, payer_id)
// backs the uniqueness check against concurrent creators.
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, requesterID, payerID shared.UserID) (*account.Account, error) {
	if err := s.validator.ValidateUsersExist(ctx, requesterID, payerID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUniquePair(ctx, requesterID, payerID); err != nil {
		return nil, err
	}

	acc, err := account.New(requesterID, payerID)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Save(ctx, acc); err != nil {
		return nil, err
	}

	s.logger.Info("Account created",
		"account_id", acc.ID.String(),
		"requester_id", requesterID.String(),
		"payer_id", payerID.String(),
	)
	return acc, nil
}

// GetAccountByID retrieves an account by its ID
func (s *AccountServiceImpl) GetAccountByID(ctx context.Context, id shared.AccountID) (*account.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// GetAccountsByUserID retrieves all accounts the user participates in
func (s *AccountServiceImpl) GetAccountsByUserID(ctx context.Context, userID shared.UserID) ([]*account.Account, error) {
	return s.accounts.FindByUserID(ctx, userID)
}

// DeleteAccount removes an account
func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, id shared.AccountID) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Account deleted", "account_id", id.String())
	return nil
}
