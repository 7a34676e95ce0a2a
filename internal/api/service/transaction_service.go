package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/solveza-payment-ledger/internal/domain/money"
	"github.com/solveza-payment-ledger/internal/domain/outbox"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/transaction"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	transactions transaction.Repository
	outboxRepo   outbox.Repository
	validator    *transaction.ValidationService
	balance      *transaction.BalanceService
	logger       *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	logger *slog.Logger,
	transactions transaction.Repository,
	outboxRepo outbox.Repository,
	validator *transaction.ValidationService,
	balance *transaction.BalanceService,
) TransactionService {
	return &TransactionServiceImpl{
		transactions: transactions,
		outboxRepo:   outboxRepo,
		validator:    validator,
		balance:      balance,
		logger:       logger,
	}
}

// RecordDeposit records a deposit against the account
func (s *TransactionServiceImpl) RecordDeposit(ctx context.Context, accountID shared.AccountID, amount money.Money, description string) (*transaction.Transaction, error) {
	return s.record(ctx, transaction.TypeDeposit, accountID, amount, description)
}

// RecordPayment records a payment against the account
func (s *TransactionServiceImpl) RecordPayment(ctx context.Context, accountID shared.AccountID, amount money.Money, description string) (*transaction.Transaction, error) {
	return s.record(ctx, transaction.TypePayment, accountID, amount, description)
}

// record validates the input, persists the transaction, and writes the
// outbox row for the recorded event. Transactions live in Mongo and the
// outbox in Postgres, so the two writes cannot share a transaction; a
// failed outbox write is surfaced to the caller instead of losing the
// event silently.
func (s *TransactionServiceImpl) record(ctx context.Context, t transaction.Type, accountID shared.AccountID, amount money.Money, description string) (*transaction.Transaction, error) {
	if err := s.validator.ValidateType(t); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateAccountExists(ctx, accountID); err != nil {
		return nil, err
	}

	var tx *transaction.Transaction
	var err error
	switch t {
	case transaction.TypeDeposit:
		tx, err = transaction.NewDeposit(accountID, amount, description)
	case transaction.TypePayment:
		tx, err = transaction.NewPayment(accountID, amount, description)
	}
	if err != nil {
		return nil, err
	}

	if err := s.transactions.Save(ctx, tx); err != nil {
		return nil, err
	}

	if err := s.queueEvent(ctx, outbox.EventTransactionRecorded, tx); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction recorded",
		"transaction_id", tx.ID.String(),
		"account_id", accountID.String(),
		"type", string(tx.Type),
		"amount", tx.Amount.String(),
	)
	return tx, nil
}

// GetTransactionByID retrieves a transaction by its ID
func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, id shared.TransactionID) (*transaction.Transaction, error) {
	return s.transactions.FindByID(ctx, id)
}

// GetHistory retrieves all transactions recorded against an account
func (s *TransactionServiceImpl) GetHistory(ctx context.Context, accountID shared.AccountID) ([]*transaction.Transaction, error) {
	if err := s.validator.ValidateAccountExists(ctx, accountID); err != nil {
		return nil, err
	}
	return s.transactions.FindByAccountID(ctx, accountID)
}

// GetBalance derives the account balance from its transaction history
func (s *TransactionServiceImpl) GetBalance(ctx context.Context, accountID shared.AccountID) (money.Money, error) {
	if err := s.validator.ValidateAccountExists(ctx, accountID); err != nil {
		return money.Money{}, err
	}
	return s.balance.CalculateBalance(ctx, accountID)
}

// DeleteTransaction removes a transaction and queues the deleted event
func (s *TransactionServiceImpl) DeleteTransaction(ctx context.Context, id shared.TransactionID) error {
	tx, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.transactions.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.queueEvent(ctx, outbox.EventTransactionDeleted, tx); err != nil {
		return err
	}

	s.logger.Info("Transaction deleted",
		"transaction_id", id.String(),
		"account_id", tx.AccountID.String(),
	)
	return nil
}

func (s *TransactionServiceImpl) queueEvent(ctx context.Context, eventName string, tx *transaction.Transaction) error {
	msg, err := outbox.NewMessage(eventName, tx)
	if err != nil {
		return fmt.Errorf("failed to build %s outbox message: %w", eventName, err)
	}
	if err := s.outboxRepo.Create(ctx, msg); err != nil {
		s.logger.Error("Failed to queue outbox message",
			"event", eventName,
			"transaction_id", tx.ID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to queue %s event: %w", eventName, err)
	}
	return nil
}
