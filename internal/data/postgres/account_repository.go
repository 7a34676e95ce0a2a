// Package postgres provides PostgreSQL implementations of the domain
// repositories. It handles all database operations while maintaining
// transaction safety and proper error handling for the payment ledger.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/solveza-payment-ledger/internal/domain/account"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/platform/persistence"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations
const pgUniqueViolation = "23505"

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Save upserts the account. The unique index on (requester_id, payer_id)
// backs the ordered-pair invariant; a violation surfaces as
// ErrDuplicateAccount even when two requests race past the validation
// service.
func (r *AccountRepository) Save(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (id, requester_id, payer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET updated_at = EXCLUDED.updated_at
	`

	_, err := r.querier.Exec(ctx, query,
		acc.ID.UUID(),
		acc.RequesterID.UUID(),
		acc.PayerID.UUID(),
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return account.ErrDuplicateAccount{RequesterID: acc.RequesterID, PayerID: acc.PayerID}
		}
		r.logger.Error("Failed to save account", "id", acc.ID.String(), "error", err)
		return fmt.Errorf("failed to save account: %w", err)
	}

	return nil
}

// FindByID retrieves an account by its ID
func (r *AccountRepository) FindByID(ctx context.Context, id shared.AccountID) (*account.Account, error) {
	query := `
		SELECT id, requester_id, payer_id, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	acc, err := r.scanAccount(r.querier.QueryRow(ctx, query, id.UUID()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return acc, nil
}

// FindByUserID retrieves all accounts where the user appears on either side
func (r *AccountRepository) FindByUserID(ctx context.Context, userID shared.UserID) ([]*account.Account, error) {
	query := `
		SELECT id, requester_id, payer_id, created_at, updated_at
		FROM accounts
		WHERE requester_id = $1 OR payer_id = $1
		ORDER BY created_at ASC
	`
	return r.queryAccounts(ctx, query, userID.UUID())
}

// FindByRequesterID retrieves all accounts where the user is the requester
func (r *AccountRepository) FindByRequesterID(ctx context.Context, requesterID shared.UserID) ([]*account.Account, error) {
	query := `
		SELECT id, requester_id, payer_id, created_at, updated_at
		FROM accounts
		WHERE requester_id = $1
		ORDER BY created_at ASC
	`
	return r.queryAccounts(ctx, query, requesterID.UUID())
}

// FindByPayerID retrieves all accounts where the user is the payer
func (r *AccountRepository) FindByPayerID(ctx context.Context, payerID shared.UserID) ([]*account.Account, error) {
	query := `
		SELECT id, requester_id, payer_id, created_at, updated_at
		FROM accounts
		WHERE payer_id = $1
		ORDER BY created_at ASC
	`
	return r.queryAccounts(ctx, query, payerID.UUID())
}

// Delete removes the account. Returns ErrAccountNotFound if no row matched.
func (r *AccountRepository) Delete(ctx context.Context, id shared.AccountID) error {
	query := `
		DELETE FROM accounts
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id.UUID())
	if err != nil {
		r.logger.Error("Failed to delete account", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return account.ErrAccountNotFound{AccountID: id}
	}

	return nil
}

// ExistsByID reports whether an account row exists for the ID
func (r *AccountRepository) ExistsByID(ctx context.Context, id shared.AccountID) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)
	`

	var exists bool
	if err := r.querier.QueryRow(ctx, query, id.UUID()).Scan(&exists); err != nil {
		r.logger.Error("Failed to check account existence", "id", id.String(), "error", err)
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return exists, nil
}

// ExistsByRequesterAndPayer reports whether an account exists for the
// ordered (requester, payer) pair.
func (r *AccountRepository) ExistsByRequesterAndPayer(ctx context.Context, requesterID, payerID shared.UserID) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE requester_id = $1 AND payer_id = $2)
	`

	var exists bool
	if err := r.querier.QueryRow(ctx, query, requesterID.UUID(), payerID.UUID()).Scan(&exists); err != nil {
		r.logger.Error("Failed to check account pair existence", "error", err)
		return false, fmt.Errorf("failed to check account pair existence: %w", err)
	}

	return exists, nil
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string, arg interface{}) ([]*account.Account, error) {
	rows, err := r.querier.Query(ctx, query, arg)
	if err != nil {
		r.logger.Error("Failed to query accounts", "error", err)
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		acc, err := r.scanAccount(rows)
		if err != nil {
			r.logger.Error("Failed to scan account", "error", err)
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over accounts", "error", err)
		return nil, fmt.Errorf("error iterating over accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*account.Account, error) {
	var (
		id          uuid.UUID
		requesterID uuid.UUID
		payerID     uuid.UUID
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(&id, &requesterID, &payerID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return account.Reconstruct(
		shared.AccountIDFrom(id),
		createdAt,
		updatedAt,
		shared.UserIDFrom(requesterID),
		shared.UserIDFrom(payerID),
	)
}
