package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/user"
	"github.com/solveza-payment-ledger/internal/platform/persistence"
)

// UserRepository implements the user.Repository interface for PostgreSQL.
// Role assignments live in the user_roles join table and are rewritten as a
// whole on every save, matching the immutable role set on the entity.
type UserRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(logger *slog.Logger, db *persistence.PostgresDB) user.Repository {
	return &UserRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *UserRepository) WithTx(tx pgx.Tx) user.Repository {
	return &UserRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Save upserts the user and replaces its role assignments
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, provider, external_id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, updated_at = EXCLUDED.updated_at
	`

	_, err := r.querier.Exec(ctx, query,
		u.ID.UUID(),
		string(u.Provider),
		u.ExternalID,
		u.Name,
		u.Email,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save user", "id", u.ID.String(), "error", err)
		return fmt.Errorf("failed to save user: %w", err)
	}

	if _, err := r.querier.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, u.ID.UUID()); err != nil {
		r.logger.Error("Failed to clear user roles", "id", u.ID.String(), "error", err)
		return fmt.Errorf("failed to clear user roles: %w", err)
	}

	for _, roleID := range u.RoleIDs {
		_, err := r.querier.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`,
			u.ID.UUID(), roleID.UUID(),
		)
		if err != nil {
			r.logger.Error("Failed to save user role", "id", u.ID.String(), "error", err)
			return fmt.Errorf("failed to save user role: %w", err)
		}
	}

	return nil
}

// FindByID retrieves a user with its role assignments
func (r *UserRepository) FindByID(ctx context.Context, id shared.UserID) (*user.User, error) {
	query := `
		SELECT id, provider, external_id, name, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	u, err := r.scanUser(ctx, r.querier.QueryRow(ctx, query, id.UUID()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound{UserID: id}
		}
		r.logger.Error("Failed to get user", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// FindByExternalID retrieves a user by its auth provider identity
func (r *UserRepository) FindByExternalID(ctx context.Context, provider user.Provider, externalID string) (*user.User, error) {
	query := `
		SELECT id, provider, external_id, name, email, created_at, updated_at
		FROM users
		WHERE provider = $1 AND external_id = $2
	`

	u, err := r.scanUser(ctx, r.querier.QueryRow(ctx, query, string(provider), externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound{}
		}
		r.logger.Error("Failed to get user by external ID", "provider", string(provider), "error", err)
		return nil, fmt.Errorf("failed to get user by external ID: %w", err)
	}

	return u, nil
}

// FindAll lists every registered user with their role assignments,
// oldest registration first
func (r *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	query := `
		SELECT id, provider, external_id, name, email, created_at, updated_at
		FROM users
		ORDER BY created_at
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	type userRow struct {
		id         uuid.UUID
		provider   string
		externalID string
		name       string
		email      string
		createdAt  time.Time
		updatedAt  time.Time
	}

	var scanned []userRow
	for rows.Next() {
		var row userRow
		if err := rows.Scan(&row.id, &row.provider, &row.externalID, &row.name, &row.email, &row.createdAt, &row.updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over users: %w", err)
	}
	rows.Close()

	// Role assignments are loaded after the user rows are drained so the
	// queries do not interleave on one connection.
	users := make([]*user.User, 0, len(scanned))
	for _, row := range scanned {
		roleIDs, err := r.loadRoleIDs(ctx, row.id)
		if err != nil {
			return nil, err
		}
		u, err := user.Reconstruct(
			shared.UserIDFrom(row.id),
			row.createdAt,
			row.updatedAt,
			user.Provider(row.provider),
			row.externalID,
			row.name,
			row.email,
			roleIDs,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// Delete removes the user. Returns ErrUserNotFound if no row matched.
func (r *UserRepository) Delete(ctx context.Context, id shared.UserID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM users WHERE id = $1`, id.UUID())
	if err != nil {
		r.logger.Error("Failed to delete user", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound{UserID: id}
	}

	return nil
}

// ExistsByID reports whether a user row exists for the ID
func (r *UserRepository) ExistsByID(ctx context.Context, id shared.UserID) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id.UUID(),
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check user existence", "id", id.String(), "error", err)
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

func (r *UserRepository) scanUser(ctx context.Context, row pgx.Row) (*user.User, error) {
	var (
		id         uuid.UUID
		provider   string
		externalID string
		name       string
		email      string
		createdAt  time.Time
		updatedAt  time.Time
	)

	if err := row.Scan(&id, &provider, &externalID, &name, &email, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	roleIDs, err := r.loadRoleIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	return user.Reconstruct(
		shared.UserIDFrom(id),
		createdAt,
		updatedAt,
		user.Provider(provider),
		externalID,
		name,
		email,
		roleIDs,
	)
}

func (r *UserRepository) loadRoleIDs(ctx context.Context, userID uuid.UUID) ([]shared.RoleID, error) {
	rows, err := r.querier.Query(ctx,
		`SELECT role_id FROM user_roles WHERE user_id = $1`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load user roles: %w", err)
	}
	defer rows.Close()

	var roleIDs []shared.RoleID
	for rows.Next() {
		var roleID uuid.UUID
		if err := rows.Scan(&roleID); err != nil {
			return nil, fmt.Errorf("failed to scan user role: %w", err)
		}
		roleIDs = append(roleIDs, shared.RoleIDFrom(roleID))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over user roles: %w", err)
	}

	return roleIDs, nil
}
