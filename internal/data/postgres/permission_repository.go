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

	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/user"
	"github.com/solveza-payment-ledger/internal/platform/persistence"
)

// PermissionRepository implements the user.PermissionRepository interface for PostgreSQL
type PermissionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewPermissionRepository creates a new PostgreSQL permission repository
func NewPermissionRepository(logger *slog.Logger, db *persistence.PostgresDB) user.PermissionRepository {
	return &PermissionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *PermissionRepository) WithTx(tx pgx.Tx) user.PermissionRepository {
	return &PermissionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Save upserts the permission. A name uniqueness violation surfaces as
// ErrDuplicatePermission.
func (r *PermissionRepository) Save(ctx context.Context, p *user.Permission) error {
	query := `
		INSERT INTO permissions (id, name, resource, action, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, resource = EXCLUDED.resource, action = EXCLUDED.action, updated_at = EXCLUDED.updated_at
	`

	_, err := r.querier.Exec(ctx, query,
		p.ID.UUID(),
		p.Name,
		p.Resource,
		p.Action,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return user.ErrDuplicatePermission{Name: p.Name}
		}
		r.logger.Error("Failed to save permission", "id", p.ID.String(), "error", err)
		return fmt.Errorf("failed to save permission: %w", err)
	}

	return nil
}

// FindByID retrieves a permission by its ID
func (r *PermissionRepository) FindByID(ctx context.Context, id shared.PermissionID) (*user.Permission, error) {
	query := `
		SELECT id, name, resource, action, created_at, updated_at
		FROM permissions
		WHERE id = $1
	`

	var (
		permissionID uuid.UUID
		name         string
		resource     string
		action       string
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := r.querier.QueryRow(ctx, query, id.UUID()).Scan(&permissionID, &name, &resource, &action, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrPermissionNotFound{PermissionID: id}
		}
		r.logger.Error("Failed to get permission", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	return user.ReconstructPermission(
		shared.PermissionIDFrom(permissionID),
		createdAt,
		updatedAt,
		name,
		resource,
		action,
	)
}

// Delete removes the permission. Returns ErrPermissionNotFound if no row matched.
func (r *PermissionRepository) Delete(ctx context.Context, id shared.PermissionID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id.UUID())
	if err != nil {
		r.logger.Error("Failed to delete permission", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete permission: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrPermissionNotFound{PermissionID: id}
	}

	return nil
}

// ExistsByID reports whether a permission row exists for the ID
func (r *PermissionRepository) ExistsByID(ctx context.Context, id shared.PermissionID) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM permissions WHERE id = $1)`, id.UUID(),
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check permission existence", "id", id.String(), "error", err)
		return false, fmt.Errorf("failed to check permission existence: %w", err)
	}

	return exists, nil
}

// ExistsByName reports whether a permission with the name already exists
func (r *PermissionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM permissions WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check permission name existence", "name", name, "error", err)
		return false, fmt.Errorf("failed to check permission name existence: %w", err)
	}

	return exists, nil
}
