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

// RoleRepository implements the user.RoleRepository interface for PostgreSQL.
// Permission grants live in the role_permissions join table and are
// rewritten as a whole on every save.
type RoleRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewRoleRepository creates a new PostgreSQL role repository
func NewRoleRepository(logger *slog.Logger, db *persistence.PostgresDB) user.RoleRepository {
	return &RoleRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *RoleRepository) WithTx(tx pgx.Tx) user.RoleRepository {
	return &RoleRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Save upserts the role and replaces its permission grants. A name
// uniqueness violation surfaces as ErrDuplicateRole.
func (r *RoleRepository) Save(ctx context.Context, role *user.Role) error {
	query := `
		INSERT INTO roles (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, updated_at = EXCLUDED.updated_at
	`

	_, err := r.querier.Exec(ctx, query,
		role.ID.UUID(),
		role.Name,
		role.Description,
		role.CreatedAt,
		role.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return user.ErrDuplicateRole{Name: role.Name}
		}
		r.logger.Error("Failed to save role", "id", role.ID.String(), "error", err)
		return fmt.Errorf("failed to save role: %w", err)
	}

	if _, err := r.querier.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, role.ID.UUID()); err != nil {
		r.logger.Error("Failed to clear role permissions", "id", role.ID.String(), "error", err)
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}

	for _, permissionID := range role.PermissionIDs {
		_, err := r.querier.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
			role.ID.UUID(), permissionID.UUID(),
		)
		if err != nil {
			r.logger.Error("Failed to save role permission", "id", role.ID.String(), "error", err)
			return fmt.Errorf("failed to save role permission: %w", err)
		}
	}

	return nil
}

// FindByID retrieves a role with its permission grants
func (r *RoleRepository) FindByID(ctx context.Context, id shared.RoleID) (*user.Role, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		WHERE id = $1
	`

	var (
		roleID      uuid.UUID
		name        string
		description string
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := r.querier.QueryRow(ctx, query, id.UUID()).Scan(&roleID, &name, &description, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrRoleNotFound{RoleID: id}
		}
		r.logger.Error("Failed to get role", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	permissionIDs, err := r.loadPermissionIDs(ctx, roleID)
	if err != nil {
		return nil, err
	}

	return user.ReconstructRole(
		shared.RoleIDFrom(roleID),
		createdAt,
		updatedAt,
		name,
		description,
		permissionIDs,
	)
}

// Delete removes the role. Returns ErrRoleNotFound if no row matched.
func (r *RoleRepository) Delete(ctx context.Context, id shared.RoleID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id.UUID())
	if err != nil {
		r.logger.Error("Failed to delete role", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete role: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrRoleNotFound{RoleID: id}
	}

	return nil
}

// ExistsByID reports whether a role row exists for the ID
func (r *RoleRepository) ExistsByID(ctx context.Context, id shared.RoleID) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`, id.UUID(),
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check role existence", "id", id.String(), "error", err)
		return false, fmt.Errorf("failed to check role existence: %w", err)
	}

	return exists, nil
}

// ExistsByName reports whether a role with the name already exists
func (r *RoleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check role name existence", "name", name, "error", err)
		return false, fmt.Errorf("failed to check role name existence: %w", err)
	}

	return exists, nil
}

func (r *RoleRepository) loadPermissionIDs(ctx context.Context, roleID uuid.UUID) ([]shared.PermissionID, error) {
	rows, err := r.querier.Query(ctx,
		`SELECT permission_id FROM role_permissions WHERE role_id = $1`, roleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load role permissions: %w", err)
	}
	defer rows.Close()

	var permissionIDs []shared.PermissionID
	for rows.Next() {
		var permissionID uuid.UUID
		if err := rows.Scan(&permissionID); err != nil {
			return nil, fmt.Errorf("failed to scan role permission: %w", err)
		}
		permissionIDs = append(permissionIDs, shared.PermissionIDFrom(permissionID))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over role permissions: %w", err)
	}

	return permissionIDs, nil
}
