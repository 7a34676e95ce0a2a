package user

import (
	"context"

	"github.com/solveza-payment-ledger/internal/domain/shared"
)

// Repository defines user persistence operations. Save is an upsert keyed
// by the user id.
type Repository interface {
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id shared.UserID) (*User, error)
	FindByExternalID(ctx context.Context, provider Provider, externalID string) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id shared.UserID) error
	ExistsByID(ctx context.Context, id shared.UserID) (bool, error)
}

// RoleRepository defines role persistence operations.
type RoleRepository interface {
	Save(ctx context.Context, r *Role) error
	FindByID(ctx context.Context, id shared.RoleID) (*Role, error)
	Delete(ctx context.Context, id shared.RoleID) error
	ExistsByID(ctx context.Context, id shared.RoleID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// PermissionRepository defines permission persistence operations.
type PermissionRepository interface {
	Save(ctx context.Context, p *Permission) error
	FindByID(ctx context.Context, id shared.PermissionID) (*Permission, error)
	Delete(ctx context.Context, id shared.PermissionID) error
	ExistsByID(ctx context.Context, id shared.PermissionID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// ErrUserNotFound indicates a missing user
type ErrUserNotFound struct {
	UserID shared.UserID
}

func (e ErrUserNotFound) Error() string {
	return "user not found: " + e.UserID.String()
}

// ErrRoleNotFound indicates a missing role
type ErrRoleNotFound struct {
	RoleID shared.RoleID
}

func (e ErrRoleNotFound) Error() string {
	return "role not found: " + e.RoleID.String()
}

// ErrPermissionNotFound indicates a missing permission
type ErrPermissionNotFound struct {
	PermissionID shared.PermissionID
}

func (e ErrPermissionNotFound) Error() string {
	return "permission not found: " + e.PermissionID.String()
}

// ErrDuplicateRole indicates a role name uniqueness violation
type ErrDuplicateRole struct {
	Name string
}

func (e ErrDuplicateRole) Error() string {
	return "role already exists: " + e.Name
}

// ErrDuplicatePermission indicates a permission name uniqueness violation
type ErrDuplicatePermission struct {
	Name string
}

func (e ErrDuplicatePermission) Error() string {
	return "permission already exists: " + e.Name
}
