package user

import (
	"errors"
	"strings"
	"time"

	"github.com/solveza-payment-ledger/internal/domain/shared"
)

var (
	ErrRoleNameRequired   = errors.New("role name is required")
	ErrPermissionRequired = errors.New("permission id is required")
)

// Role is a named set of permission grants. Like User's role set, the
// permission set is immutable: grant and revoke return a new Role value.
type Role struct {
	ID            shared.RoleID
	Name          string
	Description   string
	PermissionIDs []shared.PermissionID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewRole creates a role with the given name and optional description.
func NewRole(name, description string) (*Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrRoleNameRequired
	}

	now := time.Now().UTC()
	return &Role{
		ID:          shared.NewRoleID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ReconstructRole rehydrates a role from persisted state.
func ReconstructRole(id shared.RoleID, createdAt, updatedAt time.Time, name, description string, permissionIDs []shared.PermissionID) (*Role, error) {
	if id.IsZero() {
		return nil, ErrIDRequired
	}
	if createdAt.IsZero() || updatedAt.IsZero() {
		return nil, ErrTimestampsRequired
	}

	return &Role{
		ID:            id,
		Name:          name,
		Description:   description,
		PermissionIDs: permissionIDs,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// GrantPermission returns a copy of the role with the permission granted.
func (r *Role) GrantPermission(permissionID shared.PermissionID) (*Role, error) {
	if permissionID.IsZero() {
		return nil, ErrPermissionRequired
	}
	updated := *r
	if !r.HasPermission(permissionID) {
		updated.PermissionIDs = append(append([]shared.PermissionID{}, r.PermissionIDs...), permissionID)
	}
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// RevokePermission returns a copy of the role with the permission revoked.
func (r *Role) RevokePermission(permissionID shared.PermissionID) (*Role, error) {
	if permissionID.IsZero() {
		return nil, ErrPermissionRequired
	}
	updated := *r
	remaining := make([]shared.PermissionID, 0, len(r.PermissionIDs))
	for _, id := range r.PermissionIDs {
		if id != permissionID {
			remaining = append(remaining, id)
		}
	}
	updated.PermissionIDs = remaining
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// HasPermission reports whether the permission is granted to the role.
func (r *Role) HasPermission(permissionID shared.PermissionID) bool {
	for _, id := range r.PermissionIDs {
		if id == permissionID {
			return true
		}
	}
	return false
}
