package user

import (
	"context"

	"github.com/solveza-payment-ledger/internal/domain/shared"
)

// ValidationService enforces existence and uniqueness invariants for the
// user-management aggregates.
type ValidationService struct {
	users       Repository
	roles       RoleRepository
	permissions PermissionRepository
}

// NewValidationService creates a new user validation service.
func NewValidationService(users Repository, roles RoleRepository, permissions PermissionRepository) *ValidationService {
	return &ValidationService{
		users:       users,
		roles:       roles,
		permissions: permissions,
	}
}

// ValidateUserExists fails with ErrUserNotFound when the user is unknown.
func (s *ValidationService) ValidateUserExists(ctx context.Context, userID shared.UserID) error {
	return shared.CheckExists(ctx,
		func(ctx context.Context) (bool, error) { return s.users.ExistsByID(ctx, userID) },
		ErrUserNotFound{UserID: userID},
	)
}

// ValidateRoleExists fails with ErrRoleNotFound when the role is unknown.
func (s *ValidationService) ValidateRoleExists(ctx context.Context, roleID shared.RoleID) error {
	return shared.CheckExists(ctx,
		func(ctx context.Context) (bool, error) { return s.roles.ExistsByID(ctx, roleID) },
		ErrRoleNotFound{RoleID: roleID},
	)
}

// ValidatePermissionExists fails with ErrPermissionNotFound when the
// permission is unknown.
func (s *ValidationService) ValidatePermissionExists(ctx context.Context, permissionID shared.PermissionID) error {
	return shared.CheckExists(ctx,
		func(ctx context.Context) (bool, error) { return s.permissions.ExistsByID(ctx, permissionID) },
		ErrPermissionNotFound{PermissionID: permissionID},
	)
}

// ValidateRoleNameAvailable fails with ErrDuplicateRole when a role with
// the name already exists.
func (s *ValidationService) ValidateRoleNameAvailable(ctx context.Context, name string) error {
	exists, err := s.roles.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateRole{Name: name}
	}
	return nil
}

// ValidatePermissionNameAvailable fails with ErrDuplicatePermission when a
// permission with the name already exists.
func (s *ValidationService) ValidatePermissionNameAvailable(ctx context.Context, name string) error {
	exists, err := s.permissions.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicatePermission{Name: name}
	}
	return nil
}
