package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/user"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users       user.Repository
	roles       user.RoleRepository
	permissions user.PermissionRepository
	validator   *user.ValidationService
	logger      *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	logger *slog.Logger,
	users user.Repository,
	roles user.RoleRepository,
	permissions user.PermissionRepository,
	validator *user.ValidationService,
) UserService {
	return &UserServiceImpl{
		users:       users,
		roles:       roles,
		permissions: permissions,
		validator:   validator,
		logger:      logger,
	}
}

// CreateUser registers a user identified by an external auth provider.
// Registration is idempotent on (provider, external id): a known identity
// has its name and email refreshed and keeps its user ID and roles.
func (s *UserServiceImpl) CreateUser(ctx context.Context, provider user.Provider, externalID, name, email string) (*user.User, error) {
	existing, err := s.users.FindByExternalID(ctx, provider, externalID)
	if err != nil {
		var notFound user.ErrUserNotFound
		if !errors.As(err, &notFound) {
			return nil, err
		}

		u, err := user.New(provider, externalID, name, email)
		if err != nil {
			return nil, err
		}
		if err := s.users.Save(ctx, u); err != nil {
			return nil, err
		}

		s.logger.Info("User created",
			"user_id", u.ID.String(),
			"provider", string(provider),
		)
		return u, nil
	}

	updated, err := existing.Rename(name)
	if err != nil {
		return nil, err
	}
	updated = updated.ChangeEmail(email)

	if err := s.users.Save(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info("User profile refreshed",
		"user_id", updated.ID.String(),
		"provider", string(provider),
	)
	return updated, nil
}

// ListUsers retrieves all registered users
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*user.User, error) {
	return s.users.FindAll(ctx)
}

// GetUserByID retrieves a user by its ID
func (s *UserServiceImpl) GetUserByID(ctx context.Context, id shared.UserID) (*user.User, error) {
	return s.users.FindByID(ctx, id)
}

// DeleteUser removes a user
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id shared.UserID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", "user_id", id.String())
	return nil
}

// AssignRole assigns a role to a user and returns the updated user
func (s *UserServiceImpl) AssignRole(ctx context.Context, userID shared.UserID, roleID shared.RoleID) (*user.User, error) {
	if err := s.validator.ValidateRoleExists(ctx, roleID); err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := u.AssignRole(roleID)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info("Role assigned",
		"user_id", userID.String(),
		"role_id", roleID.String(),
	)
	return updated, nil
}

// CreateRole creates a role with a unique name
func (s *UserServiceImpl) CreateRole(ctx context.Context, name, description string) (*user.Role, error) {
	if err := s.validator.ValidateRoleNameAvailable(ctx, name); err != nil {
		return nil, err
	}

	r, err := user.NewRole(name, description)
	if err != nil {
		return nil, err
	}

	if err := s.roles.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("Role created", "role_id", r.ID.String(), "name", name)
	return r, nil
}

// GrantPermission grants a permission to a role and returns the updated role
func (s *UserServiceImpl) GrantPermission(ctx context.Context, roleID shared.RoleID, permissionID shared.PermissionID) (*user.Role, error) {
	if err := s.validator.ValidatePermissionExists(ctx, permissionID); err != nil {
		return nil, err
	}

	r, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	updated, err := r.GrantPermission(permissionID)
	if err != nil {
		return nil, err
	}

	if err := s.roles.Save(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info("Permission granted",
		"role_id", roleID.String(),
		"permission_id", permissionID.String(),
	)
	return updated, nil
}

// CreatePermission creates a permission with a unique name
func (s *UserServiceImpl) CreatePermission(ctx context.Context, name, resource, action string) (*user.Permission, error) {
	if err := s.validator.ValidatePermissionNameAvailable(ctx, name); err != nil {
		return nil, err
	}

	p, err := user.NewPermission(name, resource, action)
	if err != nil {
		return nil, err
	}

	if err := s.permissions.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Permission created", "permission_id", p.ID.String(), "name", name)
	return p, nil
}
