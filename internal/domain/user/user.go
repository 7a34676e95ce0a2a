// Package user holds the user-management aggregates: users with their role
// assignments, roles with their permission grants, and permissions.
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/solveza-payment-ledger/internal/domain/shared"
)

// Common errors
var (
	ErrProviderRequired   = errors.New("auth provider is required")
	ErrExternalIDRequired = errors.New("external id is required")
	ErrNameRequired       = errors.New("name is required")
	ErrRoleIDRequired     = errors.New("role id is required")
	ErrIDRequired         = errors.New("user id is required")
	ErrTimestampsRequired = errors.New("created and updated timestamps are required")
)

// Provider is an external authentication provider.
type Provider string

const (
	ProviderGoogle    Provider = "GOOGLE"
	ProviderGithub    Provider = "GITHUB"
	ProviderMicrosoft Provider = "MICROSOFT"
	ProviderAuth0     Provider = "AUTH0"
)

// User is an authenticated party that can appear on either side of an
// account. Role assignments are an owned immutable set: AssignRole and
// RemoveRole return a new User value instead of mutating shared state.
type User struct {
	ID         shared.UserID
	Provider   Provider
	ExternalID string
	Name       string
	Email      string
	RoleIDs    []shared.RoleID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// New registers a user identified by an external auth provider.
func New(provider Provider, externalID, name, email string) (*User, error) {
	if provider == "" {
		return nil, ErrProviderRequired
	}
	if strings.TrimSpace(externalID) == "" {
		return nil, ErrExternalIDRequired
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	now := time.Now().UTC()
	return &User{
		ID:         shared.NewUserID(),
		Provider:   provider,
		ExternalID: externalID,
		Name:       name,
		Email:      email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Reconstruct rehydrates a user from persisted state.
func Reconstruct(id shared.UserID, createdAt, updatedAt time.Time, provider Provider, externalID, name, email string, roleIDs []shared.RoleID) (*User, error) {
	if id.IsZero() {
		return nil, ErrIDRequired
	}
	if createdAt.IsZero() || updatedAt.IsZero() {
		return nil, ErrTimestampsRequired
	}

	return &User{
		ID:         id,
		Provider:   provider,
		ExternalID: externalID,
		Name:       name,
		Email:      email,
		RoleIDs:    roleIDs,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// Rename returns a copy of the user with the new name.
func (u *User) Rename(name string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	updated := *u
	updated.Name = name
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// ChangeEmail returns a copy of the user with the new email.
func (u *User) ChangeEmail(email string) *User {
	updated := *u
	updated.Email = email
	updated.UpdatedAt = time.Now().UTC()
	return &updated
}

// AssignRole returns a copy of the user with the role added. Assigning an
// already-held role is a no-op on the set but still refreshes the
// timestamp.
func (u *User) AssignRole(roleID shared.RoleID) (*User, error) {
	if roleID.IsZero() {
		return nil, ErrRoleIDRequired
	}
	updated := *u
	if !u.HasRole(roleID) {
		updated.RoleIDs = append(append([]shared.RoleID{}, u.RoleIDs...), roleID)
	}
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// RemoveRole returns a copy of the user with the role removed.
func (u *User) RemoveRole(roleID shared.RoleID) (*User, error) {
	if roleID.IsZero() {
		return nil, ErrRoleIDRequired
	}
	updated := *u
	remaining := make([]shared.RoleID, 0, len(u.RoleIDs))
	for _, id := range u.RoleIDs {
		if id != roleID {
			remaining = append(remaining, id)
		}
	}
	updated.RoleIDs = remaining
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// HasRole reports whether the role is assigned to the user.
func (u *User) HasRole(roleID shared.RoleID) bool {
	for _, id := range u.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}
