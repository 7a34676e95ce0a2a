package user

import (
	"errors"
	"strings"
	"time"

	"github.com/solveza-payment-ledger/internal/domain/shared"
)

var (
	ErrPermissionNameRequired = errors.New("permission name is required")
	ErrResourceRequired       = errors.New("resource is required")
	ErrActionRequired         = errors.New("action is required")
)

// Permission names a single allowed action on a resource.
type Permission struct {
	ID        shared.PermissionID
	Name      string
	Resource  string
	Action    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPermission creates a permission for an action on a resource.
func NewPermission(name, resource, action string) (*Permission, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrPermissionNameRequired
	}
	if strings.TrimSpace(resource) == "" {
		return nil, ErrResourceRequired
	}
	if strings.TrimSpace(action) == "" {
		return nil, ErrActionRequired
	}

	now := time.Now().UTC()
	return &Permission{
		ID:        shared.NewPermissionID(),
		Name:      name,
		Resource:  resource,
		Action:    action,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ReconstructPermission rehydrates a permission from persisted state.
func ReconstructPermission(id shared.PermissionID, createdAt, updatedAt time.Time, name, resource, action string) (*Permission, error) {
	if id.IsZero() {
		return nil, ErrIDRequired
	}
	if createdAt.IsZero() || updatedAt.IsZero() {
		return nil, ErrTimestampsRequired
	}

	return &Permission{
		ID:        id,
		Name:      name,
		Resource:  resource,
		Action:    action,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// AllowsAccess reports whether the permission covers the requested
// resource/action pair.
func (p *Permission) AllowsAccess(resource, action string) bool {
	return p.Resource == resource && p.Action == action
}
