// Package shared holds value types used across aggregates: typed entity
// identifiers and the existence-check helper composed by the validation
// services.
package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// AccountID identifies a requester/payer account.
type AccountID struct {
	value uuid.UUID
}

// NewAccountID generates a fresh random account identifier.
func NewAccountID() AccountID {
	return AccountID{value: uuid.New()}
}

// ParseAccountID parses the canonical textual form of an account identifier.
func ParseAccountID(s string) (AccountID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid account id %q: %w", s, err)
	}
	return AccountID{value: id}, nil
}

// AccountIDFrom wraps an existing UUID. The persistence boundary uses this
// when rehydrating entities.
func AccountIDFrom(id uuid.UUID) AccountID {
	return AccountID{value: id}
}

func (id AccountID) UUID() uuid.UUID { return id.value }
func (id AccountID) String() string  { return id.value.String() }
func (id AccountID) IsZero() bool    { return id.value == uuid.Nil }

// TransactionID identifies a recorded transaction.
type TransactionID struct {
	value uuid.UUID
}

// NewTransactionID generates a fresh random transaction identifier.
func NewTransactionID() TransactionID {
	return TransactionID{value: uuid.New()}
}

// ParseTransactionID parses the canonical textual form of a transaction identifier.
func ParseTransactionID(s string) (TransactionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TransactionID{}, fmt.Errorf("invalid transaction id %q: %w", s, err)
	}
	return TransactionID{value: id}, nil
}

// TransactionIDFrom wraps an existing UUID.
func TransactionIDFrom(id uuid.UUID) TransactionID {
	return TransactionID{value: id}
}

func (id TransactionID) UUID() uuid.UUID { return id.value }
func (id TransactionID) String() string  { return id.value.String() }
func (id TransactionID) IsZero() bool    { return id.value == uuid.Nil }

// UserID identifies a user on either side of an account.
type UserID struct {
	value uuid.UUID
}

// NewUserID generates a fresh random user identifier.
func NewUserID() UserID {
	return UserID{value: uuid.New()}
}

// ParseUserID parses the canonical textual form of a user identifier.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("invalid user id %q: %w", s, err)
	}
	return UserID{value: id}, nil
}

// UserIDFrom wraps an existing UUID.
func UserIDFrom(id uuid.UUID) UserID {
	return UserID{value: id}
}

func (id UserID) UUID() uuid.UUID { return id.value }
func (id UserID) String() string  { return id.value.String() }
func (id UserID) IsZero() bool    { return id.value == uuid.Nil }

// RoleID identifies a role assignable to users.
type RoleID struct {
	value uuid.UUID
}

// NewRoleID generates a fresh random role identifier.
func NewRoleID() RoleID {
	return RoleID{value: uuid.New()}
}

// ParseRoleID parses the canonical textual form of a role identifier.
func ParseRoleID(s string) (RoleID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RoleID{}, fmt.Errorf("invalid role id %q: %w", s, err)
	}
	return RoleID{value: id}, nil
}

// RoleIDFrom wraps an existing UUID.
func RoleIDFrom(id uuid.UUID) RoleID {
	return RoleID{value: id}
}

func (id RoleID) UUID() uuid.UUID { return id.value }
func (id RoleID) String() string  { return id.value.String() }
func (id RoleID) IsZero() bool    { return id.value == uuid.Nil }

// PermissionID identifies a permission grantable to roles.
type PermissionID struct {
	value uuid.UUID
}

// NewPermissionID generates a fresh random permission identifier.
func NewPermissionID() PermissionID {
	return PermissionID{value: uuid.New()}
}

// ParsePermissionID parses the canonical textual form of a permission identifier.
func ParsePermissionID(s string) (PermissionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return PermissionID{}, fmt.Errorf("invalid permission id %q: %w", s, err)
	}
	return PermissionID{value: id}, nil
}

// PermissionIDFrom wraps an existing UUID.
func PermissionIDFrom(id uuid.UUID) PermissionID {
	return PermissionID{value: id}
}

func (id PermissionID) UUID() uuid.UUID { return id.value }
func (id PermissionID) String() string  { return id.value.String() }
func (id PermissionID) IsZero() bool    { return id.value == uuid.Nil }
