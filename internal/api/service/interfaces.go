// Package service implements the application use cases exposed through the
// HTTP API. Services compose the domain validation services with the
// repositories; business rules stay in the domain layer.
package service

import (
	"context"

	"github.com/solveza-payment-ledger/internal/domain/account"
	"github.com/solveza-payment-ledger/internal/domain/money"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/transaction"
	"github.com/solveza-payment-ledger/internal/domain/user"
)

// AccountService defines the interface for account operations
type AccountService interface {
	// CreateAccount opens an account between a requesting and a paying user.
	// Returns user.ErrUserNotFound if either participant is unknown and
	// account.ErrDuplicateAccount if the ordered pair already has an account.
	CreateAccount(ctx context.Context, requesterID, payerID shared.UserID) (*account.Account, error)

	// GetAccountByID retrieves an account by its ID.
	// Returns account.ErrAccountNotFound if the account doesn't exist.
	GetAccountByID(ctx context.Context, id shared.AccountID) (*account.Account, error)

	// GetAccountsByUserID retrieves all accounts the user participates in,
	// on either side.
	GetAccountsByUserID(ctx context.Context, userID shared.UserID) ([]*account.Account, error)

	// DeleteAccount removes an account.
	// Returns account.ErrAccountNotFound if the account doesn't exist.
	DeleteAccount(ctx context.Context, id shared.AccountID) error
}

// TransactionService defines the interface for transaction operations
type TransactionService interface {
	// RecordDeposit records money handed to the payer for safekeeping and
	// queues a transaction.recorded event.
	RecordDeposit(ctx context.Context, accountID shared.AccountID, amount money.Money, description string) (*transaction.Transaction, error)

	// RecordPayment records money paid out on the requester's behalf and
	// queues a transaction.recorded event.
	RecordPayment(ctx context.Context, accountID shared.AccountID, amount money.Money, description string) (*transaction.Transaction, error)

	// GetTransactionByID retrieves a transaction by its ID.
	// Returns transaction.ErrTransactionNotFound if it doesn't exist.
	GetTransactionByID(ctx context.Context, id shared.TransactionID) (*transaction.Transaction, error)

	// GetHistory retrieves all transactions recorded against an account.
	// Returns account.ErrAccountNotFound if the account doesn't exist.
	GetHistory(ctx context.Context, accountID shared.AccountID) ([]*transaction.Transaction, error)

	// GetBalance derives the account balance from its transaction history.
	// Returns account.ErrAccountNotFound if the account doesn't exist.
	GetBalance(ctx context.Context, accountID shared.AccountID) (money.Money, error)

	// DeleteTransaction removes a transaction and queues a
	// transaction.deleted event.
	// Returns transaction.ErrTransactionNotFound if it doesn't exist.
	DeleteTransaction(ctx context.Context, id shared.TransactionID) error
}

// UserService defines the interface for user, role and permission operations
type UserService interface {
	// CreateUser registers a user identified by an external auth provider.
	// Registering an identity already known by (provider, external id)
	// refreshes its name and email and returns the existing user.
	CreateUser(ctx context.Context, provider user.Provider, externalID, name, email string) (*user.User, error)

	// ListUsers retrieves all registered users.
	ListUsers(ctx context.Context) ([]*user.User, error)

	// GetUserByID retrieves a user by its ID.
	// Returns user.ErrUserNotFound if the user doesn't exist.
	GetUserByID(ctx context.Context, id shared.UserID) (*user.User, error)

	// DeleteUser removes a user.
	// Returns user.ErrUserNotFound if the user doesn't exist.
	DeleteUser(ctx context.Context, id shared.UserID) error

	// AssignRole assigns a role to a user and returns the updated user.
	// Returns user.ErrUserNotFound or user.ErrRoleNotFound accordingly.
	AssignRole(ctx context.Context, userID shared.UserID, roleID shared.RoleID) (*user.User, error)

	// CreateRole creates a role with a unique name.
	// Returns user.ErrDuplicateRole when the name is taken.
	CreateRole(ctx context.Context, name, description string) (*user.Role, error)

	// GrantPermission grants a permission to a role and returns the updated
	// role. Returns user.ErrRoleNotFound or user.ErrPermissionNotFound
	// accordingly.
	GrantPermission(ctx context.Context, roleID shared.RoleID, permissionID shared.PermissionID) (*user.Role, error)

	// CreatePermission creates a permission with a unique name.
	// Returns user.ErrDuplicatePermission when the name is taken.
	CreatePermission(ctx context.Context, name, resource, action string) (*user.Permission, error)
}
