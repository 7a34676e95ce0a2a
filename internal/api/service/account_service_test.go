package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/solveza-payment-ledger/internal/domain/account"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/user"
)

// MockAccountRepository mocks account.Repository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Save(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id shared.AccountID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUserID(ctx context.Context, userID shared.UserID) ([]*account.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByRequesterID(ctx context.Context, requesterID shared.UserID) ([]*account.Account, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByPayerID(ctx context.Context, payerID shared.UserID) ([]*account.Account, error) {
	args := m.Called(ctx, payerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id shared.AccountID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) ExistsByID(ctx context.Context, id shared.AccountID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ExistsByRequesterAndPayer(ctx context.Context, requesterID, payerID shared.UserID) (bool, error) {
	args := m.Called(ctx, requesterID, payerID)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository mocks user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id shared.UserID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, provider user.Provider, externalID string) (*user.User, error) {
	args := m.Called(ctx, provider, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id shared.UserID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByID(ctx context.Context, id shared.UserID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newAccountService(accounts *MockAccountRepository, users *MockUserRepository) AccountService {
	validator := account.NewValidationService(accounts, users)
	return NewAccountService(slog.Default(), accounts, validator)
}

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		accounts := &MockAccountRepository{}
		users := &MockUserRepository{}
		svc := newAccountService(accounts, users)

		requesterID := shared.NewUserID()
		payerID := shared.NewUserID()

		users.On("ExistsByID", ctx, requesterID).Return(true, nil).Once()
		users.On("ExistsByID", ctx, payerID).Return(true, nil).Once()
		accounts.On("ExistsByRequesterAndPayer", ctx, requesterID, payerID).Return(false, nil).Once()
		accounts.On("Save", ctx, mock.AnythingOfType("*account.Account")).Return(nil).Once()

		acc, err := svc.CreateAccount(ctx, requesterID, payerID)
		require.NoError(t, err)
		assert.Equal(t, requesterID, acc.RequesterID)
		assert.Equal(t, payerID, acc.PayerID)
		assert.False(t, acc.ID.IsZero())

		accounts.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("RequesterMissing", func(t *testing.T) {
		accounts := &MockAccountRepository{}
		users := &MockUserRepository{}
		svc := newAccountService(accounts, users)

		requesterID := shared.NewUserID()
		payerID := shared.NewUserID()

		users.On("ExistsByID", ctx, requesterID).Return(false, nil).Once()

		_, err := svc.CreateAccount(ctx, requesterID, payerID)
		var notFound user.ErrUserNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, requesterID, notFound.UserID)

		accounts.AssertNotCalled(t, "Save")
		users.AssertNumberOfCalls(t, "ExistsByID", 1)
	})

	t.Run("DuplicatePair", func(t *testing.T) {
		accounts := &MockAccountRepository{}
		users := &MockUserRepository{}
		svc := newAccountService(accounts, users)

		requesterID := shared.NewUserID()
		payerID := shared.NewUserID()

		users.On("ExistsByID", ctx, mock.Anything).Return(true, nil).Twice()
		accounts.On("ExistsByRequesterAndPayer", ctx, requesterID, payerID).Return(true, nil).Once()

		_, err := svc.CreateAccount(ctx, requesterID, payerID)
		var duplicate account.ErrDuplicateAccount
		require.ErrorAs(t, err, &duplicate)
		accounts.AssertNotCalled(t, "Save")
	})

	t.Run("SameParticipant", func(t *testing.T) {
		accounts := &MockAccountRepository{}
		users := &MockUserRepository{}
		svc := newAccountService(accounts, users)

		userID := shared.NewUserID()

		users.On("ExistsByID", ctx, userID).Return(true, nil).Twice()
		accounts.On("ExistsByRequesterAndPayer", ctx, userID, userID).Return(false, nil).Once()

		_, err := svc.CreateAccount(ctx, userID, userID)
		assert.ErrorIs(t, err, account.ErrSameParticipant)
		accounts.AssertNotCalled(t, "Save")
	})

	t.Run("SaveError", func(t *testing.T) {
		accounts := &MockAccountRepository{}
		users := &MockUserRepository{}
		svc := newAccountService(accounts, users)

		requesterID := shared.NewUserID()
		payerID := shared.NewUserID()
		saveErr := errors.New("db down")

		users.On("ExistsByID", ctx, mock.Anything).Return(true, nil).Twice()
		accounts.On("ExistsByRequesterAndPayer", ctx, requesterID, payerID).Return(false, nil).Once()
		accounts.On("Save", ctx, mock.Anything).Return(saveErr).Once()

		_, err := svc.CreateAccount(ctx, requesterID, payerID)
		assert.ErrorIs(t, err, saveErr)
	})
}

func TestAccountService_GetAccountsByUserID(t *testing.T) {
	ctx := context.Background()

	accounts := &MockAccountRepository{}
	users := &MockUserRepository{}
	svc := newAccountService(accounts, users)

	userID := shared.NewUserID()
	acc, err := account.New(userID, shared.NewUserID())
	require.NoError(t, err)

	accounts.On("FindByUserID", ctx, userID).Return([]*account.Account{acc}, nil).Once()

	result, err := svc.GetAccountsByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, acc.ID, result[0].ID)
	accounts.AssertExpectations(t)
}

func TestAccountService_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		accounts := &MockAccountRepository{}
		users := &MockUserRepository{}
		svc := newAccountService(accounts, users)

		id := shared.NewAccountID()
		accounts.On("Delete", ctx, id).Return(nil).Once()

		assert.NoError(t, svc.DeleteAccount(ctx, id))
		accounts.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		accounts := &MockAccountRepository{}
		users := &MockUserRepository{}
		svc := newAccountService(accounts, users)

		id := shared.NewAccountID()
		accounts.On("Delete", ctx, id).Return(account.ErrAccountNotFound{AccountID: id}).Once()

		err := svc.DeleteAccount(ctx, id)
		var notFound account.ErrAccountNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}
