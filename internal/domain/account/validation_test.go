package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/user"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Save(ctx context.Context, acc *Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id shared.AccountID) (*Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUserID(ctx context.Context, userID shared.UserID) ([]*Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Account), args.Error(1)
}

func (m *MockAccountRepository) FindByRequesterID(ctx context.Context, requesterID shared.UserID) ([]*Account, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Account), args.Error(1)
}

func (m *MockAccountRepository) FindByPayerID(ctx context.Context, payerID shared.UserID) ([]*Account, error) {
	args := m.Called(ctx, payerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Account), args.Error(1)
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

func TestValidationService_ValidateUsersExist(t *testing.T) {
	ctx := context.Background()
	requesterID := shared.NewUserID()
	payerID := shared.NewUserID()

	t.Run("BothExist", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		userRepo := new(MockUserRepository)
		svc := NewValidationService(accountRepo, userRepo)

		userRepo.On("ExistsByID", ctx, requesterID).Return(true, nil).Once()
		userRepo.On("ExistsByID", ctx, payerID).Return(true, nil).Once()

		err := svc.ValidateUsersExist(ctx, requesterID, payerID)
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("RequesterMissing_FailsBeforePayerCheck", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		userRepo := new(MockUserRepository)
		svc := NewValidationService(accountRepo, userRepo)

		userRepo.On("ExistsByID", ctx, requesterID).Return(false, nil).Once()

		err := svc.ValidateUsersExist(ctx, requesterID, payerID)

		var notFound user.ErrUserNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, requesterID, notFound.UserID)
		userRepo.AssertExpectations(t)
		userRepo.AssertNumberOfCalls(t, "ExistsByID", 1)
	})

	t.Run("PayerMissing", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		userRepo := new(MockUserRepository)
		svc := NewValidationService(accountRepo, userRepo)

		userRepo.On("ExistsByID", ctx, requesterID).Return(true, nil).Once()
		userRepo.On("ExistsByID", ctx, payerID).Return(false, nil).Once()

		err := svc.ValidateUsersExist(ctx, requesterID, payerID)

		var notFound user.ErrUserNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, payerID, notFound.UserID)
		userRepo.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		userRepo := new(MockUserRepository)
		svc := NewValidationService(accountRepo, userRepo)

		repoErr := errors.New("db down")
		userRepo.On("ExistsByID", ctx, requesterID).Return(false, repoErr).Once()

		err := svc.ValidateUsersExist(ctx, requesterID, payerID)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestValidationService_ValidateUniquePair(t *testing.T) {
	ctx := context.Background()
	requesterID := shared.NewUserID()
	payerID := shared.NewUserID()

	t.Run("PairAvailable", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		svc := NewValidationService(accountRepo, new(MockUserRepository))

		accountRepo.On("ExistsByRequesterAndPayer", ctx, requesterID, payerID).Return(false, nil).Once()

		err := svc.ValidateUniquePair(ctx, requesterID, payerID)
		assert.NoError(t, err)
		accountRepo.AssertExpectations(t)
	})

	t.Run("DuplicatePair", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		svc := NewValidationService(accountRepo, new(MockUserRepository))

		accountRepo.On("ExistsByRequesterAndPayer", ctx, requesterID, payerID).Return(true, nil).Once()

		err := svc.ValidateUniquePair(ctx, requesterID, payerID)

		var duplicate ErrDuplicateAccount
		assert.ErrorAs(t, err, &duplicate)
		assert.Equal(t, requesterID, duplicate.RequesterID)
		assert.Equal(t, payerID, duplicate.PayerID)
	})

	t.Run("ReversedPairIsDistinct", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		svc := NewValidationService(accountRepo, new(MockUserRepository))

		// Uniqueness holds on the ordered pair; (payer, requester) is
		// checked independently of an existing (requester, payer).
		accountRepo.On("ExistsByRequesterAndPayer", ctx, payerID, requesterID).Return(false, nil).Once()

		err := svc.ValidateUniquePair(ctx, payerID, requesterID)
		assert.NoError(t, err)
		accountRepo.AssertExpectations(t)
	})
}

func TestValidationService_ValidateAccountExists(t *testing.T) {
	ctx := context.Background()
	accountID := shared.NewAccountID()

	t.Run("Exists", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		svc := NewValidationService(accountRepo, new(MockUserRepository))

		accountRepo.On("ExistsByID", ctx, accountID).Return(true, nil).Once()

		assert.NoError(t, svc.ValidateAccountExists(ctx, accountID))
	})

	t.Run("Missing", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		svc := NewValidationService(accountRepo, new(MockUserRepository))

		accountRepo.On("ExistsByID", ctx, accountID).Return(false, nil).Once()

		err := svc.ValidateAccountExists(ctx, accountID)

		var notFound ErrAccountNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, accountID, notFound.AccountID)
	})
}
