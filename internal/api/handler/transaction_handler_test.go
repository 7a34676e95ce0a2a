package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/solveza-payment-ledger/internal/api/service"
	"github.com/solveza-payment-ledger/internal/domain/account"
	"github.com/solveza-payment-ledger/internal/domain/money"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/transaction"
)

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) RecordDeposit(ctx context.Context, accountID shared.AccountID, amount money.Money, description string) (*transaction.Transaction, error) {
	args := m.Called(ctx, accountID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionService) RecordPayment(ctx context.Context, accountID shared.AccountID, amount money.Money, description string) (*transaction.Transaction, error) {
	args := m.Called(ctx, accountID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, id shared.TransactionID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetHistory(ctx context.Context, accountID shared.AccountID) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetBalance(ctx context.Context, accountID shared.AccountID) (money.Money, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(money.Money), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, id shared.TransactionID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ service.TransactionService = (*MockTransactionService)(nil)

func TestTransactionHandler_RecordDeposit(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		accountID := shared.NewAccountID()
		tx, err := transaction.NewDeposit(accountID, money.Yen(50000), "monthly allowance")
		require.NoError(t, err)

		mockService.On("RecordDeposit", mock.Anything, accountID, mock.MatchedBy(func(m money.Money) bool {
			return m.Equal(money.Yen(50000))
		}), "monthly allowance").Return(tx, nil)

		router := setupTestRouter()
		router.POST("/transactions/deposits", h.RecordDeposit)

		jsonBody, _ := json.Marshal(RecordTransactionRequest{
			AccountID:   accountID.String(),
			Amount:      "50000",
			Currency:    "JPY",
			Description: "monthly allowance",
		})
		req, _ := http.NewRequest(http.MethodPost, "/transactions/deposits", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		response := decodeData[TransactionResponse](t, rr.Body.Bytes())
		assert.Equal(t, tx.ID.String(), response.ID)
		assert.Equal(t, "DEPOSIT", response.Type)
		assert.Equal(t, "50000", response.Amount)
		assert.Equal(t, "JPY", response.Currency)
		mockService.AssertExpectations(t)
	})

	t.Run("CurrencyDefaultsToJPY", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		accountID := shared.NewAccountID()
		tx, err := transaction.NewDeposit(accountID, money.Yen(1000), "allowance")
		require.NoError(t, err)

		mockService.On("RecordDeposit", mock.Anything, accountID, mock.MatchedBy(func(m money.Money) bool {
			return m.Currency() == money.JPY
		}), "allowance").Return(tx, nil)

		router := setupTestRouter()
		router.POST("/transactions/deposits", h.RecordDeposit)

		jsonBody, _ := json.Marshal(RecordTransactionRequest{
			AccountID:   accountID.String(),
			Amount:      "1000",
			Description: "allowance",
		})
		req, _ := http.NewRequest(http.MethodPost, "/transactions/deposits", bytes.NewBuffer(jsonBody))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NegativeAmountRejected", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/transactions/deposits", h.RecordDeposit)

		jsonBody, _ := json.Marshal(RecordTransactionRequest{
			AccountID:   shared.NewAccountID().String(),
			Amount:      "-100",
			Description: "bad",
		})
		req, _ := http.NewRequest(http.MethodPost, "/transactions/deposits", bytes.NewBuffer(jsonBody))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "RecordDeposit")
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		accountID := shared.NewAccountID()
		mockService.On("RecordDeposit", mock.Anything, accountID, mock.Anything, mock.Anything).
			Return(nil, account.ErrAccountNotFound{AccountID: accountID})

		router := setupTestRouter()
		router.POST("/transactions/deposits", h.RecordDeposit)

		jsonBody, _ := json.Marshal(RecordTransactionRequest{
			AccountID:   accountID.String(),
			Amount:      "1000",
			Description: "allowance",
		})
		req, _ := http.NewRequest(http.MethodPost, "/transactions/deposits", bytes.NewBuffer(jsonBody))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("ValidationErrorReturns400", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		accountID := shared.NewAccountID()
		mockService.On("RecordDeposit", mock.Anything, accountID, mock.Anything, mock.Anything).
			Return(nil, transaction.ErrInvalidTransaction{Reason: "amount must be positive"})

		router := setupTestRouter()
		router.POST("/transactions/deposits", h.RecordDeposit)

		jsonBody, _ := json.Marshal(RecordTransactionRequest{
			AccountID:   accountID.String(),
			Amount:      "0",
			Description: "nothing",
		})
		req, _ := http.NewRequest(http.MethodPost, "/transactions/deposits", bytes.NewBuffer(jsonBody))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTransactionHandler_RecordPayment(t *testing.T) {
	logger := testLogger()

	mockService := new(MockTransactionService)
	h := NewTransactionHandler(logger, mockService)

	accountID := shared.NewAccountID()
	tx, err := transaction.NewPayment(accountID, money.Yen(12000), "textbooks")
	require.NoError(t, err)

	mockService.On("RecordPayment", mock.Anything, accountID, mock.Anything, "textbooks").Return(tx, nil)

	router := setupTestRouter()
	router.POST("/transactions/payments", h.RecordPayment)

	jsonBody, _ := json.Marshal(RecordTransactionRequest{
		AccountID:   accountID.String(),
		Amount:      "12000",
		Currency:    "JPY",
		Description: "textbooks",
	})
	req, _ := http.NewRequest(http.MethodPost, "/transactions/payments", bytes.NewBuffer(jsonBody))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	response := decodeData[TransactionResponse](t, rr.Body.Bytes())
	assert.Equal(t, "PAYMENT", response.Type)
	mockService.AssertExpectations(t)
}

func TestTransactionHandler_GetByID(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		tx, err := transaction.NewDeposit(shared.NewAccountID(), money.Yen(1000), "allowance")
		require.NoError(t, err)
		mockService.On("GetTransactionByID", mock.Anything, tx.ID).Return(tx, nil)

		router := setupTestRouter()
		router.GET("/transactions/:id", h.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/"+tx.ID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		response := decodeData[TransactionResponse](t, rr.Body.Bytes())
		assert.Equal(t, tx.ID.String(), response.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		id := shared.NewTransactionID()
		mockService.On("GetTransactionByID", mock.Anything, id).
			Return(nil, transaction.ErrTransactionNotFound{TransactionID: id})

		router := setupTestRouter()
		router.GET("/transactions/:id", h.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/"+id.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTransactionHandler_GetHistory(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		accountID := shared.NewAccountID()
		tx, err := transaction.NewDeposit(accountID, money.Yen(1000), "allowance")
		require.NoError(t, err)
		mockService.On("GetHistory", mock.Anything, accountID).
			Return([]*transaction.Transaction{tx}, nil)

		router := setupTestRouter()
		router.GET("/transactions/history", h.GetHistory)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/history?account_id="+accountID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		response := decodeData[TransactionListResponse](t, rr.Body.Bytes())
		require.Len(t, response.Transactions, 1)
		assert.Equal(t, tx.ID.String(), response.Transactions[0].ID)
	})

	t.Run("MissingAccountIDParam", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		router := setupTestRouter()
		router.GET("/transactions/history", h.GetHistory)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/history", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "GetHistory")
	})
}

func TestTransactionHandler_GetBalance(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		accountID := shared.NewAccountID()
		mockService.On("GetBalance", mock.Anything, accountID).Return(money.Yen(38000), nil)

		router := setupTestRouter()
		router.GET("/transactions/balance", h.GetBalance)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/balance?account_id="+accountID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		response := decodeData[BalanceResponse](t, rr.Body.Bytes())
		assert.Equal(t, accountID.String(), response.AccountID)
		assert.Equal(t, "38000", response.Balance)
		assert.Equal(t, "JPY", response.Currency)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		accountID := shared.NewAccountID()
		mockService.On("GetBalance", mock.Anything, accountID).
			Return(money.Money{}, account.ErrAccountNotFound{AccountID: accountID})

		router := setupTestRouter()
		router.GET("/transactions/balance", h.GetBalance)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/balance?account_id="+accountID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("MixedCurrencyHistoryReturns409", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		accountID := shared.NewAccountID()
		mockService.On("GetBalance", mock.Anything, accountID).
			Return(money.Money{}, transaction.ErrMixedCurrencies{
				AccountID: accountID,
				Expected:  money.JPY,
				Got:       money.Currency("USD"),
			})

		router := setupTestRouter()
		router.GET("/transactions/balance", h.GetBalance)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/balance?account_id="+accountID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)

		var response Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.NotNil(t, response.Error)
		assert.Equal(t, "CONFLICT", response.Error.Code)
		assert.Contains(t, response.Error.Message, "multiple currencies")
	})
}

func TestTransactionHandler_Delete(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		id := shared.NewTransactionID()
		mockService.On("DeleteTransaction", mock.Anything, id).Return(nil)

		router := setupTestRouter()
		router.DELETE("/transactions/:id", h.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/transactions/"+id.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockTransactionService)
		h := NewTransactionHandler(logger, mockService)

		id := shared.NewTransactionID()
		mockService.On("DeleteTransaction", mock.Anything, id).
			Return(transaction.ErrTransactionNotFound{TransactionID: id})

		router := setupTestRouter()
		router.DELETE("/transactions/:id", h.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/transactions/"+id.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
