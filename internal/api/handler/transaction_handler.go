package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solveza-payment-ledger/internal/api/service"
	"github.com/solveza-payment-ledger/internal/domain/account"
	"github.com/solveza-payment-ledger/internal/domain/money"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/transaction"
)

// TransactionHandler handles HTTP requests for transaction operations
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// RecordDeposit records a deposit against an account
func (h *TransactionHandler) RecordDeposit(c *gin.Context) {
	h.record(c, h.transactionService.RecordDeposit)
}

// RecordPayment records a payment against an account
func (h *TransactionHandler) RecordPayment(c *gin.Context) {
	h.record(c, h.transactionService.RecordPayment)
}

func (h *TransactionHandler) record(
	c *gin.Context,
	record func(ctx context.Context, accountID shared.AccountID, amount money.Money, description string) (*transaction.Transaction, error),
) {
	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	accountID, err := shared.ParseAccountID(req.AccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	currency := money.Currency(req.Currency)
	if currency == "" {
		currency = money.JPY
	}
	amount, err := money.NewFromString(req.Amount, currency)
	if err != nil {
		RespondBadRequest(c, "Invalid amount: "+err.Error())
		return
	}

	tx, err := record(c.Request.Context(), accountID, amount, req.Description)
	if err != nil {
		h.respondRecordError(c, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(tx))
}

func (h *TransactionHandler) respondRecordError(c *gin.Context, err error) {
	var accNotFound account.ErrAccountNotFound
	var invalid transaction.ErrInvalidTransaction
	switch {
	case errors.As(err, &accNotFound):
		RespondNotFound(c, "Account not found")
	case errors.As(err, &invalid):
		RespondBadRequest(c, invalid.Error())
	case errors.Is(err, transaction.ErrDescriptionRequired):
		RespondBadRequest(c, "Description is required")
	default:
		h.logger.Error("Failed to record transaction", "error", err)
		RespondInternalError(c)
	}
}

// GetByID retrieves a transaction by its ID
func (h *TransactionHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := shared.ParseTransactionID(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		var notFound transaction.ErrTransactionNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Transaction not found")
			return
		}
		h.logger.Error("Failed to get transaction", "transaction_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}

// GetHistory lists all transactions recorded against an account
func (h *TransactionHandler) GetHistory(c *gin.Context) {
	accountID, ok := h.bindAccountIDQuery(c)
	if !ok {
		return
	}

	transactions, err := h.transactionService.GetHistory(c.Request.Context(), accountID)
	if err != nil {
		var notFound account.ErrAccountNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get transaction history", "account_id", accountID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	response := TransactionListResponse{Transactions: make([]TransactionResponse, 0, len(transactions))}
	for _, tx := range transactions {
		response.Transactions = append(response.Transactions, mapTransactionToResponse(tx))
	}
	RespondOK(c, response)
}

// GetBalance derives the account balance from its transaction history
func (h *TransactionHandler) GetBalance(c *gin.Context) {
	accountID, ok := h.bindAccountIDQuery(c)
	if !ok {
		return
	}

	balance, err := h.transactionService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		var notFound account.ErrAccountNotFound
		var mixed transaction.ErrMixedCurrencies
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Account not found")
		case errors.As(err, &mixed):
			// The history itself is inconsistent; the request was fine.
			RespondConflict(c, mixed.Error())
		default:
			h.logger.Error("Failed to calculate balance", "account_id", accountID.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, BalanceResponse{
		AccountID: accountID.String(),
		Balance:   balance.Amount().String(),
		Currency:  string(balance.Currency()),
	})
}

// Delete removes a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	idParam := c.Param("id")
	id, err := shared.ParseTransactionID(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		var notFound transaction.ErrTransactionNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Transaction not found")
			return
		}
		h.logger.Error("Failed to delete transaction", "transaction_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

func (h *TransactionHandler) bindAccountIDQuery(c *gin.Context) (shared.AccountID, bool) {
	accountIDParam := c.Query("account_id")
	if accountIDParam == "" {
		RespondBadRequest(c, "account_id query parameter is required")
		return shared.AccountID{}, false
	}
	accountID, err := shared.ParseAccountID(accountIDParam)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return shared.AccountID{}, false
	}
	return accountID, true
}

// mapTransactionToResponse maps a transaction entity to a response DTO
func mapTransactionToResponse(tx *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID.String(),
		AccountID:   tx.AccountID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount.Amount().String(),
		Currency:    string(tx.Amount.Currency()),
		Description: tx.Description,
		ExecutedAt:  tx.ExecutedAt.Format(time.RFC3339),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}
