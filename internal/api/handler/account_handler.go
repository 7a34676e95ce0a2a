package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solveza-payment-ledger/internal/api/service"
	"github.com/solveza-payment-ledger/internal/domain/account"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/user"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create opens an account between a requesting and a paying user
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	requesterID, err := shared.ParseUserID(req.RequesterID)
	if err != nil {
		RespondBadRequest(c, "Invalid requester ID")
		return
	}
	payerID, err := shared.ParseUserID(req.PayerID)
	if err != nil {
		RespondBadRequest(c, "Invalid payer ID")
		return
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), requesterID, payerID)
	if err != nil {
		var userNotFound user.ErrUserNotFound
		var duplicate account.ErrDuplicateAccount
		switch {
		case errors.As(err, &userNotFound):
			RespondNotFound(c, "User not found: "+userNotFound.UserID.String())
		case errors.As(err, &duplicate):
			RespondConflict(c, "Account already exists for this requester and payer")
		case errors.Is(err, account.ErrSameParticipant):
			RespondBadRequest(c, "Requester and payer must be different users")
		default:
			h.logger.Error("Failed to create account", "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// GetByID retrieves an account by its ID
func (h *AccountHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := shared.ParseAccountID(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	acc, err := h.accountService.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		var notFound account.ErrAccountNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account", "account_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// GetByUserID lists accounts the user participates in, on either side
func (h *AccountHandler) GetByUserID(c *gin.Context) {
	userIDParam := c.Query("user_id")
	if userIDParam == "" {
		RespondBadRequest(c, "user_id query parameter is required")
		return
	}
	userID, err := shared.ParseUserID(userIDParam)
	if err != nil {
		RespondBadRequest(c, "Invalid user ID")
		return
	}

	accounts, err := h.accountService.GetAccountsByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list accounts", "user_id", userIDParam, "error", err)
		RespondInternalError(c)
		return
	}

	response := AccountListResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
	for _, acc := range accounts {
		response.Accounts = append(response.Accounts, mapAccountToResponse(acc))
	}
	RespondOK(c, response)
}

// Delete removes an account
func (h *AccountHandler) Delete(c *gin.Context) {
	idParam := c.Param("id")
	id, err := shared.ParseAccountID(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), id); err != nil {
		var notFound account.ErrAccountNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to delete account", "account_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// mapAccountToResponse maps an account entity to an account response DTO
func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:          acc.ID.String(),
		RequesterID: acc.RequesterID.String(),
		PayerID:     acc.PayerID.String(),
		CreatedAt:   acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   acc.UpdatedAt.Format(time.RFC3339),
	}
}
