package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solveza-payment-ledger/internal/api/handler"
	"github.com/solveza-payment-ledger/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	userHandler *handler.UserHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Account operations
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("", accountHandler.GetByUserID)
			accounts.GET("/:id", accountHandler.GetByID)
			accounts.DELETE("/:id", accountHandler.Delete)
		}

		// Transaction operations
		transactions := v1.Group("/transactions")
		{
			transactions.POST("/deposits", transactionHandler.RecordDeposit)
			transactions.POST("/payments", transactionHandler.RecordPayment)
			transactions.GET("/history", transactionHandler.GetHistory)
			transactions.GET("/balance", transactionHandler.GetBalance)
			transactions.GET("/:id", transactionHandler.GetByID)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		// User management operations
		users := v1.Group("/users")
		{
			users.POST("", userHandler.Create)
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.GetByID)
			users.DELETE("/:id", userHandler.Delete)
			users.POST("/:id/roles", userHandler.AssignRole)
		}

		roles := v1.Group("/roles")
		{
			roles.POST("", userHandler.CreateRole)
			roles.POST("/:id/permissions", userHandler.GrantPermission)
		}

		v1.POST("/permissions", userHandler.CreatePermission)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
