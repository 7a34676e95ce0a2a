package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/solveza-payment-ledger/internal/api"
	"github.com/solveza-payment-ledger/internal/api/service"
	"github.com/solveza-payment-ledger/internal/config"
	"github.com/solveza-payment-ledger/internal/data/mongo"
	"github.com/solveza-payment-ledger/internal/data/postgres"
	"github.com/solveza-payment-ledger/internal/dispatcher"
	"github.com/solveza-payment-ledger/internal/domain/account"
	"github.com/solveza-payment-ledger/internal/domain/transaction"
	"github.com/solveza-payment-ledger/internal/domain/user"
	"github.com/solveza-payment-ledger/internal/logger"
	"github.com/solveza-payment-ledger/internal/platform/messaging/producers"
	"github.com/solveza-payment-ledger/internal/platform/persistence"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	kafkaProducer, err := producers.NewLedgerEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize Kafka producer", "error", err)
		os.Exit(1)
	}

	// Repositories
	accountRepo := postgres.NewAccountRepository(log, postgresDB)
	userRepo := postgres.NewUserRepository(log, postgresDB)
	roleRepo := postgres.NewRoleRepository(log, postgresDB)
	permissionRepo := postgres.NewPermissionRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)
	transactionRepo := mongo.NewTransactionRepository(log, mongoDB.Database())

	// Domain services
	accountValidator := account.NewValidationService(accountRepo, userRepo)
	transactionValidator := transaction.NewValidationService(accountRepo)
	balanceService := transaction.NewBalanceService(transactionRepo)
	userValidator := user.NewValidationService(userRepo, roleRepo, permissionRepo)

	// Application services
	accountService := service.NewAccountService(log, accountRepo, accountValidator)
	transactionService := service.NewTransactionService(log, transactionRepo, outboxRepo, transactionValidator, balanceService)
	userService := service.NewUserService(log, userRepo, roleRepo, permissionRepo, userValidator)

	// Outbox dispatcher drains pending events to Kafka
	eventPublisher := dispatcher.NewKafkaEventPublisher(outboxRepo, kafkaProducer, log)
	outboxDispatcher, err := dispatcher.NewDispatcher(&cfg.Outbox, &cfg.WorkerPool, outboxRepo, eventPublisher, log)
	if err != nil {
		log.Error("Failed to initialize outbox dispatcher", "error", err)
		os.Exit(1)
	}
	go outboxDispatcher.Start(appCtx)

	server := api.NewServer(log, cfg, accountService, transactionService, userService)
	log.Info("REST server initialized")

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	outboxDispatcher.Shutdown()

	if err = kafkaProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
