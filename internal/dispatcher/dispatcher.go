package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/solveza-payment-ledger/internal/config"
	"github.com/solveza-payment-ledger/internal/domain/outbox"
)

// Dispatcher polls pending outbox messages and publishes them through a
// worker pool
type Dispatcher struct {
	outboxRepo       outbox.Repository
	publisher        EventPublisher
	pool             *ants.Pool
	logger           *slog.Logger
	pollInterval     time.Duration
	batchSize        int
	maxRetryAttempts int
}

// NewDispatcher creates a dispatcher with its own worker pool
func NewDispatcher(
	outboxCfg *config.OutboxConfig,
	poolCfg *config.WorkerPoolConfig,
	outboxRepo outbox.Repository,
	publisher EventPublisher,
	logger *slog.Logger,
) (*Dispatcher, error) {
	pool, err := ants.NewPool(poolCfg.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher worker pool: %w", err)
	}

	return &Dispatcher{
		outboxRepo:       outboxRepo,
		publisher:        publisher,
		pool:             pool,
		logger:           logger,
		pollInterval:     outboxCfg.PollingInterval,
		batchSize:        outboxCfg.BatchSize,
		maxRetryAttempts: outboxCfg.MaxRetryAttempts,
	}, nil
}

// Start begins polling until context is canceled
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("Starting outbox dispatcher",
		"poll_interval", d.pollInterval.String(),
		"batch_size", d.batchSize,
		"max_retry_attempts", d.maxRetryAttempts,
		"pool_size", d.pool.Cap(),
	)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Outbox dispatcher stopping due to context cancellation.")
			return
		case <-ticker.C:
			d.logger.Debug("Outbox dispatcher tick: publishing pending messages")
			if err := d.processPendingMessages(ctx); err != nil {
				d.logger.Error("Error during batch publishing of pending outbox messages", "error", err)
			}
		}
	}
}

// Shutdown releases the worker pool
func (d *Dispatcher) Shutdown() {
	d.logger.Info("Shutting down dispatcher worker pool", "running_workers", d.pool.Running())
	d.pool.Release()
}

// processPendingMessages fetches one batch and fans it out over the pool.
// The batch is awaited before the next tick so a slow broker cannot pile up
// duplicate in-flight publishes of the same message.
func (d *Dispatcher) processPendingMessages(ctx context.Context) error {
	messages, err := d.outboxRepo.GetPending(ctx, d.batchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending outbox messages: %w", err)
	}

	if len(messages) == 0 {
		d.logger.Debug("No pending outbox messages found.")
		return nil
	}

	d.logger.Info("Fetched pending outbox messages", "count", len(messages))

	var wg sync.WaitGroup
	for _, msg := range messages {
		msg := msg
		wg.Add(1)
		err := d.pool.Submit(func() {
			defer wg.Done()
			d.dispatchMessage(ctx, msg)
		})
		if err != nil {
			wg.Done()
			d.logger.Error("Failed to submit outbox message to worker pool", "outbox_id", msg.ID, "error", err)
		}
	}
	wg.Wait()

	return nil
}

func (d *Dispatcher) dispatchMessage(ctx context.Context, msg *outbox.Message) {
	err := d.publisher.PublishEvent(ctx, msg)
	if err == nil {
		return
	}
	d.logger.Error("Failed to publish outbox message",
		"outbox_id", msg.ID, "transaction_id", msg.TransactionID.String(), "current_attempts", msg.Attempts, "error", err,
	)

	if errInc := d.outboxRepo.IncrementAttempts(ctx, msg.ID); errInc != nil {
		d.logger.Error("Failed to increment attempts for outbox message", "outbox_id", msg.ID, "error", errInc)
		return
	}

	if msg.Attempts+1 >= d.maxRetryAttempts {
		d.logger.Warn("Max retry attempts reached for outbox message, marking as FAILED_TO_PUBLISH",
			"outbox_id", msg.ID, "transaction_id", msg.TransactionID.String(), "attempts_made", msg.Attempts+1,
		)
		if errUpdate := d.outboxRepo.UpdateStatus(ctx, msg.ID, outbox.StatusFailedToPublish); errUpdate != nil {
			d.logger.Error("Failed to update outbox status to FAILED_TO_PUBLISH after max retries", "outbox_id", msg.ID, "error", errUpdate)
		}
	}
}
