// Package dispatcher drains the transactional outbox: it polls pending
// messages, fans them out over a worker pool, and publishes them to Kafka.
package dispatcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/solveza-payment-ledger/internal/domain/outbox"
	"github.com/solveza-payment-ledger/internal/platform/messaging/producers"
)

// EventPublisher publishes one outbox message to the event stream
type EventPublisher interface {
	PublishEvent(ctx context.Context, message *outbox.Message) error
}

// KafkaEventPublisher implements EventPublisher on top of a Kafka producer
type KafkaEventPublisher struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewKafkaEventPublisher creates a new publisher
func NewKafkaEventPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) EventPublisher {
	return &KafkaEventPublisher{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishEvent decodes the stored event and writes it to the event topic,
// keyed by account ID so events of one account stay ordered. A payload that
// cannot be decoded is marked FAILED_TO_PUBLISH immediately: retrying a
// corrupt message can never succeed.
func (p *KafkaEventPublisher) PublishEvent(ctx context.Context, message *outbox.Message) error {
	event, err := message.DecodeEvent()
	if err != nil {
		p.logger.Error("Failed to decode event from outbox payload",
			"outbox_id", message.ID, "transaction_id", message.TransactionID.String(), "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status after decode error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("decode payload for outbox %d failed: %w", message.ID, err)
	}

	if err := p.producer.Publish(ctx, event.AccountID, event); err != nil {
		return fmt.Errorf("failed to publish event for outbox %d: %w", message.ID, err)
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusProcessed); err != nil {
		p.logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "transaction_id", message.TransactionID.String(), "error", err,
		)
		return fmt.Errorf("event for %s published, but failed to mark outbox %d as PROCESSED: %w", message.TransactionID.String(), message.ID, err)
	}

	p.logger.Info("Outbox message published and marked as PROCESSED",
		"outbox_id", message.ID, "transaction_id", message.TransactionID.String(), "event", event.Name,
	)
	return nil
}
