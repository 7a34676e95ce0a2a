// Package outbox implements the transactional outbox used to publish
// ledger events reliably: recording writes a pending row, the dispatcher
// drains pending rows to Kafka.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/transaction"
)

// Event names
const (
	EventTransactionRecorded = "transaction.recorded"
	EventTransactionDeleted  = "transaction.deleted"
)

// Status defines message publishing states
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusProcessed       Status = "PROCESSED"
	StatusFailedToPublish Status = "FAILED_TO_PUBLISH"
)

// Event is the payload published to Kafka for a ledger change.
// Identifiers render in canonical string form and amounts as exact decimal
// strings.
type Event struct {
	Name          string    `json:"name"`
	TransactionID string    `json:"transaction_id"`
	AccountID     string    `json:"account_id"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Description   string    `json:"description,omitempty"`
	ExecutedAt    time.Time `json:"executed_at"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Message stores one event for reliable publishing.
type Message struct {
	ID            int64
	TransactionID shared.TransactionID
	AccountID     shared.AccountID
	Payload       json.RawMessage
	Status        Status
	Attempts      int
	CreatedAt     time.Time
	LastAttemptAt *time.Time
}

// NewMessage wraps a ledger change into a pending outbox message.
func NewMessage(eventName string, tx *transaction.Transaction) (*Message, error) {
	event := Event{
		Name:          eventName,
		TransactionID: tx.ID.String(),
		AccountID:     tx.AccountID.String(),
		Type:          string(tx.Type),
		Amount:        tx.Amount.Amount().String(),
		Currency:      string(tx.Amount.Currency()),
		Description:   tx.Description,
		ExecutedAt:    tx.ExecutedAt,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &Message{
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		Payload:       payload,
		Status:        StatusPending,
		Attempts:      0,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// DecodeEvent extracts the event from the payload.
func (m *Message) DecodeEvent() (*Event, error) {
	var event Event
	if err := json.Unmarshal(m.Payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
