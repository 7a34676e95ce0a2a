package outbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solveza-payment-ledger/internal/domain/money"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/transaction"
)

func TestNewMessage(t *testing.T) {
	accountID := shared.NewAccountID()
	tx, err := transaction.NewDeposit(accountID, money.Yen(50000), "monthly allowance")
	require.NoError(t, err)

	msg, err := NewMessage(EventTransactionRecorded, tx)
	require.NoError(t, err)

	assert.Equal(t, tx.ID, msg.TransactionID)
	assert.Equal(t, accountID, msg.AccountID)
	assert.Equal(t, StatusPending, msg.Status)
	assert.Zero(t, msg.Attempts)
	assert.Nil(t, msg.LastAttemptAt)
	assert.False(t, msg.CreatedAt.IsZero())

	event, err := msg.DecodeEvent()
	require.NoError(t, err)

	assert.Equal(t, EventTransactionRecorded, event.Name)
	assert.Equal(t, tx.ID.String(), event.TransactionID)
	assert.Equal(t, accountID.String(), event.AccountID)
	assert.Equal(t, "DEPOSIT", event.Type)
	assert.Equal(t, "50000", event.Amount)
	assert.Equal(t, "JPY", event.Currency)
	assert.Equal(t, "monthly allowance", event.Description)
	assert.Equal(t, tx.ExecutedAt, event.ExecutedAt)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestMessage_DecodeEvent_InvalidPayload(t *testing.T) {
	msg := &Message{Payload: []byte("{not json")}

	_, err := msg.DecodeEvent()
	assert.Error(t, err)
}
