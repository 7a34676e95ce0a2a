package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solveza-payment-ledger/internal/domain/money"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/transaction"
)

func TestTransactionDocument_Mapping(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		amount, err := money.NewFromString("1234.56", "EUR")
		require.NoError(t, err)

		tx, err := transaction.NewPayment(shared.NewAccountID(), amount, "hotel booking")
		require.NoError(t, err)

		doc := toDocument(tx)

		assert.Equal(t, tx.ID.String(), doc.ID)
		assert.Equal(t, tx.AccountID.String(), doc.AccountID)
		assert.Equal(t, "PAYMENT", doc.Type)
		assert.Equal(t, "1234.56", doc.Amount)
		assert.Equal(t, "EUR", doc.Currency)

		restored, err := doc.toEntity()
		require.NoError(t, err)

		assert.Equal(t, tx.ID, restored.ID)
		assert.Equal(t, tx.AccountID, restored.AccountID)
		assert.Equal(t, tx.Type, restored.Type)
		assert.True(t, tx.Amount.Equal(restored.Amount))
		assert.Equal(t, tx.Description, restored.Description)
		assert.True(t, tx.ExecutedAt.Equal(restored.ExecutedAt))
		assert.True(t, tx.CreatedAt.Equal(restored.CreatedAt))
	})

	t.Run("AmountKeepsExactScale", func(t *testing.T) {
		tx, err := transaction.NewDeposit(shared.NewAccountID(), money.Yen(50000), "monthly allowance")
		require.NoError(t, err)

		doc := toDocument(tx)
		assert.Equal(t, "50000", doc.Amount)
		assert.Equal(t, "JPY", doc.Currency)
	})

	t.Run("MalformedID", func(t *testing.T) {
		doc := transactionDocument{
			ID:         "not-a-uuid",
			AccountID:  shared.NewAccountID().String(),
			Type:       "DEPOSIT",
			Amount:     "100",
			Currency:   "JPY",
			ExecutedAt: time.Now().UTC(),
			CreatedAt:  time.Now().UTC(),
		}

		_, err := doc.toEntity()
		assert.Error(t, err)
	})

	t.Run("MalformedAmount", func(t *testing.T) {
		doc := transactionDocument{
			ID:         shared.NewTransactionID().String(),
			AccountID:  shared.NewAccountID().String(),
			Type:       "DEPOSIT",
			Amount:     "one hundred",
			Currency:   "JPY",
			ExecutedAt: time.Now().UTC(),
			CreatedAt:  time.Now().UTC(),
		}

		_, err := doc.toEntity()
		assert.Error(t, err)
	})
}
