package transaction

import (
	"context"

	"github.com/solveza-payment-ledger/internal/domain/shared"
)

// Repository defines transaction persistence operations. The order of
// FindByAccountID results is not significant to callers: the balance fold
// is commutative.
type Repository interface {
	Save(ctx context.Context, tx *Transaction) error
	FindByID(ctx context.Context, id shared.TransactionID) (*Transaction, error)
	FindByAccountID(ctx context.Context, accountID shared.AccountID) ([]*Transaction, error)
	Delete(ctx context.Context, id shared.TransactionID) error
	ExistsByID(ctx context.Context, id shared.TransactionID) (bool, error)
}

// ErrTransactionNotFound indicates a missing transaction
type ErrTransactionNotFound struct {
	TransactionID shared.TransactionID
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.TransactionID.String()
}
