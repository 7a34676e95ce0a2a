// Package mongo provides the MongoDB implementation of the transaction
// repository. Transactions are document-shaped: identifiers are stored as
// canonical UUID strings and amounts as exact decimal strings so no float
// conversion ever touches a monetary value.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/solveza-payment-ledger/internal/domain/money"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/transaction"
)

const (
	// TransactionCollectionName is the name of the transaction collection in MongoDB
	TransactionCollectionName = "transactions"
)

// transactionDocument is the persisted shape of a transaction
type transactionDocument struct {
	ID          string    `bson:"_id"`
	AccountID   string    `bson:"account_id"`
	Type        string    `bson:"type"`
	Amount      string    `bson:"amount"`
	Currency    string    `bson:"currency"`
	Description string    `bson:"description"`
	ExecutedAt  time.Time `bson:"executed_at"`
	CreatedAt   time.Time `bson:"created_at"`
}

func toDocument(tx *transaction.Transaction) transactionDocument {
	return transactionDocument{
		ID:          tx.ID.String(),
		AccountID:   tx.AccountID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount.Amount().String(),
		Currency:    string(tx.Amount.Currency()),
		Description: tx.Description,
		ExecutedAt:  tx.ExecutedAt,
		CreatedAt:   tx.CreatedAt,
	}
}

func (d transactionDocument) toEntity() (*transaction.Transaction, error) {
	id, err := shared.ParseTransactionID(d.ID)
	if err != nil {
		return nil, err
	}
	accountID, err := shared.ParseAccountID(d.AccountID)
	if err != nil {
		return nil, err
	}
	amount, err := money.NewFromString(d.Amount, money.Currency(d.Currency))
	if err != nil {
		return nil, err
	}
	return transaction.Reconstruct(
		id,
		accountID,
		transaction.Type(d.Type),
		amount,
		d.Description,
		d.ExecutedAt.UTC(),
		d.CreatedAt.UTC(),
	)
}

// TransactionRepository implements the transaction.Repository interface for MongoDB
type TransactionRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewTransactionRepository creates a new MongoDB transaction repository
func NewTransactionRepository(logger *slog.Logger, db *mongo.Database) transaction.Repository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// Save stores a transaction document. Transactions are immutable; the _id
// key makes a second save of the same transaction fail rather than rewrite
// history.
func (r *TransactionRepository) Save(ctx context.Context, tx *transaction.Transaction) error {
	collection := r.db.Collection(TransactionCollectionName)

	if _, err := collection.InsertOne(ctx, toDocument(tx)); err != nil {
		r.logger.Error("Failed to save transaction",
			"transaction_id", tx.ID.String(),
			"error", err)
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a transaction by its ID.
// Returns ErrTransactionNotFound if no document exists.
func (r *TransactionRepository) FindByID(ctx context.Context, id shared.TransactionID) (*transaction.Transaction, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"_id": id.String()}
	var doc transactionDocument
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, transaction.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get transaction",
			"transaction_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return doc.toEntity()
}

// FindByAccountID retrieves the full transaction history of an account,
// newest first.
func (r *TransactionRepository) FindByAccountID(ctx context.Context, accountID shared.AccountID) ([]*transaction.Transaction, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"account_id": accountID.String()}
	opts := options.Find().SetSort(bson.M{"executed_at": -1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get transactions",
			"account_id", accountID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []transactionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode transactions",
			"account_id", accountID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	transactions := make([]*transaction.Transaction, 0, len(docs))
	for _, doc := range docs {
		tx, err := doc.toEntity()
		if err != nil {
			r.logger.Error("Failed to map transaction document",
				"transaction_id", doc.ID,
				"error", err)
			return nil, fmt.Errorf("failed to map transaction document: %w", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// Delete removes a transaction document.
// Returns ErrTransactionNotFound if no document matched.
func (r *TransactionRepository) Delete(ctx context.Context, id shared.TransactionID) error {
	collection := r.db.Collection(TransactionCollectionName)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		r.logger.Error("Failed to delete transaction",
			"transaction_id", id.String(),
			"error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.DeletedCount == 0 {
		return transaction.ErrTransactionNotFound{TransactionID: id}
	}

	return nil
}

// ExistsByID reports whether a transaction document exists for the ID
func (r *TransactionRepository) ExistsByID(ctx context.Context, id shared.TransactionID) (bool, error) {
	collection := r.db.Collection(TransactionCollectionName)

	count, err := collection.CountDocuments(ctx, bson.M{"_id": id.String()})
	if err != nil {
		r.logger.Error("Failed to check transaction existence",
			"transaction_id", id.String(),
			"error", err)
		return false, fmt.Errorf("failed to check transaction existence: %w", err)
	}

	return count > 0, nil
}
