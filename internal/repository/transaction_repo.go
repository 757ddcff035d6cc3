// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"fxwallet/internal/domain"
)

// TransactionRepository defines the interface for exchange-log operations.
// The log is append-only; records are never updated or deleted.
type TransactionRepository interface {
	// CreateTransaction appends a new exchange record using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByUserID retrieves a user's exchange history newest first.
	GetTransactionsByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error)
}
