// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fxwallet/internal/domain"
	"fxwallet/internal/repository"
	"fxwallet/internal/util"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction appends a new exchange record using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (user_id, amount, currency_from, currency_to, exchange_rate, exchanged_amount, balance, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		transaction.UserID,
		transaction.Amount,
		transaction.CurrencyFrom,
		transaction.CurrencyTo,
		transaction.ExchangeRate,
		transaction.ExchangedAmount,
		transaction.Balance,
		transaction.CreatedAt,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("create transaction: %w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

// GetTransactionsByUserID retrieves a paginated list of a user's exchange
// records, newest first, plus the total count.
func (r *TransactionRepository) GetTransactionsByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}

	query := `
		SELECT id, user_id, amount, currency_from, currency_to, exchange_rate, exchanged_amount, balance, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := q.SelectContext(ctx, &transactions, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch transactions for user %s: %w: %v", userID, util.ErrStoreUnavailable, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE user_id = $1`
	err = q.GetContext(ctx, &totalCount, countQuery, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions for user %s: %w: %v", userID, util.ErrStoreUnavailable, err)
	}

	return transactions, totalCount, nil
}
