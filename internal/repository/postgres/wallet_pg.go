// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"fxwallet/internal/domain"
	"fxwallet/internal/repository"
	"fxwallet/internal/util"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, usd_balance, currencies, version, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.ExecContext(ctx, query,
		wallet.UserID, wallet.USDBalance, wallet.Currencies, wallet.Version, wallet.CreatedAt, wallet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create wallet for user %s: %w: %v", wallet.UserID, util.ErrStoreUnavailable, err)
	}
	return nil
}

// GetWalletByUserID retrieves a wallet by its owning user.
func (r *WalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT user_id, usd_balance, currencies, version, created_at, updated_at
              FROM wallets WHERE user_id = $1`
	err := q.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("get wallet for user %s: %w: %v", userID, util.ErrStoreUnavailable, err)
	}
	return &wallet, nil
}

// AddUSDBalance credits amount to the wallet's USD balance. A missing wallet
// row is created with empty currency holdings, so the credit and the lazy
// creation are a single statement.
func (r *WalletRepository) AddUSDBalance(ctx context.Context, q repository.DBExecutor, userID uuid.UUID, amount decimal.Decimal) error {
	now := time.Now().UTC()
	query := `INSERT INTO wallets (user_id, usd_balance, currencies, version, created_at, updated_at)
              VALUES ($1, $2, '{}', 0, $3, $3)
              ON CONFLICT (user_id) DO UPDATE
              SET usd_balance = wallets.usd_balance + EXCLUDED.usd_balance,
                  updated_at  = EXCLUDED.updated_at`
	_, err := q.ExecContext(ctx, query, userID, amount, now)
	if err != nil {
		return fmt.Errorf("credit wallet for user %s: %w: %v", userID, util.ErrStoreUnavailable, err)
	}
	return nil
}

// UpdateBalances writes the wallet's balances conditioned on the version the
// wallet was read at. Zero rows affected means another writer got there
// first.
func (r *WalletRepository) UpdateBalances(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `UPDATE wallets
              SET usd_balance = $1, currencies = $2, version = version + 1, updated_at = $3
              WHERE user_id = $4 AND version = $5`
	result, err := q.ExecContext(ctx, query,
		wallet.USDBalance, wallet.Currencies, time.Now().UTC(), wallet.UserID, wallet.Version)
	if err != nil {
		return fmt.Errorf("update wallet for user %s: %w: %v", wallet.UserID, util.ErrStoreUnavailable, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for wallet %s: %w: %v", wallet.UserID, util.ErrStoreUnavailable, err)
	}
	if rowsAffected == 0 {
		return util.ErrWalletConflict
	}
	return nil
}
