// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fxwallet/internal/domain"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet adds a new wallet using the provided DBExecutor.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByUserID retrieves a wallet by its owning user.
	GetWalletByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID) (*domain.Wallet, error)
	// AddUSDBalance credits amount to the wallet's USD balance, creating the
	// wallet with empty currency holdings if it does not yet exist.
	AddUSDBalance(ctx context.Context, q DBExecutor, userID uuid.UUID, amount decimal.Decimal) error
	// UpdateBalances writes the wallet's balances back conditioned on the
	// version the wallet was read at. Returns util.ErrWalletConflict when a
	// concurrent update won.
	UpdateBalances(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
}
