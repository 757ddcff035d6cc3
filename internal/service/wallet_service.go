// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fxwallet/internal/domain"
	"fxwallet/internal/repository"
	"fxwallet/internal/util"
	"fxwallet/pkg/db"
)

// exchangeMaxAttempts bounds the optimistic-concurrency retry loop on the
// wallet write.
const exchangeMaxAttempts = 3

// FundResult reports the balances after a successful funding operation.
type FundResult struct {
	UserBalance      decimal.Decimal `json:"user_balance"`
	WalletUSDBalance decimal.Decimal `json:"wallet_usd_balance"`
}

// ExchangeResult reports the outcome of a successful exchange.
type ExchangeResult struct {
	ExchangedAmount decimal.Decimal     `json:"exchanged_amount"`
	Wallet          *domain.Wallet      `json:"wallet"`
	Transaction     *domain.Transaction `json:"transaction"`
}

// WalletService defines the interface for wallet-related business logic.
type WalletService interface {
	Fund(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*FundResult, error)
	Exchange(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, currencyFrom, currencyTo string, table domain.RateTable) (*ExchangeResult, error)
	GetWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	Valuation(ctx context.Context, userID uuid.UUID, table domain.RateTable) (decimal.Decimal, error)
	GetTransactionHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional operations (e.g., *sqlx.DB)
	userRepo        repository.UserRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
	logger          *slog.Logger
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) WalletService {
	return &walletService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		logger:          logger,
	}
}

// Fund credits amount to both the user's cash balance and the wallet's USD
// balance inside a single database transaction. The wallet is created with
// empty currency holdings if it does not yet exist. Funding is not an
// exchange and writes no transaction-log entry.
func (s *walletService) Fund(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*FundResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("fund: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("fund: transaction controller does not implement DBExecutor")
	}

	if _, err := s.userRepo.GetUserByID(ctx, txExecutor, userID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("fund: failed to get user %s: %w", userID, err)
	}

	if err := s.userRepo.AddToBalance(ctx, txExecutor, userID, amount); err != nil {
		return nil, fmt.Errorf("fund: failed to credit user balance: %w", err)
	}

	if err := s.walletRepo.AddUSDBalance(ctx, txExecutor, userID, amount); err != nil {
		return nil, fmt.Errorf("fund: failed to credit wallet: %w", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("fund: failed to re-fetch user %s: %w", userID, err)
	}
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("fund: failed to re-fetch wallet %s: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("fund: failed to commit transaction: %w", err)
	}

	return &FundResult{
		UserBalance:      user.Balance,
		WalletUSDBalance: wallet.USDBalance,
	}, nil
}

// Exchange converts amount from currencyFrom to currencyTo at the table's
// current rates, debits and credits the wallet, and appends an exchange
// record. The wallet write is a compare-and-swap on the wallet version;
// a lost race re-reads the wallet and retries a bounded number of times.
func (s *walletService) Exchange(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, currencyFrom, currencyTo string, table domain.RateTable) (*ExchangeResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	effectiveRate, err := domain.EffectiveRate(currencyFrom, currencyTo, table)
	if err != nil {
		return nil, err
	}

	var wallet *domain.Wallet
	var exchangedAmount decimal.Decimal

	for attempt := 1; ; attempt++ {
		wallet, err = s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
		if err != nil {
			if util.IsError(err, util.ErrNotFound) {
				return nil, util.ErrWalletNotFound
			}
			return nil, fmt.Errorf("exchange: failed to get wallet for user %s: %w", userID, err)
		}

		if wallet.Available(currencyFrom).LessThan(amount) {
			return nil, fmt.Errorf("%w: %s", util.ErrInsufficientFunds, currencyFrom)
		}

		exchangedAmount, err = domain.Convert(amount, currencyFrom, currencyTo, table)
		if err != nil {
			return nil, err
		}

		if err := wallet.Debit(currencyFrom, amount); err != nil {
			return nil, err
		}
		wallet.Credit(currencyTo, exchangedAmount)

		err = s.walletRepo.UpdateBalances(ctx, s.dbExecutor, wallet)
		if err == nil {
			break
		}
		if !util.IsError(err, util.ErrWalletConflict) {
			return nil, fmt.Errorf("exchange: failed to update wallet for user %s: %w", userID, err)
		}
		if attempt >= exchangeMaxAttempts {
			return nil, fmt.Errorf("exchange: %w after %d attempts", util.ErrWalletConflict, attempt)
		}
		s.logger.Warn("wallet version conflict, retrying exchange", "user_id", userID, "attempt", attempt)
	}

	totalBalance := domain.ValueInUSD(wallet, table).Round(2)

	record := domain.NewTransaction(userID, amount, currencyFrom, currencyTo, effectiveRate, exchangedAmount, totalBalance)
	if err := s.transactionRepo.CreateTransaction(ctx, s.dbExecutor, record); err != nil {
		// The wallet mutation is already committed; there is no compensating
		// rollback for a failed log append.
		s.logger.Error("wallet updated but exchange record append failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("exchange: wallet updated but recording transaction failed: %w", err)
	}

	return &ExchangeResult{
		ExchangedAmount: exchangedAmount,
		Wallet:          wallet,
		Transaction:     record,
	}, nil
}

// GetWallet returns the user's wallet.
func (s *walletService) GetWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("get wallet: failed to get wallet for user %s: %w", userID, err)
	}
	return wallet, nil
}

// Valuation returns the total portfolio value of the user's wallet in USD at
// the table's current rates, rounded to cents.
func (s *walletService) Valuation(ctx context.Context, userID uuid.UUID, table domain.RateTable) (decimal.Decimal, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return domain.ValueInUSD(wallet, table).Round(2), nil
}

// GetTransactionHistory retrieves a paginated list of the user's exchanges,
// newest first.
func (s *walletService) GetTransactionHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions, totalCount, err := s.transactionRepo.GetTransactionsByUserID(ctx, s.dbExecutor, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve transaction history: %w", err)
	}
	return transactions, totalCount, nil
}
