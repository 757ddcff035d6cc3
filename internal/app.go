// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "fxwallet/internal/api"
	"fxwallet/internal/api/handler"
	"fxwallet/internal/config"
	"fxwallet/internal/rates"
	"fxwallet/internal/repository"
	"fxwallet/internal/repository/postgres"
	"fxwallet/internal/service"
	"fxwallet/internal/util"
	"fxwallet/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository

	// Rate provider
	RateProvider rates.Provider

	// Services
	AuthService   service.AuthService
	WalletService service.WalletService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Rate Provider
	app.RateProvider = app.buildRateProvider()
	app.Logger.Info("Rate provider initialized.", "provider", app.Config.RateProvider, "cache_ttl", app.Config.RateCacheTTL)

	// 6. Initialize Services
	app.AuthService = service.NewAuthService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.WalletRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Config.JWTSecret,
	)
	app.WalletService = service.NewWalletService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.WalletRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	authHandler := handler.NewAuthHandler(app.AuthService, app.Logger)
	walletHandler := handler.NewWalletHandler(app.WalletService, app.RateProvider, app.Logger)
	app.HTTPHandler = router.NewRouter(authHandler, walletHandler, app.AuthService, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// buildRateProvider selects the configured rate feed and optionally wraps it
// in the in-process cache.
func (app *Application) buildRateProvider() rates.Provider {
	var provider rates.Provider
	switch app.Config.RateProvider {
	case config.ProviderNBP:
		url := app.Config.NBPAPIURL
		if url == "" {
			url = rates.DefaultNBPAPIURL
		}
		provider = rates.NewNBPClient(url, app.Logger)
	default:
		url := app.Config.ExchangeRateAPIURL
		if url == "" {
			url = rates.DefaultExchangeRateAPIURL
		}
		provider = rates.NewExchangeRateAPIClient(url, app.Logger)
	}

	if app.Config.RateCacheTTL > 0 {
		provider = rates.NewCachingProvider(provider, app.Config.RateCacheTTL, app.Logger)
	}
	return provider
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
