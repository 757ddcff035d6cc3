// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fxwallet/internal/api/handler"
	custommw "fxwallet/internal/api/middleware"
	"fxwallet/internal/service"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(authHandler *handler.AuthHandler, walletHandler *handler.WalletHandler, authService service.AuthService, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(custommw.Authenticated(authService))

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", walletHandler.GetWallet)
			r.Get("/valuation", walletHandler.GetValuation)
			r.Post("/fund", walletHandler.Fund)
			r.Post("/exchange", walletHandler.Exchange)
		})
		r.Get("/rates", walletHandler.GetRates)
		r.Get("/transactions", walletHandler.GetTransactionHistory)
	})

	return r
}
