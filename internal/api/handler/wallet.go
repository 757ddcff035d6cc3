// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"fxwallet/internal/api/middleware"
	"fxwallet/internal/api/types"
	"fxwallet/internal/domain"
	"fxwallet/internal/rates"
	"fxwallet/internal/service"
	"fxwallet/internal/util"
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	service service.WalletService
	rates   rates.Provider
	logger  *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, provider rates.Provider, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		service: svc,
		rates:   provider,
		logger:  logger,
	}
}

// FundRequest represents the request body for funding.
type FundRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Fund handles the fund-account request.
// POST /wallet/fund
func (h *WalletHandler) Fund(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	var req FundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidAmount)
		return
	}

	result, err := h.service.Fund(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":            "Funding successful",
		"user_balance":       result.UserBalance,
		"wallet_usd_balance": result.WalletUSDBalance,
	})
}

// ExchangeRequest represents the request body for a currency exchange.
type ExchangeRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyFrom string          `json:"currency_from"`
	CurrencyTo   string          `json:"currency_to"`
}

// Exchange handles the currency-exchange request. Rates are fetched fresh
// for the operation; a failed fetch aborts rather than defaulting rates.
// POST /wallet/exchange
func (h *WalletHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	var req ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.CurrencyFrom == "" || req.CurrencyTo == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	table, err := h.rates.FetchRates(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	result, err := h.service.Exchange(r.Context(), userID, req.Amount, req.CurrencyFrom, req.CurrencyTo, table)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":          "Exchange successful",
		"exchanged_amount": result.ExchangedAmount,
		"exchange_rate":    result.Transaction.ExchangeRate,
		"wallet":           result.Wallet,
		"transaction_id":   result.Transaction.ID,
		"balance":          result.Transaction.Balance,
	})
}

// GetWallet handles the wallet lookup request.
// GET /wallet
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	wallet, err := h.service.GetWallet(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, wallet)
}

// GetValuation handles the portfolio valuation request.
// GET /wallet/valuation
func (h *WalletHandler) GetValuation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	table, err := h.rates.FetchRates(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	value, err := h.service.Valuation(r.Context(), userID, table)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"value_usd": value,
		"currency":  domain.BaseCurrency,
	})
}

// GetRates handles the current-rates request.
// GET /rates
func (h *WalletHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	table, err := h.rates.FetchRates(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"base":  domain.BaseCurrency,
		"rates": table,
	})
}

// GetTransactionHistory handles the exchange-history request.
// GET /transactions
func (h *WalletHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10 // Default limit
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0 // Default offset
	}

	transactions, totalCount, err := h.service.GetTransactionHistory(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}
