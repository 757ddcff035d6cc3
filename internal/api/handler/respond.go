// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"fxwallet/internal/util"
)

// DefaultTimeout bounds each request handled by the router.
const DefaultTimeout = 30 * time.Second

// respondWithJSON writes payload as a JSON response with the given status.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors to HTTP statuses and user-facing
// messages. Store-level failures must not masquerade as validation failures.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidAmount),
		util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrUnknownCurrency):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrUserNotFound),
		util.IsError(err, util.ErrWalletNotFound),
		util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = err.Error()
	case util.IsError(err, util.ErrDuplicateEmail):
		statusCode = http.StatusConflict
		message = err.Error()
	case util.IsError(err, util.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = "Invalid email or password"
	case util.IsError(err, util.ErrRateFetchFailed):
		statusCode = http.StatusServiceUnavailable
		message = "Exchange rates are temporarily unavailable"
	case util.IsError(err, util.ErrWalletConflict):
		statusCode = http.StatusConflict
		message = "Wallet was modified concurrently, please retry"
	case util.IsError(err, util.ErrStoreUnavailable):
		statusCode = http.StatusServiceUnavailable
		message = "Service temporarily unavailable"
		logger.Error("Store unavailable", "error", err)
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, map[string]string{"error": message})
}
