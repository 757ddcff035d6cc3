// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrUserNotFound       = errors.New("user not found")
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrUnknownCurrency    = errors.New("unknown currency")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrRateFetchFailed    = errors.New("exchange rates unavailable")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrWalletConflict     = errors.New("wallet was modified concurrently")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// IsError reports whether err wraps the given target error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
