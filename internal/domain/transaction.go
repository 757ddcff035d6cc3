// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a completed currency exchange.
// Balance is the total portfolio value in USD right after the exchange.
type Transaction struct {
	ID              int64           `db:"id" json:"id"` // Primary key, BIGSERIAL in DB
	UserID          uuid.UUID       `db:"user_id" json:"user_id"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	CurrencyFrom    string          `db:"currency_from" json:"currency_from"`
	CurrencyTo      string          `db:"currency_to" json:"currency_to"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate" json:"exchange_rate"` // destination per source
	ExchangedAmount decimal.Decimal `db:"exchanged_amount" json:"exchanged_amount"`
	Balance         decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// NewTransaction creates a new Transaction instance timestamped now.
func NewTransaction(
	userID uuid.UUID,
	amount decimal.Decimal,
	currencyFrom, currencyTo string,
	exchangeRate, exchangedAmount, balance decimal.Decimal,
) *Transaction {
	return &Transaction{
		UserID:          userID,
		Amount:          amount,
		CurrencyFrom:    currencyFrom,
		CurrencyTo:      currencyTo,
		ExchangeRate:    exchangeRate,
		ExchangedAmount: exchangedAmount,
		Balance:         balance,
		CreatedAt:       time.Now().UTC(),
	}
}
