// internal/domain/wallet.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fxwallet/internal/util"
)

// currencyCodePattern validates ISO-4217 style currency codes at the store boundary.
var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// CurrencyMap holds per-currency balances keyed by currency code.
// An absent key means a zero balance. It is persisted as a JSONB column.
type CurrencyMap map[string]decimal.Decimal

// Value implements driver.Valuer so the map can be written as JSONB.
func (m CurrencyMap) Value() (driver.Value, error) {
	if m == nil {
		m = CurrencyMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal currency map: %w", err)
	}
	return b, nil
}

// Scan implements sql.Scanner. Codes are validated on the way in so a bad
// row never becomes an untyped balance.
func (m *CurrencyMap) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*m = CurrencyMap{}
		return nil
	default:
		return fmt.Errorf("unsupported currency map source type %T", src)
	}

	decoded := map[string]decimal.Decimal{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("unmarshal currency map: %w", err)
	}
	for code := range decoded {
		if !currencyCodePattern.MatchString(code) {
			return fmt.Errorf("%w: %q", util.ErrUnknownCurrency, code)
		}
	}
	*m = decoded
	return nil
}

// Wallet represents a user's multi-currency holdings. The USD balance lives
// in its own field; every other currency lives in the Currencies map.
// Version backs the optimistic compare-and-swap on balance updates.
type Wallet struct {
	UserID     uuid.UUID       `db:"user_id" json:"user_id"`
	USDBalance decimal.Decimal `db:"usd_balance" json:"usd_balance"` // NUMERIC(20, 4) in DB
	Currencies CurrencyMap     `db:"currencies" json:"currencies"`
	Version    int64           `db:"version" json:"-"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// NewWallet creates an empty Wallet for the given user.
func NewWallet(userID uuid.UUID) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		UserID:     userID,
		USDBalance: decimal.Zero,
		Currencies: CurrencyMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Available returns the balance held in the given currency, zero if none.
func (w *Wallet) Available(code string) decimal.Decimal {
	if code == BaseCurrency {
		return w.USDBalance
	}
	if bal, ok := w.Currencies[code]; ok {
		return bal
	}
	return decimal.Zero
}

// Debit removes amount from the balance held in code. The wallet is left
// unchanged when the balance is insufficient.
func (w *Wallet) Debit(code string, amount decimal.Decimal) error {
	if w.Available(code).LessThan(amount) {
		return fmt.Errorf("%w: %s", util.ErrInsufficientFunds, code)
	}
	if code == BaseCurrency {
		w.USDBalance = w.USDBalance.Sub(amount)
		return nil
	}
	w.Currencies[code] = w.Currencies[code].Sub(amount)
	return nil
}

// Credit adds amount to the balance held in code, creating the map entry if
// the currency was not held before.
func (w *Wallet) Credit(code string, amount decimal.Decimal) {
	if code == BaseCurrency {
		w.USDBalance = w.USDBalance.Add(amount)
		return
	}
	if w.Currencies == nil {
		w.Currencies = CurrencyMap{}
	}
	w.Currencies[code] = w.Currencies[code].Add(amount)
}
