// internal/domain/rates.go
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fxwallet/internal/util"
)

// BaseCurrency is the currency all rates are expressed relative to.
const BaseCurrency = "USD"

// RateTable is an ephemeral snapshot of conversion rates, mapping a currency
// code to units of that currency per 1 USD. USD itself is implicit with a
// rate of 1 and need not appear in the table.
type RateTable map[string]decimal.Decimal

// Rate looks up the rate for code. Unknown non-USD codes fail rather than
// defaulting, since converting with a made-up rate would be economically
// wrong.
func (t RateTable) Rate(code string) (decimal.Decimal, error) {
	if code == BaseCurrency {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := t[code]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", util.ErrUnknownCurrency, code)
	}
	return rate, nil
}

// Convert computes the amount received when exchanging amount units of from
// into to at the table's current rates. Non-USD sources are routed through
// USD even when neither side is USD. The result is rounded to cents.
func Convert(amount decimal.Decimal, from, to string, table RateTable) (decimal.Decimal, error) {
	toRate, err := table.Rate(to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if from == BaseCurrency {
		return amount.Mul(toRate).Round(2), nil
	}
	fromRate, err := table.Rate(from)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Div(fromRate).Mul(toRate).Round(2), nil
}

// EffectiveRate returns the destination-per-source rate applied by Convert.
func EffectiveRate(from, to string, table RateTable) (decimal.Decimal, error) {
	fromRate, err := table.Rate(from)
	if err != nil {
		return decimal.Decimal{}, err
	}
	toRate, err := table.Rate(to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return toRate.Div(fromRate), nil
}

// ValueInUSD sums the wallet's USD balance plus each held currency multiplied
// by its table rate. A held currency missing from the table contributes 0;
// the snapshot may simply not list it, and valuation is informational.
func ValueInUSD(w *Wallet, table RateTable) decimal.Decimal {
	total := w.USDBalance
	for code, balance := range w.Currencies {
		rate, ok := table[code]
		if !ok {
			continue
		}
		total = total.Add(balance.Mul(rate))
	}
	return total
}
