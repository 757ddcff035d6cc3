// internal/domain/rates_test.go
package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxwallet/internal/util"
)

func TestRateTableRate(t *testing.T) {
	table := RateTable{"EUR": decimal.NewFromFloat(0.9)}

	t.Run("USDIsImplicit", func(t *testing.T) {
		rate, err := table.Rate("USD")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromInt(1)))
	})

	t.Run("KnownCurrency", func(t *testing.T) {
		rate, err := table.Rate("EUR")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromFloat(0.9)))
	})

	t.Run("UnknownCurrencyFails", func(t *testing.T) {
		_, err := table.Rate("GBP")
		assert.ErrorIs(t, err, util.ErrUnknownCurrency)
		assert.Contains(t, err.Error(), "GBP")
	})
}

func TestConvert(t *testing.T) {
	table := RateTable{
		"EUR": decimal.NewFromFloat(0.9),
		"GBP": decimal.NewFromFloat(0.8),
	}

	t.Run("FromUSD", func(t *testing.T) {
		got, err := Convert(decimal.NewFromInt(50), "USD", "EUR", table)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(45)), "got %s", got)
	})

	t.Run("ToUSD", func(t *testing.T) {
		got, err := Convert(decimal.NewFromInt(5), "EUR", "USD", table)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromFloat(5.56)), "got %s", got)
	})

	t.Run("CrossCurrencyRoutesThroughUSD", func(t *testing.T) {
		// 9 EUR -> 10 USD -> 8 GBP
		got, err := Convert(decimal.NewFromInt(9), "EUR", "GBP", table)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(8)), "got %s", got)
	})

	t.Run("UnknownSource", func(t *testing.T) {
		_, err := Convert(decimal.NewFromInt(1), "XXX", "EUR", table)
		assert.ErrorIs(t, err, util.ErrUnknownCurrency)
	})

	t.Run("UnknownDestination", func(t *testing.T) {
		_, err := Convert(decimal.NewFromInt(1), "USD", "XXX", table)
		assert.ErrorIs(t, err, util.ErrUnknownCurrency)
	})

	t.Run("RoundTripReturnsToStart", func(t *testing.T) {
		amount := decimal.NewFromInt(100)
		there, err := Convert(amount, "USD", "EUR", table)
		require.NoError(t, err)
		back, err := Convert(there, "EUR", "USD", table)
		require.NoError(t, err)

		diff := back.Sub(amount).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.01)),
			"round trip drifted by %s", diff)
	})
}

func TestEffectiveRate(t *testing.T) {
	table := RateTable{"EUR": decimal.NewFromFloat(0.9), "GBP": decimal.NewFromFloat(0.8)}

	rate, err := EffectiveRate("USD", "EUR", table)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.9)))

	rate, err = EffectiveRate("GBP", "EUR", table)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(1.125)))

	_, err = EffectiveRate("XXX", "EUR", table)
	assert.ErrorIs(t, err, util.ErrUnknownCurrency)
}

func TestValueInUSD(t *testing.T) {
	t.Run("SumsUSDAndHoldings", func(t *testing.T) {
		wallet := &Wallet{
			UserID:     uuid.New(),
			USDBalance: decimal.NewFromInt(50),
			Currencies: CurrencyMap{"EUR": decimal.NewFromInt(45)},
		}
		table := RateTable{"EUR": decimal.NewFromFloat(0.9)}

		got := ValueInUSD(wallet, table)
		assert.True(t, got.Equal(decimal.NewFromFloat(90.5)), "got %s", got)
	})

	t.Run("MissingRateContributesZero", func(t *testing.T) {
		wallet := &Wallet{
			UserID:     uuid.New(),
			USDBalance: decimal.NewFromInt(10),
			Currencies: CurrencyMap{"XYZ": decimal.NewFromInt(1000)},
		}

		got := ValueInUSD(wallet, RateTable{})
		assert.True(t, got.Equal(decimal.NewFromInt(10)), "got %s", got)
	})

	t.Run("EmptyWallet", func(t *testing.T) {
		wallet := NewWallet(uuid.New())
		got := ValueInUSD(wallet, RateTable{"EUR": decimal.NewFromFloat(0.9)})
		assert.True(t, got.IsZero())
	})
}
