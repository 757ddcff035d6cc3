// internal/rates/nbp_test.go
package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxwallet/internal/util"
)

func TestNBPClientFetchRates(t *testing.T) {
	t.Run("NormalizesAgainstUSDRow", func(t *testing.T) {
		// Mids are PLN per unit: 1 USD = 4 PLN, 1 EUR = 5 PLN.
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"table": "A", "rates": [
				{"currency": "US dollar", "code": "USD", "mid": 4.0},
				{"currency": "euro", "code": "EUR", "mid": 5.0}
			]}]`))
		}))
		defer server.Close()

		client := NewNBPClient(server.URL, testLogger())
		table, err := client.FetchRates(context.Background())
		require.NoError(t, err)

		// 1 USD buys 4/5 EUR and 4 PLN.
		assert.True(t, table["EUR"].Equal(decimal.NewFromFloat(0.8)), "EUR=%s", table["EUR"])
		assert.True(t, table["PLN"].Equal(decimal.NewFromInt(4)), "PLN=%s", table["PLN"])
		_, hasUSD := table["USD"]
		assert.False(t, hasUSD, "USD stays implicit")
	})

	t.Run("MissingUSDRowFails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"rates": [{"currency": "euro", "code": "EUR", "mid": 5.0}]}]`))
		}))
		defer server.Close()

		client := NewNBPClient(server.URL, testLogger())
		_, err := client.FetchRates(context.Background())
		assert.ErrorIs(t, err, util.ErrRateFetchFailed)
	})

	t.Run("EmptyTableFails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewNBPClient(server.URL, testLogger())
		_, err := client.FetchRates(context.Background())
		assert.ErrorIs(t, err, util.ErrRateFetchFailed)
	})

	t.Run("NonOKStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewNBPClient(server.URL, testLogger())
		_, err := client.FetchRates(context.Background())
		assert.ErrorIs(t, err, util.ErrRateFetchFailed)
	})
}
