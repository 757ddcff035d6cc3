// internal/rates/provider.go
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"fxwallet/internal/domain"
	"fxwallet/internal/util"
)

// DefaultExchangeRateAPIURL is the public JSON rate feed, base USD.
const DefaultExchangeRateAPIURL = "https://api.exchangerate-api.com/v4/latest/USD"

// Provider supplies a fresh snapshot of conversion rates relative to USD.
// Implementations must be safe for concurrent use.
type Provider interface {
	FetchRates(ctx context.Context) (domain.RateTable, error)
}

// ExchangeRateAPIClient fetches rates from the exchangerate-api JSON feed.
type ExchangeRateAPIClient struct {
	url    string
	client http.Client
	logger *slog.Logger
}

// NewExchangeRateAPIClient constructs a client for the given feed URL.
func NewExchangeRateAPIClient(url string, logger *slog.Logger) *ExchangeRateAPIClient {
	return &ExchangeRateAPIClient{
		url: url,
		client: http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// FetchRates loads the current rate table. Rates change roughly every minute
// upstream; callers are expected to fetch per operation or cache briefly.
func (c *ExchangeRateAPIClient) FetchRates(ctx context.Context) (domain.RateTable, error) {
	type Response struct {
		Base  string                     `json:"base"`
		Rates map[string]decimal.Decimal `json:"rates"`
	}

	c.logger.Debug("loading exchange rates", "url", c.url)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: http get: %v", util.ErrRateFetchFailed, err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", util.ErrRateFetchFailed, httpResponse.StatusCode)
	}

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", util.ErrRateFetchFailed, err)
	}

	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: decoding json: %v", util.ErrRateFetchFailed, err)
	}
	if len(response.Rates) == 0 {
		return nil, fmt.Errorf("%w: feed returned no rates", util.ErrRateFetchFailed)
	}

	table := domain.RateTable{}
	for code, rate := range response.Rates {
		table[code] = rate
	}
	return table, nil
}
