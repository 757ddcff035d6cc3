// internal/rates/nbp.go
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

// DefaultNBPAPIURL is the Polish central bank's table A rate feed.
const DefaultNBPAPIURL = "https://api.nbp.pl/api/exchangerates/tables/A/"

// NBPClient fetches rates from the NBP table API. NBP quotes each currency
// as PLN per unit, so the table is renormalized against its own USD row to
// yield rate-per-USD. PLN itself then appears as the USD mid.
type NBPClient struct {
	url    string
	client http.Client
	logger *slog.Logger
}

// NewNBPClient constructs a client for the given table URL.
func NewNBPClient(url string, logger *slog.Logger) *NBPClient {
	return &NBPClient{
		url: url,
		client: http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// FetchRates loads and normalizes the current NBP table.
func (c *NBPClient) FetchRates(ctx context.Context) (domain.RateTable, error) {
	type Response []struct {
		Rates []struct {
			Currency string          `json:"currency"`
			Code     string          `json:"code"`
			Mid      decimal.Decimal `json:"mid"`
		} `json:"rates"`
	}

	c.logger.Debug("loading NBP rate table", "url", c.url)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building http request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

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
	if len(response) == 0 || len(response[0].Rates) == 0 {
		return nil, fmt.Errorf("%w: feed returned no rates", util.ErrRateFetchFailed)
	}

	mids := map[string]decimal.Decimal{}
	for _, entry := range response[0].Rates {
		mids[entry.Code] = entry.Mid
	}

	usdMid, ok := mids[domain.BaseCurrency]
	if !ok || usdMid.IsZero() {
		return nil, fmt.Errorf("%w: table has no USD row to normalize against", util.ErrRateFetchFailed)
	}

	table := domain.RateTable{}
	for code, mid := range mids {
		if code == domain.BaseCurrency {
			continue
		}
		if mid.IsZero() {
			continue
		}
		table[code] = usdMid.Div(mid)
	}
	table["PLN"] = usdMid

	return table, nil
}
