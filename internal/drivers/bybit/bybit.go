// Package bybit fetches spot-market ticker quotes from the Bybit v5 API.
package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/sendrail/fxrates/internal/rates"
	"github.com/sendrail/fxrates/utils"
)

const (
	DefaultBaseURL = "https://api.bybit.com"
	RequestTimeout = 10 * time.Second
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, requestsPerSecond float64, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = RequestTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 5),
		logger:     logger,
	}
}

func (c *Client) Name() string { return "bybit" }

// Fetch performs one GET against the spot tickers endpoint and extracts the
// last price for the instrument. No retries; the caller decides cadence.
func (c *Client) Fetch(ctx context.Context, instrument string) (rates.Quote, error) {
	symbol, err := utils.InstrumentSymbol(instrument)
	if err != nil {
		return rates.Quote{}, fmt.Errorf("%w: %v", rates.ErrSourceUnavailable, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return rates.Quote{}, fmt.Errorf("%w: %v", rates.ErrSourceUnavailable, err)
	}

	url := fmt.Sprintf("%s/v5/market/tickers?category=spot&symbol=%s", c.baseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return rates.Quote{}, fmt.Errorf("%w: %v", rates.ErrSourceUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return rates.Quote{}, fmt.Errorf("%w: %v", rates.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return rates.Quote{}, fmt.Errorf("%w: %v", rates.ErrSourceUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return rates.Quote{}, fmt.Errorf("%w: status %d", rates.ErrSourceUnavailable, resp.StatusCode)
	}

	var data TickersResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return rates.Quote{}, fmt.Errorf("%w: %v", rates.ErrSourceUnavailable, err)
	}

	if data.RetCode != 0 {
		return rates.Quote{}, fmt.Errorf("%w: retCode %d (%s)", rates.ErrSourceUnavailable, data.RetCode, data.RetMsg)
	}
	if len(data.Result.List) == 0 {
		return rates.Quote{}, fmt.Errorf("%w: no ticker for %s", rates.ErrSourceUnavailable, symbol)
	}

	price, err := strconv.ParseFloat(data.Result.List[0].LastPrice, 64)
	if err != nil {
		return rates.Quote{}, fmt.Errorf("%w: bad lastPrice %q", rates.ErrSourceUnavailable, data.Result.List[0].LastPrice)
	}
	if price <= 0 {
		return rates.Quote{}, fmt.Errorf("%w: non-positive price %v", rates.ErrSourceUnavailable, price)
	}

	return rates.Quote{
		Instrument: instrument,
		Rate:       price,
		Provider:   c.Name(),
		FetchedAt:  time.Now().UTC(),
	}, nil
}
