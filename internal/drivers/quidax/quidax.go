// Package quidax fetches peer-market quotes from the Quidax public tickers
// endpoint, which returns every listed currency pair in one response.
package quidax

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/sendrail/fxrates/internal/rates"
	"github.com/sendrail/fxrates/utils"
)

const (
	DefaultBaseURL = "https://www.quidax.com"
	RequestTimeout = 10 * time.Second
)

// TickersResponse wraps the pair list. Keys of Data are lowercase pair
// symbols like "usdtngn".
type TickersResponse struct {
	Status  string                `json:"status"`
	Message string                `json:"message"`
	Data    map[string]PairTicker `json:"data"`
}

type PairTicker struct {
	At     int64  `json:"at"`
	Ticker Ticker `json:"ticker"`
}

type Ticker struct {
	Buy  string `json:"buy"`
	Sell string `json:"sell"`
	Low  string `json:"low"`
	High string `json:"high"`
	Last string `json:"last"`
	Vol  string `json:"vol"`
}

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

func (c *Client) Name() string { return "quidax" }

// Fetch lists all pair tickers and selects the entry matching the requested
// instrument. One GET, no retries.
func (c *Client) Fetch(ctx context.Context, instrument string) (rates.Quote, error) {
	symbol, err := utils.InstrumentSymbol(instrument)
	if err != nil {
		return rates.Quote{}, fmt.Errorf("%w: %v", rates.ErrSourceUnavailable, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return rates.Quote{}, fmt.Errorf("%w: %v", rates.ErrSourceUnavailable, err)
	}

	url := fmt.Sprintf("%s/api/v1/markets/tickers", c.baseURL)
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

	pair, ok := data.Data[strings.ToLower(symbol)]
	if !ok {
		return rates.Quote{}, fmt.Errorf("%w: no pair %s in response", rates.ErrSourceUnavailable, symbol)
	}

	price, err := strconv.ParseFloat(pair.Ticker.Last, 64)
	if err != nil {
		return rates.Quote{}, fmt.Errorf("%w: bad last price %q", rates.ErrSourceUnavailable, pair.Ticker.Last)
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
