package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sendrail/fxrates/internal/pricing"
	"github.com/sendrail/fxrates/internal/rates"
	"github.com/sendrail/fxrates/internal/service"
)

type stubSource struct {
	rate float64
	err  error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context, instrument string) (rates.Quote, error) {
	if s.err != nil {
		return rates.Quote{}, s.err
	}
	return rates.Quote{Instrument: instrument, Rate: s.rate, Provider: "stub", FetchedAt: time.Now()}, nil
}

func testRouter(src rates.Source) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cache := rates.NewCache(map[string]float64{"USDT/NGN": 1550})
	agg := rates.NewAggregator(cache, []rates.Source{src}, logger, nil)
	svc := service.NewRateService(agg, "USDT/NGN", pricing.MarginConfig{USDMargin: 0.02, OtherMargin: 0.03})

	rateHandler := NewRateHandler(svc, logger)
	calcHandler := NewCalculatorHandler(svc, logger)

	router := gin.New()
	router.GET("/v1/rates/current", rateHandler.GetCurrentRate)
	router.GET("/v1/rates/cost-prices", rateHandler.GetCostPrices)
	router.POST("/v1/calculator", calcHandler.Calculate)
	return router
}

func TestGetCurrentRateDegradesToFallback(t *testing.T) {
	router := testRouter(&stubSource{err: fmt.Errorf("%w: down", rates.ErrSourceUnavailable)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/rates/current?instrument=USDT/NGN", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Provider outage must not produce an error status, got %d", w.Code)
	}

	var result rates.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if !result.Stale || result.Rate != 1550 {
		t.Errorf("Expected stale fallback 1550, got stale=%v rate=%v", result.Stale, result.Rate)
	}
}

func TestGetCurrentRateRequiresInstrument(t *testing.T) {
	router := testRouter(&stubSource{rate: 1545})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/rates/current", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without instrument, got %d", w.Code)
	}
}

func TestGetCostPricesValidation(t *testing.T) {
	router := testRouter(&stubSource{rate: 1500})

	testCases := []struct {
		name string
		url  string
		code int
	}{
		{"defaults", "/v1/rates/cost-prices", http.StatusOK},
		{"explicit inputs", "/v1/rates/cost-prices?base_rate=1280.50&usd_margin=0.02&other_margin=0.03", http.StatusOK},
		{"negative base rate", "/v1/rates/cost-prices?base_rate=-5", http.StatusBadRequest},
		{"margin out of range", "/v1/rates/cost-prices?usd_margin=1.5&other_margin=0.03", http.StatusBadRequest},
		{"lone margin override", "/v1/rates/cost-prices?usd_margin=0.02", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			router.ServeHTTP(w, req)

			if w.Code != tc.code {
				t.Errorf("Expected %d, got %d (body %s)", tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestCalculateEndpoint(t *testing.T) {
	router := testRouter(&stubSource{rate: 1500})

	body := `{"customer_amount": 100, "rate_sold": 1500, "rate_bought": 1480, "reference_rate": 1}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/calculator", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (body %s)", w.Code, w.Body.String())
	}

	var result struct {
		TotalReceived float64 `json:"total_received"`
		Profit        float64 `json:"profit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if result.TotalReceived != 100 {
		t.Errorf("Expected total received 100, got %v", result.TotalReceived)
	}
}

func TestCalculateEndpointRejectsInvalidRate(t *testing.T) {
	router := testRouter(&stubSource{rate: 1500})

	body := `{"customer_amount": 100, "rate_sold": 0, "rate_bought": 1480, "reference_rate": 1}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/calculator", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for zero rate sold, got %d", w.Code)
	}
}
