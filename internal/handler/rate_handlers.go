package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sendrail/fxrates/internal/pricing"
	"github.com/sendrail/fxrates/internal/service"
)

var errInvalidMarginParams = errors.New("usd_margin and other_margin must both be numeric and supplied together")

type RateHandler struct {
	rateService *service.RateService
	logger      *logrus.Logger
}

func NewRateHandler(rateService *service.RateService, logger *logrus.Logger) *RateHandler {
	return &RateHandler{
		rateService: rateService,
		logger:      logger,
	}
}

// GetCurrentRate serves GET /v1/rates/current?instrument=USDT/NGN.
// It always answers 200: a provider outage degrades to the cached or
// fallback rate with stale=true, never to an error.
func (h *RateHandler) GetCurrentRate(c *gin.Context) {
	instrument := c.Query("instrument")
	if instrument == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instrument query parameter is required"})
		return
	}

	result := h.rateService.CurrentRate(c.Request.Context(), instrument)
	c.JSON(http.StatusOK, result)
}

// GetCostPrices serves GET /v1/rates/cost-prices.
// base_rate, usd_margin and other_margin are optional; omitted values fall
// back to the live base rate and the configured default margins.
func (h *RateHandler) GetCostPrices(c *gin.Context) {
	var baseRate float64
	if v := c.Query("base_rate"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "base_rate must be a positive number"})
			return
		}
		baseRate = parsed
	}

	margins, err := parseMargins(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.rateService.CostPrices(c.Request.Context(), baseRate, margins)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// parseMargins reads the optional margin overrides. Both must be supplied
// together; a lone override would silently mix defaults with inputs.
func parseMargins(c *gin.Context) (*pricing.MarginConfig, error) {
	usdStr := c.Query("usd_margin")
	otherStr := c.Query("other_margin")

	if usdStr == "" && otherStr == "" {
		return nil, nil
	}
	if usdStr == "" || otherStr == "" {
		return nil, errInvalidMarginParams
	}

	usd, err := strconv.ParseFloat(usdStr, 64)
	if err != nil {
		return nil, errInvalidMarginParams
	}
	other, err := strconv.ParseFloat(otherStr, 64)
	if err != nil {
		return nil, errInvalidMarginParams
	}

	return &pricing.MarginConfig{USDMargin: usd, OtherMargin: other}, nil
}
