package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sendrail/fxrates/internal/service"
	"github.com/sendrail/fxrates/internal/transactions"
)

type CalculatorHandler struct {
	rateService *service.RateService
	logger      *logrus.Logger
}

func NewCalculatorHandler(rateService *service.RateService, logger *logrus.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		rateService: rateService,
		logger:      logger,
	}
}

type CalculateRequest struct {
	CustomerAmount float64 `json:"customer_amount"`
	RateSold       float64 `json:"rate_sold"`
	RateBought     float64 `json:"rate_bought"`
	ReferenceRate  float64 `json:"reference_rate"`
}

// Calculate serves POST /v1/calculator. Invalid inputs come back as 400 so
// the UI can block the entry; nothing is clamped or defaulted.
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.rateService.Calculate(req.CustomerAmount, req.RateSold, req.RateBought, req.ReferenceRate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

type SummaryRequest struct {
	From         time.Time                  `json:"from"`
	To           time.Time                  `json:"to"`
	Transactions []transactions.Transaction `json:"transactions"`
}

// SummarizeTransactions serves POST /v1/transactions/summary. The history
// records live in the caller's store; it posts them here with a window and
// gets back the filtered set plus profit totals.
func (h *CalculatorHandler) SummarizeTransactions(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.rateService.SummarizeTransactions(req.Transactions, req.From, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
