package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sendrail/fxrates/internal/handler"
)

func registerRateRoutes(router *gin.RouterGroup, rateHandler *handler.RateHandler, calcHandler *handler.CalculatorHandler) {
	rates := router.Group("/rates")
	{
		rates.GET("/current", rateHandler.GetCurrentRate)
		rates.GET("/cost-prices", rateHandler.GetCostPrices)
	}

	router.POST("/calculator", calcHandler.Calculate)
	router.POST("/transactions/summary", calcHandler.SummarizeTransactions)
}
