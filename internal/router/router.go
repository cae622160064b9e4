package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sendrail/fxrates/internal/handler"
)

type Config struct {
	RateHandler       *handler.RateHandler
	CalculatorHandler *handler.CalculatorHandler
	HealthHandler     *handler.HealthHandler
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1/")
	registerRateRoutes(api, cfg.RateHandler, cfg.CalculatorHandler)

	router.GET("/health", cfg.HealthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
