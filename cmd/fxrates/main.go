package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sendrail/fxrates/configs"
	"github.com/sendrail/fxrates/internal/drivers/bybit"
	"github.com/sendrail/fxrates/internal/drivers/quidax"
	"github.com/sendrail/fxrates/internal/handler"
	"github.com/sendrail/fxrates/internal/metrics"
	"github.com/sendrail/fxrates/internal/poller"
	"github.com/sendrail/fxrates/internal/pricing"
	"github.com/sendrail/fxrates/internal/publisher"
	"github.com/sendrail/fxrates/internal/rates"
	"github.com/sendrail/fxrates/internal/router"
	"github.com/sendrail/fxrates/internal/service"
	"github.com/sendrail/fxrates/internal/store"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

func main() {
	cfg := configs.AppLoad()
	logger := newLogger()

	rateMetrics := metrics.NewRateMetrics()
	cache := rates.NewCache(cfg.Pricing.Fallbacks)

	sources := []rates.Source{
		bybit.NewClient(cfg.Providers.BybitBaseURL, cfg.Providers.RequestTimeout, cfg.Providers.RequestsPerSecond, logger),
		quidax.NewClient(cfg.Providers.QuidaxBaseURL, cfg.Providers.RequestTimeout, cfg.Providers.RequestsPerSecond, logger),
	}
	aggregator := rates.NewAggregator(cache, sources, logger, rateMetrics)

	ratePoller := poller.New(aggregator, cache, cfg.Poller.Instruments, cfg.Poller.Interval, logger)

	var storePinger handler.Pinger
	if cfg.Redis.Enabled {
		redisStore, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			logger.Fatalf("Failed to connect to redis store: %v", err)
		}
		defer redisStore.Close()
		ratePoller.WithStore(redisStore)
		storePinger = redisStore
	}

	if cfg.Kafka.Enabled {
		ratePublisher := publisher.NewRatePublisher(cfg.Kafka.Broker, cfg.Kafka.Topic, logger)
		defer ratePublisher.Close()
		ratePoller.WithPublisher(ratePublisher)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ratePoller.Warm(ctx)

	var wg sync.WaitGroup
	ratePoller.Start(ctx, &wg)

	rateService := service.NewRateService(aggregator, cfg.Pricing.BaseInstrument, pricing.MarginConfig{
		USDMargin:   cfg.Pricing.USDMargin,
		OtherMargin: cfg.Pricing.OtherMargin,
	})

	routerConfig := &router.Config{
		RateHandler:       handler.NewRateHandler(rateService, logger),
		CalculatorHandler: handler.NewCalculatorHandler(rateService, logger),
		HealthHandler:     handler.NewHealthHandler(storePinger, logger),
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router.NewRouter(routerConfig),
	}

	go func() {
		logger.Infof("Starting HTTP API on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Received shutdown signal, gracefully shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP shutdown error: %v", err)
	}

	wg.Wait()
	logger.Info("Shutdown complete")
}
