package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/weather-lookup/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-lookup/internal/adapter/kafka"
	"github.com/couchcryptid/weather-lookup/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-lookup/internal/config"
	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/lookup"
	"github.com/couchcryptid/weather-lookup/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	httpClient := openmeteo.NewHTTPClient(cfg.UpstreamTimeout, cfg.UpstreamRateLimit, cfg.UpstreamRateBurst)
	client := openmeteo.NewClient(cfg.GeocodingBaseURL, cfg.ForecastBaseURL, httpClient, metrics, logger)

	var geocoder domain.Geocoder = client
	if cfg.GeocodeCacheSize > 0 {
		geocoder = openmeteo.NewCachedGeocoder(client, cfg.GeocodeCacheSize, metrics)
		logger.Info("geocoding cache enabled", "cache_size", cfg.GeocodeCacheSize)
	}

	// Observation publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var (
		publisher domain.ObservationPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("observation publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("observation publishing disabled")
	}

	svc := lookup.New(geocoder, client, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
