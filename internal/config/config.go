package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	GeocodingBaseURL  string
	ForecastBaseURL   string
	UpstreamTimeout   time.Duration // 0 means no client timeout
	UpstreamRateLimit float64       // requests per second, 0 means unlimited
	UpstreamRateBurst int
	GeocodeCacheSize  int // 0 disables the geocoding cache

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Observation publishing.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("UPSTREAM_TIMEOUT", "10s"))
	if err != nil || upstreamTimeout < 0 {
		return nil, errors.New("invalid UPSTREAM_TIMEOUT")
	}

	rateLimit, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("UPSTREAM_RATE_LIMIT", "0"), 64)
	if err != nil || rateLimit < 0 {
		return nil, errors.New("invalid UPSTREAM_RATE_LIMIT")
	}

	rateBurst, err := parseNonNegativeInt("UPSTREAM_RATE_BURST", 1)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseNonNegativeInt("GEOCODE_CACHE_SIZE", 0)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if s := os.Getenv("KAFKA_BROKERS"); s != "" {
		brokers = sharedcfg.ParseBrokers(s)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		GeocodingBaseURL:  sharedcfg.EnvOrDefault("GEOCODING_BASE_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		ForecastBaseURL:   sharedcfg.EnvOrDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		UpstreamTimeout:   upstreamTimeout,
		UpstreamRateLimit: rateLimit,
		UpstreamRateBurst: rateBurst,
		GeocodeCacheSize:  cacheSize,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "weather-lookups"),
		KafkaEnabled: kafkaEnabled,
	}

	if err := validateBaseURL("GEOCODING_BASE_URL", cfg.GeocodingBaseURL); err != nil {
		return nil, err
	}
	if err := validateBaseURL("FORECAST_BASE_URL", cfg.ForecastBaseURL); err != nil {
		return nil, err
	}
	if cfg.UpstreamRateLimit > 0 && cfg.UpstreamRateBurst == 0 {
		return nil, errors.New("UPSTREAM_RATE_BURST must be positive when UPSTREAM_RATE_LIMIT is set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}

	return cfg, nil
}

func parseNonNegativeInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func validateBaseURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s: %q", key, raw)
	}
	return nil
}
