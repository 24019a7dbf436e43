// Command weather prints the current conditions for a city.
//
// Usage:
//
//	weather [-json] [-dark] [-tz Europe/Paris] <city...>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	kafkaadapter "github.com/couchcryptid/weather-lookup/internal/adapter/kafka"
	"github.com/couchcryptid/weather-lookup/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-lookup/internal/config"
	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/lookup"
	"github.com/couchcryptid/weather-lookup/internal/observability"
	"github.com/couchcryptid/weather-lookup/internal/view"
	"github.com/joho/godotenv"
)

type jsonOutput struct {
	Conditions *domain.CurrentConditions `json:"conditions"`
	Icon       string                    `json:"icon"`
	Background string                    `json:"background"`
}

func main() {
	os.Exit(run())
}

func run() int {
	asJSON := flag.Bool("json", false, "print the result as JSON")
	dark := flag.Bool("dark", false, "use the dark background")
	tz := flag.String("tz", "", "IANA zone for sunrise/sunset (default: local time)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: weather [-json] [-dark] [-tz Zone] <city...>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	loc := time.Local
	if *tz != "" {
		l, err := time.LoadLocation(*tz)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -tz %q: %v\n", *tz, err)
			return 2
		}
		loc = l
	}

	_ = godotenv.Load()
	if os.Getenv("LOG_LEVEL") == "" {
		_ = os.Setenv("LOG_LEVEL", "warn")
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	httpClient := openmeteo.NewHTTPClient(cfg.UpstreamTimeout, cfg.UpstreamRateLimit, cfg.UpstreamRateBurst)
	client := openmeteo.NewClient(cfg.GeocodingBaseURL, cfg.ForecastBaseURL, httpClient, metrics, logger)

	var publisher domain.ObservationPublisher
	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer writer.Close()
		publisher = writer
	}
	svc := lookup.New(client, client, publisher, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state := view.State{DarkMode: *dark}.Search(ctx, svc, strings.Join(flag.Args(), " "))
	if state.Err != "" {
		fmt.Fprintln(os.Stderr, state.Err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonOutput{
			Conditions: state.Weather,
			Icon:       view.Icon(state.Weather.WeatherCode),
			Background: state.Background(),
		}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	if err := view.Render(os.Stdout, state, loc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
