package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/observability"
)

// unreachableThreshold is the number of consecutive network failures after
// which the service reports itself not ready.
const unreachableThreshold = 3

// Service resolves a city to current weather conditions: geocode, then forecast,
// then normalize. It holds no per-lookup state and is safe for concurrent use.
type Service struct {
	geocoder  domain.Geocoder
	forecasts domain.ForecastSource
	publisher domain.ObservationPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	networkFailures atomic.Int32
}

// New creates a Service. Pass a nil publisher to disable observation publishing.
func New(g domain.Geocoder, f domain.ForecastSource, p domain.ObservationPublisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	s := &Service{
		geocoder:  g,
		forecasts: f,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
	}
	if p != nil {
		metrics.PublishEnabled.Set(1)
	}
	return s
}

// Lookup returns the current conditions for city. Every failure is a
// *domain.LookupError; empty input fails validation before any request is made.
func (s *Service) Lookup(ctx context.Context, city string) (domain.CurrentConditions, error) {
	start := time.Now()

	cond, err := s.lookup(ctx, city)
	s.metrics.LookupDuration.Observe(time.Since(start).Seconds())
	s.track(err)

	if err != nil {
		s.metrics.Lookups.WithLabelValues(string(domain.KindOf(err))).Inc()
		s.logger.Warn("weather lookup failed", "city", city, "kind", domain.KindOf(err), "error", err)
		return domain.CurrentConditions{}, err
	}

	s.metrics.Lookups.WithLabelValues("success").Inc()
	s.logger.Info("weather lookup succeeded",
		"city", city,
		"resolved", cond.Name,
		"country_code", cond.CountryCode,
		"weather_code", cond.WeatherCode,
	)
	s.publish(ctx, strings.TrimSpace(city), cond)
	return cond, nil
}

func (s *Service) lookup(ctx context.Context, raw string) (domain.CurrentConditions, error) {
	city, err := domain.ParseLocationQuery(raw)
	if err != nil {
		return domain.CurrentConditions{}, err
	}

	geo, err := s.geocoder.Geocode(ctx, city)
	if err != nil {
		return domain.CurrentConditions{}, classify(ctx, err, domain.KindGeocoding)
	}

	fc, err := s.forecasts.CurrentForecast(ctx, geo.Latitude, geo.Longitude)
	if err != nil {
		return domain.CurrentConditions{}, classify(ctx, err, domain.KindForecast)
	}

	return domain.Normalize(geo, fc)
}

// classify passes a *domain.LookupError through unchanged. Anything else is a
// network error if the context ended, or fallback otherwise.
func classify(ctx context.Context, err error, fallback domain.Kind) error {
	var le *domain.LookupError
	if errors.As(err, &le) {
		return err
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewError(domain.KindNetwork, err)
	}
	return domain.NewError(fallback, err)
}

// track counts consecutive network failures. Validation errors never reached
// upstream and leave the count alone.
func (s *Service) track(err error) {
	switch {
	case err == nil:
		s.networkFailures.Store(0)
	case errors.Is(err, domain.ErrValidation):
	case errors.Is(err, domain.ErrNetwork):
		s.networkFailures.Add(1)
	default:
		s.networkFailures.Store(0)
	}
}

func (s *Service) publish(ctx context.Context, query string, cond domain.CurrentConditions) {
	if s.publisher == nil {
		return
	}
	obs := domain.NewObservation(query, cond)
	if err := s.publisher.Publish(ctx, obs); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("publish observation failed", "observation_id", obs.ID, "error", err)
	}
}

// CheckReadiness reports an error once several lookups in a row could not reach upstream.
func (s *Service) CheckReadiness(_ context.Context) error {
	if n := s.networkFailures.Load(); n >= unreachableThreshold {
		return fmt.Errorf("open-meteo unreachable: %d consecutive network failures", n)
	}
	return nil
}
