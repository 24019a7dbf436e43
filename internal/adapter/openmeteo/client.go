package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/observability"
)

const (
	endpointGeocoding = "geocoding"
	endpointForecast  = "forecast"

	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,pressure_msl,wind_speed_10m,visibility,weather_code"
	dailyFields   = "sunrise,sunset,weather_code"
)

// Client implements domain.Geocoder and domain.ForecastSource using the Open-Meteo APIs.
type Client struct {
	geocodingURL string
	forecastURL  string
	httpClient   *http.Client
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// NewClient creates an Open-Meteo client. httpClient is typically built with NewHTTPClient.
func NewClient(geocodingURL, forecastURL string, httpClient *http.Client, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		geocodingURL: geocodingURL,
		forecastURL:  forecastURL,
		httpClient:   httpClient,
		metrics:      metrics,
		logger:       logger,
	}
}

// Geocode resolves a city name to its single best match.
func (c *Client) Geocode(ctx context.Context, city string) (domain.GeoResult, error) {
	params := url.Values{
		"name":     {city},
		"count":    {"1"},
		"language": {"en"},
		"format":   {"json"},
	}

	var resp geocodingResponse
	if err := c.getJSON(ctx, endpointGeocoding, c.geocodingURL, params, domain.KindGeocoding, &resp); err != nil {
		return domain.GeoResult{}, err
	}

	if len(resp.Results) == 0 {
		c.metrics.UpstreamRequests.WithLabelValues(endpointGeocoding, "empty").Inc()
		return domain.GeoResult{}, domain.Errorf(domain.KindNotFound, "no geocoding results for %q", city)
	}
	c.metrics.UpstreamRequests.WithLabelValues(endpointGeocoding, "success").Inc()

	r := resp.Results[0]
	return domain.GeoResult{
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Name:        r.Name,
		CountryCode: r.CountryCode,
	}, nil
}

// CurrentForecast fetches current conditions and today's sunrise/sunset for a coordinate pair.
func (c *Client) CurrentForecast(ctx context.Context, lat, lon float64) (domain.Forecast, error) {
	params := url.Values{
		"latitude":  {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(lon, 'f', -1, 64)},
		"current":   {currentFields},
		"daily":     {dailyFields},
		"timezone":  {"auto"},
	}

	var resp forecastResponse
	if err := c.getJSON(ctx, endpointForecast, c.forecastURL, params, domain.KindForecast, &resp); err != nil {
		return domain.Forecast{}, err
	}
	if resp.Current == nil {
		c.metrics.UpstreamRequests.WithLabelValues(endpointForecast, "empty").Inc()
		return domain.Forecast{}, domain.Errorf(domain.KindMalformed, "forecast response has no current section")
	}
	c.metrics.UpstreamRequests.WithLabelValues(endpointForecast, "success").Inc()

	fc := domain.Forecast{
		UTCOffsetSeconds: resp.UTCOffsetSeconds,
		Current:          resp.Current,
	}
	if resp.Daily != nil {
		fc.Sunrise = resp.Daily.Sunrise
		fc.Sunset = resp.Daily.Sunset
	}
	return fc, nil
}

// getJSON performs a GET and decodes the body into out. A transport failure is a
// KindNetwork error, a non-2xx status is statusKind, and an undecodable body is
// KindMalformed.
func (c *Client) getJSON(ctx context.Context, endpoint, baseURL string, params url.Values, statusKind domain.Kind, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.NewError(statusKind, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Debug("upstream request failed", "endpoint", endpoint, "error", err)
		return domain.NewError(domain.KindNetwork, fmt.Errorf("%s request: %w", endpoint, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Errorf(statusKind, "open-meteo %s error: status %d: %s", endpoint, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return domain.NewError(domain.KindMalformed, fmt.Errorf("decode %s response: %w", endpoint, err))
	}
	return nil
}

// Open-Meteo API response types.

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Name        string  `json:"name"`
	CountryCode string  `json:"country_code"`
}

type forecastResponse struct {
	UTCOffsetSeconds int                   `json:"utc_offset_seconds"`
	Current          *domain.CurrentFields `json:"current"`
	Daily            *dailySeries          `json:"daily"`
}

type dailySeries struct {
	Sunrise []string `json:"sunrise"`
	Sunset  []string `json:"sunset"`
}
