package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GeoResult is the best geocoding match for a city query.
type GeoResult struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Name        string  `json:"name"`
	CountryCode string  `json:"country_code"`
}

// Forecast holds the decoded forecast payload before normalization.
// Current is nil when the upstream response had no "current" object; any nil
// field inside it is a missing required value.
type Forecast struct {
	UTCOffsetSeconds int
	Current          *CurrentFields
	Sunrise          []string
	Sunset           []string
}

// CurrentFields mirrors the instantaneous values requested from the forecast endpoint.
type CurrentFields struct {
	Temperature2m       *float64 `json:"temperature_2m"`
	RelativeHumidity2m  *float64 `json:"relative_humidity_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	PressureMSL         *float64 `json:"pressure_msl"`
	WindSpeed10m        *float64 `json:"wind_speed_10m"`
	Visibility          *float64 `json:"visibility"` // kilometers
	WeatherCode         *int     `json:"weather_code"`
}

// CurrentConditions is the normalized result of a successful lookup.
type CurrentConditions struct {
	Name                string  `json:"name"`
	CountryCode         string  `json:"country_code"`
	SunriseEpochSeconds int64   `json:"sunrise"`
	SunsetEpochSeconds  int64   `json:"sunset"`
	WeatherCode         int     `json:"weather_code"`
	Description         string  `json:"description"`
	TemperatureC        float64 `json:"temperature_c"`
	FeelsLikeC          float64 `json:"feels_like_c"`
	HumidityPct         int     `json:"humidity_pct"`
	PressureHPa         float64 `json:"pressure_hpa"`
	WindSpeedMs         float64 `json:"wind_speed_ms"`
	VisibilityMeters    float64 `json:"visibility_m"`
}

// Observation is a successful lookup as published to downstream consumers.
type Observation struct {
	ID         string            `json:"id"`
	Query      string            `json:"query"`
	FetchedAt  time.Time         `json:"fetched_at"`
	Conditions CurrentConditions `json:"conditions"`
}

// NewObservation stamps a lookup result with a fresh ID and the current time.
func NewObservation(query string, cond CurrentConditions) Observation {
	return Observation{
		ID:         uuid.NewString(),
		Query:      query,
		FetchedAt:  clock.Now().UTC(),
		Conditions: cond,
	}
}

// Geocoder resolves a city name to its best match.
type Geocoder interface {
	// Geocode returns a *LookupError of kind KindNotFound when nothing matches.
	Geocode(ctx context.Context, city string) (GeoResult, error)
}

// ForecastSource fetches current conditions for a coordinate pair.
type ForecastSource interface {
	CurrentForecast(ctx context.Context, lat, lon float64) (Forecast, error)
}

// ObservationPublisher forwards successful lookups to an external sink.
type ObservationPublisher interface {
	Publish(ctx context.Context, obs Observation) error
}
