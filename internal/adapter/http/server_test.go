package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/weather-lookup/internal/adapter/http"
	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockLooker struct {
	cond     domain.CurrentConditions
	err      error
	calls    int
	lastCity string
}

func (m *mockLooker) Lookup(_ context.Context, city string) (domain.CurrentConditions, error) {
	m.calls++
	m.lastCity = city
	if strings.TrimSpace(city) == "" {
		return domain.CurrentConditions{}, domain.NewError(domain.KindValidation, nil)
	}
	return m.cond, m.err
}

func newTestServer(looker *mockLooker, readyErr error) *httpadapter.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpadapter.NewServer(":0", looker, &mockReadiness{err: readyErr}, logger)
}

func get(t *testing.T, srv http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func thunderstorm() domain.CurrentConditions {
	return domain.CurrentConditions{
		Name:         "Paris",
		CountryCode:  "FR",
		WeatherCode:  95,
		Description:  "Thunderstorm",
		TemperatureC: 18.2,
		HumidityPct:  90,
	}
}

func TestWeatherReturnsConditions(t *testing.T) {
	looker := &mockLooker{cond: thunderstorm()}
	rec := get(t, newTestServer(looker, nil), "/api/v1/weather?city=Paris")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Paris", looker.lastCity)

	var body struct {
		Conditions domain.CurrentConditions `json:"conditions"`
		Icon       string                   `json:"icon"`
		Background string                   `json:"background"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, thunderstorm(), body.Conditions)
	assert.Equal(t, "⛈️", body.Icon)
	assert.Equal(t, "linear-gradient(135deg, #0d47a1 0%, #01579b 100%)", body.Background)
}

func TestWeatherDarkBackground(t *testing.T) {
	looker := &mockLooker{cond: thunderstorm()}
	rec := get(t, newTestServer(looker, nil), "/api/v1/weather?city=Paris&dark=true")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "linear-gradient(135deg, #0a4da2 0%, #051c3b 100%)", body["background"])
}

func TestWeatherRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		message string
		lookups int
	}{
		{"missing city", "/api/v1/weather", "Please enter a city name", 0},
		{"blank city", "/api/v1/weather?city=%20%20", "Please enter a city name", 1},
		{"too long", "/api/v1/weather?city=" + strings.Repeat("a", 201), "city name is too long", 0},
		{"bad dark flag", "/api/v1/weather?city=Paris&dark=maybe", "dark must be a boolean", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			looker := &mockLooker{cond: thunderstorm()}
			rec := get(t, newTestServer(looker, nil), tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "validation_error", body["error"])
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, tt.lookups, looker.calls)
		})
	}
}

func TestWeatherErrorStatus(t *testing.T) {
	tests := []struct {
		kind   domain.Kind
		status int
	}{
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindNetwork, http.StatusBadGateway},
		{domain.KindGeocoding, http.StatusBadGateway},
		{domain.KindForecast, http.StatusBadGateway},
		{domain.KindMalformed, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			looker := &mockLooker{err: domain.Errorf(tt.kind, "upstream said no")}
			rec := get(t, newTestServer(looker, nil), "/api/v1/weather?city=Paris")

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, string(tt.kind), body["error"])
			assert.Equal(t, tt.kind.Message(), body["message"])
			assert.NotContains(t, rec.Body.String(), "upstream said no")
		})
	}
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(t, newTestServer(&mockLooker{}, nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(t, newTestServer(&mockLooker{}, nil), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(t, newTestServer(&mockLooker{}, fmt.Errorf("open-meteo unreachable")), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(t, newTestServer(&mockLooker{}, nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestUnknownMethodRejected(t *testing.T) {
	rec := httptest.NewRecorder()
	srv := newTestServer(&mockLooker{}, nil)
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/weather?city=Paris", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
