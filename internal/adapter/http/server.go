package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/view"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var validate = validator.New()

// Server exposes the weather API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	looker     view.Looker
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /api/v1/weather, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, looker view.Looker, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second, // a lookup makes two upstream calls
			IdleTimeout:  60 * time.Second,
		},
		looker: looker,
		logger: logger,
	}

	mux.HandleFunc("GET /api/v1/weather", s.handleWeather)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type weatherQuery struct {
	City string `validate:"required,max=200"`
	Dark bool
}

type weatherResponse struct {
	Conditions domain.CurrentConditions `json:"conditions"`
	Icon       string                   `json:"icon"`
	Background string                   `json:"background"`
}

type errorResponse struct {
	Error   domain.Kind `json:"error"`
	Message string      `json:"message"`
}

func parseWeatherQuery(r *http.Request) (weatherQuery, error) {
	q := weatherQuery{City: r.URL.Query().Get("city")}
	if raw := r.URL.Query().Get("dark"); raw != "" {
		dark, err := strconv.ParseBool(raw)
		if err != nil {
			return q, errors.New("dark must be a boolean")
		}
		q.Dark = dark
	}
	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Tag() == "max" {
			return q, errors.New("city name is too long")
		}
		return q, errors.New(domain.KindValidation.Message())
	}
	return q, nil
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q, err := parseWeatherQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.KindValidation, Message: err.Error()})
		return
	}

	cond, err := s.looker.Lookup(r.Context(), q.City)
	if err != nil {
		kind := domain.KindOf(err)
		writeJSON(w, statusFor(kind), errorResponse{Error: kind, Message: kind.Message()})
		return
	}

	writeJSON(w, http.StatusOK, weatherResponse{
		Conditions: cond,
		Icon:       view.Icon(cond.WeatherCode),
		Background: view.Background(cond.WeatherCode, q.Dark),
	})
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
