package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a lookup failure.
type Kind string

const (
	KindValidation Kind = "validation_error"
	KindNetwork    Kind = "network_error"
	KindNotFound   Kind = "city_not_found"
	KindGeocoding  Kind = "geocoding_error"
	KindForecast   Kind = "forecast_error"
	KindMalformed  Kind = "malformed_response"
)

// Message returns the text shown to the user for this kind of failure.
func (k Kind) Message() string {
	switch k {
	case KindValidation:
		return "Please enter a city name"
	case KindNetwork:
		return "Network error - Please check your internet connection"
	case KindNotFound:
		return "City not found"
	case KindGeocoding:
		return "Failed to fetch location data"
	case KindForecast:
		return "Failed to fetch weather data"
	case KindMalformed:
		return "Invalid weather data received"
	default:
		return "Something went wrong"
	}
}

// LookupError is the single error type returned by a weather lookup.
type LookupError struct {
	Kind Kind
	Err  error // underlying cause, may be nil
}

// NewError wraps cause with the given kind.
func NewError(kind Kind, cause error) *LookupError {
	return &LookupError{Kind: kind, Err: cause}
}

// Errorf builds a LookupError whose cause is a formatted error.
func Errorf(kind Kind, format string, args ...any) *LookupError {
	return &LookupError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Is matches another *LookupError of the same kind, so callers can write
// errors.Is(err, domain.ErrCityNotFound).
func (e *LookupError) Is(target error) bool {
	var t *LookupError
	if !errors.As(target, &t) {
		return false
	}
	return t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation = &LookupError{Kind: KindValidation}
	ErrNetwork    = &LookupError{Kind: KindNetwork}
	ErrNotFound   = &LookupError{Kind: KindNotFound}
	ErrGeocoding  = &LookupError{Kind: KindGeocoding}
	ErrForecast   = &LookupError{Kind: KindForecast}
	ErrMalformed  = &LookupError{Kind: KindMalformed}
)

// KindOf extracts the Kind from err. Errors that are not a *LookupError are
// reported as KindNetwork, matching how an unclassified transport failure is shown.
func KindOf(err error) Kind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindNetwork
}

// UserMessage returns the user-facing text for err, or "" for a nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return KindOf(err).Message()
}
