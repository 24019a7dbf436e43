package view

import (
	"context"
	"strings"

	"github.com/couchcryptid/weather-lookup/internal/domain"
)

// Looker resolves a city to current conditions.
type Looker interface {
	Lookup(ctx context.Context, city string) (domain.CurrentConditions, error)
}

// State is the widget state. Operations return a new value and never mutate the receiver.
type State struct {
	City     string
	Loading  bool
	Err      string
	DarkMode bool
	Weather  *domain.CurrentConditions
}

// Begin starts a search for city. The second result reports whether a lookup
// should actually run: it is false while another search is in flight, and
// false for blank input, which sets the validation message instead.
func (s State) Begin(city string) (State, bool) {
	if s.Loading {
		return s, false
	}
	s.City = city
	if strings.TrimSpace(city) == "" {
		s.Err = domain.KindValidation.Message()
		s.Weather = nil
		return s, false
	}
	s.Loading = true
	s.Err = ""
	return s, true
}

// Resolve finishes a search. A failure clears any earlier result.
func (s State) Resolve(cond domain.CurrentConditions, err error) State {
	s.Loading = false
	if err != nil {
		s.Weather = nil
		s.Err = domain.UserMessage(err)
		return s
	}
	s.Weather = &cond
	s.Err = ""
	return s
}

// Search runs Begin, the lookup, and Resolve in sequence.
func (s State) Search(ctx context.Context, l Looker, city string) State {
	next, ok := s.Begin(city)
	if !ok {
		return next
	}
	cond, err := l.Lookup(ctx, city)
	return next.Resolve(cond, err)
}

// ToggleTheme flips between light and dark mode.
func (s State) ToggleTheme() State {
	s.DarkMode = !s.DarkMode
	return s
}

// Background is the gradient for the current result, or the clear-sky one when there is none.
func (s State) Background() string {
	if s.Weather == nil {
		return Background(0, s.DarkMode)
	}
	return Background(s.Weather.WeatherCode, s.DarkMode)
}
