package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Clear sky"},
		{1, "Mainly clear"},
		{2, "Partly cloudy"},
		{3, "Overcast"},
		{45, "Foggy"},
		{48, "Depositing rime fog"},
		{51, "Light drizzle"},
		{53, "Moderate drizzle"},
		{55, "Dense drizzle"},
		{61, "Slight rain"},
		{63, "Moderate rain"},
		{65, "Heavy rain"},
		{71, "Slight snow"},
		{73, "Moderate snow"},
		{75, "Heavy snow"},
		{77, "Snow grains"},
		{80, "Slight rain showers"},
		{81, "Moderate rain showers"},
		{82, "Violent rain showers"},
		{85, "Slight snow showers"},
		{86, "Heavy snow showers"},
		{95, "Thunderstorm"},
		{96, "Thunderstorm with slight hail"},
		{99, "Thunderstorm with heavy hail"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(tt.code), "code %d", tt.code)
	}
}

func TestDescribe_UnknownCodes(t *testing.T) {
	for _, code := range []int{-1, 4, 50, 56, 66, 67, 100, 1000} {
		assert.Equal(t, "Unknown", Describe(code), "code %d", code)
	}
}

func TestNewObservation_UsesClock(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	cond := CurrentConditions{Name: "Paris", CountryCode: "FR"}
	obs := NewObservation("paris", cond)

	require.NotEmpty(t, obs.ID)
	assert.Equal(t, fixed, obs.FetchedAt)
	assert.Equal(t, "paris", obs.Query)
	assert.Equal(t, cond, obs.Conditions)

	other := NewObservation("paris", cond)
	assert.NotEqual(t, obs.ID, other.ID)
}
