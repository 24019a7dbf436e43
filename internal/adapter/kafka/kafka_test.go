package kafka

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/config"
	"github.com/couchcryptid/weather-lookup/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObservation() domain.Observation {
	return domain.Observation{
		ID:        "3f1c2d4e-0000-4000-8000-000000000001",
		Query:     "paris",
		FetchedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Conditions: domain.CurrentConditions{
			Name:         "Paris",
			CountryCode:  "FR",
			WeatherCode:  3,
			Description:  "Overcast",
			TemperatureC: 17.5,
		},
	}
}

func TestSerializeToMessage(t *testing.T) {
	obs := testObservation()

	msg, err := serializeToMessage(obs)
	require.NoError(t, err)

	assert.Equal(t, []byte(obs.ID), msg.Key)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "country_code", msg.Headers[0].Key)
	assert.Equal(t, []byte("FR"), msg.Headers[0].Value)
	assert.Equal(t, "weather_code", msg.Headers[1].Key)
	assert.Equal(t, []byte("3"), msg.Headers[1].Value)

	var decoded domain.Observation
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, obs, decoded)
}

func TestSerializeToMessage_WireFields(t *testing.T) {
	msg, err := serializeToMessage(testObservation())
	require.NoError(t, err)

	body := string(msg.Value)
	assert.Contains(t, body, `"query":"paris"`)
	assert.Contains(t, body, `"fetched_at":"2024-06-01T12:00:00Z"`)
	assert.Contains(t, body, `"country_code":"FR"`)
	assert.Contains(t, body, `"temperature_c":17.5`)
}

func TestNewWriter(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"broker-1:9092", "broker-2:9092"}, KafkaTopic: "weather-lookups"}

	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "weather-lookups", w.writer.Topic)
	assert.Equal(t, kafkago.RequireAll, w.writer.RequiredAcks)
}
