package domain

import (
	"fmt"
	"math"
	"time"
)

// localTimeLayouts are the sunrise/sunset formats Open-Meteo emits with timezone=auto.
var localTimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// Normalize combines a geocoding match and a forecast into CurrentConditions.
// It never returns a partially populated record: any missing value yields a
// KindMalformed error.
func Normalize(geo GeoResult, fc Forecast) (CurrentConditions, error) {
	cur := fc.Current
	if cur == nil {
		return CurrentConditions{}, Errorf(KindMalformed, "forecast has no current section")
	}
	if missing := cur.missingFields(); len(missing) > 0 {
		return CurrentConditions{}, Errorf(KindMalformed, "forecast current section missing %v", missing)
	}
	if len(fc.Sunrise) == 0 || len(fc.Sunset) == 0 {
		return CurrentConditions{}, Errorf(KindMalformed, "forecast has no daily sunrise/sunset")
	}

	zone := time.FixedZone("", fc.UTCOffsetSeconds)
	sunrise, err := parseLocalTime(fc.Sunrise[0], zone)
	if err != nil {
		return CurrentConditions{}, NewError(KindMalformed, fmt.Errorf("sunrise: %w", err))
	}
	sunset, err := parseLocalTime(fc.Sunset[0], zone)
	if err != nil {
		return CurrentConditions{}, NewError(KindMalformed, fmt.Errorf("sunset: %w", err))
	}

	code := *cur.WeatherCode
	return CurrentConditions{
		Name:                geo.Name,
		CountryCode:         geo.CountryCode,
		SunriseEpochSeconds: sunrise.Unix(),
		SunsetEpochSeconds:  sunset.Unix(),
		WeatherCode:         code,
		Description:         Describe(code),
		TemperatureC:        *cur.Temperature2m,
		FeelsLikeC:          *cur.ApparentTemperature,
		HumidityPct:         int(math.Round(*cur.RelativeHumidity2m)),
		PressureHPa:         *cur.PressureMSL,
		WindSpeedMs:         *cur.WindSpeed10m,
		VisibilityMeters:    *cur.Visibility * 1000,
	}, nil
}

func (c *CurrentFields) missingFields() []string {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("temperature_2m", c.Temperature2m != nil)
	check("relative_humidity_2m", c.RelativeHumidity2m != nil)
	check("apparent_temperature", c.ApparentTemperature != nil)
	check("pressure_msl", c.PressureMSL != nil)
	check("wind_speed_10m", c.WindSpeed10m != nil)
	check("visibility", c.Visibility != nil)
	check("weather_code", c.WeatherCode != nil)
	return missing
}

func parseLocalTime(s string, zone *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, zone); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
