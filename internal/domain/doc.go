// Package domain models a city weather lookup against the Open-Meteo APIs.
//
// # Data Sources
//
// Two public Open-Meteo endpoints are used, always in this order:
//
//	Geocoding: https://geocoding-api.open-meteo.com/v1/search
//	  name=<city>&count=1&language=en&format=json
//	  → {"results":[{"latitude":48.85,"longitude":2.35,"name":"Paris","country_code":"FR"}]}
//
//	Forecast:  https://api.open-meteo.com/v1/forecast
//	  latitude=..&longitude=..&current=<fields>&daily=sunrise,sunset,weather_code&timezone=auto
//	  → {"utc_offset_seconds":7200,"current":{...},"daily":{"sunrise":[...],"sunset":[...]}}
//
// An absent or empty "results" array means the city is unknown. A forecast without a
// "current" object, or with any required current field missing, is malformed.
//
// # Unit Conventions
//
// The forecast reports visibility in kilometers; [CurrentConditions.VisibilityMeters]
// multiplies it by 1000. Temperatures are °C, wind is m/s, pressure is hPa at mean sea
// level. No value is rounded here; rounding is a display concern.
//
// Sunrise and sunset arrive as local wall-clock strings without an offset
// ("2024-06-01T05:47"). They are interpreted in the fixed zone described by
// utc_offset_seconds and stored as Unix seconds.
//
// # WMO Weather Codes
//
// [Describe] maps World Meteorological Organization interpretation codes to text.
// Codes outside the table describe as "Unknown".
//
// # Errors
//
// Every failure is a [*LookupError] carrying a [Kind]. Each kind has a fixed
// user-facing message, see [Kind.Message].
package domain
