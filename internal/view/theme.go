package view

// nightGradient is shared by every weather category in dark mode.
const nightGradient = "linear-gradient(135deg, #0a4da2 0%, #051c3b 100%)"

const (
	clearGradient        = "linear-gradient(135deg, #1e88e5 0%, #0d47a1 100%)"
	partlyCloudyGradient = "linear-gradient(135deg, #42a5f5 0%, #1976d2 100%)"
	overcastGradient     = "linear-gradient(135deg, #64b5f6 0%, #1976d2 100%)"
	rainGradient         = "linear-gradient(135deg, #29b6f6 0%, #0277bd 100%)"
	snowGradient         = "linear-gradient(135deg, #4fc3f7 0%, #0288d1 100%)"
	thunderGradient      = "linear-gradient(135deg, #0d47a1 0%, #01579b 100%)"
)

// Icon returns the emoji shown next to a WMO weather code.
func Icon(code int) string {
	switch {
	case code == 0 || code == 1:
		return "☀️"
	case code == 2:
		return "⛅"
	case code == 3:
		return "☁️"
	case code == 45 || code == 48:
		return "🌫️"
	case code >= 51 && code <= 55:
		return "🌧️"
	case code >= 61 && code <= 65:
		return "🌦️"
	case code >= 71 && code <= 77:
		return "🌨️"
	case code >= 80 && code <= 82:
		return "🌧️"
	case code >= 85 && code <= 86:
		return "🌨️"
	case code >= 95 && code <= 99:
		return "⛈️"
	default:
		return "❓"
	}
}

// Background returns the CSS gradient for a weather code.
// Categories are checked in order, so codes 71-82 count as rain, not snow.
func Background(code int, dark bool) string {
	var light string
	switch {
	case code == 0 || code == 1:
		light = clearGradient
	case code == 2:
		light = partlyCloudyGradient
	case code == 3:
		light = overcastGradient
	case code >= 51 && code <= 82:
		light = rainGradient
	case code >= 71 && code <= 86:
		light = snowGradient
	case code >= 95 && code <= 99:
		light = thunderGradient
	default:
		light = clearGradient
	}
	if dark {
		return nightGradient
	}
	return light
}
