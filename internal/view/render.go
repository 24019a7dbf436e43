package view

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
	"time"
)

const dataSource = "Data source: Open-Meteo"

// Render writes a text card for s. Sunrise and sunset are shown in loc.
func Render(w io.Writer, s State, loc *time.Location) error {
	switch {
	case s.Loading:
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	case s.Err != "":
		_, err := fmt.Fprintln(w, s.Err)
		return err
	case s.Weather == nil:
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	c := s.Weather

	if _, err := fmt.Fprintf(w, "%s  %s, %s\n%s\n%d°C\n\n", Icon(c.WeatherCode), c.Name, c.CountryCode,
		c.Description, roundHalfUp(c.TemperatureC)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Feels like:\t%d°C\n", roundHalfUp(c.FeelsLikeC))
	fmt.Fprintf(tw, "Humidity:\t%d%%\n", c.HumidityPct)
	fmt.Fprintf(tw, "Wind:\t%s m/s\n", formatNumber(c.WindSpeedMs))
	fmt.Fprintf(tw, "Pressure:\t%s hPa\n", formatNumber(c.PressureHPa))
	fmt.Fprintf(tw, "Visibility:\t%.1f km\n", c.VisibilityMeters/1000)
	fmt.Fprintf(tw, "Sunrise:\t%s\n", clockTime(c.SunriseEpochSeconds, loc))
	fmt.Fprintf(tw, "Sunset:\t%s\n", clockTime(c.SunsetEpochSeconds, loc))
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n", dataSource)
	return err
}

// roundHalfUp rounds .5 toward positive infinity, so -0.5 becomes 0 rather than -1.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clockTime(epoch int64, loc *time.Location) string {
	return time.Unix(epoch, 0).In(loc).Format("03:04 PM")
}
