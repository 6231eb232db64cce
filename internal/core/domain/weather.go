package domain

import (
	"strconv"
	"time"
)

// Location is a geocoding result.
type Location struct {
	// ID is the geocoding provider identifier.
	ID int64 `json:"id"`

	// Name is the place name.
	Name string `json:"name"`

	// Country is the country name.
	Country string `json:"country"`

	// Admin1 is the first-level administrative region, if known.
	Admin1 string `json:"admin1,omitempty"`

	// Latitude in decimal degrees.
	Latitude float64 `json:"latitude"`

	// Longitude in decimal degrees.
	Longitude float64 `json:"longitude"`
}

// DisplayName returns "Name, Region, Country" omitting empty parts.
func (l Location) DisplayName() string {
	name := l.Name
	if l.Admin1 != "" && l.Admin1 != l.Name {
		name += ", " + l.Admin1
	}
	if l.Country != "" {
		name += ", " + l.Country
	}
	return name
}

// Forecast is the daily forecast returned by the weather provider.
// Time, TemperatureMax and TemperatureMin are parallel arrays.
type Forecast struct {
	Time           []time.Time
	TemperatureMax []float64
	TemperatureMin []float64

	// TemperatureMaxUnit is the unit of TemperatureMax (e.g. "°C").
	TemperatureMaxUnit string

	// TemperatureMinUnit is the unit of TemperatureMin.
	TemperatureMinUnit string
}

// Days zips the parallel arrays into days. Extra entries in longer arrays are dropped.
func (f *Forecast) Days() []WeatherDay {
	if f == nil {
		return nil
	}
	n := min(len(f.Time), len(f.TemperatureMax), len(f.TemperatureMin))
	days := make([]WeatherDay, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, WeatherDay{
			Date:               f.Time[i],
			TemperatureMax:     f.TemperatureMax[i],
			TemperatureMaxUnit: f.TemperatureMaxUnit,
			TemperatureMin:     f.TemperatureMin[i],
			TemperatureMinUnit: f.TemperatureMinUnit,
		})
	}
	return days
}

// WeatherDay is one day of a forecast.
type WeatherDay struct {
	Date               time.Time `json:"date"`
	TemperatureMax     float64   `json:"temperature_max"`
	TemperatureMaxUnit string    `json:"temperature_max_unit"`
	TemperatureMin     float64   `json:"temperature_min"`
	TemperatureMinUnit string    `json:"temperature_min_unit"`
}

// Weather is the forecast displayed for a location.
type Weather struct {
	// LocationID is the location the forecast belongs to.
	LocationID int64 `json:"location_id"`

	// Days is the forecast, first entry is today.
	Days []WeatherDay `json:"days"`
}

// ForecastSnapshot is a point-in-time copy of the forecast state of a location search.
type ForecastSnapshot struct {
	// InFlight is the location whose forecast is being fetched, if any.
	InFlight *Location

	// Weather is the displayed forecast, if any.
	Weather *Weather

	// LastError is set when the last forecast request failed.
	LastError error
}

// Format renders the day as "Monday, 6.1°C – 14.2°C", or "Today, ..." when isToday.
func (d WeatherDay) Format(isToday bool) string {
	label := "Today"
	if !isToday {
		label = d.Date.Weekday().String()
	}
	return label + ", " +
		strconv.FormatFloat(d.TemperatureMin, 'f', -1, 64) + d.TemperatureMinUnit + " – " +
		strconv.FormatFloat(d.TemperatureMax, 'f', -1, 64) + d.TemperatureMaxUnit
}

// Lines formats every day, the first as today.
func (w *Weather) Lines() []string {
	if w == nil {
		return nil
	}
	lines := make([]string, 0, len(w.Days))
	for i, d := range w.Days {
		lines = append(lines, d.Format(i == 0))
	}
	return lines
}
