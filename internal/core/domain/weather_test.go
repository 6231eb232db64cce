package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		location Location
		expected string
	}{
		{"name only", Location{Name: "Brooklyn"}, "Brooklyn"},
		{"with country", Location{Name: "Brooklyn", Country: "United States"}, "Brooklyn, United States"},
		{
			"with region",
			Location{Name: "Brooklyn", Admin1: "New York", Country: "United States"},
			"Brooklyn, New York, United States",
		},
		{"region equal to name", Location{Name: "Berlin", Admin1: "Berlin", Country: "Germany"}, "Berlin, Germany"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.location.DisplayName())
		})
	}
}

func TestForecast_Days(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2023, 10, d, 0, 0, 0, 0, time.UTC) }

	f := &Forecast{
		Time:               []time.Time{day(14), day(15), day(16)},
		TemperatureMax:     []float64{90, 70, 100},
		TemperatureMin:     []float64{70, 50, 80},
		TemperatureMaxUnit: "°F",
		TemperatureMinUnit: "°F",
	}

	days := f.Days()
	require.Len(t, days, 3)
	assert.Equal(t, day(15), days[1].Date)
	assert.Equal(t, 70.0, days[1].TemperatureMax)
	assert.Equal(t, 50.0, days[1].TemperatureMin)
	assert.Equal(t, "°F", days[1].TemperatureMaxUnit)
}

func TestForecast_Days_MismatchedLengths(t *testing.T) {
	f := &Forecast{
		Time:           []time.Time{time.Unix(0, 0), time.Unix(86400, 0)},
		TemperatureMax: []float64{1},
		TemperatureMin: []float64{0, 2, 4},
	}

	assert.Len(t, f.Days(), 1)
}

func TestForecast_Days_Nil(t *testing.T) {
	var f *Forecast
	assert.Nil(t, f.Days())
}

func TestSize_IsValid(t *testing.T) {
	assert.True(t, Size{Width: 1, Height: 1}.IsValid())
	assert.False(t, Size{Width: 0, Height: 1}.IsValid())
	assert.False(t, Size{Width: 1, Height: -1}.IsValid())
}

func TestWeather_Lines(t *testing.T) {
	w := &Weather{Days: []WeatherDay{
		{Date: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), TemperatureMin: 6.1, TemperatureMinUnit: "°C", TemperatureMax: 14, TemperatureMaxUnit: "°C"},
		{Date: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), TemperatureMin: -2.5, TemperatureMinUnit: "°C", TemperatureMax: 3.25, TemperatureMaxUnit: "°C"},
	}}

	assert.Equal(t, []string{
		"Today, 6.1°C – 14°C",
		"Tuesday, -2.5°C – 3.25°C",
	}, w.Lines())

	var none *Weather
	assert.Nil(t, none.Lines())
}
