package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, time.Second, s.PDF.Debounce)
	assert.True(t, s.PDF.CaseInsensitive)
	assert.Equal(t, Size{Width: 40, Height: 4}, s.PDF.Thumbnail)
	assert.Equal(t, 3*time.Second, s.Location.Debounce)
	assert.Equal(t, DefaultGeocodingURL, s.Weather.GeocodingURL)
	assert.Equal(t, DefaultForecastURL, s.Weather.ForecastURL)
	assert.Equal(t, "auto", s.Weather.Timezone)
	assert.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *AppSettings)
	}{
		{"negative pdf debounce", func(s *AppSettings) { s.PDF.Debounce = -time.Second }},
		{"negative location debounce", func(s *AppSettings) { s.Location.Debounce = -1 }},
		{"zero thumbnail", func(s *AppSettings) { s.PDF.Thumbnail = Size{} }},
		{"missing geocoding url", func(s *AppSettings) { s.Weather.GeocodingURL = "" }},
		{"missing forecast url", func(s *AppSettings) { s.Weather.ForecastURL = "" }},
		{"zero rate", func(s *AppSettings) { s.Weather.RequestsPerSecond = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}

func TestAppSettings_ZeroDebounceAllowed(t *testing.T) {
	s := DefaultAppSettings()
	s.PDF.Debounce = 0
	assert.NoError(t, s.Validate())
}
