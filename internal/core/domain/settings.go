package domain

import (
	"fmt"
	"time"
)

// Default endpoints of the Open-Meteo APIs.
const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// PDFSettings holds PDF text search configuration.
type PDFSettings struct {
	// Path is the document opened when none is given on the command line.
	Path string

	// Debounce is the quiet period before a typed query is searched.
	Debounce time.Duration

	// CaseInsensitive controls query matching.
	CaseInsensitive bool

	// Thumbnail is the size of the page preview shown next to each hit.
	Thumbnail Size
}

// LocationSettings holds location search configuration.
type LocationSettings struct {
	// Debounce is the quiet period before a typed query is geocoded.
	Debounce time.Duration
}

// WeatherSettings holds weather API configuration.
type WeatherSettings struct {
	// GeocodingURL is the geocoding search endpoint.
	GeocodingURL string

	// ForecastURL is the daily forecast endpoint.
	ForecastURL string

	// Timezone is passed to the forecast API ("auto" resolves from coordinates).
	Timezone string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests.
	RequestsPerSecond float64
}

// AppSettings holds all application settings.
type AppSettings struct {
	// PDF holds PDF search settings.
	PDF PDFSettings

	// Location holds location search settings.
	Location LocationSettings

	// Weather holds weather API settings.
	Weather WeatherSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Text search settles after one second of quiet, location search after three.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		PDF: PDFSettings{
			Debounce:        time.Second,
			CaseInsensitive: true,
			Thumbnail:       Size{Width: 40, Height: 4},
		},
		Location: LocationSettings{
			Debounce: 3 * time.Second,
		},
		Weather: WeatherSettings{
			GeocodingURL:      DefaultGeocodingURL,
			ForecastURL:       DefaultForecastURL,
			Timezone:          "auto",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 2,
		},
	}
}

// Validate checks that settings are usable.
func (s AppSettings) Validate() error {
	if s.PDF.Debounce < 0 {
		return fmt.Errorf("%w: pdf debounce must not be negative", ErrInvalidInput)
	}
	if s.Location.Debounce < 0 {
		return fmt.Errorf("%w: location debounce must not be negative", ErrInvalidInput)
	}
	if !s.PDF.Thumbnail.IsValid() {
		return fmt.Errorf("%w: thumbnail size must be positive", ErrInvalidInput)
	}
	if s.Weather.GeocodingURL == "" || s.Weather.ForecastURL == "" {
		return fmt.Errorf("%w: weather endpoints are required", ErrInvalidInput)
	}
	if s.Weather.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests per second must be positive", ErrInvalidInput)
	}
	return nil
}
