package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driven"
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPDFPath            = "pdf.path"
	KeyPDFDebounce        = "pdf.debounce"
	KeyPDFCaseInsensitive = "pdf.case_insensitive"
	KeyPDFThumbWidth      = "pdf.thumbnail_width"
	KeyPDFThumbHeight     = "pdf.thumbnail_height"
	KeyLocationDebounce   = "location.debounce"
	KeyGeocodingURL       = "weather.geocoding_url"
	KeyForecastURL        = "weather.forecast_url"
	KeyTimezone           = "weather.timezone"
	KeyWeatherTimeout     = "weather.timeout"
	KeyRequestsPerSecond  = "weather.requests_per_second"
)

var settingKeys = []string{
	KeyPDFPath,
	KeyPDFDebounce,
	KeyPDFCaseInsensitive,
	KeyPDFThumbWidth,
	KeyPDFThumbHeight,
	KeyLocationDebounce,
	KeyGeocodingURL,
	KeyForecastURL,
	KeyTimezone,
	KeyWeatherTimeout,
	KeyRequestsPerSecond,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling unset keys with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		PDF: domain.PDFSettings{
			Path:            s.configStore.GetString(KeyPDFPath),
			Debounce:        s.getDuration(KeyPDFDebounce, defaults.PDF.Debounce),
			CaseInsensitive: s.getBool(KeyPDFCaseInsensitive, defaults.PDF.CaseInsensitive),
			Thumbnail: domain.Size{
				Width:  s.getInt(KeyPDFThumbWidth, defaults.PDF.Thumbnail.Width),
				Height: s.getInt(KeyPDFThumbHeight, defaults.PDF.Thumbnail.Height),
			},
		},
		Location: domain.LocationSettings{
			Debounce: s.getDuration(KeyLocationDebounce, defaults.Location.Debounce),
		},
		Weather: domain.WeatherSettings{
			GeocodingURL:      s.getString(KeyGeocodingURL, defaults.Weather.GeocodingURL),
			ForecastURL:       s.getString(KeyForecastURL, defaults.Weather.ForecastURL),
			Timezone:          s.getString(KeyTimezone, defaults.Weather.Timezone),
			Timeout:           s.getDuration(KeyWeatherTimeout, defaults.Weather.Timeout),
			RequestsPerSecond: s.getFloat(KeyRequestsPerSecond, defaults.Weather.RequestsPerSecond),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyPDFPath, settings.PDF.Path},
		{KeyPDFDebounce, settings.PDF.Debounce.String()},
		{KeyPDFCaseInsensitive, settings.PDF.CaseInsensitive},
		{KeyPDFThumbWidth, settings.PDF.Thumbnail.Width},
		{KeyPDFThumbHeight, settings.PDF.Thumbnail.Height},
		{KeyLocationDebounce, settings.Location.Debounce.String()},
		{KeyGeocodingURL, settings.Weather.GeocodingURL},
		{KeyForecastURL, settings.Weather.ForecastURL},
		{KeyTimezone, settings.Weather.Timezone},
		{KeyWeatherTimeout, settings.Weather.Timeout.String()},
		{KeyRequestsPerSecond, settings.Weather.RequestsPerSecond},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value for key, validates the result and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyPDFPath:
		settings.PDF.Path = value
	case KeyPDFDebounce:
		settings.PDF.Debounce, err = parseDuration(key, value)
	case KeyPDFCaseInsensitive:
		settings.PDF.CaseInsensitive, err = parseBool(key, value)
	case KeyPDFThumbWidth:
		settings.PDF.Thumbnail.Width, err = parseInt(key, value)
	case KeyPDFThumbHeight:
		settings.PDF.Thumbnail.Height, err = parseInt(key, value)
	case KeyLocationDebounce:
		settings.Location.Debounce, err = parseDuration(key, value)
	case KeyGeocodingURL:
		settings.Weather.GeocodingURL = value
	case KeyForecastURL:
		settings.Weather.ForecastURL = value
	case KeyTimezone:
		settings.Weather.Timezone = value
	case KeyWeatherTimeout:
		settings.Weather.Timeout, err = parseDuration(key, value)
	case KeyRequestsPerSecond:
		settings.Weather.RequestsPerSecond, err = strconv.ParseFloat(value, 64)
		if err != nil {
			err = fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Keys returns all supported setting keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns where settings are stored.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetDuration(key)
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a duration such as 1s or 500ms", domain.ErrInvalidInput, key)
	}
	return d, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
	}
	return b, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	return n, nil
}
