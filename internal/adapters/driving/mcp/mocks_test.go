package mcp

import (
	"context"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
)

// mockLocationService is a mock implementation of driving.LocationSearchService.
type mockLocationService struct {
	locations  []domain.Location
	weather    *domain.Weather
	err        error
	weatherErr error
	fetchedFor []int64
}

func (m *mockLocationService) QueryChanged(string) {}
func (m *mockLocationService) SelectLocation(domain.Location) {}
func (m *mockLocationService) Cancel() {}
func (m *mockLocationService) Close() {}
func (m *mockLocationService) Changes() <-chan struct{} { return nil }
func (m *mockLocationService) Forecast() domain.ForecastSnapshot { return domain.ForecastSnapshot{} }

func (m *mockLocationService) Snapshot() domain.SearchSnapshot[domain.Location] {
	return domain.SearchSnapshot[domain.Location]{}
}

func (m *mockLocationService) Search(_ context.Context, _ string) ([]domain.Location, error) {
	return m.locations, m.err
}

func (m *mockLocationService) FetchWeather(_ context.Context, loc domain.Location) (*domain.Weather, error) {
	m.fetchedFor = append(m.fetchedFor, loc.ID)
	if m.weatherErr != nil {
		return nil, m.weatherErr
	}
	if m.weather != nil {
		return m.weather, nil
	}
	return &domain.Weather{LocationID: loc.ID}, nil
}

// mockPDFService is a mock implementation of driving.PDFSearchService.
type mockPDFService struct {
	matches []domain.PageMatch
	pages   []string
	err     error
	closed  bool
}

func (m *mockPDFService) QueryChanged(string) {}
func (m *mockPDFService) Select(domain.PageMatch) {}
func (m *mockPDFService) Cancel() {}
func (m *mockPDFService) Changes() <-chan struct{} { return nil }
func (m *mockPDFService) CurrentPage() int { return 1 }
func (m *mockPDFService) GoToPage(int) {}
func (m *mockPDFService) PageCount() int { return len(m.pages) }
func (m *mockPDFService) Close() { m.closed = true }

func (m *mockPDFService) Reload(context.Context) error { return nil }

func (m *mockPDFService) Snapshot() domain.SearchSnapshot[domain.PageMatch] {
	return domain.SearchSnapshot[domain.PageMatch]{}
}

func (m *mockPDFService) Find(_ context.Context, _ string) ([]domain.PageMatch, error) {
	return m.matches, m.err
}

func (m *mockPDFService) PageText(page int) (string, error) {
	if page < 1 || page > len(m.pages) {
		return "", domain.ErrPageOutOfRange
	}
	return m.pages[page-1], nil
}

// opener returns a PDFOpener handing out doc and recording the options used.
func opener(doc *mockPDFService, err error, opts *driving.PDFOpenOptions) driving.PDFOpener {
	return func(_ context.Context, _ string, o driving.PDFOpenOptions) (driving.PDFSearchService, error) {
		if opts != nil {
			*opts = o
		}
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) { return m.settings, m.err }
func (m *mockSettingsService) Save(*domain.AppSettings) error { return nil }
func (m *mockSettingsService) Set(string, string) error { return nil }
func (m *mockSettingsService) Keys() []string { return nil }
func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
func (m *mockSettingsService) Path() string { return "/tmp/config.toml" }
