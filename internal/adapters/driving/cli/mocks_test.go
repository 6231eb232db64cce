package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
)

var (
	testBerlin = domain.Location{ID: 2950159, Name: "Berlin", Country: "Germany", Latitude: 52.52437, Longitude: 13.41053}
	testBoston = domain.Location{ID: 4930956, Name: "Boston", Country: "United States", Admin1: "Massachusetts"}
)

// MockLocationService implements driving.LocationSearchService for CLI tests.
type MockLocationService struct {
	SearchFunc       func(ctx context.Context, name string) ([]domain.Location, error)
	FetchWeatherFunc func(ctx context.Context, location domain.Location) (*domain.Weather, error)
}

func (m *MockLocationService) Search(ctx context.Context, name string) ([]domain.Location, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, name)
	}
	return []domain.Location{testBerlin}, nil
}

func (m *MockLocationService) FetchWeather(ctx context.Context, location domain.Location) (*domain.Weather, error) {
	if m.FetchWeatherFunc != nil {
		return m.FetchWeatherFunc(ctx, location)
	}
	return &domain.Weather{
		LocationID: location.ID,
		Days: []domain.WeatherDay{{
			Date:               time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
			TemperatureMin:     6,
			TemperatureMinUnit: "°C",
			TemperatureMax:     14,
			TemperatureMaxUnit: "°C",
		}},
	}, nil
}

func (m *MockLocationService) QueryChanged(string) {}
func (m *MockLocationService) SelectLocation(domain.Location) {}
func (m *MockLocationService) Cancel() {}
func (m *MockLocationService) Close() {}
func (m *MockLocationService) Changes() <-chan struct{} { return nil }
func (m *MockLocationService) Forecast() domain.ForecastSnapshot { return domain.ForecastSnapshot{} }

func (m *MockLocationService) Snapshot() domain.SearchSnapshot[domain.Location] {
	return domain.SearchSnapshot[domain.Location]{}
}

// MockPDFService implements driving.PDFSearchService for CLI tests.
type MockPDFService struct {
	FindFunc func(ctx context.Context, query string) ([]domain.PageMatch, error)
	Pages    []string
	Closed   bool
}

func (m *MockPDFService) Find(ctx context.Context, query string) ([]domain.PageMatch, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, query)
	}
	return []domain.PageMatch{{Page: 2, Snippet: "RWY 25L closed"}}, nil
}

func (m *MockPDFService) PageText(page int) (string, error) {
	if page < 1 || page > len(m.Pages) {
		return "", domain.ErrPageOutOfRange
	}
	return m.Pages[page-1], nil
}

func (m *MockPDFService) QueryChanged(string) {}
func (m *MockPDFService) Select(domain.PageMatch) {}
func (m *MockPDFService) Cancel() {}
func (m *MockPDFService) Changes() <-chan struct{} { return nil }
func (m *MockPDFService) CurrentPage() int { return 1 }
func (m *MockPDFService) GoToPage(int) {}
func (m *MockPDFService) PageCount() int { return len(m.Pages) }
func (m *MockPDFService) Reload(context.Context) error { return nil }
func (m *MockPDFService) Close() { m.Closed = true }

func (m *MockPDFService) Snapshot() domain.SearchSnapshot[domain.PageMatch] {
	return domain.SearchSnapshot[domain.PageMatch]{}
}

// MockSettingsService implements driving.SettingsService for CLI tests.
type MockSettingsService struct {
	Settings domain.AppSettings
	SetFunc  func(key, value string) error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) Set(key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	return nil
}

func (m *MockSettingsService) Save(*domain.AppSettings) error { return nil }
func (m *MockSettingsService) Keys() []string { return []string{"pdf.path", "pdf.debounce"} }
func (m *MockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
func (m *MockSettingsService) Path() string { return "/tmp/briefing/config.toml" }

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	settings  *MockSettingsService
	pdf       *MockPDFService
	locations *MockLocationService
	opened    []driving.PDFOpenOptions
}

// setupTestServices installs mock services and returns a cleanup func
// restoring the previous services and flag values.
func setupTestServices() func() {
	cleanup, _ := setupTestServicesWith()
	return cleanup
}

func setupTestServicesWith() (func(), *testServices) {
	origSettings, origOpener, origLocations := settingsService, pdfOpener, locationService

	ts := &testServices{
		settings:  &MockSettingsService{Settings: domain.DefaultAppSettings()},
		pdf:       &MockPDFService{Pages: []string{"COVER", "NOTAM RWY 25L closed"}},
		locations: &MockLocationService{},
	}
	opener := func(_ context.Context, path string, opts driving.PDFOpenOptions) (driving.PDFSearchService, error) {
		if path == "missing.pdf" {
			return nil, fmt.Errorf("%w: %s", domain.ErrDocumentUnavailable, path)
		}
		ts.opened = append(ts.opened, opts)
		return ts.pdf, nil
	}
	SetServices(ts.settings, opener, ts.locations)

	return func() {
		SetServices(origSettings, origOpener, origLocations)
		pdfFindJSON = false
		pdfFindCaseSensitive = false
		weatherSearchJSON = false
		weatherSearchForecast = false
		tuiPDFPath = ""
		verbose = false
	}, ts
}
