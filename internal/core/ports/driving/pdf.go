package driving

import (
	"context"

	"github.com/custodia-labs/briefing/internal/core/domain"
)

// PDFSearchService provides incremental text search over an open document.
type PDFSearchService interface {
	// QueryChanged records new input text and (re)starts the debounce.
	QueryChanged(text string)

	// Select navigates to the page of a hit and clears the search.
	Select(match domain.PageMatch)

	// Cancel stops any pending or in-flight search, keeping results.
	Cancel()

	// Snapshot returns the current search state.
	Snapshot() domain.SearchSnapshot[domain.PageMatch]

	// Changes signals whenever search or navigation state changes.
	Changes() <-chan struct{}

	// Find performs a one-off search without debouncing.
	Find(ctx context.Context, query string) ([]domain.PageMatch, error)

	// CurrentPage returns the 1-based page on display.
	CurrentPage() int

	// GoToPage shows the given 1-based page.
	GoToPage(page int)

	// PageText returns the text of a 1-based page.
	PageText(page int) (string, error)

	// PageCount returns the number of pages in the document.
	PageCount() int

	// Reload re-reads the document and stops the current search.
	Reload(ctx context.Context) error

	// Close releases timers and in-flight lookups.
	Close()
}

// PDFOpenOptions tunes how a document is opened.
type PDFOpenOptions struct {
	// Watch reloads the document when its file changes on disk.
	Watch bool

	// CaseSensitive overrides the configured case-insensitive matching.
	CaseSensitive bool
}

// PDFOpener opens a search session over the PDF at path.
// The caller owns the returned service and must Close it.
type PDFOpener func(ctx context.Context, path string, opts PDFOpenOptions) (PDFSearchService, error)

// LocationSearchService provides incremental geocoding search with forecasts.
type LocationSearchService interface {
	// QueryChanged records new input text and (re)starts the debounce.
	QueryChanged(text string)

	// SelectLocation fetches the forecast for a location.
	SelectLocation(location domain.Location)

	// Cancel stops any pending or in-flight search, keeping results.
	Cancel()

	// Snapshot returns the current search state.
	Snapshot() domain.SearchSnapshot[domain.Location]

	// Forecast returns the current forecast state.
	Forecast() domain.ForecastSnapshot

	// Changes signals whenever search or forecast state changes.
	Changes() <-chan struct{}

	// Search performs a one-off geocoding search without debouncing.
	Search(ctx context.Context, name string) ([]domain.Location, error)

	// FetchWeather performs a one-off forecast request.
	FetchWeather(ctx context.Context, location domain.Location) (*domain.Weather, error)

	// Close releases timers and in-flight requests.
	Close()
}
