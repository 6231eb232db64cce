package driven

import (
	"context"

	"github.com/custodia-labs/briefing/internal/core/domain"
)

// WeatherClient provides geocoding and forecast lookups.
// Backed by the Open-Meteo HTTP APIs.
type WeatherClient interface {
	// Search geocodes a free-text place name.
	// No matches is a success with an empty slice.
	Search(ctx context.Context, name string) ([]domain.Location, error)

	// Forecast fetches the daily temperature forecast for a location.
	Forecast(ctx context.Context, location domain.Location) (*domain.Forecast, error)
}
