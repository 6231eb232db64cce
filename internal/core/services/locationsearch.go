package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driven"
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
)

// Ensure LocationSearchService implements the interface.
var _ driving.LocationSearchService = (*LocationSearchService)(nil)

// LocationSearchConfig configures a LocationSearchService.
type LocationSearchConfig struct {
	Debounce time.Duration

	// Clock defaults to the wall clock.
	Clock driven.Clock
}

// LocationSearchService geocodes place names as the user types
// and fetches the forecast of a chosen location.
type LocationSearchService struct {
	client   driven.WeatherClient
	search   *IncrementalSearch[domain.Location]
	forecast *ForecastTracker

	changes chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewLocationSearchService creates a search session over client.
func NewLocationSearchService(client driven.WeatherClient, config LocationSearchConfig) *LocationSearchService {
	s := &LocationSearchService{
		client:  client,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	s.search = NewIncrementalSearch(IncrementalSearchConfig[domain.Location]{
		Name:     "location",
		Debounce: config.Debounce,
		Lookup:   client.Search,
		Key:      locationKey,
		Clock:    config.Clock,
	})
	s.forecast = NewForecastTracker(s.FetchWeather, s.notify)

	s.wg.Add(1)
	go s.forward()
	return s
}

// QueryChanged records new input text and (re)starts the debounce.
// Clearing the text also clears the displayed forecast.
func (s *LocationSearchService) QueryChanged(text string) {
	s.search.QueryChanged(text)
	if text == "" {
		s.forecast.Clear()
	}
}

// SelectLocation fetches the forecast for a location.
func (s *LocationSearchService) SelectLocation(location domain.Location) {
	s.forecast.Request(location)
}

// Cancel stops any pending or in-flight search, keeping results.
func (s *LocationSearchService) Cancel() {
	s.search.Cancel()
}

// Snapshot returns the current search state.
func (s *LocationSearchService) Snapshot() domain.SearchSnapshot[domain.Location] {
	return s.search.Snapshot()
}

// Forecast returns the current forecast state.
func (s *LocationSearchService) Forecast() domain.ForecastSnapshot {
	return s.forecast.Snapshot()
}

// Changes signals whenever search or forecast state changes.
func (s *LocationSearchService) Changes() <-chan struct{} {
	return s.changes
}

// Search geocodes name once, without debouncing.
func (s *LocationSearchService) Search(ctx context.Context, name string) ([]domain.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	locations, err := s.client.Search(ctx, name)
	if err != nil {
		return nil, err
	}
	return DedupeAdjacent(locations, locationKey), nil
}

// FetchWeather fetches and zips the daily forecast for a location.
func (s *LocationSearchService) FetchWeather(ctx context.Context, location domain.Location) (*domain.Weather, error) {
	forecast, err := s.client.Forecast(ctx, location)
	if err != nil {
		return nil, err
	}
	return &domain.Weather{LocationID: location.ID, Days: forecast.Days()}, nil
}

// Close releases timers and in-flight requests.
func (s *LocationSearchService) Close() {
	s.once.Do(func() {
		close(s.done)
		s.search.Close()
		s.forecast.Close()
		s.wg.Wait()
	})
}

func (s *LocationSearchService) forward() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case <-s.search.Changes():
			s.notify()
		}
	}
}

func (s *LocationSearchService) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func locationKey(l domain.Location) string {
	return strconv.FormatInt(l.ID, 10)
}
