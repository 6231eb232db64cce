package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/logger"
)

// ForecastFunc fetches the weather for a location.
type ForecastFunc func(ctx context.Context, location domain.Location) (*domain.Weather, error)

// ForecastTracker holds the forecast shown for the selected location.
// Outcomes are keyed by location ID: a result is applied only while
// its location is still the one in flight.
type ForecastTracker struct {
	fetch    ForecastFunc
	onChange func()

	mu       sync.Mutex
	inFlight *domain.Location
	weather  *domain.Weather
	lastErr  error
	cancel   context.CancelFunc
	closed   bool

	base       context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup
}

// NewForecastTracker creates an idle tracker. onChange may be nil.
func NewForecastTracker(fetch ForecastFunc, onChange func()) *ForecastTracker {
	base, cancel := context.WithCancel(context.Background())
	return &ForecastTracker{
		fetch:      fetch,
		onChange:   onChange,
		base:       base,
		baseCancel: cancel,
	}
}

// Request starts fetching the forecast for location, cancelling any previous request.
func (t *ForecastTracker) Request(location domain.Location) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(t.base)
	t.cancel = cancel
	t.inFlight = &location
	t.lastErr = nil
	logger.Debug("forecast: request %d (%s)", location.ID, location.Name)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer cancel()
		weather, err := t.fetch(ctx, location)
		t.Settle(location.ID, weather, err)
	}()
	t.mu.Unlock()
	t.changed()
}

// Settle applies a forecast outcome for locationID.
// It returns false when that location is no longer in flight.
func (t *ForecastTracker) Settle(locationID int64, weather *domain.Weather, err error) bool {
	t.mu.Lock()
	if t.closed || t.inFlight == nil || t.inFlight.ID != locationID || errors.Is(err, context.Canceled) {
		t.mu.Unlock()
		logger.Debug("forecast: stale result for %d", locationID)
		return false
	}
	t.inFlight = nil
	t.cancel = nil
	if err != nil {
		logger.Warn("forecast for %d failed: %v", locationID, err)
		t.weather = nil
		t.lastErr = err
	} else {
		t.weather = weather
		t.lastErr = nil
	}
	t.mu.Unlock()
	t.changed()
	return true
}

// Clear drops the displayed forecast and cancels a pending request.
func (t *ForecastTracker) Clear() {
	t.mu.Lock()
	if t.closed || (t.inFlight == nil && t.weather == nil && t.lastErr == nil) {
		t.mu.Unlock()
		return
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.inFlight = nil
	t.weather = nil
	t.lastErr = nil
	t.mu.Unlock()
	t.changed()
}

// Snapshot returns a copy of the forecast state.
func (t *ForecastTracker) Snapshot() domain.ForecastSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := domain.ForecastSnapshot{LastError: t.lastErr}
	if t.inFlight != nil {
		loc := *t.inFlight
		snap.InFlight = &loc
	}
	if t.weather != nil {
		w := *t.weather
		w.Days = append([]domain.WeatherDay(nil), t.weather.Days...)
		snap.Weather = &w
	}
	return snap
}

// Close cancels the pending request and waits for it to return.
func (t *ForecastTracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.inFlight = nil
	t.mu.Unlock()

	t.baseCancel()
	t.wg.Wait()
}

func (t *ForecastTracker) changed() {
	if t.onChange != nil {
		t.onChange()
	}
}
