package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driven"
)

// fakeClock is a manually advanced driven.Clock.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) driven.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the elapsed fake time.
func (c *fakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves time forward and runs due timers on the calling goroutine.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []func()
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t.f)
		}
	}
	c.mu.Unlock()

	for _, f := range due {
		f()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type lookupReply[R any] struct {
	results []R
	err     error
}

// lookupCall is one invocation of a fakeLookup, blocked until replied to.
type lookupCall[R any] struct {
	query string
	at    time.Duration
	ctx   context.Context
	reply chan lookupReply[R]
}

func (c *lookupCall[R]) succeed(results ...R) {
	c.reply <- lookupReply[R]{results: results}
}

func (c *lookupCall[R]) fail(err error) {
	c.reply <- lookupReply[R]{err: err}
}

// fakeLookup records lookups and blocks each one until the test replies.
type fakeLookup[R any] struct {
	clock *fakeClock
	calls chan *lookupCall[R]

	// ignoreCancel makes calls wait for a reply even after cancellation,
	// like a transport that does not honour its context.
	ignoreCancel bool
}

func newFakeLookup[R any](clock *fakeClock) *fakeLookup[R] {
	return &fakeLookup[R]{clock: clock, calls: make(chan *lookupCall[R], 16)}
}

func (f *fakeLookup[R]) Lookup(ctx context.Context, query string) ([]R, error) {
	call := &lookupCall[R]{
		query: query,
		at:    f.clock.Now(),
		ctx:   ctx,
		reply: make(chan lookupReply[R], 1),
	}
	f.calls <- call
	if f.ignoreCancel {
		r := <-call.reply
		return r.results, r.err
	}
	select {
	case r := <-call.reply:
		return r.results, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeLookup[R]) next(t *testing.T) *lookupCall[R] {
	t.Helper()
	select {
	case call := <-f.calls:
		return call
	case <-time.After(time.Second):
		require.FailNow(t, "expected a lookup to be dispatched")
		return nil
	}
}

func (f *fakeLookup[R]) expectNone(t *testing.T) {
	t.Helper()
	select {
	case call := <-f.calls:
		require.FailNow(t, "unexpected lookup", "query %q", call.query)
	case <-time.After(20 * time.Millisecond):
	}
}

// MockDocumentSearcher implements driven.DocumentSearcher for testing.
type MockDocumentSearcher struct {
	FindTextFunc        func(ctx context.Context, query string, caseInsensitive bool) ([]domain.TextMatch, error)
	RenderThumbnailFunc func(page int, size domain.Size) (string, error)
	ReloadFunc          func(ctx context.Context) error
	Pages               []string
	FilePath            string

	mu      sync.Mutex
	reloads int
}

func (m *MockDocumentSearcher) FindText(ctx context.Context, query string, caseInsensitive bool) ([]domain.TextMatch, error) {
	if m.FindTextFunc != nil {
		return m.FindTextFunc(ctx, query, caseInsensitive)
	}
	return nil, nil
}

func (m *MockDocumentSearcher) RenderThumbnail(page int, size domain.Size) (string, error) {
	if m.RenderThumbnailFunc != nil {
		return m.RenderThumbnailFunc(page, size)
	}
	return fmt.Sprintf("thumb-%d", page), nil
}

func (m *MockDocumentSearcher) PageText(page int) (string, error) {
	if page < 1 || page > len(m.Pages) {
		return "", domain.ErrPageOutOfRange
	}
	return m.Pages[page-1], nil
}

func (m *MockDocumentSearcher) PageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Pages)
}

func (m *MockDocumentSearcher) Path() string {
	return m.FilePath
}

func (m *MockDocumentSearcher) Reload(ctx context.Context) error {
	m.mu.Lock()
	m.reloads++
	m.mu.Unlock()
	if m.ReloadFunc != nil {
		return m.ReloadFunc(ctx)
	}
	return nil
}

func (m *MockDocumentSearcher) Reloads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reloads
}

// MockWeatherClient implements driven.WeatherClient for testing.
type MockWeatherClient struct {
	SearchFunc   func(ctx context.Context, name string) ([]domain.Location, error)
	ForecastFunc func(ctx context.Context, location domain.Location) (*domain.Forecast, error)
}

func (m *MockWeatherClient) Search(ctx context.Context, name string) ([]domain.Location, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockWeatherClient) Forecast(ctx context.Context, location domain.Location) (*domain.Forecast, error) {
	if m.ForecastFunc != nil {
		return m.ForecastFunc(ctx, location)
	}
	return &domain.Forecast{}, nil
}

// MockFileWatcher implements driven.FileWatcher for testing.
type MockFileWatcher struct {
	Events   chan struct{}
	WatchErr error
	Watched  string
}

func (m *MockFileWatcher) Watch(_ context.Context, path string) (<-chan struct{}, error) {
	if m.WatchErr != nil {
		return nil, m.WatchErr
	}
	m.Watched = path
	return m.Events, nil
}
