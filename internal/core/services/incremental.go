package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driven"
	"github.com/custodia-labs/briefing/internal/logger"
)

// LookupFunc resolves a committed query to results.
// It must return promptly once ctx is cancelled.
type LookupFunc[R any] func(ctx context.Context, query string) ([]R, error)

// IncrementalSearchConfig configures an IncrementalSearch.
type IncrementalSearchConfig[R any] struct {
	// Name labels the session in logs.
	Name string

	// Debounce is the quiet period after the last keystroke before dispatch.
	Debounce time.Duration

	// Lookup performs the search. Required.
	Lookup LookupFunc[R]

	// Key identifies results for de-duplication. When set, a result whose key
	// equals the key of the previously kept result is dropped.
	Key func(R) string

	// OnSelect is called with the chosen result after the session is cleared.
	OnSelect func(R)

	// Clock schedules debounce timers. Defaults to the wall clock.
	Clock driven.Clock
}

// IncrementalSearch turns free-text input into debounced, cancellable lookups
// and merges their outcomes into a single snapshot.
//
// All mutations are serialised by one mutex. Timer and lookup goroutines
// re-enter through it, so outcomes are applied in a single total order.
type IncrementalSearch[R any] struct {
	name      string
	debounce  time.Duration
	lookup    LookupFunc[R]
	key       func(R) string
	onSelect  func(R)
	clock     driven.Clock
	sessionID string

	mu             sync.Mutex
	rawQuery       string
	committedQuery string
	generation     uint64
	inFlight       bool
	results        []R
	lastErr        *domain.LookupError
	revision       uint64
	timer          driven.Timer
	timerSeq       uint64
	cancelLookup   context.CancelFunc
	closed         bool

	base       context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup
	changes    chan struct{}
}

// NewIncrementalSearch creates an idle session.
func NewIncrementalSearch[R any](cfg IncrementalSearchConfig[R]) *IncrementalSearch[R] {
	clock := cfg.Clock
	if clock == nil {
		clock = WallClock()
	}
	lookup := cfg.Lookup
	if lookup == nil {
		lookup = func(context.Context, string) ([]R, error) { return nil, nil }
	}
	name := cfg.Name
	if name == "" {
		name = "search"
	}
	base, cancel := context.WithCancel(context.Background())
	return &IncrementalSearch[R]{
		name:       name,
		debounce:   cfg.Debounce,
		lookup:     lookup,
		key:        cfg.Key,
		onSelect:   cfg.OnSelect,
		clock:      clock,
		sessionID:  uuid.NewString(),
		base:       base,
		baseCancel: cancel,
		changes:    make(chan struct{}, 1),
	}
}

// SessionID returns the identifier of this session.
func (s *IncrementalSearch[R]) SessionID() string {
	return s.sessionID
}

// QueryChanged records new input text.
// Empty text clears the session immediately. Otherwise the debounce
// timer is restarted; nothing is dispatched synchronously.
func (s *IncrementalSearch[R]) QueryChanged(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.rawQuery = text
	s.stopTimerLocked()

	if text == "" {
		s.cancelInFlightLocked(domain.ErrorKindEmpty)
		s.results = nil
		s.lastErr = nil
		s.changedLocked()
		return
	}

	s.timerSeq++
	token := s.timerSeq
	s.timer = s.clock.AfterFunc(s.debounce, func() { s.debounceElapsed(token) })
	s.changedLocked()
}

// debounceElapsed dispatches the raw query if token is still the live timer.
func (s *IncrementalSearch[R]) debounceElapsed(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || token != s.timerSeq || s.timer == nil {
		return
	}
	s.timer = nil
	if s.rawQuery == "" {
		return
	}

	if s.cancelLookup != nil {
		s.cancelLookup()
		s.cancelLookup = nil
	}

	s.committedQuery = s.rawQuery
	s.generation++
	s.inFlight = true
	s.lastErr = nil

	ctx, cancel := context.WithCancel(s.base)
	s.cancelLookup = cancel
	gen, query := s.generation, s.committedQuery
	logger.Debug("%s[%s]: dispatch g=%d query=%q", s.name, s.sessionID, gen, query)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		results, err := s.lookup(ctx, query)
		s.Settle(gen, results, err)
	}()
	s.changedLocked()
}

// Settle applies the outcome of lookup generation gen.
// It returns false when the outcome is stale: a newer lookup was dispatched,
// the session was cleared or cancelled, or the lookup observed cancellation.
func (s *IncrementalSearch[R]) Settle(gen uint64, results []R, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation || !s.inFlight {
		logger.Debug("%s[%s]: stale settlement g=%d (current g=%d)", s.name, s.sessionID, gen, s.generation)
		return false
	}
	if errors.Is(err, context.Canceled) {
		logger.Debug("%s[%s]: g=%d %s", s.name, s.sessionID, gen, domain.ErrorKindCancelled)
		s.inFlight = false
		s.cancelLookup = nil
		s.changedLocked()
		return false
	}

	s.inFlight = false
	s.cancelLookup = nil
	if err != nil {
		logger.Warn("%s[%s]: lookup g=%d failed: %v", s.name, s.sessionID, gen, err)
		s.results = nil
		s.lastErr = &domain.LookupError{
			Kind:       domain.ErrorKindLookupFailed,
			Query:      s.committedQuery,
			Generation: gen,
			Err:        err,
		}
	} else {
		s.results = DedupeAdjacent(results, s.key)
		s.lastErr = nil
		logger.Debug("%s[%s]: g=%d settled with %d results", s.name, s.sessionID, gen, len(s.results))
	}
	s.changedLocked()
	return true
}

// Select clears the query and results, stops pending work and reports r to OnSelect.
// The generation is left unchanged.
func (s *IncrementalSearch[R]) Select(r R) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.stopTimerLocked()
	s.cancelInFlightLocked(domain.ErrorKindCancelled)
	s.rawQuery = ""
	s.results = nil
	s.lastErr = nil
	s.changedLocked()
	onSelect := s.onSelect
	s.mu.Unlock()

	if onSelect != nil {
		onSelect(r)
	}
}

// Cancel stops the pending timer and any in-flight lookup. Results are kept.
func (s *IncrementalSearch[R]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	hadTimer := s.stopTimerLocked()
	if s.cancelInFlightLocked(domain.ErrorKindCancelled) || hadTimer {
		s.changedLocked()
	}
}

// Snapshot returns a copy of the current state.
func (s *IncrementalSearch[R]) Snapshot() domain.SearchSnapshot[R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []R
	if len(s.results) > 0 {
		results = make([]R, len(s.results))
		copy(results, s.results)
	}
	return domain.SearchSnapshot[R]{
		SessionID:      s.sessionID,
		RawQuery:       s.rawQuery,
		CommittedQuery: s.committedQuery,
		Generation:     s.generation,
		InFlight:       s.inFlight,
		Results:        results,
		LastError:      s.lastErr,
		Revision:       s.revision,
	}
}

// Changes returns a channel that receives a value after state changes.
// Signals are coalesced: one receive may stand for several changes.
func (s *IncrementalSearch[R]) Changes() <-chan struct{} {
	return s.changes
}

// Close cancels all pending work and waits for lookup goroutines to return.
// Further calls on the session are ignored.
func (s *IncrementalSearch[R]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopTimerLocked()
	s.inFlight = false
	s.cancelLookup = nil
	s.mu.Unlock()

	s.baseCancel()
	s.wg.Wait()
}

func (s *IncrementalSearch[R]) stopTimerLocked() bool {
	if s.timer == nil {
		return false
	}
	s.timer.Stop()
	s.timer = nil
	// Invalidate a callback that already fired and is waiting on the lock.
	s.timerSeq++
	return true
}

func (s *IncrementalSearch[R]) cancelInFlightLocked(kind domain.ErrorKind) bool {
	if !s.inFlight {
		return false
	}
	if s.cancelLookup != nil {
		s.cancelLookup()
		s.cancelLookup = nil
	}
	s.inFlight = false
	logger.Debug("%s[%s]: g=%d %s", s.name, s.sessionID, s.generation, kind)
	return true
}

func (s *IncrementalSearch[R]) changedLocked() {
	s.revision++
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// DedupeAdjacent drops each result whose key equals the key of the previously
// kept result. The first of a run wins. A nil key keeps every result.
func DedupeAdjacent[R any](results []R, key func(R) string) []R {
	if len(results) == 0 {
		return nil
	}
	out := make([]R, 0, len(results))
	if key == nil {
		return append(out, results...)
	}
	prev := ""
	for i, r := range results {
		k := key(r)
		if i > 0 && k == prev {
			continue
		}
		out = append(out, r)
		prev = k
	}
	return out
}
