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
	"github.com/custodia-labs/briefing/internal/logger"
)

// Ensure PDFSearchService implements the interface.
var _ driving.PDFSearchService = (*PDFSearchService)(nil)

// PDFSearchConfig configures a PDFSearchService.
type PDFSearchConfig struct {
	Debounce        time.Duration
	CaseInsensitive bool
	Thumbnail       domain.Size

	// Clock defaults to the wall clock.
	Clock driven.Clock
}

// PDFSearchConfigFrom builds a config from application settings.
func PDFSearchConfigFrom(s domain.PDFSettings) PDFSearchConfig {
	return PDFSearchConfig{
		Debounce:        s.Debounce,
		CaseInsensitive: s.CaseInsensitive,
		Thumbnail:       s.Thumbnail,
	}
}

// PDFSearchService searches an open document as the user types
// and jumps to the page of the chosen hit.
type PDFSearchService struct {
	doc    driven.DocumentSearcher
	nav    driven.PageNavigator
	config PDFSearchConfig
	search *IncrementalSearch[domain.PageMatch]

	changes chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewPDFSearchService creates a search session over doc.
// A nil nav gets an in-process PageNavigator.
func NewPDFSearchService(doc driven.DocumentSearcher, nav driven.PageNavigator, config PDFSearchConfig) *PDFSearchService {
	if nav == nil {
		nav = NewPageNavigator(doc.PageCount, nil)
	}
	s := &PDFSearchService{
		doc:     doc,
		nav:     nav,
		config:  config,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	s.search = NewIncrementalSearch(IncrementalSearchConfig[domain.PageMatch]{
		Name:     "pdf",
		Debounce: config.Debounce,
		Lookup:   s.lookup,
		Key:      pageKey,
		OnSelect: func(m domain.PageMatch) { s.GoToPage(m.Page) },
		Clock:    config.Clock,
	})

	s.wg.Add(1)
	go s.forward()
	return s
}

// QueryChanged records new input text and (re)starts the debounce.
func (s *PDFSearchService) QueryChanged(text string) {
	s.search.QueryChanged(text)
}

// Select navigates to the page of a hit and clears the search.
func (s *PDFSearchService) Select(match domain.PageMatch) {
	s.search.Select(match)
}

// Cancel stops any pending or in-flight search, keeping results.
func (s *PDFSearchService) Cancel() {
	s.search.Cancel()
}

// Snapshot returns the current search state.
func (s *PDFSearchService) Snapshot() domain.SearchSnapshot[domain.PageMatch] {
	return s.search.Snapshot()
}

// Changes signals whenever search or navigation state changes.
func (s *PDFSearchService) Changes() <-chan struct{} {
	return s.changes
}

// Find searches the document once, without debouncing.
func (s *PDFSearchService) Find(ctx context.Context, query string) ([]domain.PageMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	matches, err := s.lookup(ctx, query)
	if err != nil {
		return nil, err
	}
	return DedupeAdjacent(matches, pageKey), nil
}

// CurrentPage returns the 1-based page on display.
func (s *PDFSearchService) CurrentPage() int {
	return s.nav.CurrentPage()
}

// GoToPage shows the given 1-based page.
func (s *PDFSearchService) GoToPage(page int) {
	s.nav.GoToPage(page)
	s.notify()
}

// PageText returns the text of a 1-based page.
func (s *PDFSearchService) PageText(page int) (string, error) {
	return s.doc.PageText(page)
}

// PageCount returns the number of pages in the document.
func (s *PDFSearchService) PageCount() int {
	return s.doc.PageCount()
}

// Reload re-reads the document, clears the search and keeps the
// current page when it still exists.
func (s *PDFSearchService) Reload(ctx context.Context) error {
	s.search.QueryChanged("")
	if err := s.doc.Reload(ctx); err != nil {
		return fmt.Errorf("reload %s: %w", s.doc.Path(), err)
	}
	logger.Info("reloaded %s (%d pages)", s.doc.Path(), s.doc.PageCount())
	s.GoToPage(s.nav.CurrentPage())
	return nil
}

// Watch reloads the document whenever its file changes, until ctx is done.
func (s *PDFSearchService) Watch(ctx context.Context, watcher driven.FileWatcher) error {
	events, err := watcher.Watch(ctx, s.doc.Path())
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.doc.Path(), err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.done:
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				if err := s.Reload(ctx); err != nil {
					logger.Warn("auto reload: %v", err)
				}
			}
		}
	}()
	return nil
}

// Close releases timers and in-flight lookups.
func (s *PDFSearchService) Close() {
	s.once.Do(func() {
		close(s.done)
		s.search.Close()
		s.wg.Wait()
	})
}

// lookup finds the query and renders one thumbnail per page hit.
func (s *PDFSearchService) lookup(ctx context.Context, query string) ([]domain.PageMatch, error) {
	matches, err := s.doc.FindText(ctx, query, s.config.CaseInsensitive)
	if err != nil {
		return nil, err
	}

	thumbs := make(map[int]string)
	results := make([]domain.PageMatch, 0, len(matches))
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		thumb, ok := thumbs[m.Page]
		if !ok && s.config.Thumbnail.IsValid() {
			thumb, err = s.doc.RenderThumbnail(m.Page, s.config.Thumbnail)
			if err != nil {
				logger.Debug("thumbnail for page %d: %v", m.Page, err)
			}
			thumbs[m.Page] = thumb
		}
		results = append(results, domain.PageMatch{Page: m.Page, Snippet: m.Snippet, Thumbnail: thumb})
	}
	return results, nil
}

// forward relays controller changes to the service channel.
func (s *PDFSearchService) forward() {
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

func (s *PDFSearchService) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func pageKey(m domain.PageMatch) string {
	return strconv.Itoa(m.Page)
}
