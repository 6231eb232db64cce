package services

import (
	"sync"

	"github.com/custodia-labs/briefing/internal/core/ports/driven"
)

// Ensure PageNavigator implements the interface.
var _ driven.PageNavigator = (*PageNavigator)(nil)

// PageNavigator tracks the page on display.
// Pages are 1-based at the API and clamped to the document.
type PageNavigator struct {
	mu         sync.Mutex
	index      int
	pageCount  func() int
	onNavigate func(page int)
}

// NewPageNavigator creates a navigator on the first page.
// pageCount reports the current document length; onNavigate may be nil.
func NewPageNavigator(pageCount func() int, onNavigate func(page int)) *PageNavigator {
	return &PageNavigator{pageCount: pageCount, onNavigate: onNavigate}
}

// GoToPage shows the given 1-based page, clamped to the document.
func (n *PageNavigator) GoToPage(page int) {
	n.mu.Lock()
	idx := page - 1
	if count := n.pageCount(); idx >= count {
		idx = count - 1
	}
	if idx < 0 {
		idx = 0
	}
	n.index = idx
	onNavigate := n.onNavigate
	n.mu.Unlock()

	if onNavigate != nil {
		onNavigate(idx + 1)
	}
}

// CurrentPage returns the 1-based page on display.
func (n *PageNavigator) CurrentPage() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index + 1
}
