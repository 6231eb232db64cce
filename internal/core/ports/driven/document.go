package driven

import (
	"context"

	"github.com/custodia-labs/briefing/internal/core/domain"
)

// DocumentSearcher provides text search over a paginated document.
// Backed by poppler's pdftotext for PDF files.
type DocumentSearcher interface {
	// FindText returns every occurrence of query in page order.
	// A page containing the query several times yields several matches.
	FindText(ctx context.Context, query string, caseInsensitive bool) ([]domain.TextMatch, error)

	// RenderThumbnail returns a text preview of a 1-based page cropped to size.
	RenderThumbnail(page int, size domain.Size) (string, error)

	// PageText returns the full text of a 1-based page.
	PageText(page int) (string, error)

	// PageCount returns the number of pages.
	PageCount() int

	// Path returns the location of the document on disk.
	Path() string

	// Reload re-reads the document from disk.
	Reload(ctx context.Context) error
}

// PageNavigator moves the document view to a page.
type PageNavigator interface {
	// GoToPage shows the given 1-based page.
	GoToPage(page int)

	// CurrentPage returns the 1-based page on display.
	CurrentPage() int
}

// FileWatcher reports changes to a file.
type FileWatcher interface {
	// Watch emits a value each time the file at path is written or replaced.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}
