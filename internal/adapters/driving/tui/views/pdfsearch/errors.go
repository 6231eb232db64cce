package pdfsearch

import "errors"

// Error definitions for the PDF search view.
var (
	// ErrNoDocument indicates the TUI was started without a PDF.
	ErrNoDocument = errors.New("no PDF open; start with --pdf FILE or set pdf.path")
)
