package poppler

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driven"
	"github.com/custodia-labs/briefing/internal/logger"
)

// Ensure Document implements the interface.
var _ driven.DocumentSearcher = (*Document)(nil)

// snippetRadius is the number of bytes of context kept on each side of a match.
const snippetRadius = 30

var whitespace = regexp.MustCompile(`\s+`)

// Document is a PDF whose text has been extracted page by page.
type Document struct {
	path   string
	runner CommandRunner

	mu    sync.RWMutex
	pages []string
}

// Open extracts the text of the PDF at path.
func Open(ctx context.Context, path string) (*Document, error) {
	if err := CheckAvailable(); err != nil {
		return nil, err
	}
	return OpenWithRunner(ctx, path, execRunner{})
}

// OpenWithRunner is Open with a custom command runner.
func OpenWithRunner(ctx context.Context, path string, runner CommandRunner) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrDocumentUnavailable, path)
	}

	d := &Document{path: path, runner: runner}
	if err := d.Reload(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-extracts the text from disk.
func (d *Document) Reload(ctx context.Context) error {
	out, err := d.runner.Run(ctx, ToolName, "-layout", d.path, "-")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDocumentUnavailable, err)
	}
	pages := splitPages(string(out))
	logger.Debug("poppler: extracted %d pages from %s", len(pages), d.path)

	d.mu.Lock()
	d.pages = pages
	d.mu.Unlock()
	return nil
}

// FindText returns every occurrence of query in page order.
func (d *Document) FindText(ctx context.Context, query string, caseInsensitive bool) ([]domain.TextMatch, error) {
	if query == "" {
		return nil, nil
	}
	pattern := regexp.QuoteMeta(query)
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	d.mu.RLock()
	pages := d.pages
	d.mu.RUnlock()

	var matches []domain.TextMatch
	for i, text := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matches = append(matches, domain.TextMatch{
				Page:    i + 1,
				Offset:  loc[0],
				Snippet: snippet(text, loc[0], loc[1]),
			})
		}
	}
	return matches, nil
}

// RenderThumbnail returns the first non-blank lines of a page cropped to size.
func (d *Document) RenderThumbnail(page int, size domain.Size) (string, error) {
	if !size.IsValid() {
		return "", fmt.Errorf("%w: thumbnail size %dx%d", domain.ErrInvalidInput, size.Width, size.Height)
	}
	text, err := d.PageText(page)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, size.Height)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, truncateRunes(line, size.Width))
		if len(lines) == size.Height {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

// PageText returns the full text of a 1-based page.
func (d *Document) PageText(page int) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if page < 1 || page > len(d.pages) {
		return "", fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, page, len(d.pages))
	}
	return d.pages[page-1], nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.pages)
}

// Path returns the location of the document on disk.
func (d *Document) Path() string {
	return d.path
}

// splitPages splits pdftotext output on form feeds.
// pdftotext terminates every page with one, so a trailing empty page is dropped.
func splitPages(text string) []string {
	if text == "" {
		return nil
	}
	pages := strings.Split(text, "\f")
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// snippet returns the single-line context around text[start:end].
func snippet(text string, start, end int) string {
	from := max(start-snippetRadius, 0)
	to := min(end+snippetRadius, len(text))
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}

	s := strings.TrimSpace(whitespace.ReplaceAllString(text[from:to], " "))
	if from > 0 {
		s = "…" + s
	}
	if to < len(text) {
		s += "…"
	}
	return s
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
