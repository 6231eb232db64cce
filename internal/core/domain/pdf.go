package domain

// TextMatch is a single occurrence of a query in a document.
// A page containing the query several times yields several matches.
type TextMatch struct {
	// Page is the 1-based page number.
	Page int

	// Offset is the byte offset of the match within the page text.
	Offset int

	// Snippet is the text surrounding the match on a single line.
	Snippet string
}

// PageMatch is a de-duplicated search hit presented to the user.
type PageMatch struct {
	// Page is the 1-based page number.
	Page int

	// Snippet is the context of the first match on the page.
	Snippet string

	// Thumbnail is a small text rendering of the page.
	Thumbnail string
}

// Size is a thumbnail size in terminal cells.
type Size struct {
	Width  int
	Height int
}

// IsValid returns true if both dimensions are positive.
func (s Size) IsValid() bool {
	return s.Width > 0 && s.Height > 0
}
