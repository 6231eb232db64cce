package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLookupFailed indicates an asynchronous lookup failed in transport or decoding.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrDocumentUnavailable indicates no document is loaded for text search.
	ErrDocumentUnavailable = errors.New("document unavailable")

	// ErrPageOutOfRange indicates a page number outside the loaded document.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrUnexpectedStatus indicates a remote API answered with a non-success status.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrSessionClosed indicates a search session was used after Close.
	ErrSessionClosed = errors.New("search session closed")
)
