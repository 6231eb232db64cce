package domain

import "fmt"

// ErrorKind classifies the outcome of a lookup that did not produce results.
type ErrorKind string

// Error kinds. Only ErrorKindLookupFailed is ever surfaced in a snapshot;
// cancellation and clearing are state resets, not errors.
const (
	// ErrorKindLookupFailed is a transport or decoding failure from the lookup.
	ErrorKindLookupFailed ErrorKind = "lookup_failed"

	// ErrorKindCancelled marks a lookup superseded by a newer query or a cancel.
	ErrorKindCancelled ErrorKind = "cancelled"

	// ErrorKindEmpty marks a query that became empty.
	ErrorKindEmpty ErrorKind = "empty"
)

// String returns the string representation.
func (k ErrorKind) String() string {
	return string(k)
}

// LookupError records why the last dispatched lookup produced no results.
type LookupError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Query is the committed query that failed.
	Query string

	// Generation is the dispatch the failure belongs to.
	Generation uint64

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *LookupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %q", e.Kind, e.Query)
	}
	return fmt.Sprintf("%s: %q: %v", e.Kind, e.Query, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is reports ErrLookupFailed for failed lookups so callers can match on the sentinel.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookupFailed && e.Kind == ErrorKindLookupFailed
}

// SearchSnapshot is a point-in-time copy of an incremental search session.
type SearchSnapshot[R any] struct {
	// SessionID identifies the session for the lifetime of its surface.
	SessionID string

	// RawQuery is the latest text entered by the user.
	RawQuery string

	// CommittedQuery is the text actually sent to the lookup.
	CommittedQuery string

	// Generation counts dispatched lookups. It never decreases.
	Generation uint64

	// InFlight is true between dispatch and settlement or cancellation.
	InFlight bool

	// Results is the last committed, non-stale result set.
	Results []R

	// LastError is set when the last settled lookup failed.
	LastError *LookupError

	// Revision increases on every state change so observers can
	// discard snapshots that arrive out of order.
	Revision uint64
}

// HasError reports whether the last lookup failed.
func (s SearchSnapshot[R]) HasError() bool {
	return s.LastError != nil
}

// IsEmpty reports whether there are no results to present.
func (s SearchSnapshot[R]) IsEmpty() bool {
	return len(s.Results) == 0
}
