// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// IncrementalSearch is the shared engine behind both search surfaces:
// it debounces input, dispatches cancellable lookups tagged with a
// generation and discards outcomes that no longer match.
package services
