package tui

import "errors"

// ErrMissingLocationService is returned when the location search service is not provided.
var ErrMissingLocationService = errors.New("tui: location search service is required")
