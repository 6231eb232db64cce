package locationsearch

import "errors"

// Error definitions for the location search view.
var (
	// ErrNoLocationService indicates that no location service was provided.
	ErrNoLocationService = errors.New("location service is required")
)
