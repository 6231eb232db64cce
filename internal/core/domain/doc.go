// Package domain defines the core business entities for briefing.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchSnapshot: The observable state of an incremental search session
//   - LookupError: A failed lookup recorded against a session
//   - TextMatch, PageMatch: Hits produced by PDF text search
//   - Location, Forecast, Weather: Geocoding and forecast data
//   - AppSettings: User configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
