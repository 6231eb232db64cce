// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentSearcher: Text search and page access over a loaded document
//   - WeatherClient: Geocoding and daily forecast lookups
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Clock: Timer scheduling. Defaults to the wall clock.
//   - FileWatcher: Change notifications for the open document. Without it,
//     documents are only reloaded on request.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
