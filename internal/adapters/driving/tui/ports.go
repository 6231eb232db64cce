// Package tui provides an interactive terminal user interface for briefing.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// PDF searches the open document. Nil when no document is open.
	PDF driving.PDFSearchService

	// DocumentName labels the open document in the menu.
	DocumentName string

	// Locations geocodes places and fetches forecasts.
	Locations driving.LocationSearchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Locations == nil {
		return ErrMissingLocationService
	}
	return nil
}
