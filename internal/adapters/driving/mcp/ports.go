package mcp

import (
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Locations provides geocoding and forecasts.
	Locations driving.LocationSearchService

	// OpenPDF opens documents for the PDF tools. Optional.
	OpenPDF driving.PDFOpener

	// Settings exposes the configuration resource. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Locations == nil {
		return ErrMissingLocationService
	}
	return nil
}
