// Package mcp provides an MCP (Model Context Protocol) server adapter for briefing.
// It lets AI assistants search PDFs and look up weather forecasts.
package mcp

import "errors"

var (
	// ErrMissingLocationService is returned when the location service is not provided.
	ErrMissingLocationService = errors.New("mcp: location service is required")

	// ErrPDFUnavailable is returned by PDF tools when no opener is configured.
	ErrPDFUnavailable = errors.New("mcp: pdf search is not configured")

	// ErrNoLocation is returned when a place name has no geocoding match.
	ErrNoLocation = errors.New("mcp: no matching location")
)
