package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
)

// FindInPDFInput is the input schema for the find_in_pdf tool.
type FindInPDFInput struct {
	Path          string `json:"path" jsonschema:"absolute path of the PDF file"`
	Query         string `json:"query" jsonschema:"text to find"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"match letter case exactly"`
}

// FindInPDFOutput is the output schema for the find_in_pdf tool.
type FindInPDFOutput struct {
	Path      string            `json:"path"`
	PageCount int               `json:"page_count"`
	Matches   []PageMatchOutput `json:"matches"`
	Count     int               `json:"count"`
}

// PageMatchOutput is one page containing the query.
type PageMatchOutput struct {
	Page    int    `json:"page"`
	Snippet string `json:"snippet"`
}

// ReadPDFPageInput is the input schema for the read_pdf_page tool.
type ReadPDFPageInput struct {
	Path string `json:"path" jsonschema:"absolute path of the PDF file"`
	Page int    `json:"page" jsonschema:"1-based page number"`
}

// ReadPDFPageOutput is the output schema for the read_pdf_page tool.
type ReadPDFPageOutput struct {
	Page      int    `json:"page"`
	PageCount int    `json:"page_count"`
	Text      string `json:"text"`
}

// SearchLocationsInput is the input schema for the search_locations tool.
type SearchLocationsInput struct {
	Name string `json:"name" jsonschema:"place name to geocode"`
}

// SearchLocationsOutput is the output schema for the search_locations tool.
type SearchLocationsOutput struct {
	Locations []domain.Location `json:"locations"`
	Count     int               `json:"count"`
}

// GetForecastInput is the input schema for the get_forecast tool.
type GetForecastInput struct {
	Name string `json:"name" jsonschema:"place name to geocode"`
	ID   int64  `json:"id,omitempty" jsonschema:"location id from search_locations to pick among matches"`
}

// GetForecastOutput is the output schema for the get_forecast tool.
type GetForecastOutput struct {
	Location domain.Location     `json:"location"`
	Days     []domain.WeatherDay `json:"days"`
	Summary  []string            `json:"summary"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_in_pdf",
		Description: "Find the pages of a PDF that contain some text",
	}, s.handleFindInPDF)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_pdf_page",
		Description: "Read the text of one page of a PDF",
	}, s.handleReadPDFPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_locations",
		Description: "Geocode a place name into candidate locations",
	}, s.handleSearchLocations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_forecast",
		Description: "Get the daily temperature forecast for a place",
	}, s.handleGetForecast)
}

// handleFindInPDF handles the find_in_pdf tool invocation.
func (s *Server) handleFindInPDF(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindInPDFInput,
) (*mcp.CallToolResult, FindInPDFOutput, error) {
	doc, err := s.openPDF(ctx, input.Path, driving.PDFOpenOptions{CaseSensitive: input.CaseSensitive})
	if err != nil {
		return nil, FindInPDFOutput{}, err
	}
	defer doc.Close()

	matches, err := doc.Find(ctx, input.Query)
	if err != nil {
		return nil, FindInPDFOutput{}, err
	}

	output := FindInPDFOutput{
		Path:      input.Path,
		PageCount: doc.PageCount(),
		Matches:   make([]PageMatchOutput, len(matches)),
		Count:     len(matches),
	}
	for i, m := range matches {
		output.Matches[i] = PageMatchOutput{Page: m.Page, Snippet: m.Snippet}
	}

	return nil, output, nil
}

// handleReadPDFPage handles the read_pdf_page tool invocation.
func (s *Server) handleReadPDFPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadPDFPageInput,
) (*mcp.CallToolResult, ReadPDFPageOutput, error) {
	doc, err := s.openPDF(ctx, input.Path, driving.PDFOpenOptions{})
	if err != nil {
		return nil, ReadPDFPageOutput{}, err
	}
	defer doc.Close()

	text, err := doc.PageText(input.Page)
	if err != nil {
		return nil, ReadPDFPageOutput{}, err
	}

	return nil, ReadPDFPageOutput{Page: input.Page, PageCount: doc.PageCount(), Text: text}, nil
}

// handleSearchLocations handles the search_locations tool invocation.
func (s *Server) handleSearchLocations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchLocationsInput,
) (*mcp.CallToolResult, SearchLocationsOutput, error) {
	locations, err := s.ports.Locations.Search(ctx, input.Name)
	if err != nil {
		return nil, SearchLocationsOutput{}, err
	}

	return nil, SearchLocationsOutput{Locations: locations, Count: len(locations)}, nil
}

// handleGetForecast handles the get_forecast tool invocation.
func (s *Server) handleGetForecast(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetForecastInput,
) (*mcp.CallToolResult, GetForecastOutput, error) {
	location, err := s.resolveLocation(ctx, input.Name, input.ID)
	if err != nil {
		return nil, GetForecastOutput{}, err
	}

	weather, err := s.ports.Locations.FetchWeather(ctx, location)
	if err != nil {
		return nil, GetForecastOutput{}, err
	}

	return nil, GetForecastOutput{
		Location: location,
		Days:     weather.Days,
		Summary:  weather.Lines(),
	}, nil
}

// resolveLocation geocodes name and picks the match with id, or the first match.
func (s *Server) resolveLocation(ctx context.Context, name string, id int64) (domain.Location, error) {
	locations, err := s.ports.Locations.Search(ctx, name)
	if err != nil {
		return domain.Location{}, err
	}
	for _, loc := range locations {
		if id == 0 || loc.ID == id {
			return loc, nil
		}
	}
	return domain.Location{}, fmt.Errorf("%w: %q", ErrNoLocation, name)
}

func (s *Server) openPDF(ctx context.Context, path string, opts driving.PDFOpenOptions) (driving.PDFSearchService, error) {
	if s.ports.OpenPDF == nil {
		return nil, ErrPDFUnavailable
	}
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}
	return s.ports.OpenPDF(ctx, path, opts)
}
