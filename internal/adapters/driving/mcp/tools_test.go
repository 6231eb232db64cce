package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
)

var (
	berlin   = domain.Location{ID: 2950159, Name: "Berlin", Country: "Germany"}
	berlinNH = domain.Location{ID: 5083330, Name: "Berlin", Country: "United States", Admin1: "New Hampshire"}
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Locations == nil {
		ports.Locations = &mockLocationService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleFindInPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("returns page matches", func(t *testing.T) {
		doc := &mockPDFService{
			pages:   []string{"a", "b", "c"},
			matches: []domain.PageMatch{{Page: 1, Snippet: "runway"}, {Page: 3, Snippet: "Runway 27"}},
		}
		var opts driving.PDFOpenOptions
		server := newTestServer(t, &Ports{OpenPDF: opener(doc, nil, &opts)})

		_, output, err := server.handleFindInPDF(ctx, nil, FindInPDFInput{Path: "/b.pdf", Query: "runway", CaseSensitive: true})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, 3, output.PageCount)
		assert.Equal(t, PageMatchOutput{Page: 3, Snippet: "Runway 27"}, output.Matches[1])
		assert.True(t, opts.CaseSensitive)
		assert.False(t, opts.Watch)
		assert.True(t, doc.closed)
	})

	t.Run("no opener", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleFindInPDF(ctx, nil, FindInPDFInput{Path: "/b.pdf", Query: "x"})

		assert.ErrorIs(t, err, ErrPDFUnavailable)
	})

	t.Run("missing path", func(t *testing.T) {
		server := newTestServer(t, &Ports{OpenPDF: opener(&mockPDFService{}, nil, nil)})

		_, _, err := server.handleFindInPDF(ctx, nil, FindInPDFInput{Query: "x"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("open failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{OpenPDF: opener(nil, domain.ErrDocumentUnavailable, nil)})

		_, _, err := server.handleFindInPDF(ctx, nil, FindInPDFInput{Path: "/b.pdf", Query: "x"})

		assert.ErrorIs(t, err, domain.ErrDocumentUnavailable)
	})

	t.Run("find failure closes document", func(t *testing.T) {
		doc := &mockPDFService{err: errors.New("pdftotext failed")}
		server := newTestServer(t, &Ports{OpenPDF: opener(doc, nil, nil)})

		_, _, err := server.handleFindInPDF(ctx, nil, FindInPDFInput{Path: "/b.pdf", Query: "x"})

		assert.ErrorContains(t, err, "pdftotext failed")
		assert.True(t, doc.closed)
	})
}

func TestServer_handleReadPDFPage(t *testing.T) {
	ctx := context.Background()
	doc := &mockPDFService{pages: []string{"cover", "NOTAMs"}}
	server := newTestServer(t, &Ports{OpenPDF: opener(doc, nil, nil)})

	_, output, err := server.handleReadPDFPage(ctx, nil, ReadPDFPageInput{Path: "/b.pdf", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, ReadPDFPageOutput{Page: 2, PageCount: 2, Text: "NOTAMs"}, output)

	_, _, err = server.handleReadPDFPage(ctx, nil, ReadPDFPageInput{Path: "/b.pdf", Page: 5})
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestServer_handleSearchLocations(t *testing.T) {
	ctx := context.Background()

	t.Run("returns locations", func(t *testing.T) {
		server := newTestServer(t, &Ports{Locations: &mockLocationService{locations: []domain.Location{berlin, berlinNH}}})

		_, output, err := server.handleSearchLocations(ctx, nil, SearchLocationsInput{Name: "Berlin"})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, berlinNH, output.Locations[1])
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Locations: &mockLocationService{err: domain.ErrUnexpectedStatus}})

		_, _, err := server.handleSearchLocations(ctx, nil, SearchLocationsInput{Name: "Berlin"})

		assert.ErrorIs(t, err, domain.ErrUnexpectedStatus)
	})
}

func TestServer_handleGetForecast(t *testing.T) {
	ctx := context.Background()
	weather := &domain.Weather{Days: []domain.WeatherDay{{
		Date:               time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		TemperatureMin:     6,
		TemperatureMinUnit: "°C",
		TemperatureMax:     14,
		TemperatureMaxUnit: "°C",
	}}}

	t.Run("first match by default", func(t *testing.T) {
		locations := &mockLocationService{locations: []domain.Location{berlin, berlinNH}, weather: weather}
		server := newTestServer(t, &Ports{Locations: locations})

		_, output, err := server.handleGetForecast(ctx, nil, GetForecastInput{Name: "Berlin"})

		require.NoError(t, err)
		assert.Equal(t, berlin, output.Location)
		assert.Equal(t, []string{"Today, 6°C – 14°C"}, output.Summary)
		assert.Equal(t, []int64{berlin.ID}, locations.fetchedFor)
	})

	t.Run("match by id", func(t *testing.T) {
		locations := &mockLocationService{locations: []domain.Location{berlin, berlinNH}}
		server := newTestServer(t, &Ports{Locations: locations})

		_, output, err := server.handleGetForecast(ctx, nil, GetForecastInput{Name: "Berlin", ID: berlinNH.ID})

		require.NoError(t, err)
		assert.Equal(t, berlinNH, output.Location)
	})

	t.Run("no match", func(t *testing.T) {
		server := newTestServer(t, &Ports{Locations: &mockLocationService{}})

		_, _, err := server.handleGetForecast(ctx, nil, GetForecastInput{Name: "Qwxz"})

		assert.ErrorIs(t, err, ErrNoLocation)
	})

	t.Run("forecast failure", func(t *testing.T) {
		locations := &mockLocationService{locations: []domain.Location{berlin}, weatherErr: errors.New("timeout")}
		server := newTestServer(t, &Ports{Locations: locations})

		_, _, err := server.handleGetForecast(ctx, nil, GetForecastInput{Name: "Berlin"})

		assert.ErrorContains(t, err, "timeout")
	})
}
