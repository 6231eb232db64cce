package messages

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMenu, "menu"},
		{ViewPDFSearch, "pdf_search"},
		{ViewLocationSearch, "location_search"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewType_Values(t *testing.T) {
	assert.Equal(t, ViewType(0), ViewMenu)
	assert.NotEqual(t, ViewPDFSearch, ViewLocationSearch)
}

func TestMessages_AreTeaMsgs(t *testing.T) {
	msgs := []tea.Msg{
		ViewChanged{View: ViewPDFSearch},
		PDFStateChanged{},
		LocationStateChanged{},
		DocumentReloaded{Err: errors.New("gone")},
		ErrorOccurred{Err: errors.New("boom")},
		Quit{},
	}

	for _, msg := range msgs {
		assert.NotNil(t, msg)
	}
}

func TestDocumentReloaded_CarriesError(t *testing.T) {
	err := errors.New("pdftotext failed")
	msg := DocumentReloaded{Err: err}

	assert.ErrorIs(t, msg.Err, err)
}
