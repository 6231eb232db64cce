package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/briefing/internal/core/domain"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestPDFFindCmd_RequiresTwoArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := runCLI(t, "pdf", "find", "briefing.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestPDFFindCmd_PrintsPages(t *testing.T) {
	cleanup, ts := setupTestServicesWith()
	defer cleanup()

	out, err := runCLI(t, "pdf", "find", "briefing.pdf", "RWY")

	require.NoError(t, err)
	assert.Contains(t, out, "Page 2")
	assert.Contains(t, out, "RWY 25L closed")
	assert.Contains(t, out, "1 page(s) found.")
	assert.True(t, ts.pdf.Closed)
	require.Len(t, ts.opened, 1)
	assert.False(t, ts.opened[0].CaseSensitive)
	assert.False(t, ts.opened[0].Watch)
}

func TestPDFFindCmd_CaseSensitiveJSON(t *testing.T) {
	cleanup, ts := setupTestServicesWith()
	defer cleanup()

	out, err := runCLI(t, "pdf", "find", "--json", "--case-sensitive", "briefing.pdf", "RWY")

	require.NoError(t, err)
	assert.Contains(t, out, `"Page": 2`)
	assert.True(t, ts.opened[0].CaseSensitive)
}

func TestPDFFindCmd_NoMatches(t *testing.T) {
	cleanup, ts := setupTestServicesWith()
	defer cleanup()
	ts.pdf.FindFunc = func(context.Context, string) ([]domain.PageMatch, error) {
		return nil, nil
	}

	out, err := runCLI(t, "pdf", "find", "briefing.pdf", "zzz")

	require.NoError(t, err)
	assert.Contains(t, out, "No matches found.")
}

func TestPDFFindCmd_Errors(t *testing.T) {
	t.Run("open failure", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		_, err := runCLI(t, "pdf", "find", "missing.pdf", "RWY")

		assert.ErrorIs(t, err, domain.ErrDocumentUnavailable)
	})

	t.Run("search failure", func(t *testing.T) {
		cleanup, ts := setupTestServicesWith()
		defer cleanup()
		ts.pdf.FindFunc = func(context.Context, string) ([]domain.PageMatch, error) {
			return nil, errors.New("pdftotext exited 1")
		}

		_, err := runCLI(t, "pdf", "find", "briefing.pdf", "RWY")

		assert.ErrorContains(t, err, "pdftotext exited 1")
	})

	t.Run("not configured", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		pdfOpener = nil

		_, err := runCLI(t, "pdf", "find", "briefing.pdf", "RWY")

		assert.ErrorContains(t, err, "pdf search not configured")
	})
}

func TestPDFPageCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCLI(t, "pdf", "page", "briefing.pdf", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "NOTAM RWY 25L closed")

	_, err = runCLI(t, "pdf", "page", "briefing.pdf", "two")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = runCLI(t, "pdf", "page", "briefing.pdf", "9")
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}
