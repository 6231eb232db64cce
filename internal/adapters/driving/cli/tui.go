package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/briefing/internal/adapters/driving/tui"
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
	"github.com/custodia-labs/briefing/internal/logger"
)

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("tui requires an interactive terminal")

var tuiPDFPath string

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for briefing.

Search a PDF as you type and jump to the pages that match, or look up a
place and read its daily temperature forecast. The PDF is reloaded when
the file changes on disk.

Controls:
  ↑/↓       - Navigate results
  Enter     - Select
  Ctrl+R    - Update (reload the PDF)
  Ctrl+U    - Clear the query
  Esc       - Back
  Ctrl+C    - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiPDFPath, "pdf", "", "PDF file to search (default: pdf.path setting)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !isTerminal() {
		return ErrNotTerminal
	}
	if locationService == nil {
		return errors.New("location service not configured")
	}

	// Log lines would corrupt the alternate screen.
	if logger.IsVerbose() && settingsService != nil {
		restore, err := logger.ToFile(filepath.Dir(settingsService.Path()))
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer restore()
	}

	ctx := cmd.Context()
	ports := &tui.Ports{Locations: locationService}

	path := resolvePDFPath()
	if path != "" && pdfOpener != nil {
		doc, err := pdfOpener(ctx, path, driving.PDFOpenOptions{Watch: true})
		if err != nil {
			return fmt.Errorf("failed to open document: %w", err)
		}
		defer doc.Close()
		ports.PDF = doc
		ports.DocumentName = filepath.Base(path)
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// resolvePDFPath prefers --pdf over the pdf.path setting.
func resolvePDFPath() string {
	if tuiPDFPath != "" {
		return tuiPDFPath
	}
	if settingsService == nil {
		return ""
	}
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("reading settings: %v", err)
		return ""
	}
	return settings.PDF.Path
}
