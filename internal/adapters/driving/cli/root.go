// Package cli provides the briefing command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/briefing/internal/core/ports/driving"
	"github.com/custodia-labs/briefing/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Set by SetServices before Execute.
var (
	settingsService driving.SettingsService
	pdfOpener       driving.PDFOpener
	locationService driving.LocationSearchService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "briefing",
	Short: "Incremental PDF and weather search for the terminal",
	Long: `Briefing searches the text of a PDF and geocodes place names as you type,
showing the matching pages and the daily temperature forecast for a location.

Run 'briefing tui' for the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices wires the core services into the commands.
func SetServices(
	settings driving.SettingsService,
	openPDF driving.PDFOpener,
	locations driving.LocationSearchService,
) {
	settingsService = settings
	pdfOpener = openPDF
	locationService = locations
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
