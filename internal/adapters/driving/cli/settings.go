package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change search debounce, PDF and weather API settings.

Settings are stored in config.toml in the briefing config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting. Durations use Go syntax (500ms, 1s, 2m).

Run 'briefing settings keys' to list the supported keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the supported setting keys",
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[PDF]")
	cmd.Printf("  Default file: %s\n", orUnset(settings.PDF.Path))
	cmd.Printf("  Debounce: %s\n", settings.PDF.Debounce)
	cmd.Printf("  Case insensitive: %s\n", yesNo(settings.PDF.CaseInsensitive))
	cmd.Printf("  Thumbnail: %dx%d\n", settings.PDF.Thumbnail.Width, settings.PDF.Thumbnail.Height)
	cmd.Println()

	cmd.Println("[Location]")
	cmd.Printf("  Debounce: %s\n", settings.Location.Debounce)
	cmd.Println()

	cmd.Println("[Weather]")
	cmd.Printf("  Geocoding URL: %s\n", settings.Weather.GeocodingURL)
	cmd.Printf("  Forecast URL: %s\n", settings.Weather.ForecastURL)
	cmd.Printf("  Timezone: %s\n", settings.Weather.Timezone)
	cmd.Printf("  Timeout: %s\n", settings.Weather.Timeout)
	cmd.Printf("  Requests per second: %g\n", settings.Weather.RequestsPerSecond)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	cmd.Printf("Stored in %s\n", settingsService.Path())

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
