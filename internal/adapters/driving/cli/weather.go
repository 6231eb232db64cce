package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/briefing/internal/core/domain"
)

// maxConcurrentForecasts bounds the forecast requests of search --forecast.
const maxConcurrentForecasts = 4

var (
	weatherSearchJSON     bool
	weatherSearchForecast bool
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Geocode places and show forecasts",
	Long: `Look up places by name and show their daily temperature forecast.

Weather API provided by Open-Meteo (https://open-meteo.com/en).`,
}

var weatherSearchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "List the locations matching a place name",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeatherSearch,
}

var weatherForecastCmd = &cobra.Command{
	Use:   "forecast [name]",
	Short: "Show the forecast for the best match of a place name",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeatherForecast,
}

func init() {
	weatherSearchCmd.Flags().BoolVar(&weatherSearchJSON, "json", false, "output locations as JSON")
	weatherSearchCmd.Flags().BoolVar(&weatherSearchForecast, "forecast", false, "include the forecast of every location")
	weatherCmd.AddCommand(weatherSearchCmd)
	weatherCmd.AddCommand(weatherForecastCmd)
	rootCmd.AddCommand(weatherCmd)
}

// locationForecast pairs a location with its forecast for output.
type locationForecast struct {
	Location domain.Location `json:"location"`
	Weather  *domain.Weather `json:"weather,omitempty"`
}

func runWeatherSearch(cmd *cobra.Command, args []string) error {
	if locationService == nil {
		return errors.New("location service not configured")
	}

	ctx := cmd.Context()
	locations, err := locationService.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	results := make([]locationForecast, len(locations))
	for i, loc := range locations {
		results[i].Location = loc
	}

	if weatherSearchForecast {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentForecasts)
		for i := range results {
			g.Go(func() error {
				weather, err := locationService.FetchWeather(gctx, results[i].Location)
				if err != nil {
					return fmt.Errorf("forecast for %s: %w", results[i].Location.DisplayName(), err)
				}
				results[i].Weather = weather
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	if weatherSearchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal locations: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No locations found.")
		return nil
	}

	for i, r := range results {
		cmd.Printf("  [%d] %s (%.4f, %.4f)\n", i+1, r.Location.DisplayName(), r.Location.Latitude, r.Location.Longitude)
		for _, line := range r.Weather.Lines() {
			cmd.Printf("      %s\n", line)
		}
	}
	return nil
}

func runWeatherForecast(cmd *cobra.Command, args []string) error {
	if locationService == nil {
		return errors.New("location service not configured")
	}

	ctx := cmd.Context()
	locations, err := locationService.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(locations) == 0 {
		return fmt.Errorf("%w: no location named %q", domain.ErrNotFound, args[0])
	}

	weather, err := locationService.FetchWeather(ctx, locations[0])
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}

	cmd.Println(locations[0].DisplayName())
	for _, line := range weather.Lines() {
		cmd.Printf("  %s\n", line)
	}
	cmd.Println()
	cmd.Println("Weather API provided by Open-Meteo (https://open-meteo.com/en)")
	return nil
}
