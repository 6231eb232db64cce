// Command briefing searches PDFs and place names as you type.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/briefing/internal/adapters/driven/config/file"
	"github.com/custodia-labs/briefing/internal/adapters/driven/filewatch"
	"github.com/custodia-labs/briefing/internal/adapters/driven/pdf/poppler"
	"github.com/custodia-labs/briefing/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/briefing/internal/adapters/driven/weather/openmeteo"
	"github.com/custodia-labs/briefing/internal/adapters/driving/cli"
	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driven"
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
	"github.com/custodia-labs/briefing/internal/core/services"
	"github.com/custodia-labs/briefing/internal/logger"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	settingsService := services.NewSettingsService(openConfigStore())

	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default settings: %v\n", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	weather := openmeteo.NewClient(openmeteo.ConfigFrom(settings.Weather))
	locations := services.NewLocationSearchService(weather, services.LocationSearchConfig{
		Debounce: settings.Location.Debounce,
	})
	defer locations.Close()

	cli.SetServices(settingsService, pdfOpener(settings.PDF), locations)
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}

// openConfigStore falls back to an in-memory store when the config
// directory cannot be created, so read-only homes still work.
func openConfigStore() driven.ConfigStore {
	store, err := file.NewConfigStore(os.Getenv("BRIEFING_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: settings will not be saved: %v\n", err)
		return memory.NewConfigStore()
	}
	return store
}

// pdfOpener opens documents with poppler and wraps them in a search session.
func pdfOpener(pdfSettings domain.PDFSettings) driving.PDFOpener {
	return func(ctx context.Context, path string, opts driving.PDFOpenOptions) (driving.PDFSearchService, error) {
		doc, err := poppler.Open(ctx, path)
		if err != nil {
			return nil, err
		}

		cfg := services.PDFSearchConfigFrom(pdfSettings)
		if opts.CaseSensitive {
			cfg.CaseInsensitive = false
		}
		svc := services.NewPDFSearchService(doc, nil, cfg)

		if opts.Watch {
			if err := svc.Watch(ctx, filewatch.New(0)); err != nil {
				logger.Warn("auto reload disabled: %v", err)
			}
		}
		return svc, nil
	}
}
