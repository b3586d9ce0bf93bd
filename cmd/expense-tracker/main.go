package main

import (
	"context"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"expensetracker/internal/backend"
	"expensetracker/internal/chart"
	"expensetracker/internal/cli"
	"expensetracker/internal/export"
	"expensetracker/internal/export/gsheets"
	"expensetracker/internal/export/xlsx"
	applog "expensetracker/internal/log"
	"expensetracker/internal/tracker"
	"expensetracker/internal/ui"
)

const appID = "com.expensetracker.desktop"

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), applog.ComponentApp)
	logger.Info("Starting expense-tracker")

	cfg := cli.LoadAndValidateConfig(logger)
	ctx := context.Background()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger).CreateStore(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize record store", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Cleanup failed", applog.FieldError, err)
			}
		}()
	}

	exporter := &export.Fanout{
		Primary: xlsx.New(),
		Logger:  logger.WithComponent(applog.ComponentExport),
	}
	if cfg.SheetsEnabled() {
		sheetsClient, err := gsheets.New(ctx, gsheets.Settings{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			logger.Warn("Google Sheets export disabled", applog.FieldError, err)
		} else {
			exporter.Mirrors = append(exporter.Mirrors, sheetsClient)
		}
	}

	opts := tracker.Options{
		Store:     result.Store,
		Exporter:  exporter,
		Renderer:  chart.NewPlotter(),
		ChartPath: cfg.ChartPath,
		Logger:    logger,
	}
	if result.Notifier != nil {
		opts.Notifier = result.Notifier
	}
	app, err := tracker.New(opts)
	if err != nil {
		logger.Error("Failed to initialize tracker", applog.FieldError, err)
		os.Exit(1)
	}

	fyneApp := fyneapp.NewWithID(appID)
	window := fyneApp.NewWindow(ui.Title)
	window.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	w := ui.New(window, app, cfg.ExportPath, logger)
	w.Load()

	window.ShowAndRun()
	logger.Info("Window closed, exiting")
}
