// Package main provides the entry point for the Nano Analyzer application.
package main

import (
	"os"
	"path/filepath"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"

	"nano-analyzer/internal/app"
	"nano-analyzer/internal/config"
	"nano-analyzer/internal/logging"
	"nano-analyzer/internal/version"
	"nano-analyzer/ui/mainwindow"
	"nano-analyzer/ui/prefs"
	"nano-analyzer/ui/theme"
)

const appID = "io.github.nanoanalyzer"

func main() {
	_ = godotenv.Load()

	settings, err := config.Load(configDir())
	log := logging.New(os.Stderr, settings.LogLevel)
	if err != nil {
		log.Warn().Err(err).Msg("using default settings")
		settings = config.Default()
	}
	log.Info().Str("version", version.String()).Msg("starting Nano Analyzer")

	style, err := settings.Render.Style()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid render settings")
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(theme.New(style))

	appPrefs := prefs.New(fyneApp.Preferences())
	settings = appPrefs.Apply(settings)

	state := app.NewState(log)
	if err := state.ApplySettings(settings); err != nil {
		log.Warn().Err(err).Msg("ignoring stored preferences")
		if err := state.ApplySettings(config.Default()); err != nil {
			log.Fatal().Err(err).Msg("invalid default settings")
		}
	}

	win := mainwindow.New(fyneApp, state, appPrefs, style, log)

	// Handle command line arguments
	if len(os.Args) > 1 {
		win.LoadImage(os.Args[1])
	}

	win.ShowAndRun()
}

// configDir is the per-user directory holding nano_analyzer.cfg.*.
func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "nano-analyzer")
}
