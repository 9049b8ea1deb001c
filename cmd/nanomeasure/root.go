package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"nano-analyzer/internal/config"
	"nano-analyzer/internal/logging"
)

// env is the configuration shared by all subcommands, resolved before
// any of them runs.
type env struct {
	configPath string
	logLevel   string

	settings config.Settings
	log      zerolog.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:   "nanomeasure",
		Short: "Calibrated length and aspect measurements on micrographs",
		Long: `nanomeasure replays recorded measurement sessions against a micrograph.

A session calibrates a known reference segment, draws lines and circles,
and exports the Scale / Lines / Circles measurement tree as tab-separated text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return e.load()
		},
	}

	cmd.PersistentFlags().StringVar(&e.configPath, "config", "", "Config file (default: ./"+config.FileName+".{json,yaml,toml} if present)")
	cmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Log level override (trace, debug, info, warn, error, off)")

	cmd.AddCommand(newReplayCmd(e))
	cmd.AddCommand(newInfoCmd(e))

	return cmd
}

func (e *env) load() error {
	var err error
	if e.configPath != "" {
		e.settings, err = config.LoadFile(e.configPath)
	} else {
		e.settings, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	level := e.settings.LogLevel
	if e.logLevel != "" {
		level = e.logLevel
	}
	e.log = logging.New(os.Stderr, level)
	e.log.Debug().Str("units", e.settings.Units).Float64("physicalLength", e.settings.PhysicalLength).Msg("configuration loaded")
	return nil
}
