// Package config loads application settings from defaults, an optional
// config file and NANO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"nano-analyzer/internal/annotation"
	"nano-analyzer/internal/render"
	"nano-analyzer/pkg/colorutil"
)

// FileName is the config file base name looked up in the config directory.
const FileName = "nano_analyzer.cfg"

// RenderConfig holds overlay drawing settings.
type RenderConfig struct {
	LineWidth        int    `json:"lineWidth" mapstructure:"lineWidth"`
	ScaleWidth       int    `json:"scaleWidth" mapstructure:"scaleWidth"`
	LabelScale       int    `json:"labelScale" mapstructure:"labelScale"`
	CommittedColor   string `json:"committedColor" mapstructure:"committedColor"`
	DraftColor       string `json:"draftColor" mapstructure:"draftColor"`
	CalibrationColor string `json:"scaleColor" mapstructure:"scaleColor"`
}

// Settings is the decoded configuration.
type Settings struct {
	LogLevel       string       `json:"logLevel" mapstructure:"logLevel"`
	Units          string       `json:"units" mapstructure:"units"`
	PhysicalLength float64      `json:"physicalLength" mapstructure:"physicalLength"`
	Tool           string       `json:"tool" mapstructure:"tool"`
	SecondaryMode  string       `json:"secondaryMode" mapstructure:"secondaryMode"`
	Render         RenderConfig `json:"render" mapstructure:"render"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("units", "units")
	v.SetDefault("physicalLength", 1.0)
	v.SetDefault("tool", "line")
	v.SetDefault("secondaryMode", "scale")

	v.SetDefault("render.lineWidth", 3)
	v.SetDefault("render.scaleWidth", 5)
	v.SetDefault("render.labelScale", 3)
	v.SetDefault("render.committedColor", "#0000ff")
	v.SetDefault("render.draftColor", "#ffff00")
	v.SetDefault("render.scaleColor", "#008000")
}

// New returns a viper instance with defaults and environment binding.
// Environment variables use the NANO_ prefix with '.' replaced by '_',
// e.g. NANO_RENDER_LINEWIDTH.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("nano")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads settings from configDir if a nano_analyzer.cfg.{json,yaml,toml}
// file exists there. A missing file is not an error.
func Load(configDir string) (Settings, error) {
	v := New()
	if configDir != "" {
		v.SetConfigName(FileName)
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}
	return Decode(v)
}

// LoadFile reads settings from an explicit file path.
func LoadFile(path string) (Settings, error) {
	v := New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("error reading config file: %w", err)
	}
	return Decode(v)
}

// Decode unmarshals and validates the settings held by v.
func Decode(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks value ranges and enumerations.
func (s Settings) Validate() error {
	if s.PhysicalLength <= 0 {
		return fmt.Errorf("physicalLength must be positive, got %v", s.PhysicalLength)
	}
	if _, err := annotation.ParseKind(s.Tool); err != nil {
		return fmt.Errorf("tool: %w", err)
	}
	switch strings.ToLower(s.SecondaryMode) {
	case "scale", "undo":
	default:
		return fmt.Errorf("secondaryMode must be scale or undo, got %q", s.SecondaryMode)
	}
	if strings.ContainsAny(s.Units, " :\t\n") {
		return fmt.Errorf("units %q must not contain spaces or colons", s.Units)
	}
	if _, err := s.Render.Style(); err != nil {
		return err
	}
	return nil
}

// Style converts the render settings into a render.Style.
func (r RenderConfig) Style() (render.Style, error) {
	style := render.DefaultStyle()
	style.LineWidth = r.LineWidth
	style.CalibrationWidth = r.ScaleWidth
	style.LabelScale = r.LabelScale

	var err error
	if style.Committed, err = colorutil.ParseHex(r.CommittedColor); err != nil {
		return style, fmt.Errorf("render.committedColor: %w", err)
	}
	if style.Draft, err = colorutil.ParseHex(r.DraftColor); err != nil {
		return style, fmt.Errorf("render.draftColor: %w", err)
	}
	if style.Calibration, err = colorutil.ParseHex(r.CalibrationColor); err != nil {
		return style, fmt.Errorf("render.scaleColor: %w", err)
	}
	return style, nil
}

// Default returns the settings produced by the defaults alone.
func Default() Settings {
	s, err := Decode(New())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return s
}
