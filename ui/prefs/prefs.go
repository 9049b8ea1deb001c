// Package prefs remembers GUI choices between runs using Fyne's
// application preferences.
package prefs

import (
	"path/filepath"

	"fyne.io/fyne/v2"

	"nano-analyzer/internal/config"
)

const (
	keyLastDir        = "lastDirectory"
	keyPhysicalLength = "physicalLength"
	keyTool           = "tool"
	keySecondaryMode  = "secondaryMode"
	keyUnits          = "units"
)

// Prefs stores user preferences.
type Prefs struct {
	store fyne.Preferences
}

// New wraps the application's preference store.
func New(store fyne.Preferences) *Prefs {
	return &Prefs{store: store}
}

// LastDir returns the directory of the last opened image, or "".
func (p *Prefs) LastDir() string {
	return p.store.String(keyLastDir)
}

// RememberFile stores the directory containing path.
func (p *Prefs) RememberFile(path string) {
	p.store.SetString(keyLastDir, filepath.Dir(path))
}

// SetPhysicalLength stores the calibration length.
func (p *Prefs) SetPhysicalLength(v float64) {
	p.store.SetFloat(keyPhysicalLength, v)
}

// SetTool stores the drawing tool name.
func (p *Prefs) SetTool(tool string) {
	p.store.SetString(keyTool, tool)
}

// SetSecondaryMode stores the secondary button mode name.
func (p *Prefs) SetSecondaryMode(mode string) {
	p.store.SetString(keySecondaryMode, mode)
}

// SetUnits stores the unit label.
func (p *Prefs) SetUnits(units string) {
	p.store.SetString(keyUnits, units)
}

// Apply overlays remembered values onto settings. Values never stored keep
// the settings' own.
func (p *Prefs) Apply(settings config.Settings) config.Settings {
	settings.PhysicalLength = p.store.FloatWithFallback(keyPhysicalLength, settings.PhysicalLength)
	settings.Tool = p.store.StringWithFallback(keyTool, settings.Tool)
	settings.SecondaryMode = p.store.StringWithFallback(keySecondaryMode, settings.SecondaryMode)
	settings.Units = p.store.StringWithFallback(keyUnits, settings.Units)
	return settings
}
