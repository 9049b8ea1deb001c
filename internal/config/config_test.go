package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nano-analyzer/pkg/colorutil"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "units", s.Units)
	assert.Equal(t, 1.0, s.PhysicalLength)
	assert.Equal(t, "line", s.Tool)
	assert.Equal(t, "scale", s.SecondaryMode)
	assert.Equal(t, 3, s.Render.LineWidth)
	assert.Equal(t, 5, s.Render.ScaleWidth)
	assert.Equal(t, "#0000ff", s.Render.CommittedColor)
}

func TestLoad_WithJSONFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"units": "nm",
		"physicalLength": 500,
		"tool": "circle",
		"render": { "lineWidth": 2, "draftColor": "#ff00ff" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(cfg), 0644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "nm", s.Units)
	assert.Equal(t, 500.0, s.PhysicalLength)
	assert.Equal(t, "circle", s.Tool)
	assert.Equal(t, 2, s.Render.LineWidth)
	assert.Equal(t, 5, s.Render.ScaleWidth)

	style, err := s.Render.Style()
	require.NoError(t, err)
	assert.Equal(t, uint8(255), style.Draft.R)
	assert.Equal(t, uint8(0), style.Draft.G)
	assert.Equal(t, colorutil.Blue, style.Committed)
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units: um\nsecondaryMode: undo\n"), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "um", s.Units)
	assert.Equal(t, "undo", s.SecondaryMode)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("NANO_UNITS", "mm")
	t.Setenv("NANO_RENDER_LINEWIDTH", "7")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mm", s.Units)
	assert.Equal(t, 7, s.Render.LineWidth)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"negative length":  `{"physicalLength": -1}`,
		"unknown tool":     `{"tool": "polygon"}`,
		"unknown mode":     `{"secondaryMode": "erase"}`,
		"units with space": `{"units": "nano meters"}`,
		"bad color":        `{"render": {"scaleColor": "green"}}`,
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(cfg), 0644))

			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(`{"units": `), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestDefault(t *testing.T) {
	s := Default()
	assert.NoError(t, s.Validate())
}
