package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" Warning "))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewJSON_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, "warn")

	log.Info().Msg("hidden")
	log.Warn().Str("tool", "line").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "line", entry["tool"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNew_ConsoleWithoutColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	log.Info().Msg("image loaded")

	assert.Contains(t, buf.String(), "image loaded")
	assert.NotContains(t, buf.String(), "\x1b[")
}
