package prefs

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"nano-analyzer/internal/config"
)

func TestApply_Fallbacks(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)

	p := New(a.Preferences())
	got := p.Apply(config.Default())
	assert.Equal(t, config.Default(), got)
	assert.Empty(t, p.LastDir())
}

func TestApply_StoredValues(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)

	p := New(a.Preferences())
	p.SetPhysicalLength(200)
	p.SetTool("circle")
	p.SetSecondaryMode("undo")
	p.SetUnits("nm")
	p.RememberFile(filepath.Join("data", "sem", "grain.tif"))

	got := p.Apply(config.Default())
	assert.Equal(t, 200.0, got.PhysicalLength)
	assert.Equal(t, "circle", got.Tool)
	assert.Equal(t, "undo", got.SecondaryMode)
	assert.Equal(t, "nm", got.Units)
	assert.Equal(t, filepath.Join("data", "sem"), p.LastDir())
}
