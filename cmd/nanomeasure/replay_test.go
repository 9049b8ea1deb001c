package main

import (
	"bytes"
	stdimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const session = `image: {width: 300, height: 100}
steps:
  - length: 50
  - drag: {button: secondary, from: {x: 0, y: 0}, to: {x: 100, y: 0}}
  - drag: {button: primary, from: {x: 0, y: 0}, to: {x: 200, y: 0}}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestReplay_PrintsTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(session), 0644))

	out, err := run(t, "replay", path, "--log-level", "off")
	require.NoError(t, err)
	assert.Equal(t, "Scale\n0.5\tunits/px\nLines\n0\t100\tunits\nCircles\n", out)
}

func TestReplay_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(session), 0644))

	txt := filepath.Join(dir, "tree.txt")
	pngPath := filepath.Join(dir, "annotated.png")
	pdfPath := filepath.Join(dir, "annotated.pdf")

	out, err := run(t, "replay", path, "--log-level", "off", "-o", txt, "--png", pngPath, "--pdf", pdfPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(txt)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0\t100\tunits")

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, stdimage.Rect(0, 0, 300, 100), img.Bounds())

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestReplay_UsesConfigUnits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(session), 0644))
	cfg := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("units: nm\nlogLevel: error\n"), 0644))

	out, err := run(t, "replay", path, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "0.5\tnm/px")
}

func TestReplay_MissingScript(t *testing.T) {
	_, err := run(t, "replay", filepath.Join(t.TempDir(), "missing.yaml"), "--log-level", "off")
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grain.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, stdimage.NewGray(stdimage.Rect(0, 0, 64, 32))))
	require.NoError(t, f.Close())

	out, err := run(t, "info", path, "--log-level", "off")
	require.NoError(t, err)
	assert.Equal(t, "grain.png\tpng\t64x32\n", out)
}
