// Package image provides micrograph loading.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"nano-analyzer/pkg/geometry"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = errors.New("no image loaded")

// Layer is a loaded micrograph.
type Layer struct {
	Path   string      // Original file path, empty for in-memory images
	Name   string      // Display name (file base name)
	Format string      // Decoder that read the file, e.g. "tiff"
	Image  image.Image // Decoded image data
}

// Load decodes the image at path. PNG, JPEG, GIF, TIFF and BMP are supported.
func Load(path string) (*Layer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	layer, err := Decode(file, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	layer.Path = path
	return layer, nil
}

// Decode reads an image from r and names it name.
func Decode(r io.Reader, name string) (*Layer, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", name, err)
	}
	return &Layer{Name: name, Format: format, Image: img}, nil
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image, name string) *Layer {
	return &Layer{Name: name, Image: img}
}

// Blank returns a layer with no pixel data and the given dimensions, for
// headless measurement where only the image size matters.
func Blank(width, height int, name string) *Layer {
	return &Layer{Name: name, Image: image.NewGray(image.Rect(0, 0, width, height))}
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l == nil || l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l == nil || l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// Size returns the image dimensions.
func (l *Layer) Size() geometry.Size {
	return geometry.Size{
		Width:  float64(l.Width()),
		Height: float64(l.Height()),
	}
}
