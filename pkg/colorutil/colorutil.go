// Package colorutil provides shared color utilities for overlay drawing.
package colorutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Common overlay colors used throughout the application.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Blue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green  = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// ParseHex parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(h) == 6 {
		h += "ff"
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// Hex formats c as "#rrggbb", dropping alpha when opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
