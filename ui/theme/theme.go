// Package theme provides the application's Fyne theme.
package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"nano-analyzer/internal/render"
)

// NanoTheme tints the default theme with the overlay colors so selections
// match what is drawn on the image.
type NanoTheme struct {
	Style render.Style
}

var _ fyne.Theme = (*NanoTheme)(nil)

// New returns a theme using style's overlay colors.
func New(style render.Style) *NanoTheme {
	return &NanoTheme{Style: style}
}

func (t *NanoTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return t.Style.Committed
	case theme.ColorNameSelection:
		c := t.Style.Draft
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0x80}
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF} // Visible gray scrollbar
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *NanoTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *NanoTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *NanoTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16 // Wider scrollbar for easier grabbing
	case theme.SizeNameScrollBarSmall:
		return 12
	default:
		return theme.DefaultTheme().Size(name)
	}
}
