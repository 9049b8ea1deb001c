package theme

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"

	"nano-analyzer/internal/render"
)

func TestNanoTheme_Colors(t *testing.T) {
	style := render.DefaultStyle()
	th := New(style)

	assert.Equal(t, style.Committed, th.Color(theme.ColorNamePrimary, theme.VariantDark))

	sel := th.Color(theme.ColorNameSelection, theme.VariantLight)
	_, _, _, a := sel.RGBA()
	assert.Less(t, a, uint32(0xffff))

	assert.Equal(t, float32(16), th.Size(theme.SizeNameScrollBar))
}
