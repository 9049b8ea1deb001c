package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"nano-analyzer/internal/overlay"
)

// MMPerPixel maps one image pixel to page millimetres (96 dpi).
const MMPerPixel = 25.4 / 96

// WritePDF writes a one-page PDF with base as background and the scene as
// vector strokes. Index labels are not drawn.
func WritePDF(w io.Writer, base image.Image, scene overlay.Scene, style Style) error {
	width := scene.ImageSize.Width * MMPerPixel
	height := scene.ImageSize.Height * MMPerPixel
	if width <= 0 || height <= 0 {
		return fmt.Errorf("cannot write PDF for empty image %vx%v", scene.ImageSize.Width, scene.ImageSize.Height)
	}

	writer := pdf.New(w, width, height, nil)

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // origin top-left, like image pixels

	if base != nil {
		ctx.DrawImage(0, 0, base, canvas.DPMM(1/MMPerPixel))
	}

	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	for _, sh := range scene.Shapes {
		ctx.SetStrokeColor(style.ColorFor(sh.Treatment))
		ctx.SetStrokeWidth(float64(style.WidthFor(sh.Treatment)) * MMPerPixel)

		switch sh.Kind {
		case overlay.ShapeCircle:
			r := float64(sh.Radius) * MMPerPixel
			ctx.DrawPath(float64(sh.Center.X)*MMPerPixel, float64(sh.Center.Y)*MMPerPixel, canvas.Circle(r))
		default:
			p := &canvas.Path{}
			p.MoveTo(0, 0)
			p.LineTo(float64(sh.B.X-sh.A.X)*MMPerPixel, float64(sh.B.Y-sh.A.Y)*MMPerPixel)
			ctx.DrawPath(float64(sh.A.X)*MMPerPixel, float64(sh.A.Y)*MMPerPixel, p)
		}
	}

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
