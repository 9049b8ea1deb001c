package render

import (
	"image"
	"image/color"
	"image/draw"

	"nano-analyzer/internal/overlay"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// Composite draws base at native resolution and the scene on top of it.
// base may be nil, in which case the scene is drawn on black.
func Composite(base image.Image, scene overlay.Scene, style Style) *image.RGBA {
	bounds := image.Rect(0, 0, int(scene.ImageSize.Width), int(scene.ImageSize.Height))
	if base != nil {
		bounds = image.Rect(0, 0, base.Bounds().Dx(), base.Bounds().Dy())
	}

	output := image.NewRGBA(bounds)
	draw.Draw(output, bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)
	if base != nil {
		draw.Draw(output, bounds, base, base.Bounds().Min, draw.Src)
	}

	DrawScene(output, scene, style)
	return output
}

// DrawScene draws every shape of the scene onto output in scene order.
func DrawScene(output *image.RGBA, scene overlay.Scene, style Style) {
	for _, sh := range scene.Shapes {
		col := style.ColorFor(sh.Treatment)
		width := style.WidthFor(sh.Treatment)

		switch sh.Kind {
		case overlay.ShapeCircle:
			drawRing(output, sh.Center.X, sh.Center.Y, sh.Radius, col, width)
		default:
			drawLine(output, sh.A.X, sh.A.Y, sh.B.X, sh.B.Y, col, width)
		}

		if sh.Label != "" {
			drawLabel(output, sh.Label, sh.LabelAt.X, sh.LabelAt.Y, col, style.LabelScale)
		}
	}
}

func set(output *image.RGBA, x, y int, col color.RGBA) {
	if (image.Point{X: x, Y: y}).In(output.Bounds()) {
		output.SetRGBA(x, y, col)
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				set(output, x1+s, y1+t, col)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawRing draws a circle outline of the given thickness centered on the
// nominal radius.
func drawRing(output *image.RGBA, cx, cy, r int, col color.RGBA, thickness int) {
	half := float64(thickness) / 2
	outer := float64(r) + half
	inner := float64(r) - half
	if inner < 0 {
		inner = 0
	}
	outer2 := outer * outer
	inner2 := inner * inner

	span := int(outer) + 1
	for y := cy - span; y <= cy+span; y++ {
		for x := cx - span; x <= cx+span; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			dist2 := dx*dx + dy*dy
			if dist2 <= outer2 && dist2 >= inner2 {
				set(output, x, y, col)
			}
		}
	}
}

// drawLabel draws decimal digits with the top-left corner at (x, y).
// Non-digit characters advance the cursor without drawing.
func drawLabel(output *image.RGBA, label string, x, y int, col color.RGBA, scale int) {
	if scale < 1 {
		scale = 1
	}
	charWidth := 3 * scale
	spacing := scale

	for i, ch := range []rune(label) {
		if ch < '0' || ch > '9' {
			continue
		}
		pattern := digitPatterns[ch-'0']
		charX := x + i*(charWidth+spacing)

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if pattern[row]&(1<<(2-c)) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						set(output, charX+c*scale+dx, y+row*scale+dy, col)
					}
				}
			}
		}
	}
}
