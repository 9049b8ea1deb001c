// Package render draws an overlay.Scene onto the micrograph, either as a
// native-resolution raster or as a vector PDF page.
package render

import (
	"image/color"

	"nano-analyzer/internal/overlay"
	"nano-analyzer/pkg/colorutil"
)

// Style holds colors and stroke widths, in image pixels, per treatment.
type Style struct {
	Committed   color.RGBA
	Draft       color.RGBA
	Calibration color.RGBA

	LineWidth        int // Committed and draft strokes
	CalibrationWidth int
	LabelScale       int // Pixels per glyph cell of the index labels
}

// DefaultStyle is blue committed shapes, yellow drafts and a thicker green
// calibration segment.
func DefaultStyle() Style {
	return Style{
		Committed:        colorutil.Blue,
		Draft:            colorutil.Yellow,
		Calibration:      colorutil.Green,
		LineWidth:        3,
		CalibrationWidth: 5,
		LabelScale:       3,
	}
}

// ColorFor returns the stroke color for a treatment.
func (s Style) ColorFor(t overlay.Treatment) color.RGBA {
	switch t {
	case overlay.TreatmentDraft:
		return s.Draft
	case overlay.TreatmentCalibration:
		return s.Calibration
	default:
		return s.Committed
	}
}

// WidthFor returns the stroke width for a treatment, at least one pixel.
func (s Style) WidthFor(t overlay.Treatment) int {
	w := s.LineWidth
	if t == overlay.TreatmentCalibration {
		w = s.CalibrationWidth
	}
	if w < 1 {
		w = 1
	}
	return w
}
