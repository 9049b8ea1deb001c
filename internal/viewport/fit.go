// Package viewport maps pointer locations in an aspect-fit ("zoom to fit")
// viewport onto native image pixels.
package viewport

import (
	"math"

	"nano-analyzer/pkg/geometry"
)

// Fit describes how an image is drawn inside a viewport: one uniform zoom
// and centered padding on the axis that did not constrain the zoom.
type Fit struct {
	Viewport geometry.Size
	Image    geometry.Size
	Zoom     float64
	PadX     float64
	PadY     float64
}

// NewFit computes the letterbox/pillarbox fit of image inside viewport.
// The returned Fit has Zoom == 0 when either size is empty.
func NewFit(viewport, image geometry.Size) Fit {
	f := Fit{Viewport: viewport, Image: image}
	if viewport.Empty() || image.Empty() {
		return f
	}

	zoomW := viewport.Width / image.Width
	zoomH := viewport.Height / image.Height
	f.Zoom = math.Min(zoomW, zoomH)

	// Padding only on the axis that did not constrain the zoom. When both
	// ratios are equal, neither axis is padded.
	if f.Zoom != zoomW {
		f.PadX = (viewport.Width - f.Zoom*image.Width) / 2
	}
	if f.Zoom != zoomH {
		f.PadY = (viewport.Height - f.Zoom*image.Height) / 2
	}
	return f
}

// Valid reports whether the fit can map points.
func (f Fit) Valid() bool {
	return f.Zoom > 0 && !math.IsInf(f.Zoom, 0)
}

// ToImage converts a viewport location to a native image pixel. The second
// result is false when the location falls outside [0, width] x [0, height];
// both upper bounds are inclusive.
func (f Fit) ToImage(p geometry.Point2D) (geometry.PointInt, bool) {
	if !f.Valid() {
		return geometry.PointInt{}, false
	}

	realX := math.Floor((p.X - f.PadX) / f.Zoom)
	realY := math.Floor((p.Y - f.PadY) / f.Zoom)

	if realX < 0 || realX > f.Image.Width {
		return geometry.PointInt{}, false
	}
	if realY < 0 || realY > f.Image.Height {
		return geometry.PointInt{}, false
	}
	return geometry.Pt(int(realX), int(realY)), true
}

// ToViewport converts an image location to viewport coordinates.
func (f Fit) ToViewport(p geometry.Point2D) geometry.Point2D {
	return p.Scale(f.Zoom).Add(geometry.NewPoint2D(f.PadX, f.PadY))
}

// ImageRect returns the area of the viewport covered by the image.
func (f Fit) ImageRect() geometry.Rect {
	origin := f.ToViewport(geometry.Point2D{})
	return geometry.NewRect(origin.X, origin.Y, f.Image.Width*f.Zoom, f.Image.Height*f.Zoom)
}

// Map is the one-shot form of NewFit(viewport, image).ToImage(p).
func Map(p geometry.Point2D, viewport, image geometry.Size) (geometry.PointInt, bool) {
	return NewFit(viewport, image).ToImage(p)
}
