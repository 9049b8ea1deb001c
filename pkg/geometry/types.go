// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	return floats.Distance([]float64{p.X, p.Y}, []float64{other.X, other.Y}, 2)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Floor truncates toward negative infinity on both axes.
func (p Point2D) Floor() PointInt {
	return PointInt{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// PointInt represents a 2D point with integer coordinates (a native image pixel).
type PointInt struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt is shorthand for PointInt{X: x, Y: y}.
func Pt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// Distance returns the Euclidean distance to another pixel.
func (p PointInt) Distance(other PointInt) float64 {
	return p.ToFloat().Distance(other.ToFloat())
}

// Midpoint returns the point halfway to other using truncating integer division.
func (p PointInt) Midpoint(other PointInt) PointInt {
	return PointInt{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains returns true if the point is inside the rectangle, edges included.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Size represents a 2D size.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewSize creates a new Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}
