// Package calibration holds the two-point reference used to convert pixel
// distances into physical units.
package calibration

import (
	"errors"
	"fmt"

	"nano-analyzer/pkg/geometry"
)

var (
	// ErrIncomplete is returned while the second reference point is unset.
	ErrIncomplete = errors.New("calibration: second point not placed")

	// ErrDegenerate is returned when both reference points coincide.
	ErrDegenerate = errors.New("calibration: reference points coincide")
)

// Scale is a calibration: a pixel segment A-B known to measure PhysicalLength units.
type Scale struct {
	A              geometry.PointInt
	PhysicalLength float64

	b      geometry.PointInt
	placed bool
}

// New starts a calibration at a with the second point unset.
func New(a geometry.PointInt, physicalLength float64) *Scale {
	return &Scale{A: a, PhysicalLength: physicalLength}
}

// NewSegment creates a calibration with both points placed.
func NewSegment(a, b geometry.PointInt, physicalLength float64) *Scale {
	s := New(a, physicalLength)
	s.SetB(b)
	return s
}

// SetB places or moves the second reference point.
func (s *Scale) SetB(b geometry.PointInt) {
	s.b = b
	s.placed = true
}

// B returns the second reference point, if placed.
func (s *Scale) B() (geometry.PointInt, bool) {
	return s.b, s.placed
}

// Complete reports whether both points are placed.
func (s *Scale) Complete() bool {
	return s.placed
}

// PixelDistance returns |AB| in pixels once B is placed.
func (s *Scale) PixelDistance() (float64, bool) {
	if !s.placed {
		return 0, false
	}
	return s.A.Distance(s.b), true
}

// Factor returns the scale factor in physical units per pixel.
func (s *Scale) Factor() (float64, error) {
	d, ok := s.PixelDistance()
	if !ok {
		return 0, ErrIncomplete
	}
	if d == 0 {
		return 0, fmt.Errorf("%w at %d,%d", ErrDegenerate, s.A.X, s.A.Y)
	}
	return s.PhysicalLength / d, nil
}

// Valid reports whether Factor would succeed.
func (s *Scale) Valid() bool {
	_, err := s.Factor()
	return err == nil
}

// Clone returns an independent copy.
func (s *Scale) Clone() *Scale {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
