// Package annotation provides the measured shapes drawn on a micrograph and
// the ordered store that holds them.
package annotation

import (
	"fmt"
	"strings"

	"nano-analyzer/pkg/geometry"
)

// Kind identifies the shape of an annotation.
type Kind int

const (
	Line Kind = iota
	Circle
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Circle:
		return "circle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts "line" or "circle" (any case) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return Line, nil
	case "circle":
		return Circle, nil
	}
	return Line, fmt.Errorf("unknown annotation kind %q", s)
}

// Object is one annotation: two endpoints, the calibration scale factor
// captured when it was started, and its kind.
//
// For a circle, A and B are the ends of a diameter.
type Object struct {
	A     geometry.PointInt
	Scale float64
	Kind  Kind

	b      geometry.PointInt
	placed bool
}

// NewObject returns a finished annotation.
func NewObject(kind Kind, a, b geometry.PointInt, scale float64) Object {
	return Object{A: a, Scale: scale, Kind: kind, b: b, placed: true}
}

// B returns the second endpoint, if placed.
func (o Object) B() (geometry.PointInt, bool) {
	return o.b, o.placed
}

// Complete reports whether the second endpoint has been placed.
func (o Object) Complete() bool {
	return o.placed
}

// PixelLength returns |AB| in pixels, or 0 while B is unset.
func (o Object) PixelLength() float64 {
	if !o.placed {
		return 0
	}
	return o.A.Distance(o.b)
}

func (o Object) String() string {
	if !o.placed {
		return fmt.Sprintf("%s(%d,%d -> ?)", o.Kind, o.A.X, o.A.Y)
	}
	return fmt.Sprintf("%s(%d,%d -> %d,%d)", o.Kind, o.A.X, o.A.Y, o.b.X, o.b.Y)
}

func (o *Object) setB(b geometry.PointInt) {
	o.b = b
	o.placed = true
}
