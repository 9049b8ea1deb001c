// Package measure derives physical measurements from annotations.
package measure

import (
	"math"

	"nano-analyzer/internal/annotation"
	"nano-analyzer/pkg/geometry"
)

// Length returns the scaled length |AB| * Scale. Circles report the scaled
// length of their diameter.
func Length(o annotation.Object) float64 {
	return o.PixelLength() * o.Scale
}

// Radius returns half the pixel distance |AB|. The scale factor is not
// applied: this is the radius the circle is drawn with.
func Radius(o annotation.Object) float64 {
	return o.PixelLength() / 2
}

// Midpoint returns the midpoint of AB with truncating integer division. It
// returns A while B is unset.
func Midpoint(o annotation.Object) geometry.PointInt {
	b, ok := o.B()
	if !ok {
		return o.A
	}
	return o.A.Midpoint(b)
}

// CircleShape is the drawable outline of a circle annotation.
type CircleShape struct {
	Center geometry.PointInt
	Radius int
}

// Circle returns the center and truncated integer radius a circle
// annotation is drawn with.
func Circle(o annotation.Object) CircleShape {
	return CircleShape{Center: Midpoint(o), Radius: int(Radius(o))}
}

// Pair is one aspect pairing between two consecutive lines.
type Pair struct {
	// First and Second are indices into the committed sequence.
	First  int
	Second int
	Ratio  float64
}

// Ratio returns min(l1,l2)/max(l1,l2). Two zero lengths give NaN.
func Ratio(l1, l2 float64) float64 {
	hi := math.Max(l1, l2)
	if hi == 0 {
		return math.NaN()
	}
	return math.Min(l1, l2) / hi
}

// AspectPairs pairs the line annotations in insertion order, first with
// second, third with fourth and so on. A trailing odd line is left
// unpaired and circles never take part.
func AspectPairs(objects []annotation.Object) []Pair {
	var lines []int
	for i, o := range objects {
		if o.Kind == annotation.Line {
			lines = append(lines, i)
		}
	}

	pairs := make([]Pair, 0, len(lines)/2)
	for i := 1; i < len(lines); i += 2 {
		first, second := lines[i-1], lines[i]
		pairs = append(pairs, Pair{
			First:  first,
			Second: second,
			Ratio:  Ratio(Length(objects[first]), Length(objects[second])),
		})
	}
	return pairs
}
