package measure

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"nano-analyzer/internal/annotation"
	"nano-analyzer/pkg/geometry"
)

func line(x1, y1, x2, y2 int, scale float64) annotation.Object {
	return annotation.NewObject(annotation.Line, geometry.Pt(x1, y1), geometry.Pt(x2, y2), scale)
}

func circle(x1, y1, x2, y2 int, scale float64) annotation.Object {
	return annotation.NewObject(annotation.Circle, geometry.Pt(x1, y1), geometry.Pt(x2, y2), scale)
}

func TestLengthIsScaled(t *testing.T) {
	o := line(0, 0, 200, 0, 0.5)
	assert.Equal(t, 100.0, Length(o))
	assert.Equal(t, o.A.Distance(geometry.Pt(200, 0))*0.5, Length(o))

	c := circle(0, 0, 30, 40, 2)
	assert.Equal(t, 100.0, Length(c))
}

func TestRadiusIsNotScaled(t *testing.T) {
	c := circle(0, 0, 30, 40, 2)
	assert.Equal(t, 25.0, Radius(c))

	l := line(0, 0, 30, 40, 1000)
	assert.Equal(t, 25.0, Radius(l))
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, geometry.Pt(15, 20), Midpoint(circle(0, 0, 30, 40, 1)))
	assert.Equal(t, geometry.Pt(2, 1), Midpoint(line(0, 0, 5, 3, 1)))
}

func TestCircleShape(t *testing.T) {
	got := Circle(circle(10, 10, 13, 10, 1))
	assert.Equal(t, CircleShape{Center: geometry.Pt(11, 10), Radius: 1}, got)
}

func TestAspectPairs(t *testing.T) {
	// Lines of scaled length 10, 20 and 7; the third stays unpaired.
	objects := []annotation.Object{
		line(0, 0, 10, 0, 1),
		line(0, 0, 20, 0, 1),
		line(0, 0, 7, 0, 1),
	}

	got := AspectPairs(objects)
	want := []Pair{{First: 0, Second: 1, Ratio: 0.5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AspectPairs mismatch (-want +got):\n%s", diff)
	}
}

func TestAspectPairsSkipsCircles(t *testing.T) {
	objects := []annotation.Object{
		line(0, 0, 40, 0, 1),
		circle(0, 0, 5, 0, 1),
		line(0, 0, 10, 0, 1),
		circle(0, 0, 9, 0, 1),
		line(0, 0, 3, 0, 1),
		line(0, 0, 6, 0, 1),
	}

	got := AspectPairs(objects)
	want := []Pair{
		{First: 0, Second: 2, Ratio: 0.25},
		{First: 4, Second: 5, Ratio: 0.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AspectPairs mismatch (-want +got):\n%s", diff)
	}
}

func TestAspectPairsUsesScaledLengths(t *testing.T) {
	// Same pixel length, different snapshot scales.
	objects := []annotation.Object{
		line(0, 0, 10, 0, 1),
		line(0, 0, 10, 0, 4),
	}

	got := AspectPairs(objects)
	assert.Len(t, got, 1)
	assert.Equal(t, 0.25, got[0].Ratio)
}

func TestAspectPairsEmpty(t *testing.T) {
	assert.Empty(t, AspectPairs(nil))
	assert.Empty(t, AspectPairs([]annotation.Object{line(0, 0, 1, 0, 1)}))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.5, Ratio(20, 10))
	assert.Equal(t, 0.0, Ratio(0, 10))
	assert.True(t, math.IsNaN(Ratio(0, 0)))
}
