package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointIntDistance(t *testing.T) {
	assert.Equal(t, 5.0, Pt(0, 0).Distance(Pt(3, 4)))
	assert.Equal(t, 0.0, Pt(7, 7).Distance(Pt(7, 7)))
	assert.Equal(t, 200.0, Pt(0, 0).Distance(Pt(200, 0)))
}

func TestPointIntMidpointTruncates(t *testing.T) {
	assert.Equal(t, Pt(1, 2), Pt(0, 0).Midpoint(Pt(3, 5)))
	assert.Equal(t, Pt(5, 5), Pt(10, 0).Midpoint(Pt(0, 10)))
	// Go integer division truncates toward zero for negatives too.
	assert.Equal(t, Pt(0, 0), Pt(-1, -1).Midpoint(Pt(0, 0)))
}

func TestPoint2DFloor(t *testing.T) {
	assert.Equal(t, Pt(1, -2), NewPoint2D(1.9, -1.1).Floor())
	assert.Equal(t, Pt(0, 0), NewPoint2D(0, 0.999).Floor())
}

func TestPoint2DScaleAdd(t *testing.T) {
	p := NewPoint2D(100, 50).Scale(0.5).Add(NewPoint2D(0, 25))
	assert.Equal(t, NewPoint2D(50, 50), p)
}

func TestRectContainsEdges(t *testing.T) {
	r := NewRect(0, 0, 10, 5)
	assert.True(t, r.Contains(NewPoint2D(10, 5)))
	assert.True(t, r.Contains(NewPoint2D(0, 0)))
	assert.False(t, r.Contains(NewPoint2D(10.01, 5)))
}

func TestSizeEmpty(t *testing.T) {
	assert.True(t, NewSize(0, 10).Empty())
	assert.True(t, NewSize(10, -1).Empty())
	assert.False(t, NewSize(1, 1).Empty())
}
