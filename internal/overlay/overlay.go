// Package overlay describes what is drawn over the micrograph: committed
// annotations with their index labels, the in-progress draft and the
// calibration segment.
package overlay

import (
	"strconv"

	"nano-analyzer/internal/annotation"
	"nano-analyzer/internal/calibration"
	"nano-analyzer/internal/measure"
	"nano-analyzer/pkg/geometry"
)

// Treatment selects the visual style of a shape.
type Treatment int

const (
	TreatmentCommitted   Treatment = iota // Finished annotation
	TreatmentDraft                        // Annotation being dragged
	TreatmentCalibration                  // Calibration reference segment
)

func (t Treatment) String() string {
	switch t {
	case TreatmentCommitted:
		return "committed"
	case TreatmentDraft:
		return "draft"
	case TreatmentCalibration:
		return "calibration"
	default:
		return "unknown"
	}
}

// ShapeKind is the outline drawn for a shape.
type ShapeKind int

const (
	ShapeLine ShapeKind = iota
	ShapeCircle
)

// Shape is one drawable element in image coordinates.
type Shape struct {
	Kind      ShapeKind
	Treatment Treatment

	// Line endpoints.
	A, B geometry.PointInt

	// Circle outline.
	Center geometry.PointInt
	Radius int

	Label   string           // Index label, empty for draft and calibration
	LabelAt geometry.PointInt // Top-left anchor of the label
}

// Scene is the full rendering description for one refresh.
type Scene struct {
	ImageSize geometry.Size
	Shapes    []Shape // Draw order: committed, draft, calibration
}

// Input is the state a Scene is built from.
type Input struct {
	ImageSize   geometry.Size
	Objects     []annotation.Object
	Draft       *annotation.Object
	Calibration *calibration.Scale
}

// Build produces the scene. Shapes whose second point is not placed yet
// are left out.
func Build(in Input) Scene {
	scene := Scene{ImageSize: in.ImageSize}

	for i, obj := range in.Objects {
		shape, ok := shapeFor(obj, TreatmentCommitted)
		if !ok {
			continue
		}
		shape.Label = strconv.Itoa(i)
		if obj.Kind == annotation.Circle {
			shape.LabelAt = shape.Center
		} else {
			shape.LabelAt = obj.A
		}
		scene.Shapes = append(scene.Shapes, shape)
	}

	if in.Draft != nil {
		if shape, ok := shapeFor(*in.Draft, TreatmentDraft); ok {
			scene.Shapes = append(scene.Shapes, shape)
		}
	}

	if in.Calibration != nil {
		if b, ok := in.Calibration.B(); ok {
			scene.Shapes = append(scene.Shapes, Shape{
				Kind:      ShapeLine,
				Treatment: TreatmentCalibration,
				A:         in.Calibration.A,
				B:         b,
			})
		}
	}
	return scene
}

func shapeFor(obj annotation.Object, t Treatment) (Shape, bool) {
	b, ok := obj.B()
	if !ok {
		return Shape{}, false
	}
	switch obj.Kind {
	case annotation.Circle:
		c := measure.Circle(obj)
		return Shape{Kind: ShapeCircle, Treatment: t, A: obj.A, B: b, Center: c.Center, Radius: c.Radius}, true
	default:
		return Shape{Kind: ShapeLine, Treatment: t, A: obj.A, B: b}, true
	}
}

// Count returns the number of shapes with treatment t.
func (s Scene) Count(t Treatment) int {
	n := 0
	for _, sh := range s.Shapes {
		if sh.Treatment == t {
			n++
		}
	}
	return n
}
