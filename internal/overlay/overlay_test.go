package overlay

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"nano-analyzer/internal/annotation"
	"nano-analyzer/internal/calibration"
	"nano-analyzer/pkg/geometry"
)

func TestBuild(t *testing.T) {
	store := annotation.NewStore()
	store.Begin(annotation.Line, geometry.Pt(1, 2), 1)
	store.Commit(geometry.Pt(11, 2))
	store.Begin(annotation.Circle, geometry.Pt(0, 0), 1)
	store.Commit(geometry.Pt(10, 0))
	store.Begin(annotation.Line, geometry.Pt(5, 5), 1)
	store.Drag(geometry.Pt(6, 6))
	draft, _ := store.Draft()

	scene := Build(Input{
		ImageSize:   geometry.NewSize(100, 50),
		Objects:     store.Objects(),
		Draft:       &draft,
		Calibration: calibration.NewSegment(geometry.Pt(0, 40), geometry.Pt(20, 40), 5),
	})

	want := Scene{
		ImageSize: geometry.NewSize(100, 50),
		Shapes: []Shape{
			{Kind: ShapeLine, Treatment: TreatmentCommitted, A: geometry.Pt(1, 2), B: geometry.Pt(11, 2), Label: "0", LabelAt: geometry.Pt(1, 2)},
			{Kind: ShapeCircle, Treatment: TreatmentCommitted, A: geometry.Pt(0, 0), B: geometry.Pt(10, 0), Center: geometry.Pt(5, 0), Radius: 5, Label: "1", LabelAt: geometry.Pt(5, 0)},
			{Kind: ShapeLine, Treatment: TreatmentDraft, A: geometry.Pt(5, 5), B: geometry.Pt(6, 6)},
			{Kind: ShapeLine, Treatment: TreatmentCalibration, A: geometry.Pt(0, 40), B: geometry.Pt(20, 40)},
		},
	}
	if diff := cmp.Diff(want, scene); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SkipsUnplacedEndpoints(t *testing.T) {
	store := annotation.NewStore()
	store.Begin(annotation.Circle, geometry.Pt(3, 3), 1)
	draft, _ := store.Draft()

	scene := Build(Input{
		Draft:       &draft,
		Calibration: calibration.New(geometry.Pt(1, 1), 10),
	})

	assert.Empty(t, scene.Shapes)
}

func TestCount(t *testing.T) {
	scene := Scene{Shapes: []Shape{
		{Treatment: TreatmentCommitted},
		{Treatment: TreatmentCommitted},
		{Treatment: TreatmentCalibration},
	}}
	assert.Equal(t, 2, scene.Count(TreatmentCommitted))
	assert.Equal(t, 0, scene.Count(TreatmentDraft))
	assert.Equal(t, "calibration", TreatmentCalibration.String())
}
