package export

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"nano-analyzer/internal/annotation"
	"nano-analyzer/internal/calibration"
	"nano-analyzer/pkg/geometry"
)

func sampleInput() Input {
	return Input{
		Calibration: calibration.NewSegment(geometry.Pt(0, 0), geometry.Pt(100, 0), 50),
		Objects: []annotation.Object{
			annotation.NewObject(annotation.Line, geometry.Pt(0, 0), geometry.Pt(200, 0), 0.5),
			annotation.NewObject(annotation.Line, geometry.Pt(0, 0), geometry.Pt(0, 50), 0.5),
			annotation.NewObject(annotation.Circle, geometry.Pt(10, 10), geometry.Pt(40, 50), 0.5),
		},
	}
}

func TestBuild(t *testing.T) {
	got := Build(sampleInput())

	want := []*Node{
		{Label: "Scale", Children: []*Node{{Label: "0.5 units/px"}}},
		{Label: "Lines", Children: []*Node{
			{Label: "0: 100 units"},
			{Label: "1: 25 units", Children: []*Node{{Label: "Aspect: 0.25"}}},
		}},
		{Label: "Circles", Children: []*Node{{Label: "2: 25 units"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Empty(t *testing.T) {
	got := Build(Input{})

	want := []*Node{{Label: "Scale"}, {Label: "Lines"}, {Label: "Circles"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_CalibrationWithoutSecondPoint(t *testing.T) {
	got := Build(Input{Calibration: calibration.New(geometry.Pt(1, 1), 10)})
	assert.Empty(t, got[0].Children)
}

func TestBuild_DegenerateCalibrationIsNaN(t *testing.T) {
	got := Build(Input{Calibration: calibration.NewSegment(geometry.Pt(1, 1), geometry.Pt(1, 1), 10)})
	assert.Equal(t, "NaN units/px", got[0].Children[0].Label)
}

func TestBuild_CustomUnits(t *testing.T) {
	in := sampleInput()
	in.Units = "nm"

	got := Build(in)
	assert.Equal(t, "0.5 nm/px", got[0].Children[0].Label)
	assert.Equal(t, "0: 100 nm", got[1].Children[0].Label)
}

func TestText_PreOrder(t *testing.T) {
	got := Text(Build(sampleInput()))

	want := strings.Join([]string{
		"Scale",
		"0.5 units/px",
		"Lines",
		"0: 100 units",
		"1: 25 units",
		"Aspect: 0.25",
		"Circles",
		"2: 25 units",
	}, "\n") + "\n"
	assert.Equal(t, want, got)
}

func TestExport_Flattened(t *testing.T) {
	got := Export(sampleInput())

	want := strings.Join([]string{
		"Scale",
		"0.5\tunits/px",
		"Lines",
		"0\t100\tunits",
		"1\t25\tunits",
		"Aspect\t0.25",
		"Circles",
		"2\t25\tunits",
	}, "\n") + "\n"
	assert.Equal(t, want, got)
	assert.NotContains(t, got, ":")
	assert.NotContains(t, got, " ")
}

func TestExport_MeasurementRecordCount(t *testing.T) {
	// One calibration, two lines and one circle give four measurement records.
	records := 0
	for _, line := range strings.Split(strings.TrimSpace(Export(sampleInput())), "\n") {
		if strings.HasSuffix(line, "units") || strings.HasSuffix(line, "units/px") {
			records++
		}
	}
	assert.Equal(t, 4, records)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "50", FormatNumber(50))
	assert.Equal(t, "0.1", FormatNumber(0.1))
	assert.Equal(t, "33.333333333333336", FormatNumber(100.0/3))
	assert.Equal(t, "NaN", FormatNumber(posInf()))
}

func posInf() float64 {
	zero := 0.0
	return 1 / zero
}
