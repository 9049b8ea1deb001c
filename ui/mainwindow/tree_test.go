package mainwindow

import (
	"testing"

	"fyne.io/fyne/v2/widget"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"nano-analyzer/internal/export"
)

func TestTreeIndex(t *testing.T) {
	roots := []*export.Node{
		{Label: "Scale", Children: []*export.Node{{Label: "0.5 units/px"}}},
		{Label: "Lines", Children: []*export.Node{
			{Label: "0: 100 units"},
			{Label: "1: 25 units", Children: []*export.Node{{Label: "Aspect: 0.25"}}},
		}},
		{Label: "Circles"},
	}
	ti := newTreeIndex(roots)

	if diff := cmp.Diff([]widget.TreeNodeID{"0", "1", "2"}, ti.childUIDs("")); diff != "" {
		t.Errorf("roots mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]widget.TreeNodeID{"1/0", "1/1"}, ti.childUIDs("1")); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, ti.isBranch("1/1"))
	assert.False(t, ti.isBranch("1/0"))
	assert.True(t, ti.isBranch("2"))
	assert.Equal(t, "Aspect: 0.25", ti.label("1/1/0"))
	assert.Empty(t, ti.label("9"))
}
