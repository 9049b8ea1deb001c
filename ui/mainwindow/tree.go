package mainwindow

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2/widget"

	"nano-analyzer/internal/export"
)

// treeIndex addresses measurement tree nodes by path IDs such as "1/0".
type treeIndex struct {
	nodes    map[widget.TreeNodeID]*export.Node
	children map[widget.TreeNodeID][]widget.TreeNodeID
}

func newTreeIndex(roots []*export.Node) *treeIndex {
	ti := &treeIndex{
		nodes:    make(map[widget.TreeNodeID]*export.Node),
		children: make(map[widget.TreeNodeID][]widget.TreeNodeID),
	}
	ti.add("", roots)
	return ti
}

func (ti *treeIndex) add(parent widget.TreeNodeID, nodes []*export.Node) {
	for i, n := range nodes {
		id := strconv.Itoa(i)
		if parent != "" {
			id = parent + "/" + id
		}
		ti.nodes[id] = n
		ti.children[parent] = append(ti.children[parent], id)
		ti.add(id, n.Children)
	}
}

func (ti *treeIndex) childUIDs(id widget.TreeNodeID) []widget.TreeNodeID {
	return ti.children[id]
}

// isBranch reports true for the top-level categories even when empty.
func (ti *treeIndex) isBranch(id widget.TreeNodeID) bool {
	if id == "" || !strings.Contains(id, "/") {
		return true
	}
	return len(ti.children[id]) > 0
}

func (ti *treeIndex) label(id widget.TreeNodeID) string {
	if n, ok := ti.nodes[id]; ok {
		return n.Label
	}
	return ""
}
