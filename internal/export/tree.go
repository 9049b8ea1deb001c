// Package export builds the Scale / Lines / Circles measurement tree and
// serializes it to tab-separated text for pasting into a spreadsheet.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"nano-analyzer/internal/annotation"
	"nano-analyzer/internal/calibration"
	"nano-analyzer/internal/measure"
)

// DefaultUnits is the unit label used when none is configured.
const DefaultUnits = "units"

// Root labels, in output order.
const (
	ScaleLabel   = "Scale"
	LinesLabel   = "Lines"
	CirclesLabel = "Circles"
)

// Node is one labelled entry in the measurement tree.
type Node struct {
	Label    string
	Children []*Node
}

func (n *Node) add(label string) *Node {
	child := &Node{Label: label}
	n.Children = append(n.Children, child)
	return child
}

// Input is the state a tree is built from.
type Input struct {
	Calibration *calibration.Scale
	Objects     []annotation.Object
	Units       string
}

// Build returns the three root nodes Scale, Lines and Circles.
//
// Lines and circles are labelled with their index in the committed
// sequence. The second line of each aspect pair carries an "Aspect" child.
func Build(in Input) []*Node {
	units := in.Units
	if units == "" {
		units = DefaultUnits
	}

	scaleNode := &Node{Label: ScaleLabel}
	linesNode := &Node{Label: LinesLabel}
	circlesNode := &Node{Label: CirclesLabel}

	if in.Calibration != nil && in.Calibration.Complete() {
		factor, err := in.Calibration.Factor()
		if err != nil {
			factor = math.NaN()
		}
		scaleNode.add(fmt.Sprintf("%s %s/px", FormatNumber(factor), units))
	}

	byIndex := make(map[int]*Node, len(in.Objects))
	for i, obj := range in.Objects {
		label := fmt.Sprintf("%d: %s %s", i, FormatNumber(measure.Length(obj)), units)
		switch obj.Kind {
		case annotation.Line:
			byIndex[i] = linesNode.add(label)
		case annotation.Circle:
			circlesNode.add(label)
		}
	}

	for _, p := range measure.AspectPairs(in.Objects) {
		byIndex[p.Second].add("Aspect: " + FormatNumber(p.Ratio))
	}

	return []*Node{scaleNode, linesNode, circlesNode}
}

// FormatNumber renders v in its shortest round-trip decimal form. Values
// that are not finite render as "NaN".
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Text walks the trees depth-first in pre-order and writes one line per node.
func Text(roots []*Node) string {
	var sb strings.Builder

	stack := make([]*Node, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sb.WriteString(n.Label)
		sb.WriteByte('\n')

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return sb.String()
}

var flattener = strings.NewReplacer(":", "", " ", "\t")

// Flatten strips colons and turns every space into a tab.
func Flatten(text string) string {
	return flattener.Replace(text)
}

// Export is Flatten(Text(Build(in))).
func Export(in Input) string {
	return Flatten(Text(Build(in)))
}
