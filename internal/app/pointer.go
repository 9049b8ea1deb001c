package app

import (
	"fmt"
	"strings"

	"nano-analyzer/pkg/geometry"
)

// Phase is the stage of a pointer gesture.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ParsePhase converts "down", "move" or "up" to a Phase.
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(s) {
	case "down":
		return PhaseDown, nil
	case "move", "drag":
		return PhaseMove, nil
	case "up":
		return PhaseUp, nil
	}
	return PhaseDown, fmt.Errorf("unknown pointer phase %q", s)
}

// Button is the logical mouse button held during an event.
type Button int

const (
	ButtonNone      Button = iota
	ButtonPrimary          // Drawing
	ButtonSecondary        // Calibration or undo
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// ParseButton converts "primary"/"left", "secondary"/"right" or "none".
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(s) {
	case "primary", "left":
		return ButtonPrimary, nil
	case "secondary", "right":
		return ButtonSecondary, nil
	case "", "none":
		return ButtonNone, nil
	}
	return ButtonNone, fmt.Errorf("unknown button %q", s)
}

// SecondaryMode selects what the secondary button does.
type SecondaryMode int

const (
	SecondaryScale SecondaryMode = iota // Drag a calibration segment
	SecondaryUndo                       // Release removes the last annotation
)

func (m SecondaryMode) String() string {
	if m == SecondaryUndo {
		return "undo"
	}
	return "scale"
}

// ParseSecondaryMode converts "scale" or "undo".
func ParseSecondaryMode(s string) (SecondaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scale":
		return SecondaryScale, nil
	case "undo":
		return SecondaryUndo, nil
	}
	return SecondaryScale, fmt.Errorf("unknown secondary mode %q", s)
}

// PointerEvent is a raw pointer event in viewport coordinates.
type PointerEvent struct {
	Phase    Phase
	Button   Button
	Location geometry.Point2D // Relative to the viewport's top-left corner
	Viewport geometry.Size    // Size of the area the image is fitted into
}
