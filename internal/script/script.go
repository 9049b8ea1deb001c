// Package script replays a recorded measurement session: a YAML list of
// tool changes and pointer events applied to an app.State.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"nano-analyzer/internal/annotation"
	"nano-analyzer/internal/app"
	"nano-analyzer/internal/image"
	"nano-analyzer/pkg/geometry"
)

// ImageSpec names the micrograph. When Path is empty a blank image of
// Width x Height is used.
type ImageSpec struct {
	Path   string `yaml:"path,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// Pointer is a single pointer event in viewport coordinates.
type Pointer struct {
	Phase  string  `yaml:"phase"`
	Button string  `yaml:"button"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// Drag is a down/move/up sequence from From to To.
type Drag struct {
	Button string           `yaml:"button"`
	From   geometry.Point2D `yaml:"from"`
	To     geometry.Point2D `yaml:"to"`
}

// Step is one entry of the script. Exactly one field is set.
type Step struct {
	Tool    string   `yaml:"tool,omitempty"`
	Mode    string   `yaml:"mode,omitempty"`
	Length  *float64 `yaml:"length,omitempty"`
	Units   string   `yaml:"units,omitempty"`
	Undo    bool     `yaml:"undo,omitempty"`
	Pointer *Pointer `yaml:"pointer,omitempty"`
	Drag    *Drag    `yaml:"drag,omitempty"`
}

// Script is a replayable session.
type Script struct {
	Image    ImageSpec     `yaml:"image"`
	Viewport geometry.Size `yaml:"viewport"`
	Steps    []Step        `yaml:"steps"`

	dir string // Directory relative image paths are resolved against
}

// Result summarises a replay.
type Result struct {
	Steps   int // Steps applied
	Changed int // Pointer events that changed the session
	Ignored int // Pointer events that were no-ops
}

// Parse reads a script. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("script is empty")
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a script from path. Relative image paths in the script
// are resolved against the script's directory.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Validate checks the script's structure without running it.
func (s *Script) Validate() error {
	if s.Image.Path == "" && (s.Image.Width <= 0 || s.Image.Height <= 0) {
		return errors.New("image needs a path or a positive width and height")
	}
	for i, step := range s.Steps {
		if n := step.actions(); n != 1 {
			return fmt.Errorf("step %d: expected exactly one action, got %d", i, n)
		}
		if step.Length != nil && *step.Length <= 0 {
			return fmt.Errorf("step %d: length must be positive", i)
		}
	}
	return nil
}

func (st Step) actions() int {
	n := 0
	for _, set := range []bool{
		st.Tool != "",
		st.Mode != "",
		st.Length != nil,
		st.Units != "",
		st.Undo,
		st.Pointer != nil,
		st.Drag != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Layer loads or creates the image the script runs against.
func (s *Script) Layer() (*image.Layer, error) {
	if s.Image.Path == "" {
		return image.Blank(s.Image.Width, s.Image.Height, "blank"), nil
	}
	path := s.Image.Path
	if !filepath.IsAbs(path) && s.dir != "" {
		path = filepath.Join(s.dir, path)
	}
	return image.Load(path)
}

// viewport returns the script's viewport, defaulting to the image size.
func (s *Script) viewport(layer *image.Layer) geometry.Size {
	if s.Viewport.Empty() {
		return layer.Size()
	}
	return s.Viewport
}

// Run loads the image into state and applies every step in order.
func (s *Script) Run(state *app.State) (Result, error) {
	layer, err := s.Layer()
	if err != nil {
		return Result{}, err
	}
	state.SetImage(layer)
	view := s.viewport(layer)

	var res Result
	for i, step := range s.Steps {
		changed, pointers, err := s.apply(state, step, view)
		if err != nil {
			return res, fmt.Errorf("step %d: %w", i, err)
		}
		res.Steps++
		res.Changed += changed
		res.Ignored += pointers - changed
	}
	return res, nil
}

// apply runs one step and returns how many pointer events it sent and how
// many of them changed the session.
func (s *Script) apply(state *app.State, step Step, view geometry.Size) (changed, pointers int, err error) {
	switch {
	case step.Tool != "":
		kind, err := annotation.ParseKind(step.Tool)
		if err != nil {
			return 0, 0, err
		}
		state.SetTool(kind)

	case step.Mode != "":
		mode, err := app.ParseSecondaryMode(step.Mode)
		if err != nil {
			return 0, 0, err
		}
		state.SetSecondaryMode(mode)

	case step.Length != nil:
		return 0, 0, state.SetPhysicalLength(*step.Length)

	case step.Units != "":
		return 0, 0, state.SetUnits(step.Units)

	case step.Undo:
		state.Undo()

	case step.Pointer != nil:
		ev, err := step.Pointer.event(view)
		if err != nil {
			return 0, 0, err
		}
		if state.HandlePointer(ev) {
			changed++
		}
		return changed, 1, nil

	case step.Drag != nil:
		events, err := step.Drag.events(view)
		if err != nil {
			return 0, 0, err
		}
		for _, ev := range events {
			if state.HandlePointer(ev) {
				changed++
			}
		}
		return changed, len(events), nil
	}
	return 0, 0, nil
}

func (p Pointer) event(view geometry.Size) (app.PointerEvent, error) {
	phase, err := app.ParsePhase(p.Phase)
	if err != nil {
		return app.PointerEvent{}, err
	}
	button, err := app.ParseButton(p.Button)
	if err != nil {
		return app.PointerEvent{}, err
	}
	return app.PointerEvent{
		Phase:    phase,
		Button:   button,
		Location: geometry.Point2D{X: p.X, Y: p.Y},
		Viewport: view,
	}, nil
}

func (d Drag) events(view geometry.Size) ([]app.PointerEvent, error) {
	button, err := app.ParseButton(d.Button)
	if err != nil {
		return nil, err
	}
	if button == app.ButtonNone {
		button = app.ButtonPrimary
	}
	mid := geometry.Point2D{X: (d.From.X + d.To.X) / 2, Y: (d.From.Y + d.To.Y) / 2}
	return []app.PointerEvent{
		{Phase: app.PhaseDown, Button: button, Location: d.From, Viewport: view},
		{Phase: app.PhaseMove, Button: button, Location: mid, Viewport: view},
		{Phase: app.PhaseUp, Button: button, Location: d.To, Viewport: view},
	}, nil
}
