// Package app owns the measurement session: the loaded image, the active
// calibration, the annotation store and the tool modes. All mutations go
// through State, which also notifies listeners after every change.
package app

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"nano-analyzer/internal/annotation"
	"nano-analyzer/internal/calibration"
	"nano-analyzer/internal/config"
	"nano-analyzer/internal/export"
	"nano-analyzer/internal/image"
	"nano-analyzer/internal/overlay"
	"nano-analyzer/internal/viewport"
	"nano-analyzer/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded         EventType = iota // data: *image.Layer
	EventCalibrationChanged                   // data: *calibration.Scale (copy) or nil
	EventCalibrationRejected                  // data: error
	EventAnnotationsChanged                   // data: int, committed count
	EventDraftChanged                         // data: nil
	EventModeChanged                          // data: nil
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

type pendingEvent struct {
	event EventType
	data  interface{}
}

// State holds the measurement session.
type State struct {
	mu  sync.RWMutex
	log zerolog.Logger

	layer *image.Layer

	units          string
	physicalLength float64
	tool           annotation.Kind
	secondary      SecondaryMode

	calibration *calibration.Scale
	previous    *calibration.Scale // restored when a calibration drag is rejected
	store       *annotation.Store
	calibrating bool // secondary drag in progress; the primary draft lives in store

	listeners map[EventType][]EventListener
}

// NewState creates an empty session with default modes.
func NewState(log zerolog.Logger) *State {
	return &State{
		log:            log,
		units:          export.DefaultUnits,
		physicalLength: 1,
		tool:           annotation.Line,
		secondary:      SecondaryScale,
		store:          annotation.NewStore(),
		listeners:      make(map[EventType][]EventListener),
	}
}

// ApplySettings copies units, physical length and modes from settings.
func (s *State) ApplySettings(settings config.Settings) error {
	tool, err := annotation.ParseKind(settings.Tool)
	if err != nil {
		return err
	}
	mode, err := ParseSecondaryMode(settings.SecondaryMode)
	if err != nil {
		return err
	}
	if err := s.SetPhysicalLength(settings.PhysicalLength); err != nil {
		return err
	}
	if err := s.SetUnits(settings.Units); err != nil {
		return err
	}
	s.SetTool(tool)
	s.SetSecondaryMode(mode)
	return nil
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

func (s *State) emitAll(events []pendingEvent) {
	for _, ev := range events {
		s.Emit(ev.event, ev.data)
	}
}

// SetImage replaces the loaded image and starts a fresh session: the
// calibration, the annotations and any gesture in progress are dropped.
func (s *State) SetImage(layer *image.Layer) {
	s.mu.Lock()
	s.layer = layer
	s.calibration = nil
	s.previous = nil
	s.store.Clear()
	s.calibrating = false
	s.mu.Unlock()

	if layer != nil {
		s.log.Info().Str("image", layer.Name).Int("width", layer.Width()).Int("height", layer.Height()).Msg("image loaded")
	}
	s.emitAll([]pendingEvent{
		{EventImageLoaded, layer},
		{EventCalibrationChanged, nil},
		{EventAnnotationsChanged, 0},
		{EventDraftChanged, nil},
	})
}

// LoadImage decodes the image at path and makes it the current image.
func (s *State) LoadImage(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		return err
	}
	s.SetImage(layer)
	return nil
}

// Image returns the current image, or nil.
func (s *State) Image() *image.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layer
}

// SetTool selects the shape drawn by the primary button.
func (s *State) SetTool(tool annotation.Kind) {
	s.mu.Lock()
	s.tool = tool
	s.mu.Unlock()
	s.Emit(EventModeChanged, nil)
}

// Tool returns the selected drawing tool.
func (s *State) Tool() annotation.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tool
}

// SetSecondaryMode selects what the secondary button does.
func (s *State) SetSecondaryMode(mode SecondaryMode) {
	s.mu.Lock()
	s.secondary = mode
	s.mu.Unlock()
	s.Emit(EventModeChanged, nil)
}

// SecondaryMode returns the secondary button mode.
func (s *State) SecondaryMode() SecondaryMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secondary
}

// SetPhysicalLength sets the length used by the next calibration. It does
// not change the active calibration.
func (s *State) SetPhysicalLength(length float64) error {
	if length <= 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return fmt.Errorf("physical length must be a positive number, got %v", length)
	}
	s.mu.Lock()
	s.physicalLength = length
	s.mu.Unlock()
	s.Emit(EventModeChanged, nil)
	return nil
}

// PhysicalLength returns the length used by the next calibration.
func (s *State) PhysicalLength() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.physicalLength
}

// SetUnits sets the unit label used in the measurement tree.
func (s *State) SetUnits(units string) error {
	if units == "" {
		units = export.DefaultUnits
	}
	if strings.ContainsAny(units, " :\t\n") {
		return fmt.Errorf("units %q must not contain spaces or colons", units)
	}
	s.mu.Lock()
	s.units = units
	n := s.store.Len()
	s.mu.Unlock()
	s.Emit(EventAnnotationsChanged, n)
	return nil
}

// Units returns the unit label.
func (s *State) Units() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units
}

// Map converts a viewport location to an image pixel. It reports false
// without an image or outside the image.
func (s *State) Map(p geometry.Point2D, view geometry.Size) (geometry.PointInt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.layer == nil {
		return geometry.PointInt{}, false
	}
	return viewport.Map(p, view, s.layer.Size())
}

// Readout returns the "(x, y)" pixel readout for a pointer location.
func (s *State) Readout(p geometry.Point2D, view geometry.Size) (string, bool) {
	px, ok := s.Map(p, view)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("(%d, %d)", px.X, px.Y), true
}

// HandlePointer runs one pointer event through the gesture state machines.
// The primary draft and the secondary calibration drag are tracked
// separately, so either button may be pressed while the other is held.
// It reports whether anything changed. Events without an image or outside
// the image are ignored.
func (s *State) HandlePointer(ev PointerEvent) bool {
	s.mu.Lock()
	if s.layer == nil {
		s.mu.Unlock()
		return false
	}
	p, ok := viewport.Map(ev.Location, ev.Viewport, s.layer.Size())
	if !ok {
		s.mu.Unlock()
		s.log.Trace().Stringer("phase", ev.Phase).Float64("x", ev.Location.X).Float64("y", ev.Location.Y).Msg("pointer outside image")
		return false
	}

	var events []pendingEvent
	switch ev.Phase {
	case PhaseDown:
		events = s.down(ev.Button, p)
	case PhaseMove:
		events = s.move(ev.Button, p)
	case PhaseUp:
		events = s.up(ev.Button, p)
	}
	s.mu.Unlock()

	s.emitAll(events)
	return len(events) > 0
}

// down must be called with s.mu held.
func (s *State) down(button Button, p geometry.PointInt) []pendingEvent {
	switch button {
	case ButtonPrimary:
		factor, err := s.activeFactor()
		if err != nil {
			s.log.Debug().Err(err).Msg("annotation ignored without calibration")
			return nil
		}
		s.store.Begin(s.tool, p, factor)
		s.log.Debug().Stringer("tool", s.tool).Int("x", p.X).Int("y", p.Y).Float64("scale", factor).Msg("draft started")
		return []pendingEvent{{EventDraftChanged, nil}}

	case ButtonSecondary:
		if s.secondary != SecondaryScale {
			return nil
		}
		if !s.calibrating {
			s.previous = s.calibration
		}
		s.calibration = calibration.New(p, s.physicalLength)
		s.calibrating = true
		s.log.Debug().Int("x", p.X).Int("y", p.Y).Float64("length", s.physicalLength).Msg("calibration started")
		return []pendingEvent{{EventCalibrationChanged, s.calibration.Clone()}}
	}
	return nil
}

// move must be called with s.mu held.
func (s *State) move(button Button, p geometry.PointInt) []pendingEvent {
	switch {
	case button == ButtonPrimary:
		if s.store.Drag(p) {
			return []pendingEvent{{EventDraftChanged, nil}}
		}
	case button == ButtonSecondary && s.calibrating:
		s.calibration.SetB(p)
		return []pendingEvent{{EventCalibrationChanged, s.calibration.Clone()}}
	}
	return nil
}

// up must be called with s.mu held.
func (s *State) up(button Button, p geometry.PointInt) []pendingEvent {
	switch {
	case button == ButtonPrimary:
		obj, ok := s.store.Commit(p)
		if !ok {
			return nil
		}
		s.log.Debug().Stringer("annotation", obj).Int("index", s.store.Len()-1).Msg("annotation committed")
		return []pendingEvent{{EventDraftChanged, nil}, {EventAnnotationsChanged, s.store.Len()}}

	case button == ButtonSecondary && s.calibrating:
		s.calibrating = false
		s.calibration.SetB(p)
		return s.finishCalibration()

	case button == ButtonSecondary && s.secondary == SecondaryUndo:
		return s.undo()
	}
	return nil
}

// finishCalibration keeps the dragged calibration or, if it is degenerate,
// restores the previous one. Must be called with s.mu held.
func (s *State) finishCalibration() []pendingEvent {
	factor, err := s.calibration.Factor()
	if err != nil {
		s.log.Warn().Err(err).Msg("calibration rejected, keeping previous")
		s.calibration = s.previous
		s.previous = nil
		return []pendingEvent{
			{EventCalibrationRejected, err},
			{EventCalibrationChanged, s.calibration.Clone()},
		}
	}
	s.previous = nil
	s.log.Info().Float64("unitsPerPixel", factor).Str("units", s.units).Msg("calibration set")
	return []pendingEvent{{EventCalibrationChanged, s.calibration.Clone()}}
}

// undo must be called with s.mu held.
func (s *State) undo() []pendingEvent {
	obj, ok := s.store.Undo()
	if !ok {
		s.log.Debug().Msg("nothing to undo")
		return nil
	}
	s.log.Debug().Stringer("annotation", obj).Msg("annotation undone")
	return []pendingEvent{{EventAnnotationsChanged, s.store.Len()}}
}

// Undo removes the most recently committed annotation.
func (s *State) Undo() bool {
	s.mu.Lock()
	events := s.undo()
	s.mu.Unlock()
	s.emitAll(events)
	return len(events) > 0
}

// activeFactor must be called with s.mu held.
func (s *State) activeFactor() (float64, error) {
	if s.calibration == nil {
		return 0, calibration.ErrIncomplete
	}
	return s.calibration.Factor()
}

// ScaleFactor returns the active calibration's units per pixel.
func (s *State) ScaleFactor() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeFactor()
}

// Calibration returns a copy of the active calibration, or nil.
func (s *State) Calibration() *calibration.Scale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calibration.Clone()
}

// Objects returns the committed annotations in insertion order.
func (s *State) Objects() []annotation.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Objects()
}

// Draft returns the in-progress annotation, if any.
func (s *State) Draft() (annotation.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Draft()
}

// Scene returns the current rendering description.
func (s *State) Scene() overlay.Scene {
	s.mu.RLock()
	defer s.mu.RUnlock()

	in := overlay.Input{
		ImageSize:   s.layer.Size(),
		Objects:     s.store.Objects(),
		Calibration: s.calibration,
	}
	if d, ok := s.store.Draft(); ok {
		in.Draft = &d
	}
	return overlay.Build(in)
}

// Snapshot returns the image together with the scene drawn over it, for
// exporting an annotated copy. It fails with image.ErrNoImage before an
// image is loaded.
func (s *State) Snapshot() (*image.Layer, overlay.Scene, error) {
	s.mu.RLock()
	layer := s.layer
	s.mu.RUnlock()
	if layer == nil || layer.Image == nil {
		return nil, overlay.Scene{}, image.ErrNoImage
	}
	return layer, s.Scene(), nil
}

// Tree returns the Scale / Lines / Circles measurement tree.
func (s *State) Tree() []*export.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return export.Build(export.Input{
		Calibration: s.calibration,
		Objects:     s.store.Objects(),
		Units:       s.units,
	})
}

// ExportText returns the flattened tab-separated measurement tree.
func (s *State) ExportText() string {
	return export.Flatten(export.Text(s.Tree()))
}
