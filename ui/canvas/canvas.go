// Package canvas provides the measurement canvas: the micrograph fitted into
// the widget with its overlays, forwarding mouse gestures to app.State.
package canvas

import (
	"image"
	"image/draw"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"nano-analyzer/internal/app"
	"nano-analyzer/internal/render"
	"nano-analyzer/internal/viewport"
	"nano-analyzer/pkg/colorutil"
	"nano-analyzer/pkg/geometry"
)

var defaultSize = fyne.NewSize(640, 480)

// MeasureCanvas displays the current image letterboxed into its bounds.
type MeasureCanvas struct {
	widget.BaseWidget

	state *app.State
	style render.Style

	raster *fynecanvas.Raster

	// Button held since the last MouseDown; MouseMoved does not report it.
	pressed app.Button

	onHover func(readout string, inside bool)
}

var (
	_ desktop.Mouseable = (*MeasureCanvas)(nil)
	_ desktop.Hoverable = (*MeasureCanvas)(nil)
)

// New creates a canvas bound to state. It refreshes itself on every state
// change that affects the picture.
func New(state *app.State, style render.Style) *MeasureCanvas {
	mc := &MeasureCanvas{state: state, style: style}

	mc.raster = fynecanvas.NewRaster(mc.draw)
	mc.raster.ScaleMode = fynecanvas.ImageScaleSmooth
	mc.raster.SetMinSize(defaultSize)

	refresh := func(interface{}) { mc.Refresh() }
	for _, ev := range []app.EventType{
		app.EventImageLoaded,
		app.EventCalibrationChanged,
		app.EventAnnotationsChanged,
		app.EventDraftChanged,
	} {
		state.On(ev, refresh)
	}

	mc.ExtendBaseWidget(mc)
	return mc
}

// SetStyle replaces the overlay colors and widths.
func (mc *MeasureCanvas) SetStyle(style render.Style) {
	mc.style = style
	mc.Refresh()
}

// OnHover sets a callback receiving the "(x, y)" pixel readout as the
// pointer moves. inside is false when the pointer leaves the image.
func (mc *MeasureCanvas) OnHover(callback func(readout string, inside bool)) {
	mc.onHover = callback
}

// viewportSize returns the widget size in the units mouse events use.
func (mc *MeasureCanvas) viewportSize() geometry.Size {
	size := mc.Size()
	return geometry.Size{Width: float64(size.Width), Height: float64(size.Height)}
}

func (mc *MeasureCanvas) event(phase app.Phase, button app.Button, pos fyne.Position) app.PointerEvent {
	return app.PointerEvent{
		Phase:    phase,
		Button:   button,
		Location: geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)},
		Viewport: mc.viewportSize(),
	}
}

func toButton(b desktop.MouseButton) app.Button {
	switch {
	case b&desktop.MouseButtonPrimary != 0:
		return app.ButtonPrimary
	case b&desktop.MouseButtonSecondary != 0:
		return app.ButtonSecondary
	default:
		return app.ButtonNone
	}
}

// MouseDown implements desktop.Mouseable.
func (mc *MeasureCanvas) MouseDown(ev *desktop.MouseEvent) {
	button := toButton(ev.Button)
	if button == app.ButtonNone {
		return
	}
	mc.pressed = button
	mc.state.HandlePointer(mc.event(app.PhaseDown, button, ev.Position))
}

// MouseUp implements desktop.Mouseable.
func (mc *MeasureCanvas) MouseUp(ev *desktop.MouseEvent) {
	button := toButton(ev.Button)
	if button == app.ButtonNone {
		button = mc.pressed
	}
	mc.pressed = app.ButtonNone
	mc.state.HandlePointer(mc.event(app.PhaseUp, button, ev.Position))
}

// MouseIn implements desktop.Hoverable.
func (mc *MeasureCanvas) MouseIn(ev *desktop.MouseEvent) {
	mc.hover(ev.Position)
}

// MouseMoved implements desktop.Hoverable.
func (mc *MeasureCanvas) MouseMoved(ev *desktop.MouseEvent) {
	mc.hover(ev.Position)
	if mc.pressed != app.ButtonNone {
		mc.state.HandlePointer(mc.event(app.PhaseMove, mc.pressed, ev.Position))
	}
}

// MouseOut implements desktop.Hoverable.
func (mc *MeasureCanvas) MouseOut() {
	if mc.onHover != nil {
		mc.onHover("", false)
	}
}

func (mc *MeasureCanvas) hover(pos fyne.Position) {
	if mc.onHover == nil {
		return
	}
	readout, ok := mc.state.Readout(geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}, mc.viewportSize())
	mc.onHover(readout, ok)
}

// draw is the raster drawing function. w and h are device pixels; the fit
// is proportional so it matches the fit computed for mouse events.
func (mc *MeasureCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(output, output.Bounds(), image.NewUniform(colorutil.Black), image.Point{}, draw.Src)

	layer := mc.state.Image()
	if layer == nil || layer.Image == nil {
		return output
	}

	fit := viewport.NewFit(geometry.Size{Width: float64(w), Height: float64(h)}, layer.Size())
	if !fit.Valid() {
		return output
	}

	annotated := render.Composite(layer.Image, mc.state.Scene(), mc.style)

	r := fit.ImageRect()
	dst := image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.X+r.Width)),
		int(math.Round(r.Y+r.Height)),
	)
	xdraw.ApproxBiLinear.Scale(output, dst, annotated, annotated.Bounds(), xdraw.Src, nil)
	return output
}

// MinSize implements fyne.Widget.
func (mc *MeasureCanvas) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

// Refresh redraws the raster.
func (mc *MeasureCanvas) Refresh() {
	mc.raster.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (mc *MeasureCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(mc.raster)
}
