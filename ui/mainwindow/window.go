// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"nano-analyzer/internal/annotation"
	"nano-analyzer/internal/app"
	"nano-analyzer/internal/export"
	"nano-analyzer/internal/render"
	"nano-analyzer/internal/version"
	"nano-analyzer/ui/canvas"
	"nano-analyzer/ui/prefs"
)

const appTitle = "Nano Analyzer"

var (
	toolOptions      = []string{"Line", "Circle"}
	secondaryOptions = []string{"Scale", "Undo"}
	imageExtensions  = []string{".tif", ".tiff", ".png", ".jpg", ".jpeg", ".gif", ".bmp"}
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs
	style render.Style
	log   zerolog.Logger

	canvas     *canvas.MeasureCanvas
	tree       *widget.Tree
	treeIndex  *treeIndex
	imageLabel *widget.Label
	readout    *widget.Label
	statusBar  *widget.Label

	toolRadio      *widget.RadioGroup
	secondaryRadio *widget.RadioGroup
	lengthEntry    *widget.Entry
	unitsEntry     *widget.Entry
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, style render.Style, log zerolog.Logger) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window:    win,
		app:       fyneApp,
		state:     state,
		prefs:     p,
		style:     style,
		log:       log,
		treeIndex: newTreeIndex(state.Tree()),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New(mw.state, mw.style)

	mw.imageLabel = widget.NewLabel("No image")
	mw.readout = widget.NewLabel("")
	mw.statusBar = widget.NewLabel("Ready")

	mw.canvas.OnHover(func(readout string, inside bool) {
		if !inside {
			readout = ""
		}
		mw.readout.SetText(readout)
	})

	mw.tree = widget.NewTree(
		func(id widget.TreeNodeID) []widget.TreeNodeID { return mw.treeIndex.childUIDs(id) },
		func(id widget.TreeNodeID) bool { return mw.treeIndex.isBranch(id) },
		func(branch bool) fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TreeNodeID, branch bool, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(mw.treeIndex.label(id))
		},
	)
	mw.tree.OpenAllBranches()

	copyBtn := widget.NewButton("Copy", mw.onCopy)
	treeArea := container.NewBorder(nil, copyBtn, nil, nil, mw.tree)

	canvasArea := container.NewBorder(
		mw.createToolbar(), // top
		nil,                // bottom
		nil,                // left
		nil,                // right
		mw.canvas,          // center
	)

	split := container.NewHSplit(canvasArea, treeArea)
	split.SetOffset(0.75)

	statusRow := container.NewHBox(mw.imageLabel, widget.NewSeparator(), mw.readout, widget.NewSeparator(), mw.statusBar)

	content := container.NewBorder(nil, container.NewPadded(statusRow), nil, nil, split)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1200, 800))
}

// createToolbar creates the toolbar with load, tool and calibration controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	loadBtn := widget.NewButton("Load...", mw.onLoadImage)

	mw.toolRadio = widget.NewRadioGroup(toolOptions, mw.onToolChanged)
	mw.toolRadio.Horizontal = true
	mw.toolRadio.Required = true
	mw.toolRadio.SetSelected(optionFor(mw.state.Tool().String()))

	mw.secondaryRadio = widget.NewRadioGroup(secondaryOptions, mw.onSecondaryChanged)
	mw.secondaryRadio.Horizontal = true
	mw.secondaryRadio.Required = true
	mw.secondaryRadio.SetSelected(optionFor(mw.state.SecondaryMode().String()))

	mw.lengthEntry = widget.NewEntry()
	mw.lengthEntry.SetText(export.FormatNumber(mw.state.PhysicalLength()))
	mw.lengthEntry.OnChanged = mw.onLengthChanged

	mw.unitsEntry = widget.NewEntry()
	mw.unitsEntry.SetText(mw.state.Units())
	mw.unitsEntry.OnSubmitted = mw.onUnitsSubmitted

	undoBtn := widget.NewButton("Undo", func() { mw.state.Undo() })

	return container.NewHBox(
		loadBtn,
		widget.NewSeparator(),
		widget.NewLabel("Draw:"),
		mw.toolRadio,
		widget.NewSeparator(),
		widget.NewLabel("Right button:"),
		mw.secondaryRadio,
		widget.NewSeparator(),
		widget.NewLabel("Length:"),
		container.NewGridWrap(fyne.NewSize(90, mw.lengthEntry.MinSize().Height), mw.lengthEntry),
		container.NewGridWrap(fyne.NewSize(70, mw.unitsEntry.MinSize().Height), mw.unitsEntry),
		widget.NewSeparator(),
		undoBtn,
	)
}

// optionFor turns a mode name such as "line" into its radio label "Line".
func optionFor(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load Image...", mw.onLoadImage),
		fyne.NewMenuItem("Export Annotated Image...", mw.onExportImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() { mw.state.Undo() }),
		fyne.NewMenuItem("Copy Measurements", mw.onCopy),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		name := mw.state.Image().Name
		mw.imageLabel.SetText(name)
		mw.SetTitle(appTitle + " - " + name)
		mw.updateStatus("Image loaded")
		mw.refreshTree()
	})

	mw.state.On(app.EventAnnotationsChanged, func(data interface{}) {
		mw.refreshTree()
	})

	mw.state.On(app.EventCalibrationChanged, func(data interface{}) {
		mw.refreshTree()
	})

	mw.state.On(app.EventCalibrationRejected, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Calibration rejected: " + err.Error())
		}
	})
}

func (mw *MainWindow) refreshTree() {
	mw.treeIndex = newTreeIndex(mw.state.Tree())
	mw.tree.Refresh()
	mw.tree.OpenAllBranches()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// lastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) lastDir() fyne.ListableURI {
	path := mw.prefs.LastDir()
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// LoadImage loads path into the session and reports failures in a dialog.
func (mw *MainWindow) LoadImage(path string) {
	if err := mw.state.LoadImage(path); err != nil {
		mw.log.Error().Err(err).Str("path", path).Msg("failed to load image")
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.prefs.RememberFile(path)
}

func (mw *MainWindow) onLoadImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		mw.LoadImage(reader.URI().Path())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportImage() {
	layer, _, err := mw.state.Snapshot()
	if err != nil {
		mw.updateStatus("Export: " + err.Error())
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		path := writer.URI().Path()
		if err := mw.writeAnnotated(writer, filepath.Ext(path)); err != nil {
			mw.log.Error().Err(err).Str("path", path).Msg("export failed")
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName(strings.TrimSuffix(layer.Name, filepath.Ext(layer.Name)) + "_annotated.png")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".pdf"}))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) writeAnnotated(w io.Writer, ext string) error {
	layer, scene, err := mw.state.Snapshot()
	if err != nil {
		return err
	}
	if strings.EqualFold(ext, ".pdf") {
		return render.WritePDF(w, layer.Image, scene, mw.style)
	}
	return png.Encode(w, render.Composite(layer.Image, scene, mw.style))
}

func (mw *MainWindow) onCopy() {
	mw.Clipboard().SetContent(mw.state.ExportText())
	mw.updateStatus(fmt.Sprintf("Copied %d measurements", len(mw.state.Objects())))
}

func (mw *MainWindow) onToolChanged(selected string) {
	kind, err := annotation.ParseKind(selected)
	if err != nil {
		return
	}
	mw.state.SetTool(kind)
	mw.prefs.SetTool(kind.String())
}

func (mw *MainWindow) onSecondaryChanged(selected string) {
	mode, err := app.ParseSecondaryMode(selected)
	if err != nil {
		return
	}
	mw.state.SetSecondaryMode(mode)
	mw.prefs.SetSecondaryMode(mode.String())
}

func (mw *MainWindow) onLengthChanged(text string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err == nil {
		err = mw.state.SetPhysicalLength(v)
	}
	if err != nil {
		mw.updateStatus("Length must be a positive number")
		return
	}
	mw.prefs.SetPhysicalLength(v)
	mw.updateStatus("Next calibration: " + export.FormatNumber(v) + " " + mw.state.Units())
}

func (mw *MainWindow) onUnitsSubmitted(text string) {
	units := strings.TrimSpace(text)
	if err := mw.state.SetUnits(units); err != nil {
		mw.updateStatus(err.Error())
		return
	}
	mw.prefs.SetUnits(mw.state.Units())
	mw.refreshTree()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"Calibrated length, radius and aspect measurements on micrographs.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
