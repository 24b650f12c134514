package ui

import (
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"DoodleBoard/internal/config"
	"DoodleBoard/internal/overlay"
	"DoodleBoard/internal/render"
)

// Input receives pointer events from the board.
type Input interface {
	Move(x, y float32)
	Press(x, y float32)
	Enter(x, y float32)
	ContextMenu()
}

// Desktop hosts an overlay in a fyne window: the board is stacked above
// the window's page content, and the toolbar above the board.
type Desktop struct {
	window fyne.Window
	width  int
	height int
	page   fyne.CanvasObject
	layers *fyne.Container
	tools  *toolbar
	board  *BoardWidget
	input  Input
}

var _ overlay.Host = (*Desktop)(nil)

// NewDesktop installs a layered layout as the content of w, keeping page
// underneath the overlay.
func NewDesktop(w fyne.Window, page fyne.CanvasObject, width, height int) *Desktop {
	d := &Desktop{
		window: w,
		width:  width,
		height: height,
		page:   page,
		tools:  newToolbar(),
	}
	d.layers = container.NewStack(page, d.tools.layer)
	if w != nil {
		w.SetContent(d.layers)
	}
	return d
}

// Bind routes board input to in.
func (d *Desktop) Bind(in Input) {
	d.input = in
}

func (d *Desktop) Viewport() (int, int) {
	if d.window != nil {
		size := d.window.Canvas().Size()
		if size.Width > 0 && size.Height > 0 {
			return int(size.Width), int(size.Height)
		}
	}
	return d.width, d.height
}

func (d *Desktop) CreateSurface() (render.Surface, error) {
	if d.window == nil {
		return nil, errors.New("no window to draw in")
	}
	b := NewBoardWidget()
	b.OnMove = func(x, y float32) {
		if d.input != nil {
			d.input.Move(x, y)
		}
	}
	b.OnPress = func(x, y float32) {
		if d.input != nil {
			d.input.Press(x, y)
		}
	}
	b.OnEnter = func(x, y float32) {
		if d.input != nil {
			d.input.Enter(x, y)
		}
	}
	b.OnContextMenu = func() {
		if d.input != nil {
			d.input.ContextMenu()
		}
	}
	d.board = b
	d.layers.Objects = []fyne.CanvasObject{d.page, b, d.tools.layer}
	d.layers.Refresh()
	return b, nil
}

func (d *Desktop) DestroySurface(render.Surface) {
	d.board = nil
	d.layers.Objects = []fyne.CanvasObject{d.page, d.tools.layer}
	d.layers.Refresh()
}

func (d *Desktop) MountControl(id overlay.ControlID, label string, onActivate func()) {
	d.tools.mount(id, label, onActivate)
}

func (d *Desktop) UnmountControl(id overlay.ControlID) {
	d.tools.unmount(id)
}

// Board returns the current drawing layer, or nil after a reset.
func (d *Desktop) Board() *BoardWidget {
	return d.board
}

// Button returns the mounted button for id, or nil.
func (d *Desktop) Button(id overlay.ControlID) *widget.Button {
	return d.tools.button(id)
}

// RunApp opens the desktop window and blocks until it is closed.
func RunApp(cfg config.Config) {
	myApp := app.New()
	myWindow := myApp.NewWindow("DoodleBoard")
	myWindow.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))

	page := container.NewCenter(widget.NewLabel("Move the pointer to draw. Right click to redraw."))
	host := NewDesktop(myWindow, page, cfg.Width, cfg.Height)
	o := overlay.New(host, overlay.Options{
		Live:        cfg.LiveStyle(),
		Replay:      cfg.ReplayStyle(),
		ReplayOvals: cfg.ReplayOvals,
	})
	host.Bind(o)
	if err := o.Initialize(); err != nil {
		log.Fatalf("Failed to start overlay: %v", err)
	}

	myWindow.ShowAndRun()
}
