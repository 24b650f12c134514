package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"DoodleBoard/internal/render"
)

// curveSteps is how many straight pieces each bezier is split into.
const curveSteps = 16

// BoardWidget is a transparent drawing layer. It is a render.Surface and
// reports pointer input through its On* callbacks.
type BoardWidget struct {
	widget.BaseWidget

	mu       sync.RWMutex
	lines    []fyne.CanvasObject
	lastSize fyne.Size

	OnMove        func(x, y float32)
	OnPress       func(x, y float32)
	OnEnter       func(x, y float32)
	OnContextMenu func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ fyne.SecondaryTappable = (*BoardWidget)(nil)
var _ render.Surface = (*BoardWidget)(nil)

func NewBoardWidget() *BoardWidget {
	b := &BoardWidget{lines: make([]fyne.CanvasObject, 0)}
	b.ExtendBaseWidget(b)
	return b
}

// SetSize drops everything drawn so far. The widget's on-screen size is
// managed by its container.
func (b *BoardWidget) SetSize(width, height int) {
	b.Clear()
}

func (b *BoardWidget) Clear() {
	b.mu.Lock()
	b.lines = make([]fyne.CanvasObject, 0)
	b.mu.Unlock()
	b.Refresh()
}

// StrokePath adds the path as line objects. Fyne lines have no cap style,
// so st.Cap is not applied.
func (b *BoardWidget) StrokePath(p render.Path, st render.Style) {
	var added []fyne.CanvasObject
	for _, poly := range p.Flatten(curveSteps) {
		for i := 1; i < len(poly); i++ {
			segment := canvas.NewLine(st.Color)
			segment.StrokeWidth = st.Width
			segment.Position1 = fyne.NewPos(poly[i-1].X, poly[i-1].Y)
			segment.Position2 = fyne.NewPos(poly[i].X, poly[i].Y)
			added = append(added, segment)
		}
	}
	b.mu.Lock()
	b.lines = append(b.lines, added...)
	b.mu.Unlock()
	b.Refresh()
}

// Lines returns the number of line objects currently drawn.
func (b *BoardWidget) Lines() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary && b.OnPress != nil {
		b.OnPress(e.Position.X, e.Position.Y)
	}
}

func (b *BoardWidget) MouseUp(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	if b.OnEnter != nil {
		b.OnEnter(e.Position.X, e.Position.Y)
	}
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.OnMove != nil {
		b.OnMove(e.Position.X, e.Position.Y)
	}
}

func (b *BoardWidget) MouseOut() {}

func (b *BoardWidget) TappedSecondary(*fyne.PointEvent) {
	if b.OnContextMenu != nil {
		b.OnContextMenu()
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.Transparent)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	r.board.mu.RLock()
	defer r.board.mu.RUnlock()

	objects := make([]fyne.CanvasObject, 0, len(r.board.lines)+1)
	objects = append(objects, r.background)
	return append(objects, r.board.lines...)
}

// Layout resizes the background. A change of size wipes the drawing, the
// way resizing an html canvas does.
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	b := r.board
	b.mu.Lock()
	changed := b.lastSize != (fyne.Size{}) && b.lastSize != size
	b.lastSize = size
	if changed {
		b.lines = make([]fyne.CanvasObject, 0)
	}
	b.mu.Unlock()
}

func (r *boardWidgetRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
