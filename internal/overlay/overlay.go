// Package overlay ties pointer input, the stroke log and a renderer
// together into one drawing overlay. Each Overlay is independent; several
// can run side by side.
package overlay

import (
	"fmt"
	"log"
	"sync"

	"DoodleBoard/internal/render"
	"DoodleBoard/internal/state"
)

// Host provides the platform pieces an overlay needs: a surface to draw on
// and a place to mount toolbar controls.
type Host interface {
	Viewport() (width, height int)
	CreateSurface() (render.Surface, error)
	DestroySurface(s render.Surface)
	MountControl(id ControlID, label string, onActivate func())
	UnmountControl(id ControlID)
}

type Options struct {
	Live        render.Style
	Replay      render.Style
	ReplayOvals bool
}

// Overlay state is guarded by mu. Calls into the host and the surface are
// queued while mu is held and run after it is released, in order, under
// out. A host that blocks on output therefore never holds up Drawings or
// Ovals.
type Overlay struct {
	mu       sync.Mutex
	host     Host
	opts     Options
	tracker  *state.Tracker
	surface  render.Surface
	renderer *render.Renderer
	mode     Mode
	mounted  []ControlID
	active   bool

	out   sync.Mutex
	queue []func()
}

func New(host Host, opts Options) *Overlay {
	return &Overlay{
		host:    host,
		opts:    opts,
		tracker: state.NewTracker(),
	}
}

// run queues a host or surface call for the next commit.
func (o *Overlay) run(call func()) {
	o.queue = append(o.queue, call)
}

// commit releases o.mu and then runs the queued calls. out is taken before
// mu is released so calls from concurrent operations keep their order.
func (o *Overlay) commit() {
	queued := o.queue
	o.queue = nil
	if len(queued) == 0 {
		o.mu.Unlock()
		return
	}
	o.out.Lock()
	o.mu.Unlock()
	defer o.out.Unlock()
	for _, call := range queued {
		call()
	}
}

// Initialize creates the surface, sizes it to the host viewport and mounts
// the toolbar. The overlay starts in pencil mode.
func (o *Overlay) Initialize() error {
	o.mu.Lock()

	if o.active {
		o.mu.Unlock()
		return ErrAlreadyInitialized
	}
	if o.host == nil {
		o.mu.Unlock()
		return &InitializationError{Err: ErrNoHost}
	}
	surface, err := o.host.CreateSurface()
	if err != nil {
		o.mu.Unlock()
		return &InitializationError{Err: fmt.Errorf("%w: %w", ErrNoSurface, err)}
	}
	if surface == nil {
		o.mu.Unlock()
		return &InitializationError{Err: ErrNoSurface}
	}

	o.surface = surface
	o.renderer = render.NewRenderer(queuedSurface{o: o, s: surface}, o.opts.Live, o.opts.Replay)
	o.tracker.Reset()
	o.mode = ModePencil
	o.active = true

	w, h := o.host.Viewport()
	o.run(func() { surface.SetSize(w, h) })

	actions := map[ControlID]func(){
		ControlReset:  o.Reset,
		ControlOval:   func() { o.SetMode(ModeOval) },
		ControlPencil: func() { o.SetMode(ModePencil) },
		ControlRedraw: o.Replay,
	}
	host := o.host
	for _, id := range Controls {
		label, onActivate := id.Label(), actions[id]
		o.run(func() { host.MountControl(id, label, onActivate) })
		o.mounted = append(o.mounted, id)
	}

	log.Printf("[OVERLAY] Initialized %dx%d surface in %s mode", w, h, o.mode)
	o.commit()
	return nil
}

// Active reports whether the overlay is initialized and not reset.
func (o *Overlay) Active() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

func (o *Overlay) Mode() Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode
}

// SetMode switches the active tool. Switching to the current mode is a
// no-op.
func (o *Overlay) SetMode(m Mode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.active || o.mode == m {
		return
	}
	log.Printf("[OVERLAY] Mode %s -> %s", o.mode, m)
	o.mode = m
}

// Cursor returns the last observed pointer position.
func (o *Overlay) Cursor() state.Point {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tracker.Cursor()
}

// Enter handles the pointer entering the surface.
func (o *Overlay) Enter(x, y float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.active {
		return
	}
	o.tracker.SetPosition(x, y)
}

// Press handles a primary button press. In pencil mode it moves the
// cursor. In oval mode it is a click: an oval is drawn from the cursor to
// the press position, which then becomes the cursor.
func (o *Overlay) Press(x, y float32) {
	o.mu.Lock()
	defer o.commit()
	if !o.active {
		return
	}
	switch o.mode {
	case ModePencil:
		o.tracker.SetPosition(x, y)
	case ModeOval:
		oval := state.Oval{Anchor: o.tracker.Cursor(), Corner: state.Point{X: x, Y: y}}
		o.renderer.DrawOval(oval.Anchor, oval.Corner)
		o.tracker.RecordOval(oval)
		o.tracker.SetPosition(x, y)
	}
}

// Move handles pointer motion. In pencil mode every move is recorded and
// draws one segment from the previous cursor to the new one. Moves are
// ignored in oval mode.
func (o *Overlay) Move(x, y float32) {
	o.mu.Lock()
	defer o.commit()
	if !o.active || o.mode != ModePencil {
		return
	}
	from := o.tracker.Cursor()
	o.tracker.SetPosition(x, y)
	to := o.tracker.RecordPoint()
	o.renderer.DrawSegment(from, to)
}

// ContextMenu handles a secondary click, which replays the log.
func (o *Overlay) ContextMenu() {
	o.Replay()
}

// Replay clears the surface and redraws the stroke log. The log and the
// cursor are left as they are.
func (o *Overlay) Replay() {
	o.mu.Lock()
	defer o.commit()
	if !o.active {
		return
	}
	var ovals []state.Oval
	if o.opts.ReplayOvals {
		ovals = o.tracker.Ovals()
	}
	o.renderer.Replay(o.tracker.Points(), ovals)
}

// Clear erases the surface without touching the stroke log.
func (o *Overlay) Clear() {
	o.mu.Lock()
	defer o.commit()
	if !o.active {
		return
	}
	o.renderer.Clear()
}

// Resize resizes the surface, discarding what was drawn on it.
func (o *Overlay) Resize(width, height int) {
	o.mu.Lock()
	defer o.commit()
	if !o.active {
		return
	}
	surface := o.surface
	o.run(func() { surface.SetSize(width, height) })
}

// Drawings returns a snapshot of the stroke log. It is empty before
// Initialize and after Reset.
func (o *Overlay) Drawings() []state.Point {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tracker.Points()
}

// Ovals returns the ovals drawn since Initialize. They are not part of
// the stroke log.
func (o *Overlay) Ovals() []state.Oval {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tracker.Ovals()
}

// Reset unmounts the toolbar, destroys the surface and forgets all state.
// The overlay must be initialized again before further use.
func (o *Overlay) Reset() {
	o.mu.Lock()
	defer o.commit()
	if !o.active {
		return
	}
	host, surface := o.host, o.surface
	for _, id := range o.mounted {
		o.run(func() { host.UnmountControl(id) })
	}
	o.mounted = nil
	o.run(func() { host.DestroySurface(surface) })
	o.surface = nil
	o.renderer = nil
	o.tracker.Reset()
	o.mode = ModePencil
	o.active = false
	log.Println("[OVERLAY] Reset, surface and controls removed")
}

// queuedSurface defers every drawing call to the overlay's next commit.
type queuedSurface struct {
	o *Overlay
	s render.Surface
}

func (q queuedSurface) SetSize(width, height int) {
	q.o.run(func() { q.s.SetSize(width, height) })
}

func (q queuedSurface) Clear() {
	q.o.run(q.s.Clear)
}

func (q queuedSurface) StrokePath(p render.Path, st render.Style) {
	q.o.run(func() { q.s.StrokePath(p, st) })
}
