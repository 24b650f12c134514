package overlay_test

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DoodleBoard/internal/overlay"
	"DoodleBoard/internal/render"
	"DoodleBoard/internal/render/rendertest"
	"DoodleBoard/internal/state"
)

type fakeHost struct {
	surface   *rendertest.Recorder
	custom    render.Surface
	createErr error
	destroyed []render.Surface
	controls  map[overlay.ControlID]func()
	labels    map[overlay.ControlID]string
	order     []overlay.ControlID
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		surface:  &rendertest.Recorder{},
		controls: make(map[overlay.ControlID]func()),
		labels:   make(map[overlay.ControlID]string),
	}
}

func (h *fakeHost) Viewport() (int, int) { return 640, 480 }

func (h *fakeHost) CreateSurface() (render.Surface, error) {
	if h.createErr != nil {
		return nil, h.createErr
	}
	if h.custom != nil {
		return h.custom, nil
	}
	return h.surface, nil
}

func (h *fakeHost) DestroySurface(s render.Surface) {
	h.destroyed = append(h.destroyed, s)
}

func (h *fakeHost) MountControl(id overlay.ControlID, label string, onActivate func()) {
	h.controls[id] = onActivate
	h.labels[id] = label
	h.order = append(h.order, id)
}

func (h *fakeHost) UnmountControl(id overlay.ControlID) {
	delete(h.controls, id)
}

func (h *fakeHost) activate(t *testing.T, id overlay.ControlID) {
	t.Helper()
	fn, ok := h.controls[id]
	require.True(t, ok, "control %s not mounted", id)
	fn()
}

var opts = overlay.Options{
	Live:   render.Style{Width: 2, Cap: render.CapRound, Color: color.NRGBA{B: 0xf3, A: 0xff}},
	Replay: render.Style{Width: 5, Cap: render.CapRound, Color: color.NRGBA{B: 0xf3, A: 0xff}},
}

func newOverlay(t *testing.T) (*overlay.Overlay, *fakeHost) {
	t.Helper()
	h := newFakeHost()
	o := overlay.New(h, opts)
	require.NoError(t, o.Initialize())
	h.surface.Reset()
	return o, h
}

func TestInitializeMountsToolbarAndSizesSurface(t *testing.T) {
	h := newFakeHost()
	o := overlay.New(h, opts)
	require.NoError(t, o.Initialize())

	assert.True(t, o.Active())
	assert.Equal(t, overlay.ModePencil, o.Mode())
	assert.Equal(t, overlay.Controls, h.order)
	assert.Equal(t, "ReDraw", h.labels[overlay.ControlRedraw])

	calls := h.surface.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, rendertest.CallSetSize, calls[0].Kind)
	assert.Equal(t, 640, calls[0].Width)
	assert.Equal(t, 480, calls[0].Height)

	assert.ErrorIs(t, o.Initialize(), overlay.ErrAlreadyInitialized)
}

func TestInitializeFailsFastWithoutSurface(t *testing.T) {
	h := newFakeHost()
	h.createErr = errors.New("no context")
	o := overlay.New(h, opts)

	err := o.Initialize()
	var initErr *overlay.InitializationError
	require.ErrorAs(t, err, &initErr)
	assert.ErrorIs(t, err, overlay.ErrNoSurface)
	assert.ErrorContains(t, err, "no context")
	assert.False(t, o.Active())
	assert.Empty(t, h.controls)
}

func TestInitializeWithoutHost(t *testing.T) {
	err := overlay.New(nil, opts).Initialize()
	var initErr *overlay.InitializationError
	require.ErrorAs(t, err, &initErr)
	assert.ErrorIs(t, err, overlay.ErrNoHost)
}

func TestMovesAreRecordedInOrder(t *testing.T) {
	o, h := newOverlay(t)

	o.Move(10, 10)
	o.Move(20, 15)
	o.Move(30, 20)

	assert.Equal(t, []state.Point{{X: 10, Y: 10}, {X: 20, Y: 15}, {X: 30, Y: 20}}, o.Drawings())

	strokes := h.surface.Strokes()
	require.Len(t, strokes, 3)
	assert.Equal(t, render.SegmentPath(state.Point{}, state.Point{X: 10, Y: 10}), strokes[0].Path)
	assert.Equal(t, render.SegmentPath(state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 15}), strokes[1].Path)
	assert.Equal(t, float32(2), strokes[0].Style.Width)
}

func TestRecordedPointMatchesCursor(t *testing.T) {
	o, _ := newOverlay(t)
	for i := 0; i < 50; i++ {
		o.Move(float32(i*3), float32(100-i))
		d := o.Drawings()
		assert.Equal(t, o.Cursor(), d[len(d)-1])
	}
	assert.Len(t, o.Drawings(), 50)
}

func TestPressMovesCursorInPencilMode(t *testing.T) {
	o, h := newOverlay(t)
	o.Press(40, 40)
	o.Move(45, 50)

	strokes := h.surface.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, render.SegmentPath(state.Point{X: 40, Y: 40}, state.Point{X: 45, Y: 50}), strokes[0].Path)
	assert.Equal(t, []state.Point{{X: 45, Y: 50}}, o.Drawings())
}

func TestEnterSetsCursor(t *testing.T) {
	o, _ := newOverlay(t)
	o.Enter(-5, 7)
	assert.Equal(t, state.Point{X: -5, Y: 7}, o.Cursor())
	assert.Empty(t, o.Drawings())
}

func TestReplayDrawsSegmentsAndKeepsLog(t *testing.T) {
	o, h := newOverlay(t)
	o.Move(10, 10)
	o.Move(20, 15)
	o.Move(30, 20)
	before := o.Drawings()
	cursor := o.Cursor()
	h.surface.Reset()

	h.activate(t, overlay.ControlRedraw)

	calls := h.surface.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, rendertest.CallClear, calls[0].Kind)
	assert.Equal(t, render.SegmentPath(state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 15}), calls[1].Path)
	assert.Equal(t, render.SegmentPath(state.Point{X: 20, Y: 15}, state.Point{X: 30, Y: 20}), calls[2].Path)
	assert.Equal(t, float32(5), calls[1].Style.Width)

	o.Replay()
	assert.Equal(t, before, o.Drawings())
	assert.Equal(t, cursor, o.Cursor())
	assert.Equal(t, calls, h.surface.Calls()[3:])
}

func TestContextMenuReplays(t *testing.T) {
	o, h := newOverlay(t)
	o.Move(1, 1)
	h.surface.Reset()

	o.ContextMenu()
	calls := h.surface.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, rendertest.CallClear, calls[0].Kind)
}

func TestOvalModeDrawsWithoutRecording(t *testing.T) {
	o, h := newOverlay(t)
	o.Press(0, 0)
	h.activate(t, overlay.ControlOval)
	assert.Equal(t, overlay.ModeOval, o.Mode())

	o.Press(50, 50)

	strokes := h.surface.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, render.OvalPath(state.Point{}, state.Point{X: 50, Y: 50}), strokes[0].Path)

	assert.Empty(t, o.Drawings())
	require.Len(t, o.Ovals(), 1)
	assert.Equal(t, state.BoundsOf(state.Point{}, state.Point{X: 50, Y: 50}), o.Ovals()[0].Bounds())
	assert.Equal(t, state.Point{X: 50, Y: 50}, o.Cursor())
}

func TestOvalModeIgnoresMoves(t *testing.T) {
	o, h := newOverlay(t)
	o.SetMode(overlay.ModeOval)
	o.Move(5, 5)
	o.Move(6, 6)

	assert.Empty(t, o.Drawings())
	assert.Empty(t, h.surface.Strokes())
	assert.Equal(t, state.Point{}, o.Cursor())
}

func TestPencilModeRestoresRecording(t *testing.T) {
	o, h := newOverlay(t)
	h.activate(t, overlay.ControlOval)
	h.activate(t, overlay.ControlPencil)
	assert.Equal(t, overlay.ModePencil, o.Mode())

	o.Press(3, 3)
	o.Move(4, 4)

	assert.Equal(t, []state.Point{{X: 4, Y: 4}}, o.Drawings())
	assert.Empty(t, o.Ovals())
}

func TestReplayLeavesOvalsOutByDefault(t *testing.T) {
	o, h := newOverlay(t)
	o.SetMode(overlay.ModeOval)
	o.Press(10, 10)
	h.surface.Reset()

	o.Replay()
	assert.Empty(t, h.surface.Strokes())
}

func TestReplayOvalsOption(t *testing.T) {
	h := newFakeHost()
	withOvals := opts
	withOvals.ReplayOvals = true
	o := overlay.New(h, withOvals)
	require.NoError(t, o.Initialize())

	o.SetMode(overlay.ModeOval)
	o.Press(10, 10)
	h.surface.Reset()

	o.Replay()
	strokes := h.surface.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, render.OvalPath(state.Point{}, state.Point{X: 10, Y: 10}), strokes[0].Path)
	assert.Equal(t, float32(5), strokes[0].Style.Width)
}

func TestClearKeepsLog(t *testing.T) {
	o, h := newOverlay(t)
	o.Move(1, 2)
	h.surface.Reset()

	o.Clear()
	assert.Equal(t, []rendertest.Call{{Kind: rendertest.CallClear}}, h.surface.Calls())
	assert.Len(t, o.Drawings(), 1)
}

func TestResize(t *testing.T) {
	o, h := newOverlay(t)
	o.Resize(800, 600)
	assert.Equal(t, []rendertest.Call{{Kind: rendertest.CallSetSize, Width: 800, Height: 600}}, h.surface.Calls())
}

func TestResetIsTerminal(t *testing.T) {
	o, h := newOverlay(t)
	o.Move(1, 1)
	o.SetMode(overlay.ModeOval)

	h.activate(t, overlay.ControlReset)

	assert.False(t, o.Active())
	assert.Empty(t, h.controls)
	require.Len(t, h.destroyed, 1)
	assert.Same(t, h.surface, h.destroyed[0])
	assert.NotNil(t, o.Drawings())
	assert.Empty(t, o.Drawings())

	h.surface.Reset()
	o.Move(5, 5)
	o.Press(5, 5)
	o.Replay()
	o.Resize(10, 10)
	o.Reset()
	assert.Empty(t, h.surface.Calls())
	assert.Empty(t, o.Drawings())
	assert.Len(t, h.destroyed, 1)

	require.NoError(t, o.Initialize())
	assert.Equal(t, overlay.ModePencil, o.Mode())
	assert.Len(t, h.controls, 4)
}

func TestIndependentOverlays(t *testing.T) {
	a, _ := newOverlay(t)
	b, _ := newOverlay(t)

	a.Move(1, 1)
	a.Move(2, 2)
	b.Move(9, 9)

	assert.Len(t, a.Drawings(), 2)
	assert.Equal(t, []state.Point{{X: 9, Y: 9}}, b.Drawings())
}

func TestModeAndControlNames(t *testing.T) {
	assert.Equal(t, "pencil", overlay.ModePencil.String())
	assert.Equal(t, "oval", overlay.ModeOval.String())
	assert.Equal(t, "Reset", overlay.ControlReset.Label())
	assert.Equal(t, "Oval", overlay.ControlOval.Label())
	assert.Equal(t, "Pencil", overlay.ControlPencil.Label())
}

// gatedSurface holds every stroke until release is closed.
type gatedSurface struct {
	rendertest.Recorder
	entered chan struct{}
	release chan struct{}
}

func (g *gatedSurface) StrokePath(p render.Path, st render.Style) {
	g.entered <- struct{}{}
	<-g.release
	g.Recorder.StrokePath(p, st)
}

func TestSlowSurfaceDoesNotBlockReads(t *testing.T) {
	gate := &gatedSurface{entered: make(chan struct{}, 1), release: make(chan struct{})}
	h := newFakeHost()
	h.custom = gate
	o := overlay.New(h, opts)
	require.NoError(t, o.Initialize())

	done := make(chan struct{})
	go func() {
		o.Move(10, 10)
		close(done)
	}()
	select {
	case <-gate.entered:
	case <-time.After(time.Second):
		t.Fatal("stroke never reached the surface")
	}

	got := make(chan []state.Point, 1)
	go func() { got <- o.Drawings() }()
	select {
	case pts := <-got:
		assert.Equal(t, []state.Point{{X: 10, Y: 10}}, pts)
	case <-time.After(time.Second):
		t.Fatal("Drawings waited for the surface")
	}
	assert.Equal(t, state.Point{X: 10, Y: 10}, o.Cursor())

	close(gate.release)
	<-done
	assert.Len(t, gate.Strokes(), 1)
}

func TestHostCallsKeepOrder(t *testing.T) {
	o, h := newOverlay(t)
	o.Move(1, 1)
	o.Replay()
	o.Resize(10, 10)

	calls := h.surface.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, rendertest.CallStroke, calls[0].Kind)
	assert.Equal(t, rendertest.CallClear, calls[1].Kind)
	assert.Equal(t, rendertest.CallSetSize, calls[2].Kind)
}
