package web

import (
	"DoodleBoard/internal/render"
	"DoodleBoard/internal/state"
)

// Inbound event types sent by the page.
const (
	EventMove    = "move"
	EventDown    = "down"
	EventEnter   = "enter"
	EventContext = "context"
	EventControl = "control"
	EventResize  = "resize"
	EventInit    = "init"
)

// Event is one pointer, window or toolbar event from the page.
type Event struct {
	Type   string  `json:"type"`
	X      float32 `json:"x,omitempty"`
	Y      float32 `json:"y,omitempty"`
	ID     string  `json:"id,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

// Outbound command ops sent to the page.
const (
	OpHello   = "hello"
	OpResize  = "resize"
	OpClear   = "clear"
	OpStroke  = "stroke"
	OpMount   = "mount"
	OpUnmount = "unmount"
	OpDestroy = "destroy"
)

// Command is one drawing or toolbar instruction for the page. Seq grows by
// one per command within a session.
type Command struct {
	Seq     uint64     `json:"seq"`
	Op      string     `json:"op"`
	Session string     `json:"session,omitempty"`
	Width   int        `json:"width,omitempty"`
	Height  int        `json:"height,omitempty"`
	Path    []WireOp   `json:"path,omitempty"`
	Style   *WireStyle `json:"style,omitempty"`
	ID      string     `json:"id,omitempty"`
	Label   string     `json:"label,omitempty"`
}

// WireOp is a path command in canvas terms.
type WireOp struct {
	Op  string       `json:"op"`
	Pts [][2]float32 `json:"pts,omitempty"`
}

type WireStyle struct {
	Width float32 `json:"width"`
	Cap   string  `json:"cap"`
	Color string  `json:"color"`
}

func wirePath(p render.Path) []WireOp {
	ops := make([]WireOp, 0, len(p.Ops))
	for _, op := range p.Ops {
		w := WireOp{Op: op.Kind.String()}
		switch op.Kind {
		case render.OpMove, render.OpLine:
			w.Pts = pts(op.Pts[:1])
		case render.OpCubic:
			w.Pts = pts(op.Pts[:])
		}
		ops = append(ops, w)
	}
	return ops
}

func pts(in []state.Point) [][2]float32 {
	out := make([][2]float32, len(in))
	for i, p := range in {
		out[i] = [2]float32{p.X, p.Y}
	}
	return out
}

func wireStyle(s render.Style) *WireStyle {
	return &WireStyle{Width: s.Width, Cap: s.Cap.String(), Color: s.Hex()}
}
