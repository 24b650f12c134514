// Package rendertest provides a recording render.Surface for tests.
package rendertest

import (
	"sync"

	"DoodleBoard/internal/render"
)

// CallKind identifies a recorded surface call.
type CallKind string

const (
	CallSetSize CallKind = "set_size"
	CallClear   CallKind = "clear"
	CallStroke  CallKind = "stroke"
)

// Call is one recorded surface call.
type Call struct {
	Kind   CallKind
	Width  int
	Height int
	Path   render.Path
	Style  render.Style
}

// Recorder is a render.Surface that remembers every call made on it.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

var _ render.Surface = (*Recorder)(nil)

func (r *Recorder) SetSize(width, height int) {
	r.add(Call{Kind: CallSetSize, Width: width, Height: height})
}

func (r *Recorder) Clear() {
	r.add(Call{Kind: CallClear})
}

func (r *Recorder) StrokePath(p render.Path, s render.Style) {
	r.add(Call{Kind: CallStroke, Path: p, Style: s})
}

func (r *Recorder) add(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// Calls returns a copy of everything recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]Call, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// Strokes returns only the stroke calls.
func (r *Recorder) Strokes() []Call {
	var strokes []Call
	for _, c := range r.Calls() {
		if c.Kind == CallStroke {
			strokes = append(strokes, c)
		}
	}
	return strokes
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
