package render

import "DoodleBoard/internal/state"

// Renderer draws strokes and ovals onto a Surface. Live drawing and replay
// use separate styles.
type Renderer struct {
	surface Surface
	live    Style
	replay  Style
}

func NewRenderer(s Surface, live, replay Style) *Renderer {
	return &Renderer{surface: s, live: live, replay: replay}
}

func (r *Renderer) LiveStyle() Style   { return r.live }
func (r *Renderer) ReplayStyle() Style { return r.replay }

// DrawSegment draws one live pencil segment.
func (r *Renderer) DrawSegment(from, to state.Point) {
	r.surface.StrokePath(SegmentPath(from, to), r.live)
}

// DrawOval draws a closed oval bounded by anchor and corner.
func (r *Renderer) DrawOval(anchor, corner state.Point) {
	r.surface.StrokePath(OvalPath(anchor, corner), r.live)
}

// Replay clears the surface and redraws the log, one segment per
// consecutive pair of points. Ovals are redrawn afterwards; pass nil to
// leave them out. Neither slice is modified.
func (r *Renderer) Replay(points []state.Point, ovals []state.Oval) {
	r.surface.Clear()
	for i := 1; i < len(points); i++ {
		r.surface.StrokePath(SegmentPath(points[i-1], points[i]), r.replay)
	}
	for _, o := range ovals {
		r.surface.StrokePath(OvalPath(o.Anchor, o.Corner), r.replay)
	}
}

// Clear erases the surface.
func (r *Renderer) Clear() {
	r.surface.Clear()
}
